package catalog

import (
	"strconv"
	"strings"
)

// cacheKey encodes normalized parts into an unambiguous key. Quoted
// identifiers are stored byte for byte, so no sentinel byte is safe as a
// separator; length-prefixing each part keeps distinct part lists
// distinct.
func cacheKey(parts []string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// resolveTable maps a reference of K qualifiers onto a catalog of depth D.
//
// K >= D: the leading K-D qualifiers are dropped and the remainder is
// followed level by level from the root (extra leading qualifiers beyond
// the catalog's depth never constrain matching). K < D: the D-K missing
// leading levels are wildcards; every existing combination of those levels
// is probed and the reference resolves only if exactly one completes a
// path to a table.
func (c *Catalog) resolveTable(ref any) (*Branch, error) {
	r, err := ToReference(ref, c.dialect)
	if err != nil {
		return nil, err
	}
	display := r.String()

	if c.depth == 0 {
		return nil, &Error{Kind: KindNotFound, Reference: display}
	}

	parts := r.Normalized(c.dialect)
	if len(parts) > c.depth {
		parts = parts[len(parts)-c.depth:]
	}

	key := cacheKey(parts)
	if table, ok := c.cache.get(key); ok {
		return table, nil
	}

	if len(parts) == c.depth {
		table, ok := c.descend(parts)
		if !ok {
			return nil, &Error{Kind: KindNotFound, Reference: display}
		}
		c.cache.set(key, table)
		return table, nil
	}

	missing := c.depth - len(parts)
	var matches []*Branch
	var matched []string
	c.prefixes(c.root, missing, nil, func(prefix []string) {
		full := make([]string, 0, c.depth)
		full = append(full, prefix...)
		full = append(full, parts...)
		if table, ok := c.descend(full); ok {
			matches = append(matches, table)
			matched = append(matched, strings.Join(full, "."))
		}
	})

	switch len(matches) {
	case 0:
		return nil, &Error{Kind: KindNotFound, Reference: display}
	case 1:
		c.cache.set(key, matches[0])
		return matches[0], nil
	default:
		return nil, &Error{Kind: KindAmbiguous, Reference: display, Candidates: matched}
	}
}

// descend follows exactly one name per branch level from the root and
// returns the table branch at the end of the path.
func (c *Catalog) descend(parts []string) (*Branch, bool) {
	node := c.root
	for _, name := range parts {
		child, ok := node.Get(name)
		if !ok {
			return nil, false
		}
		next, ok := child.(*Branch)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// prefixes visits every concrete value combination of the first `levels`
// branch levels that exists in the catalog.
func (c *Catalog) prefixes(b *Branch, levels int, acc []string, visit func([]string)) {
	if levels == 0 {
		visit(acc)
		return
	}
	for _, name := range b.Names() {
		child, _ := b.Get(name)
		next, ok := child.(*Branch)
		if !ok {
			continue
		}
		c.prefixes(next, levels-1, append(acc[:len(acc):len(acc)], name), visit)
	}
}
