package catalog

import (
	"fmt"

	"github.com/polyquery/polyquery/internal/dialect"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/types"
)

// Catalog is an in-memory schema catalog with a fixed nesting depth. It is
// created empty or from a literal structure and mutated only through
// AddTable. Reads never mutate; a mutation must not run concurrently with
// any other operation on the same catalog without external
// synchronization.
type Catalog struct {
	dialect dialect.Dialect
	root    *Branch
	// depth is the number of branch levels from the root to a table's
	// column mapping: 1 table-rooted, 2 database-rooted, 3
	// catalog-rooted. Zero only while the catalog is empty; fixed by the
	// first table added or by the literal the catalog was built from.
	depth int
	cache *resolveCache
}

// Column pairs a column name (in source form, possibly quoted) with its
// type descriptor.
type Column struct {
	Name string
	Type *types.Descriptor
}

// Col builds a column whose type is raw text, parsed lazily on first
// access.
func Col(name, rawType string) Column {
	return Column{Name: name, Type: types.NewDescriptor(rawType)}
}

// TypedCol builds a column from an already-structured semantic type.
func TypedCol(name string, st types.SemanticType) Column {
	return Column{Name: name, Type: types.DescriptorOf(st)}
}

// New constructs an empty catalog bound to a dialect. There is no implicit
// shared default; a stage that can run without schema information should
// accept a nil *Catalog explicitly.
func New(d dialect.Dialect) *Catalog {
	return &Catalog{
		dialect: d,
		root:    NewBranch(),
		cache:   newResolveCache(),
	}
}

// Dialect returns the dialect the catalog normalizes identifiers with.
func (c *Catalog) Dialect() dialect.Dialect { return c.dialect }

// Depth returns the fixed nesting depth, or 0 while the catalog is empty.
func (c *Catalog) Depth() int { return c.depth }

// Empty reports whether the catalog holds no tables.
func (c *Catalog) Empty() bool { return c.root.Len() == 0 }

// AddTable registers a table under ref, creating missing intermediate
// branches.
//
// When cols is non-nil it replaces the table's entire column mapping, even
// with a subset or an empty slice. When cols is nil an absent table is
// created empty and an existing table's columns are left untouched; the
// two cases stay distinguishable for callers that care.
//
// The reference's qualifier count fixes the catalog depth on first use;
// afterwards a mismatched count is a construction error.
func (c *Catalog) AddTable(ref any, cols []Column) error {
	r, err := ToReference(ref, c.dialect)
	if err != nil {
		return err
	}
	parts := r.Normalized(c.dialect)

	var table *Branch
	if cols != nil {
		table = NewBranch()
		for _, col := range cols {
			id, err := ident.ParseOne(col.Name, c.dialect)
			if err != nil {
				return &Error{Kind: KindBadReference, Reference: r.String(), Err: err}
			}
			table.Set(c.dialect.Normalize(id.Name, id.Quoted), &Leaf{Type: col.Type})
		}
	}

	switch {
	case c.depth == 0:
		c.depth = len(parts)
	case len(parts) != c.depth:
		return &Error{
			Kind:      KindDepthMismatch,
			Reference: r.String(),
			Detail: fmt.Sprintf("catalog stores references with %d qualifier(s), got %d",
				c.depth, len(parts)),
		}
	}

	node := c.root
	for _, name := range parts[:len(parts)-1] {
		child, ok := node.Get(name)
		if !ok {
			next := NewBranch()
			node.Set(name, next)
			node = next
			continue
		}
		next, ok := child.(*Branch)
		if !ok {
			return &Error{
				Kind:      KindDepthMismatch,
				Reference: r.String(),
				Detail:    fmt.Sprintf("%s already names a column", name),
			}
		}
		node = next
	}

	name := parts[len(parts)-1]
	if table != nil {
		node.Set(name, table)
	} else if _, ok := node.Get(name); !ok {
		node.Set(name, NewBranch())
	}

	c.cache.reset()
	return nil
}

// ColumnNames resolves ref to exactly one table and returns its column
// names in insertion order.
func (c *Catalog) ColumnNames(ref any) ([]string, error) {
	table, err := c.resolveTable(ref)
	if err != nil {
		return nil, err
	}
	return table.Names(), nil
}

// ColumnType resolves ref to exactly one table and returns the structured
// type of the named column. Raw textual types are parsed on first access.
func (c *Catalog) ColumnType(ref any, column any) (types.SemanticType, error) {
	table, err := c.resolveTable(ref)
	if err != nil {
		return types.SemanticType{}, err
	}

	colRef, err := ToReference(column, c.dialect)
	if err != nil {
		return types.SemanticType{}, err
	}
	if len(colRef) != 1 {
		return types.SemanticType{}, &Error{
			Kind:      KindBadReference,
			Reference: colRef.String(),
			Detail:    "column reference must be a single identifier",
		}
	}
	name := c.dialect.Normalize(colRef[0].Name, colRef[0].Quoted)

	node, ok := table.Get(name)
	if !ok {
		return types.SemanticType{}, &Error{
			Kind:      KindUnknownColumn,
			Reference: displayRef(ref),
			Column:    name,
		}
	}
	leaf, ok := node.(*Leaf)
	if !ok {
		return types.SemanticType{}, &Error{
			Kind:      KindUnknownColumn,
			Reference: displayRef(ref),
			Column:    name,
		}
	}

	st, err := leaf.Type.Resolve()
	if err != nil {
		return types.SemanticType{}, fmt.Errorf("column %s of %s: %w", name, displayRef(ref), err)
	}
	return st, nil
}

// Columns resolves ref to exactly one table and returns its columns with
// their descriptors, in insertion order.
func (c *Catalog) Columns(ref any) ([]Column, error) {
	table, err := c.resolveTable(ref)
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0, table.Len())
	for _, name := range table.Names() {
		node, _ := table.Get(name)
		leaf, ok := node.(*Leaf)
		if !ok {
			continue
		}
		cols = append(cols, Column{Name: name, Type: leaf.Type})
	}
	return cols, nil
}

// Tables enumerates every fully-qualified table path in the catalog, in
// insertion order, as normalized name parts.
func (c *Catalog) Tables() [][]string {
	if c.depth == 0 {
		return nil
	}
	var out [][]string
	var walk func(b *Branch, level int, prefix []string)
	walk = func(b *Branch, level int, prefix []string) {
		for _, name := range b.Names() {
			path := append(prefix[:len(prefix):len(prefix)], name)
			if level == c.depth {
				out = append(out, path)
				continue
			}
			child, _ := b.Get(name)
			if next, ok := child.(*Branch); ok {
				walk(next, level+1, path)
			}
		}
	}
	walk(c.root, 1, nil)
	return out
}

func displayRef(ref any) string {
	switch r := ref.(type) {
	case string:
		return r
	case ident.Reference:
		return r.String()
	case ident.Identifier:
		return r.String()
	case []string:
		return fmt.Sprintf("%v", r)
	default:
		return fmt.Sprintf("%v", ref)
	}
}
