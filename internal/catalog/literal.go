package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/polyquery/polyquery/internal/dialect"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/types"
)

// Field is one named entry of a literal schema structure. Value is a raw
// type string, a types.SemanticType, or a nested Literal.
type Field struct {
	Name  string
	Value any
}

// Literal is an ordered literal schema structure, at most three levels
// deep. Field order is preserved, which fixes column enumeration order.
type Literal []Field

// FromLiteral builds a catalog from a nested literal structure. The
// maximum nesting depth observed determines the catalog depth; a literal
// whose paths bottom out at different depths is rejected. Names wrapped in
// the dialect's quoting delimiters are treated as quoted identifiers.
func FromLiteral(lit Literal, d dialect.Dialect) (*Catalog, error) {
	c := New(d)
	if len(lit) == 0 {
		return c, nil
	}

	root, height, err := buildBranch(lit, d)
	if err != nil {
		return nil, err
	}

	// Height counts the root, the intermediate branch levels, and the
	// leaf level.
	depth := height - 2
	if depth < 1 || depth > 3 {
		return nil, &Error{
			Kind:   KindBadLiteral,
			Detail: fmt.Sprintf("nesting depth %d outside the supported 1-3 range", depth),
		}
	}

	c.root = root
	c.depth = depth
	return c, nil
}

func buildBranch(lit Literal, d dialect.Dialect) (*Branch, int, error) {
	b := NewBranch()
	height := 0

	for _, field := range lit {
		id, err := ident.ParseOne(field.Name, d)
		if err != nil {
			return nil, 0, &Error{Kind: KindBadLiteral, Detail: err.Error(), Err: err}
		}
		name := d.Normalize(id.Name, id.Quoted)

		var child Node
		childHeight := 0
		switch value := field.Value.(type) {
		case string:
			child = &Leaf{Type: types.NewDescriptor(value)}
			childHeight = 1
		case types.SemanticType:
			child = &Leaf{Type: types.DescriptorOf(value)}
			childHeight = 1
		case Literal:
			nested, h, err := buildBranch(value, d)
			if err != nil {
				return nil, 0, err
			}
			child = nested
			childHeight = h
		default:
			return nil, 0, &Error{
				Kind:   KindBadLiteral,
				Detail: fmt.Sprintf("%s: unsupported value %T", field.Name, field.Value),
			}
		}

		switch {
		case height == 0:
			height = childHeight
		case height != childHeight:
			return nil, 0, &Error{
				Kind:   KindBadLiteral,
				Detail: fmt.Sprintf("%s: uneven nesting depth", field.Name),
			}
		}

		if _, exists := b.Get(name); exists {
			return nil, 0, &Error{
				Kind:   KindBadLiteral,
				Detail: fmt.Sprintf("duplicate name %s", name),
			}
		}
		b.Set(name, child)
	}

	// An empty mapping is a table with no columns: it still occupies the
	// branch level above the leaves.
	if height == 0 {
		height = 1
	}
	return b, height + 1, nil
}

// FromYAML builds a catalog from a YAML (or JSON) mapping document,
// preserving key order. Scalar values are raw type names; nested mappings
// descend a level.
func FromYAML(src []byte, d dialect.Dialect) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &Error{Kind: KindBadLiteral, Detail: "invalid YAML", Err: err}
	}
	if len(doc.Content) == 0 {
		return New(d), nil
	}

	lit, err := literalFromNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return FromLiteral(lit, d)
}

func literalFromNode(node *yaml.Node) (Literal, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &Error{
			Kind:   KindBadLiteral,
			Detail: fmt.Sprintf("line %d: expected a mapping", node.Line),
		}
	}

	lit := make(Literal, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &Error{
				Kind:   KindBadLiteral,
				Detail: fmt.Sprintf("line %d: non-scalar mapping key", key.Line),
			}
		}

		switch value.Kind {
		case yaml.ScalarNode:
			lit = append(lit, Field{Name: key.Value, Value: value.Value})
		case yaml.MappingNode:
			nested, err := literalFromNode(value)
			if err != nil {
				return nil, err
			}
			lit = append(lit, Field{Name: key.Value, Value: nested})
		default:
			return nil, &Error{
				Kind:   KindBadLiteral,
				Detail: fmt.Sprintf("line %d: %s must map to a type name or a nested mapping", value.Line, key.Value),
			}
		}
	}
	return lit, nil
}
