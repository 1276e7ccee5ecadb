// Package catalog implements the in-memory schema catalog and the
// depth-adaptive reference resolver used by every compilation stage.
//
// A catalog is a tree of named branches over column leaves with a fixed
// nesting depth of 1 (table-rooted), 2 (database-rooted), or 3
// (catalog-rooted). Partially-qualified table references are resolved
// against it, matching leading qualifiers wildcard-style when the
// reference is shallower than the tree.
package catalog

import "github.com/polyquery/polyquery/internal/types"

// Node is either a Leaf holding a column type or a Branch holding an
// ordered collection of named children. The two variants are the only
// implementations; consumers switch exhaustively.
type Node interface {
	node()
}

// Leaf is a column's type within the catalog tree.
type Leaf struct {
	Type *types.Descriptor
}

func (*Leaf) node() {}

// Branch is an ordered mapping from normalized name to child node.
// Iteration follows insertion order, which is what gives column
// enumeration its stable ordering.
type Branch struct {
	names    []string
	children map[string]Node
}

func (*Branch) node() {}

// NewBranch constructs an empty branch.
func NewBranch() *Branch {
	return &Branch{children: make(map[string]Node)}
}

// Get returns the child stored under name.
func (b *Branch) Get(name string) (Node, bool) {
	n, ok := b.children[name]
	return n, ok
}

// Set inserts or replaces the child stored under name. Replacement keeps
// the name's original position.
func (b *Branch) Set(name string, n Node) {
	if _, ok := b.children[name]; !ok {
		b.names = append(b.names, name)
	}
	b.children[name] = n
}

// Names returns the child names in insertion order.
func (b *Branch) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Len returns the number of children.
func (b *Branch) Len() int {
	return len(b.names)
}
