package types

import "sync"

// Descriptor holds a column type either as the raw text it was registered
// with or as an already-structured semantic type. Raw text is parsed on
// first access and memoized; the memoization is guarded so concurrent
// readers of one catalog never race.
type Descriptor struct {
	raw      string
	once     sync.Once
	sem      SemanticType
	err      error
	resolved bool
}

// NewDescriptor wraps a raw textual type name for lazy parsing.
func NewDescriptor(raw string) *Descriptor {
	return &Descriptor{raw: raw}
}

// DescriptorOf wraps an already-structured semantic type.
func DescriptorOf(sem SemanticType) *Descriptor {
	return &Descriptor{raw: sem.String(), sem: sem, resolved: true}
}

// Raw returns the textual form of the type: the registered text, or the
// canonical rendering for pre-structured types.
func (d *Descriptor) Raw() string {
	return d.raw
}

// Resolve returns the structured semantic type, parsing the raw text on
// first call.
func (d *Descriptor) Resolve() (SemanticType, error) {
	if d.resolved {
		return d.sem, nil
	}
	d.once.Do(func() {
		d.sem, d.err = Parse(d.raw)
	})
	return d.sem, d.err
}
