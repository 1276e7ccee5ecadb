package catalog

import (
	"fmt"

	"github.com/polyquery/polyquery/internal/dialect"
	"github.com/polyquery/polyquery/internal/ident"
)

// ToReference converts the closed set of accepted reference inputs into a
// structured reference. Accepted variants: dotted text (quote-aware, per
// dialect), an ident.Reference, a single ident.Identifier, or a pre-split
// []string whose elements are individual identifiers in source form.
//
// Every public catalog operation funnels its reference arguments through
// this one conversion point so textual and pre-structured input normalize
// identically.
func ToReference(v any, d dialect.Dialect) (ident.Reference, error) {
	switch ref := v.(type) {
	case string:
		parsed, err := ident.Parse(ref, d)
		if err != nil {
			return nil, &Error{Kind: KindBadReference, Err: err}
		}
		return checkLength(parsed)
	case ident.Reference:
		out := make(ident.Reference, len(ref))
		copy(out, ref)
		return checkLength(out)
	case ident.Identifier:
		return ident.Reference{ref}, nil
	case []string:
		out := make(ident.Reference, 0, len(ref))
		for _, part := range ref {
			id, err := ident.ParseOne(part, d)
			if err != nil {
				return nil, &Error{Kind: KindBadReference, Err: err}
			}
			out = append(out, id)
		}
		return checkLength(out)
	default:
		return nil, &Error{
			Kind:   KindBadReference,
			Detail: fmt.Sprintf("unsupported reference input %T", v),
		}
	}
}

func checkLength(r ident.Reference) (ident.Reference, error) {
	if len(r) == 0 {
		return nil, &Error{Kind: KindBadReference, Detail: "reference has no parts"}
	}
	if len(r) > 3 {
		return nil, &Error{
			Kind:      KindBadReference,
			Reference: r.String(),
			Detail:    "more than three qualifiers",
		}
	}
	return r, nil
}
