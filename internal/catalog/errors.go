package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes the failure modes of catalog operations. All catalog
// failures share the *Error type; callers branch on Kind via errors.As or
// the Is* helpers.
type Kind int

const (
	// KindNotFound means no table exists under the given reference, in
	// either the exact or the wildcard matching regime.
	KindNotFound Kind = iota
	// KindAmbiguous means a partially-qualified reference matched more
	// than one concrete table.
	KindAmbiguous
	// KindUnknownColumn means the table resolved but the requested
	// column is absent from its mapping.
	KindUnknownColumn
	// KindDepthMismatch means a table was added with a qualifier count
	// incompatible with the catalog's established depth.
	KindDepthMismatch
	// KindBadReference means the input could not be converted into a
	// well-formed reference.
	KindBadReference
	// KindBadLiteral means a literal schema structure was malformed.
	KindBadLiteral
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAmbiguous:
		return "ambiguous"
	case KindUnknownColumn:
		return "unknown column"
	case KindDepthMismatch:
		return "depth mismatch"
	case KindBadReference:
		return "bad reference"
	case KindBadLiteral:
		return "bad literal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single failure family for catalog operations.
type Error struct {
	Kind Kind
	// Reference is the display form of the offending reference.
	Reference string
	// Column is set for KindUnknownColumn.
	Column string
	// Candidates lists the matching qualified tables for KindAmbiguous.
	Candidates []string
	// Detail carries extra context for construction errors.
	Detail string
	// Err is an optional wrapped cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("table %s not found in catalog", e.Reference)
	case KindAmbiguous:
		return fmt.Sprintf("reference %s is ambiguous: matches %s",
			e.Reference, strings.Join(e.Candidates, ", "))
	case KindUnknownColumn:
		return fmt.Sprintf("column %s does not exist in table %s", e.Column, e.Reference)
	case KindDepthMismatch:
		return fmt.Sprintf("cannot add table %s: %s", e.Reference, e.Detail)
	case KindBadReference:
		if e.Err != nil {
			return fmt.Sprintf("invalid reference: %v", e.Err)
		}
		return fmt.Sprintf("invalid reference %s: %s", e.Reference, e.Detail)
	case KindBadLiteral:
		return fmt.Sprintf("invalid schema literal: %s", e.Detail)
	default:
		return fmt.Sprintf("catalog error %s", e.Kind)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a catalog not-found failure.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsAmbiguous reports whether err is a catalog ambiguity failure.
func IsAmbiguous(err error) bool { return hasKind(err, KindAmbiguous) }

// IsUnknownColumn reports whether err is an unknown-column failure.
func IsUnknownColumn(err error) bool { return hasKind(err, KindUnknownColumn) }

func hasKind(err error, kind Kind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == kind
}
