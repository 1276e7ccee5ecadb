// Package types provides dialect-agnostic column type descriptors and the
// parser that turns textual type names into them.
package types

// Category represents the semantic meaning of a column type, independent
// of any SQL dialect.
type Category int

const (
	// CategoryUnknown represents an unrecognized or unspecified type.
	CategoryUnknown Category = iota

	// CategoryInteger represents a 32-bit signed integer.
	CategoryInteger
	// CategoryBigInteger represents a 64-bit signed integer.
	CategoryBigInteger
	// CategorySmallInteger represents a 16-bit signed integer.
	CategorySmallInteger
	// CategoryTinyInteger represents an 8-bit signed integer.
	CategoryTinyInteger
	// CategoryUnsignedInteger represents a 32-bit unsigned integer.
	CategoryUnsignedInteger
	// CategoryUnsignedBigInteger represents a 64-bit unsigned integer.
	CategoryUnsignedBigInteger
	// CategoryDecimal represents an exact decimal with precision/scale.
	CategoryDecimal
	// CategoryFloat represents a 32-bit IEEE 754 float.
	CategoryFloat
	// CategoryDouble represents a 64-bit IEEE 754 float.
	CategoryDouble

	// CategoryText represents variable-length text.
	CategoryText
	// CategoryChar represents a fixed-length character type.
	CategoryChar
	// CategoryVarchar represents a bounded variable-length string.
	CategoryVarchar
	// CategoryBlob represents binary data.
	CategoryBlob

	// CategoryTimestamp represents a date and time.
	CategoryTimestamp
	// CategoryTimestampTZ represents a timestamp with timezone.
	CategoryTimestampTZ
	// CategoryDate represents a date only.
	CategoryDate
	// CategoryTime represents a time only.
	CategoryTime
	// CategoryInterval represents a time duration.
	CategoryInterval

	// CategoryBoolean represents a boolean type.
	CategoryBoolean
	// CategoryUUID represents a UUID type.
	CategoryUUID
	// CategoryJSON represents a JSON type.
	CategoryJSON
	// CategoryJSONB represents binary JSON.
	CategoryJSONB
	// CategoryArray represents an array of another type.
	CategoryArray
	// CategoryCustom represents a user-defined type kept by name.
	CategoryCustom
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryInteger:
		return "integer"
	case CategoryBigInteger:
		return "biginteger"
	case CategorySmallInteger:
		return "smallinteger"
	case CategoryTinyInteger:
		return "tinyinteger"
	case CategoryUnsignedInteger:
		return "uinteger"
	case CategoryUnsignedBigInteger:
		return "ubiginteger"
	case CategoryDecimal:
		return "decimal"
	case CategoryFloat:
		return "float"
	case CategoryDouble:
		return "double"
	case CategoryText:
		return "text"
	case CategoryChar:
		return "char"
	case CategoryVarchar:
		return "varchar"
	case CategoryBlob:
		return "blob"
	case CategoryTimestamp:
		return "timestamp"
	case CategoryTimestampTZ:
		return "timestamptz"
	case CategoryDate:
		return "date"
	case CategoryTime:
		return "time"
	case CategoryInterval:
		return "interval"
	case CategoryBoolean:
		return "boolean"
	case CategoryUUID:
		return "uuid"
	case CategoryJSON:
		return "json"
	case CategoryJSONB:
		return "jsonb"
	case CategoryArray:
		return "array"
	case CategoryCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// SemanticType is a structured column type descriptor: a category tag plus
// the parameters the category carries.
type SemanticType struct {
	Category Category

	// Precision is the total number of digits for decimal types.
	Precision int

	// Scale is the number of digits after the decimal point. Zero covers
	// both an explicit scale of 0 and an omitted scale; "decimal(6,0)"
	// and "decimal(6)" parse to the same value and render as the latter.
	Scale int

	// MaxLength is the maximum length for bounded string types
	// (0 = unspecified).
	MaxLength int

	// ElementType is the element type for CategoryArray.
	ElementType *SemanticType

	// CustomName preserves the source spelling for CategoryCustom.
	CustomName string
}

// IsNumeric reports whether this is a numeric type.
func (s SemanticType) IsNumeric() bool {
	switch s.Category {
	case CategoryInteger, CategoryBigInteger, CategorySmallInteger, CategoryTinyInteger,
		CategoryUnsignedInteger, CategoryUnsignedBigInteger,
		CategoryDecimal, CategoryFloat, CategoryDouble:
		return true
	default:
		return false
	}
}

// IsText reports whether this is a text type.
func (s SemanticType) IsText() bool {
	switch s.Category {
	case CategoryText, CategoryChar, CategoryVarchar:
		return true
	default:
		return false
	}
}

// String renders the type in a canonical textual form.
func (s SemanticType) String() string {
	switch s.Category {
	case CategoryVarchar, CategoryChar:
		if s.MaxLength > 0 {
			return formatParams(s.Category.String(), s.MaxLength)
		}
		return s.Category.String()
	case CategoryDecimal:
		if s.Precision > 0 && s.Scale > 0 {
			return formatParams(s.Category.String(), s.Precision, s.Scale)
		}
		if s.Precision > 0 {
			return formatParams(s.Category.String(), s.Precision)
		}
		return s.Category.String()
	case CategoryArray:
		if s.ElementType != nil {
			return s.ElementType.String() + "[]"
		}
		return s.Category.String()
	case CategoryCustom:
		return s.CustomName
	default:
		return s.Category.String()
	}
}
