package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// typeExpr is the participle grammar for textual type descriptors such as
// "uint64", "varchar(255)", "double precision", or "text[]".
//
//nolint:govet // Participle struct tags are DSL, not reflect tags
type typeExpr struct {
	Names []string `parser:"@Ident+"`
	Args  []int    `parser:"( '(' @Number ( ',' @Number )* ')' )?"`
	Array bool     `parser:"( @'[' ']' )?"`
}

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),\[\]]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
)

// Parse converts a raw textual type name into a structured semantic type.
// Unrecognized names are preserved as CategoryCustom rather than rejected,
// since dialects carry open-ended type vocabularies.
func Parse(raw string) (SemanticType, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SemanticType{}, fmt.Errorf("empty type descriptor")
	}

	expr, err := typeParser.ParseString("", trimmed)
	if err != nil {
		return SemanticType{}, fmt.Errorf("parse type %q: %w", raw, err)
	}

	st := mapType(expr.Names, expr.Args, trimmed)
	if expr.Array {
		element := st
		st = SemanticType{Category: CategoryArray, ElementType: &element}
	}
	return st, nil
}

func mapType(names []string, args []int, raw string) SemanticType {
	base := strings.ToUpper(strings.Join(names, " "))

	arg := func(i int) int {
		if i < len(args) {
			return args[i]
		}
		return 0
	}

	switch base {
	case "INT", "INTEGER", "INT4", "MEDIUMINT":
		return SemanticType{Category: CategoryInteger}
	case "BIGINT", "INT8":
		return SemanticType{Category: CategoryBigInteger}
	case "SMALLINT", "INT2":
		return SemanticType{Category: CategorySmallInteger}
	case "TINYINT":
		return SemanticType{Category: CategoryTinyInteger}
	case "UINT", "UINT32", "INT UNSIGNED", "INTEGER UNSIGNED":
		return SemanticType{Category: CategoryUnsignedInteger}
	case "UINT64", "BIGINT UNSIGNED":
		return SemanticType{Category: CategoryUnsignedBigInteger}
	case "DECIMAL", "NUMERIC":
		return SemanticType{Category: CategoryDecimal, Precision: arg(0), Scale: arg(1)}
	case "REAL", "FLOAT", "FLOAT4":
		return SemanticType{Category: CategoryFloat}
	case "DOUBLE", "DOUBLE PRECISION", "FLOAT8":
		return SemanticType{Category: CategoryDouble}
	case "TEXT", "STRING", "CLOB", "LONGTEXT", "MEDIUMTEXT":
		return SemanticType{Category: CategoryText}
	case "CHAR", "CHARACTER", "BPCHAR":
		return SemanticType{Category: CategoryChar, MaxLength: arg(0)}
	case "VARCHAR", "CHARACTER VARYING", "NVARCHAR", "VARCHAR2":
		return SemanticType{Category: CategoryVarchar, MaxLength: arg(0)}
	case "BLOB", "BYTEA", "BINARY", "VARBINARY", "LONGBLOB":
		return SemanticType{Category: CategoryBlob}
	case "TIMESTAMP", "DATETIME":
		return SemanticType{Category: CategoryTimestamp}
	case "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE":
		return SemanticType{Category: CategoryTimestampTZ}
	case "DATE":
		return SemanticType{Category: CategoryDate}
	case "TIME", "TIME WITH TIME ZONE", "TIME WITHOUT TIME ZONE":
		return SemanticType{Category: CategoryTime}
	case "INTERVAL":
		return SemanticType{Category: CategoryInterval}
	case "BOOL", "BOOLEAN":
		return SemanticType{Category: CategoryBoolean}
	case "UUID":
		return SemanticType{Category: CategoryUUID}
	case "JSON":
		return SemanticType{Category: CategoryJSON}
	case "JSONB":
		return SemanticType{Category: CategoryJSONB}
	default:
		return SemanticType{Category: CategoryCustom, CustomName: raw}
	}
}

func formatParams(name string, args ...int) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(a))
	}
	b.WriteByte(')')
	return b.String()
}
