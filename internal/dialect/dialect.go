// Package dialect defines the closed set of SQL dialects whose identifier
// rules the catalog understands.
//
// A dialect is selected once per catalog instance and applied uniformly to
// every identifier the catalog stores or receives, so construction-time and
// query-time normalization always agree.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect identifies one supported SQL dialect.
type Dialect int

const (
	// ANSI applies the default rules: double-quoted identifiers are
	// preserved verbatim, unquoted identifiers fold to lower case.
	ANSI Dialect = iota
	// Postgres matches ANSI identifier handling.
	Postgres
	// MySQL treats back-tick delimited text as quoted, equivalent to
	// double quotes.
	MySQL
	// SQLite accepts double quotes, back-ticks, and square brackets as
	// identifier delimiters.
	SQLite
	// Snowflake folds unquoted identifiers to upper case.
	Snowflake
	// BigQuery treats back-ticks as identifier delimiters and compares
	// unquoted identifiers case-insensitively via lower-case folding.
	BigQuery
)

var names = map[Dialect]string{
	ANSI:      "ansi",
	Postgres:  "postgres",
	MySQL:     "mysql",
	SQLite:    "sqlite",
	Snowflake: "snowflake",
	BigQuery:  "bigquery",
}

// String returns the canonical lower-case dialect name.
func (d Dialect) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// Parse resolves a dialect name from configuration. The empty string maps
// to ANSI.
func Parse(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ansi":
		return ANSI, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "snowflake":
		return Snowflake, nil
	case "bigquery":
		return BigQuery, nil
	default:
		return ANSI, fmt.Errorf("unsupported dialect %q", name)
	}
}

// Fold describes how a dialect case-folds unquoted identifiers.
type Fold int

const (
	// FoldLower lower-cases ASCII letters (the default SQL rule).
	FoldLower Fold = iota
	// FoldUpper upper-cases ASCII letters.
	FoldUpper
)

// Rule captures the identifier delimiters and folding behavior of a dialect.
type Rule struct {
	// Fold is applied to unquoted identifiers.
	Fold Fold
	// Backticks reports whether back-tick delimited text is treated as a
	// quoted identifier, equivalent to double quotes.
	Backticks bool
	// Brackets reports whether [bracketed] text is treated as a quoted
	// identifier.
	Brackets bool
}

// Rule returns the identifier rule for the dialect.
func (d Dialect) Rule() Rule {
	switch d {
	case MySQL:
		return Rule{Fold: FoldLower, Backticks: true}
	case SQLite:
		return Rule{Fold: FoldLower, Backticks: true, Brackets: true}
	case Snowflake:
		return Rule{Fold: FoldUpper}
	case BigQuery:
		return Rule{Fold: FoldLower, Backticks: true}
	default:
		return Rule{Fold: FoldLower}
	}
}

// Normalize returns the stored form of an identifier. Quoted identifiers
// are preserved byte for byte (delimiters are stripped by the reference
// parser before this point); unquoted identifiers are case-folded per the
// dialect. Folding is restricted to ASCII letters.
func (d Dialect) Normalize(name string, quoted bool) string {
	if quoted {
		return name
	}
	if d.Rule().Fold == FoldUpper {
		return foldASCII(name, true)
	}
	return foldASCII(name, false)
}

func foldASCII(s string, upper bool) string {
	var b strings.Builder
	changed := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !upper && c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case upper && c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		default:
			if !changed {
				continue
			}
			b.WriteByte(c)
			continue
		}
		if !changed {
			b.WriteString(s[:i])
			changed = true
		}
		b.WriteByte(c)
	}
	if !changed {
		return s
	}
	return b.String()
}
