package dialect

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		want Dialect
	}{
		{"", ANSI},
		{"ansi", ANSI},
		{"postgres", Postgres},
		{"postgresql", Postgres},
		{"MySQL", MySQL},
		{"sqlite3", SQLite},
		{"snowflake", Snowflake},
		{"bigquery", BigQuery},
	}
	for _, tc := range cases {
		got, err := Parse(tc.name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}

	if _, err := Parse("oracle"); err == nil {
		t.Error("Parse(oracle) succeeded, want error")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		dialect Dialect
		name    string
		quoted  bool
		want    string
	}{
		{ANSI, "Users", false, "users"},
		{ANSI, "Users", true, "Users"},
		{ANSI, "ORDER_ITEMS", false, "order_items"},
		{Snowflake, "users", false, "USERS"},
		{Snowflake, "Users", true, "Users"},
		{MySQL, "MiXeD", false, "mixed"},
		// Folding is ASCII-only; multibyte runes pass through.
		{ANSI, "Straße", false, "straße"},
	}
	for _, tc := range cases {
		got := tc.dialect.Normalize(tc.name, tc.quoted)
		if got != tc.want {
			t.Errorf("%s.Normalize(%q, %t) = %q, want %q",
				tc.dialect, tc.name, tc.quoted, got, tc.want)
		}
	}
}

func TestRule(t *testing.T) {
	if rule := MySQL.Rule(); !rule.Backticks {
		t.Error("MySQL rule should accept back-ticks")
	}
	if rule := SQLite.Rule(); !rule.Backticks || !rule.Brackets {
		t.Error("SQLite rule should accept back-ticks and brackets")
	}
	if rule := ANSI.Rule(); rule.Backticks || rule.Brackets {
		t.Error("ANSI rule should only accept double quotes")
	}
	if rule := Snowflake.Rule(); rule.Fold != FoldUpper {
		t.Error("Snowflake should fold upper")
	}
}
