package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	schema := `
db1:
  orders:
    id: uint64
    total: decimal(10,2)
db2:
  orders:
    id: uint64
  users:
    id: uint64
    name: varchar(255)
`
	if err := os.WriteFile(filepath.Join(dir, "schema.yaml"), []byte(schema), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := "dialect = \"ansi\"\nschemas = [\"schema.yaml\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "polyquery.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr strings.Builder
	full := append([]string{"-config", filepath.Join(dir, "polyquery.toml")}, args...)
	code := run(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunColumns(t *testing.T) {
	dir := writeWorkspace(t)

	code, stdout, stderr := runCLI(t, dir, "columns", "db2.users")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	want := []string{"id", "name"}
	got := strings.Fields(stdout)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunColumnsAmbiguous(t *testing.T) {
	dir := writeWorkspace(t)

	code, _, stderr := runCLI(t, dir, "columns", "orders")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "ambiguous") {
		t.Errorf("stderr = %q, want ambiguity report", stderr)
	}
}

func TestRunType(t *testing.T) {
	dir := writeWorkspace(t)

	code, stdout, stderr := runCLI(t, dir, "type", "db1.orders", "total")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "decimal(10,2)") {
		t.Errorf("stdout = %q, want decimal(10,2)", stdout)
	}
	if !strings.Contains(stdout, "range: -99999999.99 .. 99999999.99") {
		t.Errorf("stdout = %q, want decimal range line", stdout)
	}
}

func TestRunCheck(t *testing.T) {
	dir := writeWorkspace(t)

	code, stdout, stderr := runCLI(t, dir, "check")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "3 table(s), 5 column(s), depth 2, 2 warning(s)") {
		t.Errorf("stdout = %q, want summary line", stdout)
	}
	for _, warned := range []string{"db1.orders", "db2.orders"} {
		if !strings.Contains(stdout, "warning: "+warned+" needs qualifiers") {
			t.Errorf("stdout = %q, want ambiguity warning for %s", stdout, warned)
		}
	}
}

func TestRunDialectOverride(t *testing.T) {
	dir := writeWorkspace(t)

	// Snowflake folds unquoted identifiers upper, so the lowercase YAML
	// keys are stored upper-cased and match an upper-cased lookup.
	code, stdout, stderr := runCLI(t, dir, "-dialect", "snowflake", "columns", "DB2.USERS")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if got := strings.Fields(stdout); !cmp.Equal([]string{"ID", "NAME"}, got) {
		t.Errorf("columns output = %v, want [ID NAME]", got)
	}
}

func TestRunUsageErrors(t *testing.T) {
	dir := writeWorkspace(t)

	cases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"explain"}},
		{"columns arity", []string{"columns"}},
		{"type arity", []string{"type", "db1.orders"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, dir, tc.args...); code != 1 {
				t.Errorf("exit %d, want 1", code)
			}
		})
	}
}

func TestRunMissingConfig(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run(context.Background(),
		[]string{"-config", filepath.Join(t.TempDir(), "absent.toml"), "check"},
		&stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
}
