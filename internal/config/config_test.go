package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/polyquery/polyquery/internal/dialect"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "polyquery.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.yaml", "orders.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("t:\n  x: int\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path := writeConfig(t, dir, `
dialect = "postgres"
schemas = ["*.yaml"]

[adapter]
driver = "postgres"
dsn = "postgres://localhost/app"
`)

	res, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if res.Plan.Dialect != dialect.Postgres {
		t.Errorf("Dialect = %v, want postgres", res.Plan.Dialect)
	}
	if res.Plan.Adapter.Driver != "postgres" || res.Plan.Adapter.DSN != "postgres://localhost/app" {
		t.Errorf("Adapter = %+v", res.Plan.Adapter)
	}

	want := []string{
		filepath.Join(dir, "orders.yaml"),
		filepath.Join(dir, "users.yaml"),
	}
	if diff := cmp.Diff(want, res.Plan.Schemas); diff != "" {
		t.Errorf("Schemas mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultsToANSI(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "s.yaml"), []byte("t:\n  x: int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, dir, `schemas = ["s.yaml"]`)

	res, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Plan.Dialect != dialect.ANSI {
		t.Errorf("Dialect = %v, want ansi", res.Plan.Dialect)
	}
}

func TestLoadUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "s.yaml"), []byte("t:\n  x: int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	body := `
schemas = ["s.yaml"]
dailect = "mysql"
`

	path := writeConfig(t, dir, body)
	res, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "dailect") {
		t.Errorf("Warnings = %v, want one naming dailect", res.Warnings)
	}

	if _, err := Load(path, LoadOptions{Strict: true}); err == nil || !strings.Contains(err.Error(), "dailect") {
		t.Errorf("strict Load err = %v, want unknown-key error", err)
	}
}

func TestLoadValidation(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", ``, "schemas patterns or an adapter"},
		{"bad dialect", `dialect = "oracle"` + "\n" + `schemas = ["s.yaml"]`, "unsupported dialect"},
		{"driver without dsn", "[adapter]\ndriver = \"sqlite\"\n", "adapter.dsn is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, dir, tc.body)
			_, err := Load(path, LoadOptions{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestLoadNoMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `schemas = ["missing/*.yaml"]`)

	_, err := Load(path, LoadOptions{})
	var nme NoMatchError
	if !errors.As(err, &nme) {
		t.Fatalf("err = %v, want NoMatchError", err)
	}
	if diff := cmp.Diff([]string{"missing/*.yaml"}, nme.Patterns); diff != "" {
		t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), LoadOptions{}); err == nil {
		t.Fatal("Load succeeded, want error")
	}
}
