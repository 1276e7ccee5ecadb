// Package main implements the polyquery catalog CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/polyquery/polyquery/internal/adapter"
	"github.com/polyquery/polyquery/internal/catalog"
	"github.com/polyquery/polyquery/internal/cli"
	"github.com/polyquery/polyquery/internal/config"
	"github.com/polyquery/polyquery/internal/dialect"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/logging"
	"github.com/polyquery/polyquery/internal/schema/loader"
	"github.com/polyquery/polyquery/internal/types"
)

func main() {
	code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stdout, err.Error())
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	if len(opts.Args) == 0 {
		_, _ = fmt.Fprintln(stderr, "expected a command: columns, type, or check")
		return 1
	}

	logger := logging.New(logging.Options{
		Verbose: opts.Verbose,
		Writer:  stderr,
	})

	result, err := config.Load(opts.ConfigPath, config.LoadOptions{Strict: opts.StrictConfig})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	plan := result.Plan
	if opts.Dialect != "" {
		d, err := dialect.Parse(opts.Dialect)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err.Error())
			return 1
		}
		plan.Dialect = d
	}

	cat, err := buildCatalog(ctx, plan, logger)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	command, rest := opts.Args[0], opts.Args[1:]
	switch command {
	case "columns":
		return runColumns(cat, rest, stdout, stderr)
	case "type":
		return runType(cat, rest, stdout, stderr)
	case "check":
		return runCheck(cat, stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", command)
		return 1
	}
}

func buildCatalog(ctx context.Context, plan config.Plan, logger logging.Logger) (*catalog.Catalog, error) {
	cat, err := loader.Load(plan.Schemas, loader.Options{
		Dialect: plan.Dialect,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	if plan.Adapter.Driver != "" {
		a, err := adapter.New(plan.Adapter.Driver, adapter.Options{
			DSN:    plan.Adapter.DSN,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		if err := a.Introspect(ctx, cat); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func runColumns(cat *catalog.Catalog, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		_, _ = fmt.Fprintln(stderr, "usage: polyquery columns <table-reference>")
		return 1
	}
	names, err := cat.ColumnNames(args[0])
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(stdout, name)
	}
	return 0
}

func runType(cat *catalog.Catalog, args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		_, _ = fmt.Fprintln(stderr, "usage: polyquery type <table-reference> <column>")
		return 1
	}
	st, err := cat.ColumnType(args[0], args[1])
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	_, _ = fmt.Fprintln(stdout, st.String())
	if min, max, ok := types.DecimalBounds(st); ok {
		_, _ = fmt.Fprintf(stdout, "range: %s .. %s\n", min.String(), max.String())
	}
	return 0
}

// runCheck verifies that every registered table resolves under its fully
// qualified reference and reports tables whose bare name is ambiguous
// without further qualifiers.
func runCheck(cat *catalog.Catalog, stdout, stderr io.Writer) int {
	tables := cat.Tables()
	columns := 0
	warnings := 0

	for _, table := range tables {
		ref := exactReference(table)
		names, err := cat.ColumnNames(ref)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", ref, err)
			return 1
		}
		columns += len(names)

		bare := ident.Reference{ref[len(ref)-1]}
		if _, err := cat.ColumnNames(bare); catalog.IsAmbiguous(err) {
			_, _ = fmt.Fprintf(stdout, "warning: %s needs qualifiers: %v\n",
				strings.Join(table, "."), err)
			warnings++
		}
	}

	_, _ = fmt.Fprintf(stdout, "%d table(s), %d column(s), depth %d, %d warning(s)\n",
		len(tables), columns, cat.Depth(), warnings)
	return 0
}

func exactReference(parts []string) ident.Reference {
	ref := make(ident.Reference, len(parts))
	for i, part := range parts {
		ref[i] = ident.New(part, true)
	}
	return ref
}
