package adapter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/polyquery/polyquery/internal/catalog"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/logging"
)

func init() {
	Register("sqlite", func(opts Options) (Adapter, error) {
		if opts.DSN == "" {
			return nil, fmt.Errorf("sqlite adapter requires a dsn")
		}
		db, err := sql.Open("sqlite", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return NewSQLite(db, opts.Logger), nil
	})
}

// SQLite introspects a SQLite database into a depth-1 (table-rooted)
// catalog.
type SQLite struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLite constructs the adapter over an open database handle.
func NewSQLite(db *sql.DB, logger logging.Logger) *SQLite {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SQLite{db: db, logger: logger}
}

// Name returns the adapter identifier.
func (s *SQLite) Name() string { return "sqlite" }

// Introspect lists user tables from sqlite_master and reads each table's
// columns in declaration order.
func (s *SQLite) Introspect(ctx context.Context, cat *catalog.Catalog) error {
	snapshot := uuid.NewString()

	names, err := s.tableNames(ctx)
	if err != nil {
		return err
	}

	columns := 0
	for _, name := range names {
		cols, err := s.tableColumns(ctx, name)
		if err != nil {
			return err
		}
		columns += len(cols)
		if err := cat.AddTable(ident.Reference{ident.New(name, true)}, cols); err != nil {
			return err
		}
	}

	s.logger.Info("introspected schema",
		"adapter", "sqlite", "snapshot", snapshot,
		"tables", len(names), "columns", columns)
	return nil
}

func (s *SQLite) tableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sqlite tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan sqlite table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sqlite tables: %w", err)
	}
	return names, nil
}

func (s *SQLite) tableColumns(ctx context.Context, table string) ([]catalog.Column, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := make([]catalog.Column, 0)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		if typ == "" {
			// Typeless SQLite columns carry blob affinity.
			typ = "blob"
		}
		cols = append(cols, catalog.Col(ident.New(name, true).String(), typ))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	return cols, nil
}
