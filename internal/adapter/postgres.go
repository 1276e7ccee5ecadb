package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polyquery/polyquery/internal/catalog"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/logging"
)

func init() {
	Register("postgres", func(opts Options) (Adapter, error) {
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres adapter requires a dsn")
		}
		return NewPostgres(&pgxSource{dsn: opts.DSN}, opts.Logger), nil
	})
}

// ColumnRow is one introspected column. Rows arrive ordered by schema,
// table, and ordinal position, so grouping consecutive rows reconstructs
// each table's column order.
type ColumnRow struct {
	Schema   string
	Table    string
	Column   string
	DataType string
}

// ColumnSource yields introspected column rows. The live implementation
// queries information_schema; tests substitute a fixture.
type ColumnSource interface {
	Columns(ctx context.Context) ([]ColumnRow, error)
}

// Postgres introspects a PostgreSQL database into a depth-2
// (database-rooted) catalog keyed by schema and table name.
type Postgres struct {
	source ColumnSource
	logger logging.Logger
}

// NewPostgres constructs the adapter over a column source.
func NewPostgres(source ColumnSource, logger logging.Logger) *Postgres {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Postgres{source: source, logger: logger}
}

// Name returns the adapter identifier.
func (p *Postgres) Name() string { return "postgres" }

// Introspect reads information_schema and registers every table. Schema,
// table, and column names are registered quoted so the server's exact
// spelling round-trips.
func (p *Postgres) Introspect(ctx context.Context, cat *catalog.Catalog) error {
	snapshot := uuid.NewString()

	rows, err := p.source.Columns(ctx)
	if err != nil {
		return fmt.Errorf("postgres introspection: %w", err)
	}

	tables := 0
	var ref ident.Reference
	var cols []catalog.Column
	flush := func() error {
		if ref == nil {
			return nil
		}
		tables++
		err := cat.AddTable(ref, cols)
		ref, cols = nil, nil
		return err
	}

	for _, row := range rows {
		next := ident.Reference{
			ident.New(row.Schema, true),
			ident.New(row.Table, true),
		}
		if ref == nil || next.String() != ref.String() {
			if err := flush(); err != nil {
				return err
			}
			ref = next
		}
		cols = append(cols, catalog.Col(ident.New(row.Column, true).String(), row.DataType))
	}
	if err := flush(); err != nil {
		return err
	}

	p.logger.Info("introspected schema",
		"adapter", "postgres", "snapshot", snapshot,
		"tables", tables, "columns", len(rows))
	return nil
}

const columnsQuery = `
SELECT c.table_schema,
       c.table_name,
       c.column_name,
       c.data_type,
       c.character_maximum_length,
       c.numeric_precision,
       c.numeric_scale
FROM information_schema.columns c
WHERE c.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY c.table_schema, c.table_name, c.ordinal_position`

// pgxSource reads information_schema.columns over a pgx connection opened
// per introspection run.
type pgxSource struct {
	dsn string
}

func (s *pgxSource) Columns(ctx context.Context) ([]ColumnRow, error) {
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	rows, err := conn.Query(ctx, columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer rows.Close()

	var out []ColumnRow
	for rows.Next() {
		var row ColumnRow
		var maxLength, precision, scale *int32
		if err := rows.Scan(&row.Schema, &row.Table, &row.Column,
			&row.DataType, &maxLength, &precision, &scale); err != nil {
			return nil, fmt.Errorf("scan information_schema row: %w", err)
		}
		row.DataType = formatDataType(row.DataType, maxLength, precision, scale)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read information_schema rows: %w", err)
	}
	return out, nil
}

// formatDataType re-attaches the length or precision modifiers that
// information_schema reports in separate columns.
func formatDataType(dataType string, maxLength, precision, scale *int32) string {
	switch dataType {
	case "character varying", "character", "varchar", "char":
		if maxLength != nil {
			return fmt.Sprintf("%s(%d)", dataType, *maxLength)
		}
	case "numeric", "decimal":
		if precision != nil && scale != nil {
			return fmt.Sprintf("%s(%d,%d)", dataType, *precision, *scale)
		}
		if precision != nil {
			return fmt.Sprintf("%s(%d)", dataType, *precision)
		}
	}
	return dataType
}
