// Package duckframe provides a lazy frame backed by a DuckDB relation.
// The relation holds a SQL query and a database handle; nothing is read
// from the database until the frame is collected.
package duckframe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// Relation is a lazy frame over a DuckDB query. The schema is resolved at
// construction time with a zero-row probe; row contents and row count stay
// unknown until Collect.
type Relation struct {
	db     *sql.DB
	query  string
	schema *arrow.Schema
}

var _ frame.Frame = (*Relation)(nil)
var _ frame.Header = (*Relation)(nil)

// Open opens a DuckDB database. Use ":memory:" (or the empty string) for
// an in-memory database.
func Open(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	return db, nil
}

// New builds a lazy relation over the given query. The query is probed
// with LIMIT 0 to resolve the schema; it is not otherwise executed.
func New(ctx context.Context, db *sql.DB, query string) (*Relation, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	query = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	probe := fmt.Sprintf("SELECT * FROM (%s) AS __tabular_probe LIMIT 0", query)
	rows, err := db.QueryContext(ctx, probe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve relation schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(types))
	for i, ct := range types {
		fields[i] = arrow.Field{
			Name:     ct.Name(),
			Type:     arrowTypeFor(ct.DatabaseTypeName()),
			Nullable: true,
		}
	}

	return &Relation{
		db:     db,
		query:  query,
		schema: arrow.NewSchema(fields, nil),
	}, nil
}

// Schema returns the relation's resolved Arrow schema.
func (r *Relation) Schema() *arrow.Schema { return r.schema }

// Lazy always reports true: a relation's contents are never materialized
// until Collect.
func (r *Relation) Lazy() bool { return true }

// NumRows reports unknown; counting would require running the query.
func (r *Relation) NumRows() (int64, bool) { return 0, false }

// Backend names the duckdb backend.
func (r *Relation) Backend() string { return "duckdb" }

// Query returns the SQL this relation computes.
func (r *Relation) Query() string { return r.query }

// Head derives a relation limited to the first n rows. The schema is
// shared; the database is untouched.
func (r *Relation) Head(n int64) frame.Frame {
	if n < 0 {
		n = 0
	}
	return &Relation{
		db:     r.db,
		query:  fmt.Sprintf("SELECT * FROM (%s) AS __tabular_head LIMIT %d", r.query, n),
		schema: r.schema,
	}
}

// Plan returns DuckDB's EXPLAIN output for the query.
func (r *Relation) Plan(ctx context.Context) (string, error) {
	rows, err := r.db.QueryContext(ctx, "EXPLAIN "+r.query)
	if err != nil {
		return "", fmt.Errorf("failed to explain query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				continue
			}
			if bs, ok := v.([]byte); ok {
				v = string(bs)
			}
			parts = append(parts, fmt.Sprintf("%v", v))
		}
		b.WriteString(strings.Join(parts, "\n"))
		b.WriteString("\n")
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Collect runs the query and materializes the result into a single Arrow
// record shaped by the relation's schema.
func (r *Relation) Collect(ctx context.Context) (arrow.Record, error) {
	rows, err := r.db.QueryContext(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("failed to collect relation: %w", err)
	}
	defer func() { _ = rows.Close() }()

	bld := array.NewRecordBuilder(memory.DefaultAllocator, r.schema)
	defer bld.Release()

	n := r.schema.NumFields()
	values := make([]any, n)
	ptrs := make([]any, n)
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if err := appendScanned(bld.Field(i), r.schema.Field(i).Type, v); err != nil {
				return nil, fmt.Errorf("column %q: %w", r.schema.Field(i).Name, err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bld.NewRecord(), nil
}

// arrowTypeFor maps a DuckDB column type name to the Arrow type used for
// the materialized record. Types with no natural mapping come back as text.
func arrowTypeFor(dbType string) arrow.DataType {
	t := strings.ToUpper(dbType)
	switch {
	case t == "BOOLEAN":
		return arrow.FixedWidthTypes.Boolean
	case t == "DOUBLE" || t == "FLOAT" || t == "REAL" || strings.HasPrefix(t, "DECIMAL"):
		return arrow.PrimitiveTypes.Float64
	case t == "DATE":
		return arrow.FixedWidthTypes.Date32
	case strings.HasPrefix(t, "TIMESTAMP"):
		return arrow.FixedWidthTypes.Timestamp_us
	case strings.HasPrefix(t, "TIME"):
		return arrow.FixedWidthTypes.Time64us
	case strings.Contains(t, "INT"):
		return arrow.PrimitiveTypes.Int64
	default:
		return arrow.BinaryTypes.String
	}
}

// appendScanned copies one database/sql value into an Arrow builder,
// coercing across the handful of representations drivers use.
func appendScanned(b array.Builder, dt arrow.DataType, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	if bs, ok := v.([]byte); ok {
		v = string(bs)
	}

	switch bld := b.(type) {
	case *array.Int64Builder:
		switch t := v.(type) {
		case int64:
			bld.Append(t)
		case int32:
			bld.Append(int64(t))
		case int:
			bld.Append(int64(t))
		case uint64:
			bld.Append(int64(t))
		case float64:
			bld.Append(int64(t))
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.Float64Builder:
		switch t := v.(type) {
		case float64:
			bld.Append(t)
		case float32:
			bld.Append(float64(t))
		case int64:
			bld.Append(float64(t))
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.BooleanBuilder:
		switch t := v.(type) {
		case bool:
			bld.Append(t)
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.Date32Builder:
		switch t := v.(type) {
		case time.Time:
			bld.Append(arrow.Date32FromTime(t))
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.TimestampBuilder:
		switch t := v.(type) {
		case time.Time:
			ts, err := arrow.TimestampFromTime(t, arrow.Microsecond)
			if err != nil {
				return err
			}
			bld.Append(ts)
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.Time64Builder:
		switch t := v.(type) {
		case time.Time:
			midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			bld.Append(arrow.Time64(t.Sub(midnight) / time.Microsecond))
		default:
			return bld.AppendValueFromString(fmt.Sprintf("%v", t))
		}
	case *array.StringBuilder:
		switch t := v.(type) {
		case string:
			bld.Append(t)
		case time.Time:
			bld.Append(t.Format(time.RFC3339Nano))
		default:
			bld.Append(fmt.Sprintf("%v", t))
		}
	default:
		return b.AppendValueFromString(fmt.Sprintf("%v", v))
	}
	return nil
}
