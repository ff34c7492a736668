// Package frame normalizes concrete tabular backends behind a single Frame
// interface. An eager frame wraps an in-memory Arrow record; lazy frames
// (e.g. a DuckDB relation) defer computation until Collect is called.
//
// Frames are immutable after construction. Operations that logically
// transform a frame always build a new one.
package frame

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// IndexColumn is the reserved name of the hidden row-id column. When a
// frame carries it, row selection resolves against the stored ids instead
// of physical positions, so selections survive prior reordering.
const IndexColumn = "__tabular_row_id__"

// Frame is one tabular value, eager or lazy.
type Frame interface {
	// Schema returns the Arrow schema of the value. Available without
	// materializing, even for lazy frames.
	Schema() *arrow.Schema

	// Lazy reports whether the contents are not yet computed.
	Lazy() bool

	// Collect materializes the value into a single Arrow record. Eager
	// frames return their record directly.
	Collect(ctx context.Context) (arrow.Record, error)

	// NumRows returns the row count when it is known without
	// materializing. Lazy frames report false.
	NumRows() (int64, bool)

	// Plan describes how a lazy value would be computed. Eager frames
	// return the empty string.
	Plan(ctx context.Context) (string, error)

	// Backend names the concrete backend, e.g. "arrow" or "duckdb".
	Backend() string
}

// Header is implemented by lazy frames that can limit themselves to their
// first n rows without materializing the full value. Renderers use it to
// build cheap previews.
type Header interface {
	Head(n int64) Frame
}

// eager is a Frame over a fully materialized Arrow record.
type eager struct {
	rec arrow.Record
}

// FromRecord wraps an Arrow record as an eager Frame. The record is
// retained for the lifetime of the frame.
func FromRecord(rec arrow.Record) Frame {
	rec.Retain()
	return &eager{rec: rec}
}

// FromTable flattens an Arrow table into a single-record eager Frame.
func FromTable(tbl arrow.Table) (Frame, error) {
	if tbl.NumRows() == 0 {
		return FromRecord(EmptyRecord(tbl.Schema())), nil
	}
	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()
	if !tr.Next() {
		if err := tr.Err(); err != nil {
			return nil, fmt.Errorf("failed to read table: %w", err)
		}
		return FromRecord(EmptyRecord(tbl.Schema())), nil
	}
	return FromRecord(tr.Record()), nil
}

// FromNative wraps a supported native tabular value. It reports false for
// values no backend understands, mirroring the behavior of the formatter
// registry which only intercepts types it can serve.
func FromNative(v any) (Frame, bool) {
	switch t := v.(type) {
	case Frame:
		return t, true
	case arrow.Record:
		return FromRecord(t), true
	case arrow.Table:
		f, err := FromTable(t)
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

func (e *eager) Schema() *arrow.Schema { return e.rec.Schema() }

func (e *eager) Lazy() bool { return false }

func (e *eager) Collect(context.Context) (arrow.Record, error) { return e.rec, nil }

func (e *eager) NumRows() (int64, bool) { return e.rec.NumRows(), true }

func (e *eager) Plan(context.Context) (string, error) { return "", nil }

func (e *eager) Backend() string { return "arrow" }

// EmptyRecord builds a zero-row record with the given schema.
func EmptyRecord(schema *arrow.Schema) arrow.Record {
	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()
	return bld.NewRecord()
}

// ColumnIndex resolves a column name to its field index, or -1 when the
// schema has no such field.
func ColumnIndex(schema *arrow.Schema, name string) int {
	indices := schema.FieldIndices(name)
	if len(indices) == 0 {
		return -1
	}
	return indices[0]
}

// HasColumn reports whether the schema carries the named field.
func HasColumn(schema *arrow.Schema, name string) bool {
	return ColumnIndex(schema, name) >= 0
}
