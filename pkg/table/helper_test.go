package table

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/internal/testutil"
	"github.com/leapstack-labs/tabular/pkg/frame"
)

// sampleRecord builds a five-row record covering the common column kinds,
// with one null per column:
//
//	name    age   score  active
//	alice   30    1.5    true
//	bob     25    2.5    false
//	null    40    null   true
//	dave    null  4.5    null
//	erin    25    2.5    false
func sampleRecord(t *testing.T) arrow.Record {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
	}, nil)

	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()

	bld.Field(0).(*array.StringBuilder).AppendValues(
		[]string{"alice", "bob", "", "dave", "erin"},
		[]bool{true, true, false, true, true})
	bld.Field(1).(*array.Int64Builder).AppendValues(
		[]int64{30, 25, 40, 0, 25},
		[]bool{true, true, true, false, true})
	bld.Field(2).(*array.Float64Builder).AppendValues(
		[]float64{1.5, 2.5, 0, 4.5, 2.5},
		[]bool{true, true, false, true, true})
	bld.Field(3).(*array.BooleanBuilder).AppendValues(
		[]bool{true, false, true, false, false},
		[]bool{true, true, true, false, true})

	rec := bld.NewRecord()
	t.Cleanup(rec.Release)
	return rec
}

func sampleManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(frame.FromRecord(sampleRecord(t)),
		WithLogger(testutil.NewTestLogger(t)))
}

// indexedRecord builds a record carrying the reserved row-id column with
// the given ids, plus a name column in physical order a, b, c, ...
func indexedRecord(t *testing.T, ids []int64) arrow.Record {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: frame.IndexColumn, Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
	}, nil)

	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()

	names := make([]string, len(ids))
	for i := range ids {
		names[i] = string(rune('a' + i))
	}
	bld.Field(0).(*array.Int64Builder).AppendValues(ids, nil)
	bld.Field(1).(*array.StringBuilder).AppendValues(names, nil)

	rec := bld.NewRecord()
	t.Cleanup(rec.Release)
	return rec
}

// columnValues materializes the manager and extracts one column as Go
// values, nil for nulls.
func columnValues(t *testing.T, m *Manager, name string) []any {
	t.Helper()

	rec, err := m.Frame().Collect(context.Background())
	require.NoError(t, err)

	idx := frame.ColumnIndex(rec.Schema(), name)
	require.GreaterOrEqual(t, idx, 0, "column %q not found", name)

	col := rec.Column(idx)
	out := make([]any, col.Len())
	for i := range out {
		out[i] = frame.CellValue(col, i)
	}
	return out
}

// lazyStub is a Frame that reports itself lazy while serving a fixed
// record on Collect.
type lazyStub struct {
	rec arrow.Record
}

func (l *lazyStub) Schema() *arrow.Schema                       { return l.rec.Schema() }
func (l *lazyStub) Lazy() bool                                  { return true }
func (l *lazyStub) Collect(context.Context) (arrow.Record, error) { return l.rec, nil }
func (l *lazyStub) NumRows() (int64, bool)                      { return 0, false }
func (l *lazyStub) Plan(context.Context) (string, error)        { return "SCAN sample", nil }
func (l *lazyStub) Backend() string                             { return "stub" }
