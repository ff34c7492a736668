package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// TakeIndices builds a new record containing the rows of rec at the given
// positions, in the given order. An empty index list yields a zero-row
// record with the same schema. Out-of-range indices are an error.
func TakeIndices(rec arrow.Record, indices []int) (arrow.Record, error) {
	n := int(rec.NumRows())
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("row index %d out of range [0, %d)", idx, n)
		}
	}

	bld := array.NewRecordBuilder(memory.DefaultAllocator, rec.Schema())
	defer bld.Release()

	for _, idx := range indices {
		for j := 0; j < int(rec.NumCols()); j++ {
			if err := AppendCell(bld.Field(j), rec.Column(j), idx); err != nil {
				return nil, fmt.Errorf("column %q: %w", rec.Schema().Field(j).Name, err)
			}
		}
	}
	return bld.NewRecord(), nil
}

// AppendCell copies the value at row i of col into the builder. Common
// scalar kinds are copied natively; everything else round-trips through
// the value's textual form, which Arrow builders parse back losslessly.
func AppendCell(b array.Builder, col arrow.Array, i int) error {
	if col.IsNull(i) {
		b.AppendNull()
		return nil
	}
	switch arr := col.(type) {
	case *array.String:
		b.(*array.StringBuilder).Append(arr.Value(i))
	case *array.Boolean:
		b.(*array.BooleanBuilder).Append(arr.Value(i))
	case *array.Int64:
		b.(*array.Int64Builder).Append(arr.Value(i))
	case *array.Int32:
		b.(*array.Int32Builder).Append(arr.Value(i))
	case *array.Float64:
		b.(*array.Float64Builder).Append(arr.Value(i))
	case *array.Timestamp:
		b.(*array.TimestampBuilder).Append(arr.Value(i))
	case *array.Date32:
		b.(*array.Date32Builder).Append(arr.Value(i))
	case *array.Duration:
		b.(*array.DurationBuilder).Append(arr.Value(i))
	default:
		return b.AppendValueFromString(col.ValueStr(i))
	}
	return nil
}

// Project builds a record containing only the named columns, in the given
// order. Unknown names are an error.
func Project(rec arrow.Record, columns []string) (arrow.Record, error) {
	schema := rec.Schema()
	fields := make([]arrow.Field, 0, len(columns))
	cols := make([]arrow.Array, 0, len(columns))
	for _, name := range columns {
		idx := ColumnIndex(schema, name)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
		fields = append(fields, schema.Field(idx))
		cols = append(cols, rec.Column(idx))
	}
	out := arrow.NewSchema(fields, nil)
	return array.NewRecord(out, cols, rec.NumRows()), nil
}

// Discard builds a record without the named columns. Names that do not
// exist are ignored rather than treated as errors.
func Discard(rec arrow.Record, columns []string) (arrow.Record, error) {
	drop := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		drop[name] = struct{}{}
	}
	keep := make([]string, 0, int(rec.NumCols()))
	for _, f := range rec.Schema().Fields() {
		if _, ok := drop[f.Name]; !ok {
			keep = append(keep, f.Name)
		}
	}
	return Project(rec, keep)
}
