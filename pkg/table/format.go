package table

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// FormatMapping maps column names to export-time value transformers. The
// mapping is applied lazily when building an export, never to the wrapped
// value itself.
type FormatMapping map[string]func(any) any

// ApplyFormatting returns a new Manager whose frame has the mapped columns
// passed through their transformers. Mapped columns become string columns:
// formatting exists only on the export path, where everything is text.
// With no mapping the receiver itself is returned.
func (m *Manager) ApplyFormatting(ctx context.Context, mapping FormatMapping) (*Manager, error) {
	if len(mapping) == 0 {
		return m, nil
	}

	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	schema := rec.Schema()

	fields := make([]arrow.Field, schema.NumFields())
	for i, f := range schema.Fields() {
		if _, ok := mapping[f.Name]; ok {
			fields[i] = arrow.Field{Name: f.Name, Type: arrow.BinaryTypes.String, Nullable: true}
		} else {
			fields[i] = f
		}
	}
	out := arrow.NewSchema(fields, nil)

	bld := array.NewRecordBuilder(memory.DefaultAllocator, out)
	defer bld.Release()

	for i := 0; i < int(rec.NumRows()); i++ {
		for j, f := range schema.Fields() {
			col := rec.Column(j)
			fn, mapped := mapping[f.Name]
			if !mapped {
				if err := frame.AppendCell(bld.Field(j), col, i); err != nil {
					return nil, fmt.Errorf("column %q: %w", f.Name, err)
				}
				continue
			}
			v, err := applyMapped(fn, frame.Sanitize(frame.CellValue(col, i)))
			if err != nil {
				return nil, fmt.Errorf("format mapping for column %q: %w", f.Name, err)
			}
			sb := bld.Field(j).(*array.StringBuilder)
			if v == nil {
				sb.AppendNull()
			} else {
				sb.Append(fmt.Sprintf("%v", v))
			}
		}
	}

	return m.withFrame(frame.FromRecord(bld.NewRecord())), nil
}

// applyMapped runs one transformer, converting a panic from a caller's
// mapping function into an error instead of tearing the session down.
func applyMapped(fn func(any) any, v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mapping function panicked: %v", r)
		}
	}()
	return fn(v), nil
}
