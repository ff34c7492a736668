package table

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// SortValues returns a new Manager sorted by the given column. The sort is
// stable, and null values order last in both directions.
func (m *Manager) SortValues(ctx context.Context, column string, descending bool) (*Manager, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}

	idx := frame.ColumnIndex(rec.Schema(), column)
	if idx < 0 {
		return nil, &ColumnNotFoundError{Column: column}
	}
	col := rec.Column(idx)
	kind := frame.KindOf(col.DataType())

	order := make([]int, rec.NumRows())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		na, nb := col.IsNull(ia), col.IsNull(ib)
		if na || nb {
			// Nulls last regardless of direction.
			return !na && nb
		}
		if descending {
			return lessAt(kind, col, ib, ia)
		}
		return lessAt(kind, col, ia, ib)
	})

	out, err := frame.TakeIndices(rec, order)
	if err != nil {
		return nil, err
	}
	return m.withFrame(frame.FromRecord(out)), nil
}

// lessAt compares the non-null cells at rows a and b of col in the
// column's natural order. NaN floats order after every real number.
func lessAt(kind frame.Kind, col arrow.Array, a, b int) bool {
	switch kind {
	case frame.KindBoolean:
		va, _ := frame.CellValue(col, a).(bool)
		vb, _ := frame.CellValue(col, b).(bool)
		return !va && vb
	case frame.KindInteger:
		va, _ := frame.CellValue(col, a).(int64)
		vb, _ := frame.CellValue(col, b).(int64)
		return va < vb
	case frame.KindFloat:
		va, _ := frame.CellValue(col, a).(float64)
		vb, _ := frame.CellValue(col, b).(float64)
		if math.IsNaN(va) {
			return false
		}
		if math.IsNaN(vb) {
			return true
		}
		return va < vb
	case frame.KindDate, frame.KindTime, frame.KindDatetime:
		va, aok := frame.CellValue(col, a).(time.Time)
		vb, bok := frame.CellValue(col, b).(time.Time)
		if !aok || !bok {
			return strings.Compare(col.ValueStr(a), col.ValueStr(b)) < 0
		}
		return va.Before(vb)
	case frame.KindDuration:
		va, _ := frame.CellValue(col, a).(time.Duration)
		vb, _ := frame.CellValue(col, b).(time.Duration)
		return va < vb
	default:
		return strings.Compare(col.ValueStr(a), col.ValueStr(b)) < 0
	}
}
