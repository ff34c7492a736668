package frame

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// CellValue extracts the Go value at row i of an Arrow column. Null cells
// yield nil. Scalar kinds map to their natural Go types; everything else
// falls back to the column's textual representation.
func CellValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch arr := col.(type) {
	case *array.String:
		return arr.Value(i)
	case *array.LargeString:
		return arr.Value(i)
	case *array.Boolean:
		return arr.Value(i)
	case *array.Int8:
		return int64(arr.Value(i))
	case *array.Int16:
		return int64(arr.Value(i))
	case *array.Int32:
		return int64(arr.Value(i))
	case *array.Int64:
		return arr.Value(i)
	case *array.Uint8:
		return int64(arr.Value(i))
	case *array.Uint16:
		return int64(arr.Value(i))
	case *array.Uint32:
		return int64(arr.Value(i))
	case *array.Uint64:
		return int64(arr.Value(i))
	case *array.Float32:
		return float64(arr.Value(i))
	case *array.Float64:
		return arr.Value(i)
	case *array.Date32:
		return arr.Value(i).ToTime()
	case *array.Date64:
		return arr.Value(i).ToTime()
	case *array.Timestamp:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return arr.Value(i).ToTime(unit)
	case *array.Time32:
		unit := col.DataType().(*arrow.Time32Type).Unit
		return arr.Value(i).ToTime(unit)
	case *array.Time64:
		unit := col.DataType().(*arrow.Time64Type).Unit
		return arr.Value(i).ToTime(unit)
	case *array.Duration:
		unit := col.DataType().(*arrow.DurationType).Unit
		return time.Duration(arr.Value(i)) * unit.Multiplier()
	default:
		return col.ValueStr(i)
	}
}

// CellText returns the textual representation of the cell at row i, and
// the empty string for nulls.
func CellText(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return ""
	}
	return col.ValueStr(i)
}

// Sanitize converts a cell value into something safe to hand to a display
// layer: numbers and booleans stay native, temporal values stay time.Time,
// anything nested or exotic becomes text.
func Sanitize(v any) any {
	switch t := v.(type) {
	case nil, bool, int64, float64, string, time.Time:
		return v
	case time.Duration:
		return t.String()
	default:
		return stringify(v)
	}
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
