package table

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// Summary holds optional per-column statistics. Which fields are populated
// depends on the column's kind: boolean columns get true/false counts but
// no percentiles, durations get min/max/mean re-expressed in their native
// unit, nested and unknown kinds get only the counts.
type Summary struct {
	Total  *int64
	Nulls  *int64
	Unique *int64
	True   *int64
	False  *int64

	Min    any
	Max    any
	Mean   any
	Median any
	Std    any
	P5     any
	P25    any
	P75    any
	P95    any
}

// Empty reports whether no statistic is populated.
func (s Summary) Empty() bool {
	return s.Total == nil && s.Nulls == nil && s.Unique == nil &&
		s.True == nil && s.False == nil && s.Min == nil && s.Max == nil
}

// GetSummary computes the statistics applicable to the column's kind. An
// unknown column name yields an empty summary rather than an error.
func (m *Manager) GetSummary(ctx context.Context, column string) (Summary, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return Summary{}, err
	}

	idx := frame.ColumnIndex(rec.Schema(), column)
	if idx < 0 {
		return Summary{}, nil
	}
	col := rec.Column(idx)
	total := int64(col.Len())
	nulls := int64(col.NullN())
	base := Summary{Total: i64(total), Nulls: i64(nulls)}

	switch frame.KindOf(col.DataType()) {
	case frame.KindString:
		base.Unique = i64(distinctCount(col))
		return base, nil

	case frame.KindBoolean:
		var trues int64
		for i := 0; i < col.Len(); i++ {
			if v, ok := frame.CellValue(col, i).(bool); ok && v {
				trues++
			}
		}
		base.True = i64(trues)
		base.False = i64(total - nulls - trues)
		return base, nil

	case frame.KindDate, frame.KindTime:
		times := collectTimes(col)
		if len(times) == 0 {
			return base, nil
		}
		base.Min = times[0]
		base.Max = times[len(times)-1]
		base.Mean = meanTime(times)
		// Percentiles are not supported on date and time-of-day columns.
		return base, nil

	case frame.KindDatetime:
		times := collectTimes(col)
		if len(times) == 0 {
			return base, nil
		}
		base.Min = times[0]
		base.Max = times[len(times)-1]
		base.Mean = meanTime(times)
		base.Median = quantileTime(times, 0.5)
		base.P5 = quantileTime(times, 0.05)
		base.P25 = quantileTime(times, 0.25)
		base.P75 = quantileTime(times, 0.75)
		base.P95 = quantileTime(times, 0.95)
		return base, nil

	case frame.KindDuration:
		durations, unit := collectDurations(col)
		if len(durations) == 0 {
			return base, nil
		}
		suffix := durationSuffix(unit)
		var sum, lo, hi int64
		lo, hi = durations[0], durations[0]
		for _, d := range durations {
			sum += d
			lo = min(lo, d)
			hi = max(hi, d)
		}
		base.Min = fmt.Sprintf("%d%s", lo, suffix)
		base.Max = fmt.Sprintf("%d%s", hi, suffix)
		base.Mean = fmt.Sprintf("%.2f%s", float64(sum)/float64(len(durations)), suffix)
		return base, nil

	case frame.KindInteger:
		s := numericSummary(col, base)
		s.Unique = i64(distinctCount(col))
		return s, nil

	case frame.KindFloat:
		return numericSummary(col, base), nil

	default:
		// Nested and unknown kinds: counts only.
		return base, nil
	}
}

// numericSummary fills the full statistic set from a numeric column.
func numericSummary(col arrow.Array, base Summary) Summary {
	values := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		switch v := frame.CellValue(col, i).(type) {
		case int64:
			values = append(values, float64(v))
		case float64:
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return base
	}
	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	base.Min = values[0]
	base.Max = values[len(values)-1]
	base.Mean = mean
	base.Median = quantileNearest(values, 0.5)
	base.P5 = quantileNearest(values, 0.05)
	base.P25 = quantileNearest(values, 0.25)
	base.P75 = quantileNearest(values, 0.75)
	base.P95 = quantileNearest(values, 0.95)

	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			ss += (v - mean) * (v - mean)
		}
		base.Std = math.Sqrt(ss / float64(len(values)-1))
	}
	return base
}

// quantileNearest picks the sorted value whose rank is nearest to q.
func quantileNearest(sorted []float64, q float64) float64 {
	rank := int(math.Round(q * float64(len(sorted)-1)))
	return sorted[rank]
}

func quantileTime(sorted []time.Time, q float64) time.Time {
	rank := int(math.Round(q * float64(len(sorted)-1)))
	return sorted[rank]
}

// collectTimes extracts the non-null temporal values, sorted ascending.
func collectTimes(col arrow.Array) []time.Time {
	out := make([]time.Time, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if t, ok := frame.CellValue(col, i).(time.Time); ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Before(out[b]) })
	return out
}

func meanTime(times []time.Time) time.Time {
	var sum int64
	for _, t := range times {
		sum += t.UnixMicro()
	}
	return time.UnixMicro(sum / int64(len(times))).UTC()
}

// collectDurations extracts non-null duration values in the column's
// native time unit.
func collectDurations(col arrow.Array) ([]int64, arrow.TimeUnit) {
	arr, ok := col.(*array.Duration)
	if !ok {
		return nil, arrow.Nanosecond
	}
	unit := col.DataType().(*arrow.DurationType).Unit
	out := make([]int64, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		out = append(out, int64(arr.Value(i)))
	}
	return out, unit
}

func durationSuffix(unit arrow.TimeUnit) string {
	switch unit {
	case arrow.Second:
		return "s"
	case arrow.Millisecond:
		return "ms"
	case arrow.Microsecond:
		return "μs"
	default:
		return "ns"
	}
}

// distinctCount counts distinct non-null values by their textual form.
func distinctCount(col arrow.Array) int64 {
	seen := make(map[string]struct{}, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		seen[col.ValueStr(i)] = struct{}{}
	}
	return int64(len(seen))
}

func i64(v int64) *int64 { return &v }
