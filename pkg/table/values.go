package table

import (
	"context"
	"log/slog"
	"time"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// sampleSize is the number of representative values returned by
// GetSampleValues.
const sampleSize = 3

// GetUniqueColumnValues returns the distinct values of a column in
// first-seen order, best effort. Values whose native representation is not
// comparable (nested kinds) are deduplicated and returned by their textual
// form instead. An unknown column yields an empty result.
func (m *Manager) GetUniqueColumnValues(ctx context.Context, column string) ([]any, error) {
	return bestEffort(m.logger, "unique column values", func() ([]any, error) {
		rec, err := m.collect(ctx)
		if err != nil {
			return nil, err
		}
		idx := frame.ColumnIndex(rec.Schema(), column)
		if idx < 0 {
			return []any{}, nil
		}
		col := rec.Column(idx)
		textOnly := !frame.KindOf(col.DataType()).Searchable()

		seen := make(map[string]struct{}, col.Len())
		out := make([]any, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			key := "v:" + col.ValueStr(i)
			if col.IsNull(i) {
				key = "n:"
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if col.IsNull(i) {
				out = append(out, nil)
			} else if textOnly {
				out = append(out, col.ValueStr(i))
			} else {
				out = append(out, frame.Sanitize(frame.CellValue(col, i)))
			}
		}
		return out, nil
	})
}

// GetSampleValues returns up to three display-safe values from a column.
// Lazy frames yield an empty result: sampling must never materialize data
// as a side effect of display. Timestamps are rendered without their zone.
func (m *Manager) GetSampleValues(ctx context.Context, column string) ([]any, error) {
	if m.frame.Lazy() {
		return []any{}, nil
	}

	return bestEffort(m.logger, "sample values", func() ([]any, error) {
		rec, err := m.collect(ctx)
		if err != nil {
			return nil, err
		}
		idx := frame.ColumnIndex(rec.Schema(), column)
		if idx < 0 {
			return []any{}, nil
		}
		col := rec.Column(idx)

		n := min(sampleSize, col.Len())
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v := frame.Sanitize(frame.CellValue(col, i))
			// Zone information is dropped; samples are illustrative and
			// never used for calculations.
			if t, ok := v.(time.Time); ok {
				out = append(out, t.Format("2006-01-02 15:04:05.999999"))
				continue
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// bestEffort runs a display-path computation, degrading any panic from a
// misbehaving backend into an empty result. A single bad value must never
// abort the surrounding interactive session.
func bestEffort(logger *slog.Logger, op string, fn func() ([]any, error)) (out []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("degraded to empty result", "op", op, "panic", r)
			out, err = []any{}, nil
		}
	}()
	return fn()
}
