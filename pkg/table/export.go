package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// maxSafeInteger is the largest integer a float64 (and therefore a JSON
// number in most consumers) can hold exactly.
const maxSafeInteger = int64(1) << 53

// ToCSVStr serializes the materialized data as CSV text, applying the
// format mapping first when one is given.
func (m *Manager) ToCSVStr(ctx context.Context, mapping FormatMapping) (string, error) {
	mapped, err := m.ApplyFormatting(ctx, mapping)
	if err != nil {
		return "", err
	}
	rec, err := mapped.collect(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := frame.WriteCSV(&b, rec); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ToJSONStr serializes the materialized data as a JSON array of records.
// The data round-trips through CSV text and is re-parsed, which keeps
// integers above 2^53 as strings instead of losing precision in a float.
// If applying the format mapping fails, the export falls back to the
// unmapped CSV rather than failing.
func (m *Manager) ToJSONStr(ctx context.Context, mapping FormatMapping) (string, error) {
	csvStr, err := m.ToCSVStr(ctx, mapping)
	if err != nil {
		m.logger.Debug("failed to use format mapping, falling back to default", "error", err)
		csvStr, err = m.ToCSVStr(ctx, nil)
		if err != nil {
			return "", err
		}
		mapping = nil
	}

	reader := csv.NewReader(strings.NewReader(csvStr))
	reader.FieldsPerRecord = -1
	lines, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to re-parse CSV export: %w", err)
	}
	if len(lines) == 0 {
		return "[]", nil
	}

	header := lines[0]
	kinds := m.columnKinds(mapping)

	records := make([]map[string]any, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rec := make(map[string]any, len(header))
		for i, name := range header {
			if i >= len(line) {
				continue
			}
			rec[name] = restoreJSONValue(line[i], kinds[name])
		}
		records = append(records, rec)
	}

	out, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ToParquet serializes the materialized data as a Parquet byte buffer.
func (m *Manager) ToParquet(ctx context.Context) ([]byte, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}

	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	if err := pqarrow.WriteTable(tbl, &buf, max(rec.NumRows(), 1), props, arrProps); err != nil {
		return nil, fmt.Errorf("failed to write parquet: %w", err)
	}
	return buf.Bytes(), nil
}

// columnKinds maps visible column names to their kinds, treating mapped
// columns as strings since their transformed values are opaque text.
func (m *Manager) columnKinds(mapping FormatMapping) map[string]frame.Kind {
	kinds := make(map[string]frame.Kind, m.frame.Schema().NumFields())
	for _, f := range m.frame.Schema().Fields() {
		if _, mapped := mapping[f.Name]; mapped {
			kinds[f.Name] = frame.KindString
			continue
		}
		kinds[f.Name] = frame.KindOf(f.Type)
	}
	return kinds
}

// restoreJSONValue turns a CSV cell back into a JSON-friendly value based
// on the column's kind. Integers outside the float64-safe range stay
// strings; everything non-numeric stays text.
func restoreJSONValue(cell string, kind frame.Kind) any {
	if cell == "" && kind != frame.KindString {
		return nil
	}
	switch kind {
	case frame.KindInteger:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return cell
		}
		if n > maxSafeInteger || n < -maxSafeInteger {
			return cell
		}
		return n
	case frame.KindFloat:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return cell
		}
		return f
	case frame.KindBoolean:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return cell
		}
		return b
	default:
		return cell
	}
}
