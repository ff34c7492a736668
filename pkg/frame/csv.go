package frame

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	arrowcsv "github.com/apache/arrow-go/v18/arrow/csv"
)

// WriteCSV writes the record as CSV with a header row. Null cells are
// written as empty fields. Cell text comes from each column's own
// formatter, so every Arrow type the record can hold is writable.
func WriteCSV(w io.Writer, rec arrow.Record) error {
	cw := csv.NewWriter(w)

	schema := rec.Schema()
	header := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		header[i] = f.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, int(rec.NumCols()))
	for i := 0; i < int(rec.NumRows()); i++ {
		for j, col := range rec.Columns() {
			row[j] = CellText(col, i)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses CSV text (with a header row) into a single eager record,
// inferring column types from the data.
func ReadCSV(r io.Reader) (arrow.Record, error) {
	rdr := arrowcsv.NewInferringReader(r,
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(-1),
		arrowcsv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	if !rdr.Next() {
		if err := rdr.Err(); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		return nil, fmt.Errorf("CSV input contains no rows")
	}
	rec := rdr.Record()
	rec.Retain()
	return rec, nil
}
