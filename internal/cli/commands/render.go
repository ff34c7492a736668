package commands

import (
	"context"
	"fmt"
	"io"

	gptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/tabular/pkg/frame"
	"github.com/leapstack-labs/tabular/pkg/table"
)

// writeTable renders every row of the manager as a go-pretty table.
func writeTable(ctx context.Context, w io.Writer, m *table.Manager, markdown bool) error {
	rec, err := m.Frame().Collect(ctx)
	if err != nil {
		return err
	}

	t := gptable.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(gptable.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	names := m.GetColumnNames()
	header := make(gptable.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	t.AppendHeader(header)

	for i := 0; i < int(rec.NumRows()); i++ {
		row := make(gptable.Row, len(names))
		for j, name := range names {
			col := rec.Column(frame.ColumnIndex(rec.Schema(), name))
			if col.IsNull(i) {
				row[j] = "NULL"
			} else {
				row[j] = frame.CellText(col, i)
			}
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

// writeExport serializes the manager in the requested format.
func writeExport(ctx context.Context, w io.Writer, m *table.Manager, format string) error {
	switch format {
	case "csv":
		s, err := m.ToCSVStr(ctx, nil)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case "json":
		s, err := m.ToJSONStr(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	case "parquet":
		b, err := m.ToParquet(ctx)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected csv, json, or parquet)", format)
	}
}
