package render

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/tabular/pkg/frame"
	tbl "github.com/leapstack-labs/tabular/pkg/table"
)

// PlainText renders the first page of a value as a plain-text table. It is
// the default representation substituted when a rich formatter fails, and
// the output of CLI contexts that do not want markup.
func PlainText(ctx context.Context, v any, pageSize int) string {
	m, err := tbl.FromNative(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	page, err := m.Take(ctx, pageSize, 0)
	if err != nil {
		return m.String()
	}
	rec, err := page.Frame().Collect(ctx)
	if err != nil {
		return m.String()
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	names := page.GetColumnNames()
	header := make(table.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	t.AppendHeader(header)

	for i := 0; i < int(rec.NumRows()); i++ {
		row := make(table.Row, len(names))
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

	return t.Render() + "\n" + m.String() + "\n"
}
