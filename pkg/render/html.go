package render

import (
	"context"
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/leapstack-labs/tabular/pkg/frame"
	"github.com/leapstack-labs/tabular/pkg/table"
)

// tableHTML renders the first page of a value as an HTML table with a
// row-count footer.
func tableHTML(ctx context.Context, m *table.Manager, pageSize int) (string, error) {
	page, err := m.Take(ctx, pageSize, 0)
	if err != nil {
		return "", err
	}
	rec, err := page.Frame().Collect(ctx)
	if err != nil {
		return "", err
	}

	names := page.GetColumnNames()
	headerCells := make([]g.Node, 0, len(names))
	for _, name := range names {
		headerCells = append(headerCells, h.Th(g.Text(name)))
	}

	rows := make([]g.Node, 0, int(rec.NumRows()))
	for i := 0; i < int(rec.NumRows()); i++ {
		cells := make([]g.Node, 0, len(names))
		for _, name := range names {
			col := rec.Column(frame.ColumnIndex(rec.Schema(), name))
			cells = append(cells, h.Td(g.Text(frame.CellText(col, i))))
		}
		rows = append(rows, h.Tr(g.Group(cells)))
	}

	footer := fmt.Sprintf("%d columns", len(names))
	if n, known, err := m.GetNumRows(ctx, false); err == nil && known {
		footer = fmt.Sprintf("%d rows x %d columns", n, len(names))
	}

	node := h.Div(
		h.Class("tabular-table"),
		h.Table(
			h.THead(h.Tr(g.Group(headerCells))),
			h.TBody(g.Group(rows)),
		),
		h.P(h.Class("tabular-footer"), g.Text(footer)),
	)
	return renderNode(node)
}

// lazyTabsHTML renders a lazy frame as a tabbed view: a bounded table
// preview next to the backend's textual query plan.
func lazyTabsHTML(ctx context.Context, f frame.Frame, pageSize int) (string, error) {
	preview := f
	if hdr, ok := f.(frame.Header); ok {
		preview = hdr.Head(int64(pageSize))
	}
	previewHTML, err := tableHTML(ctx, table.NewManager(preview), pageSize)
	if err != nil {
		return "", err
	}

	plan, err := f.Plan(ctx)
	if err != nil {
		return "", err
	}

	node := h.Div(
		h.Class("tabular-tabs"),
		h.Details(
			g.Attr("open"),
			h.Summary(g.Text("Table")),
			g.Raw(previewHTML),
		),
		h.Details(
			h.Summary(g.Text("Query plan")),
			h.Pre(g.Text(plan)),
		),
	)
	return renderNode(node)
}

func renderNode(node g.Node) (string, error) {
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}
