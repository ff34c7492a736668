package table

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// SelectRows returns a new Manager containing only the given row
// positions. When the frame carries the reserved row-id column the
// selection resolves against the stored ids, so it survives prior
// reordering; otherwise positions are physical. An empty selection yields
// a zero-row result with the same schema.
func (m *Manager) SelectRows(ctx context.Context, indices []int) (*Manager, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}

	if len(indices) == 0 {
		empty, err := frame.TakeIndices(rec, nil)
		if err != nil {
			return nil, err
		}
		return m.withFrame(frame.FromRecord(empty)), nil
	}

	if frame.HasColumn(rec.Schema(), frame.IndexColumn) {
		wanted := make(map[int64]struct{}, len(indices))
		for _, idx := range indices {
			wanted[int64(idx)] = struct{}{}
		}
		col := rec.Column(frame.ColumnIndex(rec.Schema(), frame.IndexColumn))
		positions := make([]int, 0, len(indices))
		for i := 0; i < col.Len(); i++ {
			id, ok := frame.CellValue(col, i).(int64)
			if !ok {
				continue
			}
			if _, ok := wanted[id]; ok {
				positions = append(positions, i)
			}
		}
		out, err := frame.TakeIndices(rec, positions)
		if err != nil {
			return nil, err
		}
		return m.withFrame(frame.FromRecord(out)), nil
	}

	out, err := frame.TakeIndices(rec, indices)
	if err != nil {
		return nil, err
	}
	return m.withFrame(frame.FromRecord(out)), nil
}

// SelectColumns projects the frame to the named columns.
func (m *Manager) SelectColumns(ctx context.Context, columns []string) (*Manager, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	out, err := frame.Project(rec, columns)
	if err != nil {
		return nil, err
	}
	return m.withFrame(frame.FromRecord(out)), nil
}

// DropColumns removes the named columns. Names that do not exist are
// tolerated, not errors.
func (m *Manager) DropColumns(ctx context.Context, columns []string) (*Manager, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	out, err := frame.Discard(rec, columns)
	if err != nil {
		return nil, err
	}
	return m.withFrame(frame.FromRecord(out)), nil
}

// SelectCells resolves each (row, column) coordinate to its value. With a
// row-id column, coordinates whose row no longer exists (e.g. filtered
// away) are omitted rather than failing the whole batch. Without one,
// addressing is positional and out-of-range rows are errors.
func (m *Manager) SelectCells(ctx context.Context, cells []Coordinate) ([]Cell, error) {
	if len(cells) == 0 {
		return []Cell{}, nil
	}

	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	schema := rec.Schema()

	if idxCol := frame.ColumnIndex(schema, frame.IndexColumn); idxCol >= 0 {
		ids := rec.Column(idxCol)
		byID := make(map[int64]int, ids.Len())
		for i := 0; i < ids.Len(); i++ {
			if id, ok := frame.CellValue(ids, i).(int64); ok {
				byID[id] = i
			}
		}

		selection := make([]Cell, 0, len(cells))
		for _, c := range cells {
			pos, ok := byID[int64(c.Row)]
			if !ok {
				continue
			}
			col := frame.ColumnIndex(schema, c.Column)
			if col < 0 {
				return nil, &ColumnNotFoundError{Column: c.Column}
			}
			selection = append(selection, Cell{
				Row:    c.Row,
				Column: c.Column,
				Value:  frame.Sanitize(frame.CellValue(rec.Column(col), pos)),
			})
		}
		return selection, nil
	}

	selection := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if c.Row < 0 || int64(c.Row) >= rec.NumRows() {
			return nil, fmt.Errorf("row %d out of range [0, %d)", c.Row, rec.NumRows())
		}
		col := frame.ColumnIndex(schema, c.Column)
		if col < 0 {
			return nil, &ColumnNotFoundError{Column: c.Column}
		}
		selection = append(selection, Cell{
			Row:    c.Row,
			Column: c.Column,
			Value:  frame.Sanitize(frame.CellValue(rec.Column(col), c.Row)),
		})
	}
	return selection, nil
}

// Take returns count rows starting at offset. Negative arguments are
// invalid-argument errors; an offset past the end yields an empty result.
func (m *Manager) Take(ctx context.Context, count, offset int) (*Manager, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if offset < 0 {
		return nil, ErrNegativeOffset
	}

	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	start := min(int64(offset), rec.NumRows())
	end := min(start+int64(count), rec.NumRows())
	return m.withFrame(frame.FromRecord(rec.NewSlice(start, end))), nil
}
