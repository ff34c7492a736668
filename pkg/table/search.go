package table

import (
	"context"
	"strings"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// Search returns the rows where any searchable column contains the query
// as a case-insensitive substring. String columns match directly; numeric,
// boolean and temporal columns match against their textual form.
//
// List columns do not participate in search yet, including lists of
// strings; rows matching only inside a list value are not found.
func (m *Manager) Search(ctx context.Context, query string) (*Manager, error) {
	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)

	searchable := make([]int, 0, int(rec.NumCols()))
	for j, f := range rec.Schema().Fields() {
		if f.Name == frame.IndexColumn {
			continue
		}
		if frame.KindOf(f.Type).Searchable() {
			searchable = append(searchable, j)
		}
	}

	var matches []int
	if len(searchable) > 0 {
		for i := 0; i < int(rec.NumRows()); i++ {
			for _, j := range searchable {
				col := rec.Column(j)
				if col.IsNull(i) {
					continue
				}
				if strings.Contains(strings.ToLower(col.ValueStr(i)), q) {
					matches = append(matches, i)
					break
				}
			}
		}
	}

	out, err := frame.TakeIndices(rec, matches)
	if err != nil {
		return nil, err
	}
	return m.withFrame(frame.FromRecord(out)), nil
}
