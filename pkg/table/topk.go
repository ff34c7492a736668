package table

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// topKCacheSize bounds the per-instance result cache. Entries are never
// invalidated: the instance is immutable, so the data a key describes
// cannot change after construction.
const topKCacheSize = 5

// TopKRow is one value of a column together with its occurrence count.
type TopKRow struct {
	Value any
	Count int64
}

type topKKey struct {
	column string
	k      int
}

// topKCache is a fixed-capacity map with first-in-first-out eviction.
type topKCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[topKKey][]TopKRow
	order    []topKKey

	// computes counts cache misses; tests use it as a probe.
	computes int
}

func newTopKCache(capacity int) *topKCache {
	return &topKCache{
		capacity: capacity,
		entries:  make(map[topKKey][]TopKRow, capacity),
	}
}

func (c *topKCache) get(key topKKey) ([]TopKRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.entries[key]
	return rows, ok
}

func (c *topKCache) put(key topKKey, rows []TopKRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.entries[key] = rows
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = rows
	c.order = append(c.order, key)
	c.computes++
}

// CalculateTopKRows returns the k most frequent values of a column,
// ordered by count descending, then by value descending with nulls last.
// Results are cached per (column, k) on this instance. Lazy frames are
// refused: callers must collect first.
func (m *Manager) CalculateTopKRows(ctx context.Context, column string, k int) ([]TopKRow, error) {
	if m.frame.Lazy() {
		return nil, fmt.Errorf("cannot calculate top k rows: %w", ErrLazyFrame)
	}
	if k < 0 {
		return nil, ErrNegativeCount
	}

	key := topKKey{column: column, k: k}
	if rows, ok := m.topK.get(key); ok {
		return rows, nil
	}

	rec, err := m.collect(ctx)
	if err != nil {
		return nil, err
	}
	idx := frame.ColumnIndex(rec.Schema(), column)
	if idx < 0 {
		return nil, &ColumnNotFoundError{Column: column}
	}
	col := rec.Column(idx)
	kind := frame.KindOf(col.DataType())

	// Group by textual identity, remembering one representative row per
	// group for value ordering and extraction.
	type group struct {
		pos   int
		null  bool
		count int64
	}
	groups := make(map[string]*group, col.Len())
	var orderKeys []string
	for i := 0; i < col.Len(); i++ {
		gk := "v:" + col.ValueStr(i)
		if col.IsNull(i) {
			gk = "n:"
		}
		g, ok := groups[gk]
		if !ok {
			g = &group{pos: i, null: col.IsNull(i)}
			groups[gk] = g
			orderKeys = append(orderKeys, gk)
		}
		g.count++
	}

	sort.SliceStable(orderKeys, func(a, b int) bool {
		ga, gb := groups[orderKeys[a]], groups[orderKeys[b]]
		if ga.count != gb.count {
			return ga.count > gb.count
		}
		// Tie-break on the value itself, descending, nulls last.
		if ga.null || gb.null {
			return !ga.null && gb.null
		}
		return lessAt(kind, col, gb.pos, ga.pos)
	})

	if k < len(orderKeys) {
		orderKeys = orderKeys[:k]
	}
	rows := make([]TopKRow, 0, len(orderKeys))
	for _, gk := range orderKeys {
		g := groups[gk]
		var v any
		if !g.null {
			v = frame.Sanitize(frame.CellValue(col, g.pos))
		}
		rows = append(rows, TopKRow{Value: v, Count: g.count})
	}

	m.topK.put(key, rows)
	return rows, nil
}
