package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTopKRows(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered by count then value descending", func(t *testing.T) {
		m := sampleManager(t)
		rows, err := m.CalculateTopKRows(ctx, "age", 3)
		require.NoError(t, err)
		assert.Equal(t, []TopKRow{
			{Value: int64(25), Count: 2},
			{Value: int64(40), Count: 1},
			{Value: int64(30), Count: 1},
		}, rows)
	})

	t.Run("nulls group and order last", func(t *testing.T) {
		m := sampleManager(t)
		rows, err := m.CalculateTopKRows(ctx, "age", 10)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, TopKRow{Value: nil, Count: 1}, rows[3])
	})

	t.Run("k zero yields nothing", func(t *testing.T) {
		m := sampleManager(t)
		rows, err := m.CalculateTopKRows(ctx, "age", 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("negative k", func(t *testing.T) {
		m := sampleManager(t)
		_, err := m.CalculateTopKRows(ctx, "age", -1)
		assert.ErrorIs(t, err, ErrNegativeCount)
	})

	t.Run("unknown column", func(t *testing.T) {
		m := sampleManager(t)
		_, err := m.CalculateTopKRows(ctx, "nope", 3)
		var notFound *ColumnNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("lazy frames are refused", func(t *testing.T) {
		m := NewManager(&lazyStub{rec: sampleRecord(t)})
		_, err := m.CalculateTopKRows(ctx, "age", 3)
		assert.ErrorIs(t, err, ErrLazyFrame)
	})
}

func TestTopKResultsAreCached(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	first, err := m.CalculateTopKRows(ctx, "age", 3)
	require.NoError(t, err)
	second, err := m.CalculateTopKRows(ctx, "age", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.topK.computes)

	// A different k is a different cache entry.
	_, err = m.CalculateTopKRows(ctx, "age", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.topK.computes)
}

func TestTopKCacheEvictsOldestBeyondCapacity(t *testing.T) {
	c := newTopKCache(2)
	c.put(topKKey{column: "a", k: 1}, nil)
	c.put(topKKey{column: "b", k: 1}, nil)
	c.put(topKKey{column: "c", k: 1}, nil)

	_, ok := c.get(topKKey{column: "a", k: 1})
	assert.False(t, ok)
	_, ok = c.get(topKKey{column: "b", k: 1})
	assert.True(t, ok)
	_, ok = c.get(topKKey{column: "c", k: 1})
	assert.True(t, ok)
}

func TestDerivedManagersDoNotShareTopKCache(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	_, err := m.CalculateTopKRows(ctx, "age", 3)
	require.NoError(t, err)

	sorted, err := m.SortValues(ctx, "age", false)
	require.NoError(t, err)
	assert.Zero(t, sorted.topK.computes)
}
