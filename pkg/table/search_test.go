package table

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("case insensitive substring", func(t *testing.T) {
		m := sampleManager(t)
		hits, err := m.Search(ctx, "ALI")
		require.NoError(t, err)
		assert.Equal(t, []any{"alice"}, columnValues(t, hits, "name"))
	})

	t.Run("numeric columns match their textual form", func(t *testing.T) {
		m := sampleManager(t)
		hits, err := m.Search(ctx, "25")
		require.NoError(t, err)
		assert.Equal(t, []any{"bob", "erin"}, columnValues(t, hits, "name"))
	})

	t.Run("no match yields empty with schema intact", func(t *testing.T) {
		m := sampleManager(t)
		hits, err := m.Search(ctx, "zzz")
		require.NoError(t, err)
		n, _, err := hits.GetNumRows(ctx, true)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 4, hits.GetNumColumns())
	})

	t.Run("list columns do not participate", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: "tags", Type: arrow.ListOf(arrow.BinaryTypes.String)},
		}, nil)
		bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
		defer bld.Release()

		lb := bld.Field(0).(*array.ListBuilder)
		vb := lb.ValueBuilder().(*array.StringBuilder)
		lb.Append(true)
		vb.AppendValues([]string{"red", "green"}, nil)

		rec := bld.NewRecord()
		defer rec.Release()

		m := NewManager(frame.FromRecord(rec))
		hits, err := m.Search(ctx, "red")
		require.NoError(t, err)
		n, _, err := hits.GetNumRows(ctx, true)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
