package table

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

func TestGetUniqueColumnValues(t *testing.T) {
	ctx := context.Background()

	t.Run("first seen order, null once", func(t *testing.T) {
		m := sampleManager(t)
		values, err := m.GetUniqueColumnValues(ctx, "age")
		require.NoError(t, err)
		assert.Equal(t, []any{int64(30), int64(25), int64(40), nil}, values)
	})

	t.Run("unknown column is empty", func(t *testing.T) {
		m := sampleManager(t)
		values, err := m.GetUniqueColumnValues(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, values)
	})
}

func TestGetSampleValues(t *testing.T) {
	ctx := context.Background()

	t.Run("at most three values", func(t *testing.T) {
		m := sampleManager(t)
		values, err := m.GetSampleValues(ctx, "name")
		require.NoError(t, err)
		assert.Equal(t, []any{"alice", "bob", nil}, values)
	})

	t.Run("lazy frames yield nothing", func(t *testing.T) {
		m := NewManager(&lazyStub{rec: sampleRecord(t)})
		values, err := m.GetSampleValues(ctx, "name")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("timestamps are rendered without a zone", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Microsecond}},
		}, nil)
		bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
		defer bld.Release()

		ts, err := arrow.TimestampFromTime(
			time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC), arrow.Microsecond)
		require.NoError(t, err)
		bld.Field(0).(*array.TimestampBuilder).Append(ts)

		rec := bld.NewRecord()
		defer rec.Release()

		m := NewManager(frame.FromRecord(rec))
		values, err := m.GetSampleValues(ctx, "ts")
		require.NoError(t, err)
		assert.Equal(t, []any{"2024-06-01 12:30:45"}, values)
	})
}
