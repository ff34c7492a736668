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

func TestGetSummaryInteger(t *testing.T) {
	m := sampleManager(t)
	s, err := m.GetSummary(context.Background(), "age")
	require.NoError(t, err)

	require.NotNil(t, s.Total)
	require.NotNil(t, s.Nulls)
	require.NotNil(t, s.Unique)
	assert.Equal(t, int64(5), *s.Total)
	assert.Equal(t, int64(1), *s.Nulls)
	assert.Equal(t, int64(3), *s.Unique)

	assert.Equal(t, 25.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Equal(t, 30.0, s.Mean)
	assert.Equal(t, 30.0, s.Median)
	assert.InDelta(t, 7.0711, s.Std.(float64), 0.001)
}

func TestGetSummaryBoolean(t *testing.T) {
	m := sampleManager(t)
	s, err := m.GetSummary(context.Background(), "active")
	require.NoError(t, err)

	require.NotNil(t, s.True)
	require.NotNil(t, s.False)
	assert.Equal(t, int64(2), *s.True)
	assert.Equal(t, int64(2), *s.False)
	assert.Equal(t, *s.Total-*s.Nulls, *s.True+*s.False)
	assert.Nil(t, s.Min)
}

func TestGetSummaryString(t *testing.T) {
	m := sampleManager(t)
	s, err := m.GetSummary(context.Background(), "name")
	require.NoError(t, err)

	require.NotNil(t, s.Unique)
	assert.Equal(t, int64(4), *s.Unique)
	assert.Nil(t, s.Min)
	assert.Nil(t, s.Mean)
}

func TestGetSummaryUnknownColumn(t *testing.T) {
	m := sampleManager(t)
	s, err := m.GetSummary(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, s.Empty())
}

func TestGetSummaryDatetime(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Microsecond}, Nullable: true},
	}, nil)
	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()

	tb := bld.Field(0).(*array.TimestampBuilder)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Duration{0, time.Hour, 2 * time.Hour} {
		ts, err := arrow.TimestampFromTime(base.Add(d), arrow.Microsecond)
		require.NoError(t, err)
		tb.Append(ts)
	}
	tb.AppendNull()

	rec := bld.NewRecord()
	defer rec.Release()

	m := NewManager(frame.FromRecord(rec))
	s, err := m.GetSummary(context.Background(), "ts")
	require.NoError(t, err)

	assert.True(t, base.Equal(s.Min.(time.Time)))
	assert.True(t, base.Add(2*time.Hour).Equal(s.Max.(time.Time)))
	assert.True(t, base.Add(time.Hour).Equal(s.Mean.(time.Time)))
	assert.NotNil(t, s.Median)
	assert.NotNil(t, s.P95)
}

func TestGetSummaryDuration(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "elapsed", Type: &arrow.DurationType{Unit: arrow.Millisecond}, Nullable: true},
	}, nil)
	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()

	db := bld.Field(0).(*array.DurationBuilder)
	db.Append(arrow.Duration(1000))
	db.Append(arrow.Duration(2000))
	db.AppendNull()

	rec := bld.NewRecord()
	defer rec.Release()

	m := NewManager(frame.FromRecord(rec))
	s, err := m.GetSummary(context.Background(), "elapsed")
	require.NoError(t, err)

	assert.Equal(t, "1000ms", s.Min)
	assert.Equal(t, "2000ms", s.Max)
	assert.Equal(t, "1500.00ms", s.Mean)
	assert.Nil(t, s.Median)
}
