package table

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

func TestToCSVStr(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	out, err := m.ToCSVStr(ctx, nil)
	require.NoError(t, err)

	want := "name,age,score,active\n" +
		"alice,30,1.5,true\n" +
		"bob,25,2.5,false\n" +
		",40,,true\n" +
		"dave,,4.5,\n" +
		"erin,25,2.5,false\n"
	assert.Equal(t, want, out)
}

func TestToCSVStrWithMapping(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	out, err := m.ToCSVStr(ctx, FormatMapping{
		"active": func(v any) any {
			if v == nil {
				return nil
			}
			if v.(bool) {
				return "yes"
			}
			return "no"
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "alice,30,1.5,yes")
	assert.Contains(t, out, "bob,25,2.5,no")
}

func TestToJSONStr(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	out, err := m.ToJSONStr(ctx, nil)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 5)

	assert.Equal(t, "alice", records[0]["name"])
	assert.Equal(t, float64(30), records[0]["age"])
	assert.Equal(t, 1.5, records[0]["score"])
	assert.Equal(t, true, records[0]["active"])

	// Null numeric and boolean cells round-trip as JSON null.
	assert.Nil(t, records[3]["age"])
	assert.Nil(t, records[3]["active"])
}

func TestToJSONStrKeepsBigIntegersExact(t *testing.T) {
	ctx := context.Background()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "n", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()
	bld.Field(0).(*array.Int64Builder).AppendValues(
		[]int64{9007199254740993, 10}, nil)
	rec := bld.NewRecord()
	defer rec.Release()

	m := NewManager(frame.FromRecord(rec))
	out, err := m.ToJSONStr(ctx, nil)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	// Beyond 2^53 the value must stay textual to avoid losing precision.
	assert.Equal(t, "9007199254740993", records[0]["n"])
	assert.Equal(t, float64(10), records[1]["n"])
}

func TestToJSONStrFallsBackOnBadMapping(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	plain, err := m.ToJSONStr(ctx, nil)
	require.NoError(t, err)

	out, err := m.ToJSONStr(ctx, FormatMapping{
		"age": func(any) any { panic("boom") },
	})
	require.NoError(t, err)
	assert.JSONEq(t, plain, out)
}

func TestToParquet(t *testing.T) {
	ctx := context.Background()
	m := sampleManager(t)

	buf, err := m.ToParquet(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, buf)
	assert.Equal(t, "PAR1", string(buf[:4]))
}
