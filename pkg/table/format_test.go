package table

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

func TestApplyFormatting(t *testing.T) {
	ctx := context.Background()

	t.Run("mapped columns become strings", func(t *testing.T) {
		m := sampleManager(t)
		out, err := m.ApplyFormatting(ctx, FormatMapping{
			"age": func(v any) any {
				if v == nil {
					return nil
				}
				return v.(int64) * 2
			},
		})
		require.NoError(t, err)

		schema := out.Frame().Schema()
		idx := frame.ColumnIndex(schema, "age")
		assert.Equal(t, arrow.STRING, schema.Field(idx).Type.ID())
		assert.Equal(t,
			[]any{"60", "50", "80", nil, "50"},
			columnValues(t, out, "age"))

		// Unmapped columns pass through untouched.
		assert.Equal(t,
			[]any{"alice", "bob", nil, "dave", "erin"},
			columnValues(t, out, "name"))
	})

	t.Run("empty mapping returns the receiver", func(t *testing.T) {
		m := sampleManager(t)
		out, err := m.ApplyFormatting(ctx, nil)
		require.NoError(t, err)
		assert.Same(t, m, out)
	})

	t.Run("panicking transformer becomes an error", func(t *testing.T) {
		m := sampleManager(t)
		_, err := m.ApplyFormatting(ctx, FormatMapping{
			"age": func(any) any { panic("boom") },
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "age")
	})
}
