package render

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// lazyStub is a lazy Frame serving a fixed record, with a canned plan.
type lazyStub struct {
	rec arrow.Record
}

func (l *lazyStub) Schema() *arrow.Schema                         { return l.rec.Schema() }
func (l *lazyStub) Lazy() bool                                    { return true }
func (l *lazyStub) Collect(context.Context) (arrow.Record, error) { return l.rec, nil }
func (l *lazyStub) NumRows() (int64, bool)                        { return 0, false }
func (l *lazyStub) Plan(context.Context) (string, error)          { return "SEQ_SCAN cities", nil }
func (l *lazyStub) Backend() string                               { return "stub" }

func (l *lazyStub) Head(n int64) frame.Frame {
	if n > l.rec.NumRows() {
		n = l.rec.NumRows()
	}
	return frame.FromRecord(l.rec.NewSlice(0, n))
}

func TestLazyFramesRenderAsTabs(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	Install(ModeRich, Options{PageSize: 1})

	payload, ok := Format(context.Background(), frame.Frame(&lazyStub{rec: sampleRecord(t)}), nil)
	require.True(t, ok)

	assert.Equal(t, MimeHTML, payload.MimeType)
	assert.Contains(t, payload.Data, "<details")
	assert.Contains(t, payload.Data, "Query plan")
	assert.Contains(t, payload.Data, "SEQ_SCAN cities")
	// Page size 1 bounds the preview to the first row.
	assert.Contains(t, payload.Data, "paris")
	assert.NotContains(t, payload.Data, "lyon")
}
