// Package table implements the dataframe table adapter: uniform selection,
// sorting, search, summary and export operations over one wrapped tabular
// value, hiding whether the value is eagerly materialized or lazy.
//
// Managers are immutable. Every transforming operation returns a new
// Manager over a new frame, so concurrent or repeated reads always observe
// a stable value.
package table

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/leapstack-labs/tabular/pkg/frame"
)

// Coordinate addresses one cell by row id and column name.
type Coordinate struct {
	Row    int
	Column string
}

// Cell is a resolved coordinate with its value.
type Cell struct {
	Row    int
	Column string
	Value  any
}

// Manager wraps one tabular value and serves the table operations issued
// by a display layer.
type Manager struct {
	frame  frame.Frame
	logger *slog.Logger
	topK   *topKCache
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for degraded-path diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager wraps a frame.
func NewManager(f frame.Frame, opts ...Option) *Manager {
	m := &Manager{
		frame:  f,
		logger: slog.New(slog.DiscardHandler),
		topK:   newTopKCache(topKCacheSize),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromNative wraps a supported native tabular value (an Arrow record or
// table, or any Frame) in a Manager.
func FromNative(v any, opts ...Option) (*Manager, error) {
	f, ok := frame.FromNative(v)
	if !ok {
		return nil, fmt.Errorf("unsupported tabular value type %T", v)
	}
	return NewManager(f, opts...), nil
}

// Frame returns the wrapped tabular value.
func (m *Manager) Frame() frame.Frame { return m.frame }

// withFrame derives a new Manager over a different frame. The top-k cache
// is not carried over: it is scoped to one immutable instance.
func (m *Manager) withFrame(f frame.Frame) *Manager {
	return &Manager{
		frame:  f,
		logger: m.logger,
		topK:   newTopKCache(topKCacheSize),
	}
}

// collect materializes the wrapped frame.
func (m *Manager) collect(ctx context.Context) (arrow.Record, error) {
	return m.frame.Collect(ctx)
}

// GetNumRows returns the row count. When force is true the frame is
// materialized if needed and the count is exact. When force is false and
// the data is lazy (or the backend cannot count), known is false and no
// materialization happens.
func (m *Manager) GetNumRows(ctx context.Context, force bool) (n int64, known bool, err error) {
	if force {
		rec, err := m.collect(ctx)
		if err != nil {
			return 0, false, err
		}
		return rec.NumRows(), true, nil
	}
	n, known = m.frame.NumRows()
	return n, known, nil
}

// GetNumColumns returns the number of visible columns.
func (m *Manager) GetNumColumns() int {
	return len(m.GetColumnNames())
}

// GetColumnNames returns the column names, hiding the reserved row-id
// column.
func (m *Manager) GetColumnNames() []string {
	fields := m.frame.Schema().Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Name == frame.IndexColumn {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// GetRowHeaders returns named row headers. Frames carry none; the slice is
// always empty.
func (m *Manager) GetRowHeaders() []string {
	return []string{}
}

// GetFieldType returns the coarse field type and the raw data type string
// of a column.
func (m *Manager) GetFieldType(column string) (fieldType string, dataType string, err error) {
	schema := m.frame.Schema()
	idx := frame.ColumnIndex(schema, column)
	if idx < 0 {
		return "", "", &ColumnNotFoundError{Column: column}
	}
	dt := schema.Field(idx).Type
	return frame.KindOf(dt).FieldType(), dt.String(), nil
}

// String renders a short description of the wrapped value, e.g.
// "arrow: 120 rows x 4 columns". Lazy frames omit the row count.
func (m *Manager) String() string {
	cols := m.GetNumColumns()
	if n, known := m.frame.NumRows(); known {
		return fmt.Sprintf("%s: %d rows x %d columns", m.frame.Backend(), n, cols)
	}
	return fmt.Sprintf("%s: %d columns", m.frame.Backend(), cols)
}
