package render

import (
	"context"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/leapstack-labs/tabular/pkg/frame"
	"github.com/leapstack-labs/tabular/pkg/table"
)

// Mode selects between opinionated and default dataframe display.
type Mode string

const (
	// ModeRich installs the opinionated table formatters.
	ModeRich Mode = "rich"
	// ModePlain installs nothing; values keep their default
	// representations.
	ModePlain Mode = "plain"
)

// defaultPageSize bounds how many rows a rendered preview shows.
const defaultPageSize = 10

// Options tunes the installed formatters.
type Options struct {
	// PageSize is the number of preview rows per rendered table.
	// Zero means the default.
	PageSize int
	// Logger receives formatter fallback warnings. Nil discards.
	Logger *slog.Logger
}

// Install registers the opinionated formatters for every supported
// tabular type. In plain mode no registration is installed and default
// representations are used unconditionally.
func Install(mode Mode, opts Options) {
	if mode != ModeRich {
		return
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	logger := opts.Logger

	Register("arrow.record",
		func(v any) bool { _, ok := v.(arrow.Record); return ok },
		func(ctx context.Context, v any) (Payload, error) {
			return richPayload(ctx, v, pageSize, logger)
		})

	Register("arrow.table",
		func(v any) bool { _, ok := v.(arrow.Table); return ok },
		func(ctx context.Context, v any) (Payload, error) {
			return richPayload(ctx, v, pageSize, logger)
		})

	// Lazy frames get a tabbed view: a bounded preview plus the query
	// plan, so displaying one never forces full materialization.
	Register("frame",
		func(v any) bool { _, ok := v.(frame.Frame); return ok },
		func(ctx context.Context, v any) (Payload, error) {
			f := v.(frame.Frame)
			if f.Lazy() {
				data, err := lazyTabsHTML(ctx, f, pageSize)
				if err != nil {
					return Payload{}, err
				}
				return Payload{MimeType: MimeHTML, Data: data}, nil
			}
			return richPayload(ctx, v, pageSize, logger)
		})
}

// richPayload wraps a native value in the adapter and renders its first
// page as HTML.
func richPayload(ctx context.Context, v any, pageSize int, logger *slog.Logger) (Payload, error) {
	m, err := table.FromNative(v, table.WithLogger(logger))
	if err != nil {
		return Payload{}, err
	}
	data, err := tableHTML(ctx, m, pageSize)
	if err != nil {
		return Payload{}, err
	}
	return Payload{MimeType: MimeHTML, Data: data}, nil
}
