// Package render provides opinionated display formatters for tabular
// values. Formatters are registered per native type and only when the
// user's display configuration asks for rich tables; a value whose type
// has no registration falls through to its default representation.
package render

import (
	"context"
	"log/slog"
	"sync"
)

// MIME types of formatter payloads.
const (
	MimeHTML = "text/html"
	MimeText = "text/plain"
)

// Payload is a MIME-typed rendering of a value.
type Payload struct {
	MimeType string
	Data     string
}

// FormatterFunc renders one native value.
type FormatterFunc func(ctx context.Context, v any) (Payload, error)

type registration struct {
	name   string
	match  func(any) bool
	format FormatterFunc
}

var (
	registryMu sync.RWMutex
	registry   []registration
)

// Register adds a formatter under a name with a type-match predicate.
// Registrations are consulted in registration order.
func Register(name string, match func(any) bool, format FormatterFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registration{name: name, match: match, format: format})
}

// Lookup finds the first registered formatter claiming the value.
func Lookup(v any) (FormatterFunc, string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, r := range registry {
		if r.match(v) {
			return r.format, r.name, true
		}
	}
	return nil, "", false
}

// Names returns the registered formatter names in registration order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.name
	}
	return names
}

// Reset removes all registrations. Used by tests and when display
// configuration is reloaded.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}

// Format renders a value through its registered formatter. The second
// return is false when no formatter claims the value, in which case the
// caller should use the value's default representation.
//
// A formatter failure never propagates: it is logged as a warning and the
// plain representation is substituted.
func Format(ctx context.Context, v any, logger *slog.Logger) (Payload, bool) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	format, name, ok := Lookup(v)
	if !ok {
		return Payload{}, false
	}
	payload, err := format(ctx, v)
	if err != nil {
		logger.Warn("failed to format value, falling back to default", "formatter", name, "error", err)
		return Payload{MimeType: MimeText, Data: PlainText(ctx, v, defaultPageSize)}, true
	}
	return payload, true
}
