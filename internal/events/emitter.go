package events

import (
	"context"
	"log/slog"

	"github.com/Amund211/scoreboard/internal/logging"
)

// Event names emitted by the request path. Terminal events
// (request_success/request_error) are emitted exactly once per request;
// cache events are intermediate.
const (
	RequestReceived    = "request_received"
	CacheHit           = "cache_hit"
	CacheMissRefreshed = "cache_miss_refreshed"
	RequestSuccess     = "request_success"
	RequestError       = "request_error"
)

// Emitter accepts named events with structured key/value fields.
type Emitter interface {
	Emit(ctx context.Context, name string, attrs ...slog.Attr)
}

type slogEmitter struct{}

func (slogEmitter) Emit(ctx context.Context, name string, attrs ...slog.Attr) {
	logging.FromContext(ctx).LogAttrs(ctx, slog.LevelInfo, name, attrs...)
}

// NewSlogEmitter emits events as structured log records through the
// request-scoped logger.
func NewSlogEmitter() Emitter {
	return slogEmitter{}
}

type noopEmitter struct{}

func (noopEmitter) Emit(ctx context.Context, name string, attrs ...slog.Attr) {
}

// NewNoopEmitter discards all events. Useful when telemetry is disabled.
func NewNoopEmitter() Emitter {
	return noopEmitter{}
}

type multiEmitter struct {
	emitters []Emitter
}

func (m *multiEmitter) Emit(ctx context.Context, name string, attrs ...slog.Attr) {
	for _, emitter := range m.emitters {
		emitter.Emit(ctx, name, attrs...)
	}
}

// NewMultiEmitter fans every event out to all the given emitters.
func NewMultiEmitter(emitters ...Emitter) Emitter {
	return &multiEmitter{emitters: emitters}
}
