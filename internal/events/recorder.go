package events

import (
	"context"
	"log/slog"
	"sync"
)

// RecordedEvent is a single event captured by a Recorder.
type RecordedEvent struct {
	Name  string
	Attrs []slog.Attr
}

// Field returns the value of the named field, if present.
func (e RecordedEvent) Field(key string) (slog.Value, bool) {
	for _, attr := range e.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return slog.Value{}, false
}

// Recorder captures emitted events for inspection in tests.
type Recorder struct {
	mutex  sync.Mutex
	events []RecordedEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(ctx context.Context, name string, attrs ...slog.Attr) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, RecordedEvent{Name: name, Attrs: attrs})
}

// Events returns the captured events in emission order.
func (r *Recorder) Events() []RecordedEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]RecordedEvent(nil), r.events...)
}

// Named returns the captured events with the given name.
func (r *Recorder) Named(name string) []RecordedEvent {
	var matched []RecordedEvent
	for _, event := range r.Events() {
		if event.Name == name {
			matched = append(matched, event)
		}
	}
	return matched
}

var _ Emitter = (*Recorder)(nil)
