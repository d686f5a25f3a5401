package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestSlogEmitter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	ctx := logging.AddToContext(context.Background(), logger)

	emitter := events.NewSlogEmitter()
	emitter.Emit(ctx, events.CacheHit, slog.Float64("age", 12.5))

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	require.Equal(t, "cache_hit", entry["msg"])
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, 12.5, entry["age"])
}

func TestMultiEmitter(t *testing.T) {
	t.Parallel()

	first := events.NewRecorder()
	second := events.NewRecorder()

	emitter := events.NewMultiEmitter(first, second)
	emitter.Emit(context.Background(), events.RequestReceived, slog.String("route", "/v1/scores"))

	for _, recorder := range []*events.Recorder{first, second} {
		recorded := recorder.Events()
		require.Len(t, recorded, 1)
		require.Equal(t, events.RequestReceived, recorded[0].Name)

		route, ok := recorded[0].Field("route")
		require.True(t, ok)
		require.Equal(t, "/v1/scores", route.String())
	}
}

func TestNoopEmitter(t *testing.T) {
	t.Parallel()

	// Must not panic without a logger in context
	events.NewNoopEmitter().Emit(context.Background(), events.RequestError)
}
