package ports_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/scoreboard/internal/app"
	"github.com/Amund211/scoreboard/internal/domain"
	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/ports"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func noopMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r)
	}
}

func terminalEvents(recorder *events.Recorder) []events.RecordedEvent {
	var terminal []events.RecordedEvent
	for _, event := range recorder.Events() {
		if event.Name == events.RequestSuccess || event.Name == events.RequestError {
			terminal = append(terminal, event)
		}
	}
	return terminal
}

func TestMakeGetScoresHandler(t *testing.T) {
	t.Parallel()

	records := []domain.ModelScore{
		{Model: "Claude 3 Opus", Provider: "Anthropic", ContextWindow: 200000, Score: 96.0},
		{Model: "GPT-4", Provider: "OpenAI", ContextWindow: 128000, Score: 95.5},
	}

	makeGetScores := func(snapshot domain.ScoreSnapshot, provenance app.Provenance, err error) app.GetScores {
		return func(ctx context.Context) (domain.ScoreSnapshot, app.Provenance, error) {
			return snapshot, provenance, err
		}
	}

	serve := func(t *testing.T, getScores app.GetScores) (*httptest.ResponseRecorder, *events.Recorder) {
		t.Helper()

		recorder := events.NewRecorder()
		handler := ports.MakeGetScoresHandler(getScores, recorder, testLogger, noopMiddleware)

		req := httptest.NewRequest("GET", "/v1/scores", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		return w, recorder
	}

	t.Run("success returns the full dataset in provider order", func(t *testing.T) {
		t.Parallel()

		getScores := makeGetScores(domain.ScoreSnapshot{Records: records, Generation: 1}, app.ProvenanceCacheMissRefreshed, nil)
		w, recorder := serve(t, getScores)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		type entry struct {
			ModelName     string  `json:"model_name"`
			Provider      string  `json:"provider"`
			ContextWindow int     `json:"context_window"`
			Score         float64 `json:"score"`
		}
		var body []entry
		err := json.Unmarshal(w.Body.Bytes(), &body)
		require.NoError(t, err)

		require.Equal(t, []entry{
			{ModelName: "Claude 3 Opus", Provider: "Anthropic", ContextWindow: 200000, Score: 96.0},
			{ModelName: "GPT-4", Provider: "OpenAI", ContextWindow: 128000, Score: 95.5},
		}, body)

		terminal := terminalEvents(recorder)
		require.Len(t, terminal, 1)
		require.Equal(t, events.RequestSuccess, terminal[0].Name)

		itemCount, ok := terminal[0].Field("item_count")
		require.True(t, ok)
		require.Equal(t, int64(2), itemCount.Int64())

		provenance, ok := terminal[0].Field("provenance")
		require.True(t, ok)
		require.Equal(t, "cache_miss_refreshed", provenance.String())

		_, ok = terminal[0].Field("age")
		require.True(t, ok)
	})

	t.Run("provenance is forwarded on cache hits", func(t *testing.T) {
		t.Parallel()

		getScores := makeGetScores(domain.ScoreSnapshot{Records: records, Generation: 3}, app.ProvenanceCacheHit, nil)
		_, recorder := serve(t, getScores)

		terminal := terminalEvents(recorder)
		require.Len(t, terminal, 1)

		provenance, ok := terminal[0].Field("provenance")
		require.True(t, ok)
		require.Equal(t, "cache_hit", provenance.String())
	})

	t.Run("provider failure returns an opaque 500 with a correlation token", func(t *testing.T) {
		t.Parallel()

		providerErr := fmt.Errorf("%w: dial tcp 10.0.0.1:5432: connection refused", domain.ErrProviderFailed)
		getScores := makeGetScores(domain.ScoreSnapshot{}, "", providerErr)
		w, recorder := serve(t, getScores)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body struct {
			Error         string `json:"error"`
			CorrelationID string `json:"correlationId"`
		}
		err := json.Unmarshal(w.Body.Bytes(), &body)
		require.NoError(t, err)

		require.Equal(t, "Internal Server Error", body.Error)
		require.NotEmpty(t, body.CorrelationID)
		require.NotContains(t, w.Body.String(), "connection refused")
		require.NotContains(t, w.Body.String(), "10.0.0.1")

		terminal := terminalEvents(recorder)
		require.Len(t, terminal, 1)
		require.Equal(t, events.RequestError, terminal[0].Name)

		kind, ok := terminal[0].Field("error_kind")
		require.True(t, ok)
		require.Equal(t, "provider_error", kind.String())

		correlationID, ok := terminal[0].Field("correlation_id")
		require.True(t, ok)
		require.Equal(t, body.CorrelationID, correlationID.String())
	})

	t.Run("unrecognized errors are labelled internal", func(t *testing.T) {
		t.Parallel()

		getScores := makeGetScores(domain.ScoreSnapshot{}, "", errors.New("boom"))
		w, recorder := serve(t, getScores)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		terminal := terminalEvents(recorder)
		require.Len(t, terminal, 1)

		kind, ok := terminal[0].Field("error_kind")
		require.True(t, ok)
		require.Equal(t, "internal_error", kind.String())
	})

	t.Run("request_received is emitted before the outcome", func(t *testing.T) {
		t.Parallel()

		getScores := makeGetScores(domain.ScoreSnapshot{Records: records}, app.ProvenanceCacheHit, nil)
		_, recorder := serve(t, getScores)

		recorded := recorder.Events()
		require.NotEmpty(t, recorded)
		require.Equal(t, events.RequestReceived, recorded[0].Name)

		route, ok := recorded[0].Field("route")
		require.True(t, ok)
		require.Equal(t, "/v1/scores", route.String())
	})

	t.Run("empty dataset serializes as an empty array", func(t *testing.T) {
		t.Parallel()

		getScores := makeGetScores(domain.ScoreSnapshot{Records: []domain.ModelScore{}}, app.ProvenanceCacheMissRefreshed, nil)
		w, _ := serve(t, getScores)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[]`, w.Body.String())
	})
}
