package ports_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/ports"
	"github.com/stretchr/testify/require"
)

func TestMakeHealthHandler(t *testing.T) {
	t.Parallel()

	recorder := events.NewRecorder()
	handler := ports.MakeHealthHandler(recorder, testLogger)

	// The health route never consults the score pipeline, so repeated
	// calls succeed regardless of provider state.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}

	require.Len(t, recorder.Named(events.RequestSuccess), 3)
	require.Empty(t, recorder.Named(events.RequestError))
}

func TestMakeNotFoundHandler(t *testing.T) {
	t.Parallel()

	recorder := events.NewRecorder()
	handler := ports.MakeNotFoundHandler(recorder, testLogger)

	req := httptest.NewRequest("GET", "/no-such-route", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Not Found", body.Error)
	require.NotEmpty(t, body.CorrelationID)

	recorded := recorder.Events()
	require.Len(t, recorded, 2)
	require.Equal(t, events.RequestReceived, recorded[0].Name)

	route, ok := recorded[0].Field("route")
	require.True(t, ok)
	require.Equal(t, "/no-such-route", route.String())

	errs := recorder.Named(events.RequestError)
	require.Len(t, errs, 1)
	kind, ok := errs[0].Field("error_kind")
	require.True(t, ok)
	require.Equal(t, "route_not_found", kind.String())
}
