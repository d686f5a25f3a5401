package ports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/scoreboard/internal/events"
	"github.com/stretchr/testify/require"
)

func TestMakeRateLimitExceededHandler(t *testing.T) {
	t.Parallel()

	recorder := events.NewRecorder()
	handler := makeRateLimitExceededHandler(recorder)

	req := httptest.NewRequest("GET", "/v1/scores", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Rate limit exceeded", body.Error)
	require.NotEmpty(t, body.CorrelationID)

	errs := recorder.Named(events.RequestError)
	require.Len(t, errs, 1)

	kind, ok := errs[0].Field("error_kind")
	require.True(t, ok)
	require.Equal(t, "rate_limited", kind.String())

	correlationID, ok := errs[0].Field("correlation_id")
	require.True(t, ok)
	require.Equal(t, body.CorrelationID, correlationID.String())

	_, ok = errs[0].Field("total_duration")
	require.True(t, ok)
}
