package ports

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Amund211/scoreboard/internal/logging"
)

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// writeErrorResponse writes a generic error body. The label never contains
// provider-internal error text; the correlation ID ties the response to the
// emitted telemetry for out-of-band debugging.
func writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, label string, correlationID string) {
	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(errorResponse{
		Error:         label,
		CorrelationID: correlationID,
	})
	if err != nil {
		logging.FromContext(ctx).Error("failed to marshal error response", "error", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.WriteHeader(statusCode)
	w.Write(body)
}
