package ports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/logging"
	"github.com/google/uuid"
)

// MakeHealthHandler reports liveness. It has no dependency on the score
// pipeline and succeeds as long as the process is running.
func MakeHealthHandler(
	emitter events.Emitter,
	rootLogger *slog.Logger,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("health"),
		logging.NewRequestLoggerMiddleware(rootLogger),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		correlationID := uuid.New().String()
		ctx := r.Context()

		emitter.Emit(ctx, events.RequestReceived,
			slog.String("correlation_id", correlationID),
			slog.String("route", r.URL.Path),
		)

		emitter.Emit(ctx, events.RequestSuccess,
			slog.String("correlation_id", correlationID),
			slog.Float64("total_duration", time.Since(start).Seconds()),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}

	return middleware(handler)
}

// MakeNotFoundHandler answers unrecognized routes with a client error. The
// score pipeline is never consulted.
func MakeNotFoundHandler(
	emitter events.Emitter,
	rootLogger *slog.Logger,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("not_found"),
		logging.NewRequestLoggerMiddleware(rootLogger),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		correlationID := uuid.New().String()
		ctx := r.Context()

		emitter.Emit(ctx, events.RequestReceived,
			slog.String("correlation_id", correlationID),
			slog.String("route", r.URL.Path),
		)

		emitter.Emit(ctx, events.RequestError,
			slog.String("correlation_id", correlationID),
			slog.String("error_kind", "route_not_found"),
			slog.Float64("total_duration", time.Since(start).Seconds()),
		)

		writeErrorResponse(ctx, w, http.StatusNotFound, "Not Found", correlationID)
	}

	return middleware(handler)
}
