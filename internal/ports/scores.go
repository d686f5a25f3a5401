package ports

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/scoreboard/internal/app"
	"github.com/Amund211/scoreboard/internal/domain"
	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/logging"
	"github.com/Amund211/scoreboard/internal/ratelimiting"
	"github.com/Amund211/scoreboard/internal/reporting"
	"github.com/google/uuid"
)

type scoreEntry struct {
	ModelName     string  `json:"model_name"`
	Provider      string  `json:"provider"`
	ContextWindow int     `json:"context_window"`
	Score         float64 `json:"score"`
}

func scoreEntriesFromDomain(records []domain.ModelScore) []scoreEntry {
	entries := make([]scoreEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, scoreEntry{
			ModelName:     record.Model,
			Provider:      record.Provider,
			ContextWindow: record.ContextWindow,
			Score:         record.Score,
		})
	}
	return entries
}

func errorKind(err error) string {
	if errors.Is(err, domain.ErrProviderFailed) {
		return "provider_error"
	}
	return "internal_error"
}

// makeRateLimitExceededHandler answers rejected requests. Rejections are
// terminal outcomes like any other, so they emit a request_error event with
// a correlation token matching the response body.
func makeRateLimitExceededHandler(emitter events.Emitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		correlationID := uuid.New().String()
		ctx := r.Context()

		emitter.Emit(ctx, events.RequestError,
			slog.String("correlation_id", correlationID),
			slog.String("error_kind", "rate_limited"),
			slog.Float64("total_duration", time.Since(start).Seconds()),
		)

		writeErrorResponse(ctx, w, http.StatusTooManyRequests, "Rate limit exceeded", correlationID)
	}
}

func MakeGetScoresHandler(
	getScores app.GetScores,
	emitter events.Emitter,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(8),
		ratelimiting.BurstSize(480),
	)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)

	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get_scores"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		NewRateLimitMiddleware(ipRateLimiter, makeRateLimitExceededHandler(emitter)),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		correlationID := uuid.New().String()

		ctx := logging.AddMetaToContext(r.Context(),
			slog.String("correlationID", correlationID),
		)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"correlationID": correlationID,
		})
		logger := logging.FromContext(ctx)

		emitter.Emit(ctx, events.RequestReceived,
			slog.String("correlation_id", correlationID),
			slog.String("route", r.URL.Path),
		)

		snapshot, provenance, err := getScores(ctx)
		if err != nil {
			logger.Error("failed to get scores", "error", err.Error())

			emitter.Emit(ctx, events.RequestError,
				slog.String("correlation_id", correlationID),
				slog.String("error_kind", errorKind(err)),
				slog.Float64("total_duration", time.Since(start).Seconds()),
			)

			// The raw error never reaches the client
			writeErrorResponse(ctx, w, http.StatusInternalServerError, "Internal Server Error", correlationID)
			return
		}

		body, err := json.Marshal(scoreEntriesFromDomain(snapshot.Records))
		if err != nil {
			logger.Error("failed to marshal scores", "error", err.Error())
			reporting.Report(ctx, err)

			emitter.Emit(ctx, events.RequestError,
				slog.String("correlation_id", correlationID),
				slog.String("error_kind", "internal_error"),
				slog.Float64("total_duration", time.Since(start).Seconds()),
			)

			writeErrorResponse(ctx, w, http.StatusInternalServerError, "Internal Server Error", correlationID)
			return
		}

		emitter.Emit(ctx, events.RequestSuccess,
			slog.String("correlation_id", correlationID),
			slog.Int("item_count", len(snapshot.Records)),
			slog.String("provenance", string(provenance)),
			slog.Float64("age", time.Since(snapshot.CapturedAt).Seconds()),
			slog.Float64("total_duration", time.Since(start).Seconds()),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}

	return middleware(handler)
}
