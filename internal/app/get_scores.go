package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amund211/scoreboard/internal/adapters/cache"
	"github.com/Amund211/scoreboard/internal/adapters/scoreprovider"
	"github.com/Amund211/scoreboard/internal/domain"
	"github.com/Amund211/scoreboard/internal/events"
)

// Provenance tags how a served snapshot was obtained.
type Provenance string

const (
	ProvenanceCacheHit           Provenance = "cache_hit"
	ProvenanceCacheMissRefreshed Provenance = "cache_miss_refreshed"
)

type GetScores func(ctx context.Context) (domain.ScoreSnapshot, Provenance, error)

// BuildGetScores builds the cache/fetch decision for score requests.
//
// A fresh snapshot is served from the slot without touching the provider.
// An empty or stale slot triggers a full re-fetch; on success the slot is
// replaced wholesale. On provider failure the error propagates and any
// stale snapshot is left in place for a later attempt.
func BuildGetScores(
	slot *cache.SnapshotSlot,
	provider scoreprovider.ScoreProvider,
	emitter events.Emitter,
	nowFunc func() time.Time,
	ttl time.Duration,
) GetScores {
	return func(ctx context.Context) (domain.ScoreSnapshot, Provenance, error) {
		// One timestamp per call. Re-reading the clock per check could
		// flip the freshness decision mid-call.
		now := nowFunc()

		if current, ok := slot.Current(); ok && cache.IsFresh(current, now, ttl) {
			age := current.Age(now)
			emitter.Emit(ctx, events.CacheHit, slog.Float64("age", age.Seconds()))
			metrics.cacheHits.Add(ctx, 1)
			return current, ProvenanceCacheHit, nil
		}

		records, err := provider.GetAllScores(ctx)
		if err != nil {
			// NOTE: ScoreProvider implementations handle their own error reporting
			return domain.ScoreSnapshot{}, "", fmt.Errorf("failed to refresh scores: %w", err)
		}
		fetchDuration := nowFunc().Sub(now)

		snapshot := slot.Replace(records, now)

		emitter.Emit(ctx, events.CacheMissRefreshed,
			slog.Int("item_count", len(snapshot.Records)),
			slog.Float64("fetch_duration", fetchDuration.Seconds()),
		)
		metrics.cacheMisses.Add(ctx, 1)
		metrics.fetchDuration.Record(ctx, fetchDuration.Seconds())

		return snapshot, ProvenanceCacheMissRefreshed, nil
	}
}
