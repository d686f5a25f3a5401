package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Amund211/scoreboard/internal/domain"
)

// SnapshotSlot holds at most one dataset snapshot for the lifetime of the
// process. The slot is owned by this process alone and is never shared
// across instances.
//
// net/http may serve overlapping requests, so Replace must be atomic with
// respect to concurrent Current calls. The read path is a single pointer
// load to keep cache hits cheap; the mutex is only taken on the write path.
type SnapshotSlot struct {
	current atomic.Pointer[domain.ScoreSnapshot]

	// Guards generation assignment and publication as one step. With two
	// separate atomics a preempted writer could publish an older generation
	// after a newer one, letting readers observe the generation move
	// backward.
	mutex      sync.Mutex
	generation uint64
}

func NewSnapshotSlot() *SnapshotSlot {
	return &SnapshotSlot{}
}

// Current returns the stored snapshot, if any. It makes no freshness
// judgement of its own.
func (s *SnapshotSlot) Current() (domain.ScoreSnapshot, bool) {
	snap := s.current.Load()
	if snap == nil {
		return domain.ScoreSnapshot{}, false
	}
	return *snap, true
}

// Replace swaps in a new snapshot built from the given records, assigning
// the next generation number. Full replacement only, no merge semantics.
func (s *SnapshotSlot) Replace(records []domain.ModelScore, capturedAt time.Time) domain.ScoreSnapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.generation++
	snap := domain.ScoreSnapshot{
		Records:    records,
		CapturedAt: capturedAt,
		Generation: s.generation,
	}
	s.current.Store(&snap)
	return snap
}

// IsFresh reports whether the snapshot may still be served at the given
// time. A TTL of zero disqualifies every snapshot, which disables caching.
func IsFresh(snap domain.ScoreSnapshot, now time.Time, ttl time.Duration) bool {
	return now.Sub(snap.CapturedAt) < ttl
}
