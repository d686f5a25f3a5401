package domain

import "time"

// ModelScore is a single benchmark entry for an LLM.
// Instances are immutable once fetched from the provider.
type ModelScore struct {
	Model         string
	Provider      string
	ContextWindow int
	Score         float64
}

// ScoreSnapshot is an immutable copy of the full dataset at a point in time.
//
// Records preserves the order returned by the provider at fetch time.
// Generation increases by one for every successful refresh within a process
// and never moves backward.
type ScoreSnapshot struct {
	Records    []ModelScore
	CapturedAt time.Time
	Generation uint64
}

// Age returns how long ago the snapshot was captured.
func (s ScoreSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.CapturedAt)
}
