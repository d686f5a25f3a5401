package domain

import "errors"

var (
	// ErrProviderFailed means the score provider was unreachable, timed
	// out, or returned malformed data. Callers do not get to distinguish
	// the sub-causes.
	ErrProviderFailed = errors.New("score provider failed")
)
