package scoreprovider

import (
	"context"

	"github.com/Amund211/scoreboard/internal/domain"
)

type ScoreProvider interface {
	// GetAllScores fetches the full dataset in provider order.
	//
	// Raises domain.ErrProviderFailed if the backing store is unreachable,
	// times out, or returns malformed data. The call may be retried later
	// by the caller.
	GetAllScores(ctx context.Context) ([]domain.ModelScore, error)
}
