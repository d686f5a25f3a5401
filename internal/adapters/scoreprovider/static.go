package scoreprovider

import (
	"context"
	"fmt"
	"slices"

	"github.com/Amund211/scoreboard/internal/config"
	"github.com/Amund211/scoreboard/internal/domain"
	"github.com/jmoiron/sqlx"
)

// staticProvider serves a fixed dataset from memory. Used in development
// where no database is available.
type staticProvider struct {
	scores []domain.ModelScore
}

func (s *staticProvider) GetAllScores(ctx context.Context) ([]domain.ModelScore, error) {
	return slices.Clone(s.scores), nil
}

func NewStaticProvider() ScoreProvider {
	return &staticProvider{
		scores: SeedScores(),
	}
}

// SeedScores returns the initial dataset loaded into new deployments.
func SeedScores() []domain.ModelScore {
	return []domain.ModelScore{
		{Model: "Claude 3 Opus", Provider: "Anthropic", ContextWindow: 200_000, Score: 96.0},
		{Model: "GPT-4", Provider: "OpenAI", ContextWindow: 128_000, Score: 95.5},
		{Model: "Gemini 1.5 Pro", Provider: "Google", ContextWindow: 1_000_000, Score: 94.8},
		{Model: "Llama 3 70B", Provider: "Meta", ContextWindow: 8_192, Score: 89.5},
	}
}

func NewPostgresOrStatic(conf config.Config, db *sqlx.DB, schema string) (ScoreProvider, error) {
	if db != nil {
		return NewPostgres(db, schema), nil
	}
	if conf.IsDevelopment() {
		return NewStaticProvider(), nil
	}
	return nil, fmt.Errorf("missing database connection in non-development environment")
}
