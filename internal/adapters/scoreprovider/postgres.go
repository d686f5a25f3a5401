package scoreprovider

import (
	"context"
	"fmt"

	"github.com/Amund211/scoreboard/internal/domain"
	"github.com/Amund211/scoreboard/internal/logging"
	"github.com/Amund211/scoreboard/internal/reporting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("scoreboard/scoreprovider/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbScoresEntry struct {
	ModelName     string  `db:"model_name"`
	Provider      string  `db:"provider"`
	ContextWindow int     `db:"context_window"`
	Score         float64 `db:"score"`
}

func (p *Postgres) GetAllScores(ctx context.Context) ([]domain.ModelScore, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetAllScores")
	defer span.End()

	var entries []dbScoresEntry
	// The dataset is small enough that a full scan per refresh is fine.
	err := p.db.SelectContext(ctx, &entries, fmt.Sprintf(`
		SELECT model_name, provider, context_window, score
		FROM %s.llm_scores
		ORDER BY score DESC, model_name ASC`,
		pq.QuoteIdentifier(p.schema),
	))
	if err != nil {
		err := fmt.Errorf("%w: failed to select scores: %w", domain.ErrProviderFailed, err)
		logging.FromContext(ctx).Error("failed to fetch scores", "error", err.Error())
		reporting.Report(ctx, err)
		return nil, err
	}

	scores := make([]domain.ModelScore, 0, len(entries))
	for _, entry := range entries {
		scores = append(scores, domain.ModelScore{
			Model:         entry.ModelName,
			Provider:      entry.Provider,
			ContextWindow: entry.ContextWindow,
			Score:         entry.Score,
		})
	}

	return scores, nil
}

func (p *Postgres) StoreScore(ctx context.Context, score domain.ModelScore) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreScore")
	defer span.End()

	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.llm_scores (model_name, provider, context_window, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (model_name) DO UPDATE SET
			provider = EXCLUDED.provider,
			context_window = EXCLUDED.context_window,
			score = EXCLUDED.score`,
		pq.QuoteIdentifier(p.schema),
	), score.Model, score.Provider, score.ContextWindow, score.Score)
	if err != nil {
		err := fmt.Errorf("failed to store score: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"model": score.Model,
		})
		return err
	}

	return nil
}
