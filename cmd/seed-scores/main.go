// Seeds the llm_scores table with the initial dataset. Intended for
// local development and freshly provisioned deployments.
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/Amund211/scoreboard/internal/adapters/database"
	"github.com/Amund211/scoreboard/internal/adapters/scoreprovider"
)

func main() {
	connectionString := os.Getenv("SCOREBOARD_CONNECTION_STRING")
	if connectionString == "" {
		connectionString = database.LOCAL_CONNECTION_STRING
	}

	schema := os.Getenv("SCOREBOARD_SCHEMA")
	if schema == "" {
		schema = database.MAIN_SCHEMA
	}

	db, err := database.NewPostgresDatabase(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	migrator := database.NewDatabaseMigrator(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := migrator.Migrate(ctx, schema); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	provider := scoreprovider.NewPostgres(db, schema)

	for _, score := range scoreprovider.SeedScores() {
		if err := provider.StoreScore(ctx, score); err != nil {
			log.Fatalf("Failed to store score for %q: %v", score.Model, err)
		}
		log.Printf("Stored score for %q (%s): %.1f", score.Model, score.Provider, score.Score)
	}

	log.Println("Done")
}
