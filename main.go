package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Amund211/scoreboard/internal/adapters/cache"
	"github.com/Amund211/scoreboard/internal/adapters/database"
	"github.com/Amund211/scoreboard/internal/adapters/scoreprovider"
	"github.com/Amund211/scoreboard/internal/app"
	"github.com/Amund211/scoreboard/internal/config"
	"github.com/Amund211/scoreboard/internal/events"
	"github.com/Amund211/scoreboard/internal/logging"
	"github.com/Amund211/scoreboard/internal/ports"
	"github.com/Amund211/scoreboard/internal/reporting"
	"github.com/Amund211/scoreboard/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	instanceID := uuid.New().String()
	logHandler := slog.Handler(slog.NewJSONHandler(os.Stdout, nil))
	if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		logHandler = logging.NewGoogleCloudTracingLogHandler(logHandler, project)
	}
	logger := slog.New(logHandler).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	ctx := logging.AddToContext(context.Background(), logger)

	otelShutdown, err := telemetry.SetupOTelSDK(ctx, "scoreboard")
	if err != nil {
		fail("Failed to initialize OpenTelemetry", "error", err.Error())
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
		}
	}()

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	var db *sqlx.DB
	if !config.IsDevelopment() {
		logger.Info("Initializing database connection")
		db, err = database.NewCloudsqlPostgresDatabase(config)
		if err != nil {
			fail("Failed to initialize database connection", "error", err.Error())
		}
		logger.Info("Initialized database connection")
	}

	schemaName := database.GetSchemaName(!config.IsProduction())

	if db != nil {
		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, schemaName)
		if err != nil {
			fail("Failed to migrate database", "error", err.Error())
		}
	}

	scoreProvider, err := scoreprovider.NewPostgresOrStatic(config, db, schemaName)
	if err != nil {
		fail("Failed to initialize score provider", "error", err.Error())
	}
	logger.Info("Initialized score provider")

	snapshotSlot := cache.NewSnapshotSlot()
	emitter := events.NewSlogEmitter()

	getScores := app.BuildGetScores(snapshotSlot, scoreProvider, emitter, time.Now, config.CacheTTL())

	mux := http.NewServeMux()

	mux.HandleFunc(
		"GET /health",
		ports.MakeHealthHandler(emitter, logger.With("port", "health")),
	)

	mux.HandleFunc(
		"GET /v1/scores",
		ports.MakeGetScoresHandler(
			getScores,
			emitter,
			logger.With("port", "scores"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"/",
		ports.MakeNotFoundHandler(emitter, logger.With("port", "notfound")),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(
		fmt.Sprintf(":%s", config.Port()),
		otelhttp.NewHandler(mux, "scoreboard"),
	)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
