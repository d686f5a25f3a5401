package app

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type appMetricsCollection struct {
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

var metrics appMetricsCollection

func init() {
	const name = "scoreboard/app"
	meter := otel.Meter(name)

	cacheHits, err := meter.Int64Counter(
		"app/cache_hit_count",
		metric.WithDescription("Requests served from the snapshot slot"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create cache hit metric: %w", err))
	}

	cacheMisses, err := meter.Int64Counter(
		"app/cache_miss_count",
		metric.WithDescription("Requests that triggered a refresh from the score provider"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create cache miss metric: %w", err))
	}

	fetchDuration, err := meter.Float64Histogram(
		"app/fetch_duration_seconds",
		metric.WithDescription("Time spent fetching the full dataset from the score provider"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create fetch duration metric: %w", err))
	}

	metrics = appMetricsCollection{
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
		fetchDuration: fetchDuration,
	}
}
