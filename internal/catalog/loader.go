package catalog

import (
	"context"
	"fmt"

	"seektam-backend/internal/components/assert"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/scrapers/koreafood"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("seektam.internal.catalog")

const (
	report_loader_foods_seen  = "loader.foods-seen"
	report_loader_foods_added = "loader.foods-added"
)

type LoadStats struct {
	FoodsSeen  int
	FoodsAdded int
}

// Loader scrapes the whole source site into the store.
type Loader struct {
	client     *koreafood.Client
	store      Store
	normalizer Normalizer
	tel        telemetry.API
}

// NewLoader normalizes aliments with the policy of the store.
func NewLoader(client *koreafood.Client, store Store, tel telemetry.API) Loader {
	assert.NotNil(client)
	assert.NotNil(tel)

	return Loader{
		client:     client,
		store:      store,
		normalizer: Normalizer{Policy: store.Policy()},
		tel:        telemetry.NewScopedAPI("catalog_loader", tel),
	}
}

// Run walks every food of the listing and persists it, the first scrape,
// parse or database error stops the run. Stats are still returned for
// whatever was loaded before that.
func (l Loader) Run(ctx context.Context) (LoadStats, error) {
	ctx, span := tracer.Start(ctx, "Loader.Run")
	defer span.End()

	var stats LoadStats
	defer func() {
		l.tel.ReportCount(report_loader_foods_seen, int64(stats.FoodsSeen))
		l.tel.ReportCount(report_loader_foods_added, int64(stats.FoodsAdded))
		span.SetAttributes(
			attribute.Int("foods_seen", stats.FoodsSeen),
			attribute.Int("foods_added", stats.FoodsAdded),
		)
	}()

	err := l.store.EnsureSchema(ctx)
	if err != nil {
		return stats, fmt.Errorf("create schema: %w", err)
	}

	pipeline := koreafood.NewPipeline(l.client)
	for pipeline.Next(ctx) {
		record := pipeline.Record()
		stats.FoodsSeen++

		added, err := l.load(ctx, record)
		if err != nil {
			span.RecordError(err)
			return stats, err
		}
		if added {
			stats.FoodsAdded++
		}
	}

	err = pipeline.Err()
	if err != nil {
		span.RecordError(err)
		return stats, fmt.Errorf("scrape: %w", err)
	}
	return stats, nil
}

func (l Loader) load(ctx context.Context, record koreafood.FoodRecord) (bool, error) {
	ctx, span := tracer.Start(ctx, "Loader.load", trace.WithAttributes(
		attribute.String("food", record.Name),
		attribute.String("code", record.Code),
	))
	defer span.End()

	food, aliments, err := l.normalizer.ToPersistable(ctx, record, l.store.Lookup)
	if err != nil {
		return false, fmt.Errorf("normalize: %w", err)
	}
	added, err := l.store.Persist(ctx, food, aliments)
	if err != nil {
		return false, fmt.Errorf("persist: %w", err)
	}
	return added, nil
}
