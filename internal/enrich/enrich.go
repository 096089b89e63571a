// Package enrich runs the per-event pipeline: classify, look up tags, apply
// the required-tag policy, augment. Every failure mode for a single event
// resolves to "no result" for that event; nothing here can fail a batch.
package enrich

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/metrics"
	"github.com/cloud-gov/firehose-tagger/internal/classify"
	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/tagcache"
)

// freeStorageMetric is the gauge whose records additionally carry the
// instance's allocated storage, so consumers can compute fill ratios.
const freeStorageMetric = "FreeStorageSpace"

// Engine enriches decoded events with resource ownership tags.
type Engine struct {
	classifier *classify.Classifier
	tags       *tagcache.Cache
	capacity   *tagcache.CapacityCache
	met        *metrics.Pipeline
	log        *slog.Logger
}

func New(classifier *classify.Classifier, tags *tagcache.Cache, capacity *tagcache.CapacityCache, met *metrics.Pipeline, log *slog.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		tags:       tags,
		capacity:   capacity,
		met:        met,
		log:        log,
	}
}

// Log enriches a log batch. All events in the batch share one resource, so
// tags are resolved once and fanned out. A nil result means the batch
// contributes nothing to output.
func (e *Engine) Log(ctx context.Context, batch domain.LogBatch) []domain.EnrichedLogEntry {
	target, ok := e.classifier.Log(batch)
	if !ok {
		e.met.EventsTotal.WithLabelValues("no_match").Inc()
		return nil
	}
	tags := e.tags.Get(ctx, target)
	if len(tags) == 0 {
		e.met.EventsTotal.WithLabelValues("no_tags").Inc()
		return nil
	}

	entries := make([]domain.EnrichedLogEntry, 0, len(batch.LogEvents))
	for _, ev := range batch.LogEvents {
		entries = append(entries, domain.EnrichedLogEntry{
			LogGroup:  batch.LogGroup,
			LogStream: batch.LogStream,
			Message:   ev.Message,
			Timestamp: ev.Timestamp,
			Tags:      tags,
		})
	}
	e.met.EventsTotal.WithLabelValues("enriched").Add(float64(len(entries)))
	return entries
}

// Metric enriches a metric event in place, reporting whether it survived.
// For database free-storage gauges with a usable tag set, the instance's
// allocated storage is merged in as a db_size tag; the merge operates on a
// copy so the cached base mapping stays untouched. An empty base mapping
// skips the capacity lookup entirely.
func (e *Engine) Metric(ctx context.Context, ev *domain.MetricEvent) bool {
	target, ok := e.classifier.Metric(ev)
	if !ok {
		e.met.EventsTotal.WithLabelValues("no_match").Inc()
		return false
	}
	tags := e.tags.Get(ctx, target)
	if len(tags) == 0 {
		e.met.EventsTotal.WithLabelValues("no_tags").Inc()
		return false
	}

	if target.Kind == domain.KindRDS && ev.MetricName == freeStorageMetric {
		tags = tags.Clone()
		if size := e.capacity.AllocatedStorage(ctx, target.Name); size > 0 {
			tags["db_size"] = strconv.FormatInt(int64(size), 10)
		}
	}

	ev.Tags = tags
	e.met.EventsTotal.WithLabelValues("enriched").Inc()
	return true
}
