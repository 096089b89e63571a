// Package usecase holds the batch transform drivers and the subscription
// provisioner: the per-invocation orchestration over the enrichment engine
// and the cloud collaborators.
package usecase

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/metrics"
	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/enrich"
)

// LogTransform drives one Firehose transformation pass over CloudWatch Logs
// records. Surviving events from all records are aggregated into a single
// compressed NDJSON object in bulk storage; the Firehose records themselves
// return empty payloads since their data now lives in that object.
type LogTransform struct {
	engine *enrich.Engine
	store  domain.BulkStore
	met    *metrics.Pipeline
	log    *slog.Logger
}

func NewLogTransform(engine *enrich.Engine, store domain.BulkStore, met *metrics.Pipeline, log *slog.Logger) *LogTransform {
	return &LogTransform{engine: engine, store: store, met: met, log: log}
}

// Handle transforms one inbound batch. The response carries exactly one
// output record per input record, in input order. A bulk storage write
// failure aborts the invocation: Ok-marked records' content exists only in
// that object, so degrading here would silently lose data.
func (t *LogTransform) Handle(ctx context.Context, event events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error) {
	resp := events.KinesisFirehoseResponse{
		Records: make([]events.KinesisFirehoseResponseRecord, 0, len(event.Records)),
	}
	var aggregated []domain.EnrichedLogEntry

	for _, rec := range event.Records {
		entries, err := t.processRecord(ctx, rec.Data)
		var out events.KinesisFirehoseResponseRecord
		switch {
		case err != nil:
			t.log.Error("record processing failed", "record_id", rec.RecordID, "error", err)
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateProcessingFailed,
				Data:     rec.Data, // preserved for reprocessing
			}
		case len(entries) == 0:
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateDropped,
				Data:     []byte{},
			}
		default:
			aggregated = append(aggregated, entries...)
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateOk,
				Data:     []byte{},
			}
		}
		t.met.RecordsTotal.WithLabelValues(out.Result).Inc()
		resp.Records = append(resp.Records, out)
	}

	if len(aggregated) > 0 {
		key := batchObjectKey(time.Now().UTC())
		body, err := encodeBatchObject(aggregated)
		if err != nil {
			return events.KinesisFirehoseResponse{}, fmt.Errorf("encoding batch object: %w", err)
		}
		if err := t.store.Put(ctx, key, body); err != nil {
			return events.KinesisFirehoseResponse{}, fmt.Errorf("writing batch object %s: %w", key, err)
		}
		t.met.BulkWritesTotal.Inc()
		t.met.BulkBytesTotal.Add(float64(len(body)))
		t.log.Info("wrote enriched log batch", "key", key, "entries", len(aggregated))
	}

	return resp, nil
}

// processRecord decompresses one record and enriches its log batches. Lines
// that fail to decode are skipped; a record-level decode failure is returned
// and fails the record, not the invocation.
func (t *LogTransform) processRecord(ctx context.Context, data []byte) ([]domain.EnrichedLogEntry, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompressing record: %w", err)
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("decompressing record: %w", err)
	}

	var entries []domain.EnrichedLogEntry
	for _, line := range bytes.Split(bytes.TrimSpace(raw), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var batch domain.LogBatch
		if err := json.Unmarshal(line, &batch); err != nil {
			t.met.EventsTotal.WithLabelValues("decode_error").Inc()
			t.log.Error("skipping undecodable log line", "error", err)
			continue
		}
		entries = append(entries, t.engine.Log(ctx, batch)...)
	}
	return entries, nil
}

// batchObjectKey buckets objects by UTC hour with a unique suffix so
// concurrent invocations cannot collide.
func batchObjectKey(now time.Time) string {
	return fmt.Sprintf("%s/batch-%s.json.gz", now.Format("2006/01/02/15"), uuid.NewString())
}

// encodeBatchObject renders entries as gzip-compressed NDJSON.
func encodeBatchObject(entries []domain.EnrichedLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	enc := json.NewEncoder(zw)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
