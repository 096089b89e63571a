package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/metrics"
	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/enrich"
)

// clientIDDimension is stripped from emitted metric records. The removal
// happens after tag lookup, so the dimension still participates in
// classification.
const clientIDDimension = "ClientId"

// MetricTransform drives one Firehose transformation pass over metric stream
// records. Unlike the log pipeline there is no shared side effect: each
// record's surviving metrics become that record's own NDJSON payload.
type MetricTransform struct {
	engine *enrich.Engine
	met    *metrics.Pipeline
	log    *slog.Logger
}

func NewMetricTransform(engine *enrich.Engine, met *metrics.Pipeline, log *slog.Logger) *MetricTransform {
	return &MetricTransform{engine: engine, met: met, log: log}
}

// Handle transforms one inbound batch, returning one output record per input
// record in input order.
func (t *MetricTransform) Handle(ctx context.Context, event events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error) {
	resp := events.KinesisFirehoseResponse{
		Records: make([]events.KinesisFirehoseResponseRecord, 0, len(event.Records)),
	}

	for _, rec := range event.Records {
		payload, survivors, err := t.processRecord(ctx, rec.Data)
		var out events.KinesisFirehoseResponseRecord
		switch {
		case err != nil:
			t.log.Error("record processing failed", "record_id", rec.RecordID, "error", err)
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateProcessingFailed,
				Data:     rec.Data,
			}
		case survivors == 0:
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateDropped,
				Data:     rec.Data, // original payload unchanged
			}
		default:
			out = events.KinesisFirehoseResponseRecord{
				RecordID: rec.RecordID,
				Result:   events.KinesisFirehoseTransformedStateOk,
				Data:     payload,
			}
		}
		t.met.RecordsTotal.WithLabelValues(out.Result).Inc()
		resp.Records = append(resp.Records, out)
		t.log.Debug("processed metric record", "record_id", rec.RecordID, "survivors", survivors)
	}

	return resp, nil
}

// processRecord splits one record into metric lines, enriches each, and
// renders survivors as uncompressed NDJSON.
func (t *MetricTransform) processRecord(ctx context.Context, data []byte) ([]byte, int, error) {
	var buf bytes.Buffer
	survivors := 0
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var ev domain.MetricEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			t.met.EventsTotal.WithLabelValues("decode_error").Inc()
			t.log.Error("skipping undecodable metric line", "error", err)
			continue
		}
		ev.StripStreamMetadata()
		if !t.engine.Metric(ctx, &ev) {
			continue
		}
		ev.RemoveDimension(clientIDDimension)

		encoded, err := json.Marshal(&ev)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding enriched metric: %w", err)
		}
		buf.Write(encoded)
		buf.WriteByte('\n')
		survivors++
	}
	return buf.Bytes(), survivors, nil
}
