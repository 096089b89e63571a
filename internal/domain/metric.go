package domain

import "encoding/json"

// streamMetadataKeys are metric-stream bookkeeping fields stripped from every
// metric before enrichment; they never reach the output record.
var streamMetadataKeys = []string{"metric_stream_name", "account_id", "region"}

// MetricEvent is one decoded line of a CloudWatch metric stream record. The
// fields the pipeline branches on are typed; everything else (value
// aggregates, timestamps, units) is carried opaquely and re-emitted
// unchanged.
type MetricEvent struct {
	Namespace  string
	MetricName string
	Dimensions map[string]string
	Tags       TagMap

	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a metric line, lifting out the routed fields and
// retaining the rest verbatim.
func (m *MetricEvent) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["namespace"]; ok {
		if err := json.Unmarshal(raw, &m.Namespace); err != nil {
			return err
		}
		delete(fields, "namespace")
	}
	if raw, ok := fields["metric_name"]; ok {
		if err := json.Unmarshal(raw, &m.MetricName); err != nil {
			return err
		}
		delete(fields, "metric_name")
	}
	m.Dimensions = map[string]string{}
	if raw, ok := fields["dimensions"]; ok {
		if err := json.Unmarshal(raw, &m.Dimensions); err != nil {
			return err
		}
		delete(fields, "dimensions")
	}
	m.extra = fields
	return nil
}

// MarshalJSON re-assembles the metric, including any tags attached during
// enrichment.
func (m *MetricEvent) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(m.extra)+4)
	for k, v := range m.extra {
		fields[k] = v
	}
	fields["namespace"] = m.Namespace
	fields["metric_name"] = m.MetricName
	fields["dimensions"] = m.Dimensions
	if m.Tags != nil {
		fields["Tags"] = m.Tags
	}
	return json.Marshal(fields)
}

// StripStreamMetadata removes the metric-stream bookkeeping fields.
func (m *MetricEvent) StripStreamMetadata() {
	for _, k := range streamMetadataKeys {
		delete(m.extra, k)
	}
}

// RemoveDimension deletes a dimension from the event. Used to drop ClientId
// from the final record; the removal happens after tag lookup on purpose.
func (m *MetricEvent) RemoveDimension(name string) {
	delete(m.Dimensions, name)
}
