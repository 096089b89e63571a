package domain

// LogBatch is one decoded line of a CloudWatch Logs subscription payload: a
// group of log events sharing a single log group and stream. Because every
// event in the batch concerns the same resource, tags are resolved once per
// batch and fanned out to its events.
type LogBatch struct {
	MessageType         string     `json:"messageType"`
	Owner               string     `json:"owner"`
	LogGroup            string     `json:"logGroup"`
	LogStream           string     `json:"logStream"`
	SubscriptionFilters []string   `json:"subscriptionFilters"`
	LogEvents           []LogEvent `json:"logEvents"`
}

// LogEvent is a single message within a LogBatch.
type LogEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// EnrichedLogEntry is the flattened, tag-augmented form of one log event,
// emitted as one NDJSON line of the bulk storage object.
type EnrichedLogEntry struct {
	LogGroup  string `json:"logGroup"`
	LogStream string `json:"logStream"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Tags      TagMap `json:"Tags"`
}
