package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline holds all Prometheus metrics for the transform pipelines.
type Pipeline struct {
	RecordsTotal    *prometheus.CounterVec
	EventsTotal     *prometheus.CounterVec
	TagCacheHits    prometheus.Counter
	TagCacheMisses  prometheus.Counter
	TagFetchErrors  prometheus.Counter
	BulkBytesTotal  prometheus.Counter
	BulkWritesTotal prometheus.Counter
}

// New initializes and registers the pipeline metrics against reg. Tests pass
// a fresh registry so construction stays repeatable.
func New(reg prometheus.Registerer) *Pipeline {
	factory := promauto.With(reg)
	return &Pipeline{
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "transform",
			Name:      "records_total",
			Help:      "Total number of transformed records by disposition.",
		}, []string{"result"}), // result: Ok, Dropped, ProcessingFailed
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "transform",
			Name:      "events_total",
			Help:      "Total number of decoded events by outcome.",
		}, []string{"outcome"}), // outcome: enriched, no_match, no_tags, decode_error
		TagCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "tagcache",
			Name:      "hits_total",
			Help:      "Total number of tag cache hits.",
		}),
		TagCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "tagcache",
			Name:      "misses_total",
			Help:      "Total number of tag cache misses.",
		}),
		TagFetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "tagcache",
			Name:      "fetch_errors_total",
			Help:      "Total number of tag lookups that failed and were converted to empty tag sets.",
		}),
		BulkBytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "bulkstore",
			Name:      "bytes_total",
			Help:      "Total compressed bytes written to bulk storage.",
		}),
		BulkWritesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firehose_tagger",
			Subsystem: "bulkstore",
			Name:      "writes_total",
			Help:      "Total number of bulk storage objects written.",
		}),
	}
}
