// Package classify maps decoded events to the cloud resource they concern.
// Classification is deliberately fallible: an event that is not attributable
// to a managed resource in the active environment yields no match, which the
// caller treats as a drop, never an error.
package classify

import (
	"log/slog"
	"strings"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
)

// Namespace is the closed set of metric namespaces the pipeline understands.
// Anything else is surfaced as an unhandled namespace so coverage gaps are
// visible to operators instead of silently matching nothing.
type Namespace string

const (
	NamespaceS3  Namespace = "AWS/S3"
	NamespaceES  Namespace = "AWS/ES"
	NamespaceRDS Namespace = "AWS/RDS"
)

// ParseNamespace reports whether s is a handled metric namespace.
func ParseNamespace(s string) (Namespace, bool) {
	switch Namespace(s) {
	case NamespaceS3, NamespaceES, NamespaceRDS:
		return Namespace(s), true
	}
	return "", false
}

// logGroupResourceSegment is the fixed path position of the resource name in
// an RDS log group, e.g. /aws/rds/instance/<name>/postgresql.
const logGroupResourceSegment = 4

// resourceFromLogGroup extracts the resource name from a log group path.
func resourceFromLogGroup(group string) (string, bool) {
	parts := strings.Split(group, "/")
	if len(parts) <= logGroupResourceSegment || parts[logGroupResourceSegment] == "" {
		return "", false
	}
	return parts[logGroupResourceSegment], true
}

// Target identifies the resource an event concerns, ready for tag lookup.
type Target struct {
	Kind    domain.ResourceKind
	Name    string
	Locator string
}

// CacheKey returns the tag cache key for the target. The kind participates
// because the bucket family is located by bare name, which is not globally
// unique across lookup families.
func (t Target) CacheKey() string {
	return string(t.Kind) + ":" + t.Locator
}

// Classifier derives tag-lookup targets from decoded events, scoped to one
// environment's resource prefixes.
type Classifier struct {
	prefixes naming.Prefixes
	arn      naming.ARNBuilder
	log      *slog.Logger
}

func New(prefixes naming.Prefixes, arn naming.ARNBuilder, log *slog.Logger) *Classifier {
	return &Classifier{prefixes: prefixes, arn: arn, log: log}
}

// Log classifies a CloudWatch log batch. Only RDS instance log groups
// belonging to the active environment match.
func (c *Classifier) Log(batch domain.LogBatch) (Target, bool) {
	name, ok := resourceFromLogGroup(batch.LogGroup)
	if !ok {
		c.log.Debug("log group is not resource-attributable", "log_group", batch.LogGroup)
		return Target{}, false
	}
	if !strings.HasPrefix(name, c.prefixes.RDS) {
		c.log.Debug("log group resource is out of scope for this environment", "resource", name)
		return Target{}, false
	}
	return Target{Kind: domain.KindRDS, Name: name, Locator: c.arn.RDSInstance(name)}, true
}

// Metric classifies a metric event by namespace. An unhandled namespace is
// logged at error level: it means the enrichment coverage is incomplete and
// someone needs to extend the pipeline.
func (c *Classifier) Metric(ev *domain.MetricEvent) (Target, bool) {
	ns, ok := ParseNamespace(ev.Namespace)
	if !ok {
		c.log.Error("unhandled metric namespace, extend the pipeline to cover it",
			"namespace", ev.Namespace, "metric_name", ev.MetricName)
		return Target{}, false
	}

	switch ns {
	case NamespaceS3:
		name := ev.Dimensions["BucketName"]
		if name == "" || !strings.HasPrefix(name, c.prefixes.S3) {
			return Target{}, false
		}
		// Buckets are looked up by name, so the name is also the locator.
		return Target{Kind: domain.KindS3, Name: name, Locator: name}, true
	case NamespaceES:
		name := ev.Dimensions["DomainName"]
		if name == "" || !strings.HasPrefix(name, c.prefixes.Domain) {
			return Target{}, false
		}
		return Target{Kind: domain.KindES, Name: name, Locator: c.arn.ESDomain(name)}, true
	case NamespaceRDS:
		name := ev.Dimensions["DBInstanceIdentifier"]
		if name == "" || !strings.HasPrefix(name, c.prefixes.RDS) {
			return Target{}, false
		}
		return Target{Kind: domain.KindRDS, Name: name, Locator: c.arn.RDSInstance(name)}, true
	}
	return Target{}, false
}
