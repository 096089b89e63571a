package classify

import (
	"io"
	"log/slog"
	"testing"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
)

func newTestClassifier() *Classifier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	arn := naming.ARNBuilder{Partition: "aws-us-gov", Region: "us-gov-west-1", AccountID: "123456"}
	return New(naming.PrefixesFor(naming.Development), arn, logger)
}

func TestClassifierLog(t *testing.T) {
	c := newTestClassifier()

	t.Run("Matching Log Group", func(t *testing.T) {
		target, ok := c.Log(domain.LogBatch{LogGroup: "/aws/rds/instance/cg-aws-broker-dev-test/postgresql"})
		if !ok {
			t.Fatal("expected a match")
		}
		if target.Kind != domain.KindRDS {
			t.Errorf("kind: got %q", target.Kind)
		}
		if target.Name != "cg-aws-broker-dev-test" {
			t.Errorf("name: got %q", target.Name)
		}
		if want := "arn:aws-us-gov:rds:us-gov-west-1:123456:db:cg-aws-broker-dev-test"; target.Locator != want {
			t.Errorf("locator: got %q, want %q", target.Locator, want)
		}
	})

	t.Run("Wrong Environment Prefix", func(t *testing.T) {
		if _, ok := c.Log(domain.LogBatch{LogGroup: "/aws/rds/instance/cg-aws-broker-prod-x/postgresql"}); ok {
			t.Error("expected no match for another environment's resource")
		}
	})

	t.Run("Short Log Group Path", func(t *testing.T) {
		if _, ok := c.Log(domain.LogBatch{LogGroup: "/aws/lambda/foo"}); ok {
			t.Error("expected no match for non-RDS log group")
		}
	})

	t.Run("Empty Log Group", func(t *testing.T) {
		if _, ok := c.Log(domain.LogBatch{}); ok {
			t.Error("expected no match for empty log group")
		}
	})
}

func metricEvent(t *testing.T, namespace, metricName string, dims map[string]string) *domain.MetricEvent {
	t.Helper()
	return &domain.MetricEvent{Namespace: namespace, MetricName: metricName, Dimensions: dims}
}

func TestClassifierMetric(t *testing.T) {
	c := newTestClassifier()

	t.Run("RDS Instance", func(t *testing.T) {
		ev := metricEvent(t, "AWS/RDS", "CPUUtilization", map[string]string{"DBInstanceIdentifier": "cg-aws-broker-dev-a"})
		target, ok := c.Metric(ev)
		if !ok {
			t.Fatal("expected a match")
		}
		if target.Kind != domain.KindRDS || target.Name != "cg-aws-broker-dev-a" {
			t.Errorf("unexpected target: %+v", target)
		}
	})

	t.Run("Bucket By Name", func(t *testing.T) {
		ev := metricEvent(t, "AWS/S3", "BucketSizeBytes", map[string]string{"BucketName": "development-cg-data"})
		target, ok := c.Metric(ev)
		if !ok {
			t.Fatal("expected a match")
		}
		if target.Kind != domain.KindS3 || target.Locator != "development-cg-data" {
			t.Errorf("unexpected target: %+v", target)
		}
	})

	t.Run("Search Domain", func(t *testing.T) {
		ev := metricEvent(t, "AWS/ES", "FreeStorageSpace", map[string]string{"DomainName": "cg-broker-dev-idx"})
		target, ok := c.Metric(ev)
		if !ok {
			t.Fatal("expected a match")
		}
		if want := "arn:aws-us-gov:es:us-gov-west-1:123456:domain/cg-broker-dev-idx"; target.Locator != want {
			t.Errorf("locator: got %q, want %q", target.Locator, want)
		}
	})

	t.Run("Out Of Scope Bucket", func(t *testing.T) {
		ev := metricEvent(t, "AWS/S3", "BucketSizeBytes", map[string]string{"BucketName": "someone-elses-bucket"})
		if _, ok := c.Metric(ev); ok {
			t.Error("expected no match for non-prefixed bucket")
		}
	})

	t.Run("Missing Name Dimension", func(t *testing.T) {
		ev := metricEvent(t, "AWS/RDS", "CPUUtilization", map[string]string{})
		if _, ok := c.Metric(ev); ok {
			t.Error("expected no match without identifying dimension")
		}
	})

	t.Run("Unhandled Namespace", func(t *testing.T) {
		ev := metricEvent(t, "AWS/Lambda", "Invocations", map[string]string{"FunctionName": "f"})
		if _, ok := c.Metric(ev); ok {
			t.Error("expected no match for unhandled namespace")
		}
	})
}

func TestCacheKeySeparatesFamilies(t *testing.T) {
	a := Target{Kind: domain.KindS3, Locator: "development-cg-data"}
	b := Target{Kind: domain.KindES, Locator: "development-cg-data"}
	if a.CacheKey() == b.CacheKey() {
		t.Error("expected distinct cache keys per lookup family")
	}
}
