// Package awscloud implements the cloud collaborator interfaces against the
// AWS SDK. Each adapter talks to a narrow client interface rather than the
// concrete SDK client, so tests can stub the API surface they exercise.
package awscloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

type rdsTagAPI interface {
	ListTagsForResource(ctx context.Context, params *rds.ListTagsForResourceInput, optFns ...func(*rds.Options)) (*rds.ListTagsForResourceOutput, error)
}

type bucketTagAPI interface {
	GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
}

type domainTagAPI interface {
	ListTags(ctx context.Context, params *elasticsearchservice.ListTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.ListTagsOutput, error)
}

// TagFetcher resolves resource tags through the per-family tag APIs. Calls
// are rate limited: a cold cache on a large batch would otherwise burst
// hundreds of tag lookups at once.
type TagFetcher struct {
	rds     rdsTagAPI
	buckets bucketTagAPI
	domains domainTagAPI
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewTagFetcher builds a fetcher over SDK clients for cfg. rps bounds the
// aggregate tag-API call rate.
func NewTagFetcher(cfg aws.Config, rps float64, log *slog.Logger) *TagFetcher {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &TagFetcher{
		rds:     rds.NewFromConfig(cfg),
		buckets: s3.NewFromConfig(cfg),
		domains: elasticsearchservice.NewFromConfig(cfg),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// ResourceTags looks up the tag set for one resource. The caller (the tag
// cache) converts errors to empty tag sets; this adapter only translates
// API shapes.
func (f *TagFetcher) ResourceTags(ctx context.Context, kind domain.ResourceKind, name, locator string) (domain.TagMap, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindRDS:
		out, err := f.rds.ListTagsForResource(ctx, &rds.ListTagsForResourceInput{
			ResourceName: aws.String(locator),
		})
		if err != nil {
			return nil, fmt.Errorf("listing tags for %s: %w", locator, err)
		}
		tags := make(domain.TagMap, len(out.TagList))
		for _, tag := range out.TagList {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		return tags, nil

	case domain.KindS3:
		out, err := f.buckets.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			// A bucket with no tag set at all is untagged, not broken.
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchTagSet" {
				return domain.TagMap{}, nil
			}
			return nil, fmt.Errorf("getting tags for bucket %s: %w", name, err)
		}
		tags := make(domain.TagMap, len(out.TagSet))
		for _, tag := range out.TagSet {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		return tags, nil

	case domain.KindES:
		out, err := f.domains.ListTags(ctx, &elasticsearchservice.ListTagsInput{
			ARN: aws.String(locator),
		})
		if err != nil {
			return nil, fmt.Errorf("listing tags for %s: %w", locator, err)
		}
		tags := make(domain.TagMap, len(out.TagList))
		for _, tag := range out.TagList {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		return tags, nil
	}

	return nil, fmt.Errorf("unsupported resource kind %q", kind)
}
