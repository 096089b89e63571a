package awscloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

type subscriptionAPI interface {
	PutSubscriptionFilter(ctx context.Context, params *cloudwatchlogs.PutSubscriptionFilterInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutSubscriptionFilterOutput, error)
}

// Subscriptions attaches delivery subscriptions to CloudWatch log groups.
type Subscriptions struct {
	client subscriptionAPI
}

func NewSubscriptions(cfg aws.Config) *Subscriptions {
	return &Subscriptions{client: cloudwatchlogs.NewFromConfig(cfg)}
}

func (s *Subscriptions) PutSubscriptionFilter(ctx context.Context, logGroup, filterName, pattern, destinationARN, roleARN string) error {
	_, err := s.client.PutSubscriptionFilter(ctx, &cloudwatchlogs.PutSubscriptionFilterInput{
		LogGroupName:   aws.String(logGroup),
		FilterName:     aws.String(filterName),
		FilterPattern:  aws.String(pattern),
		DestinationArn: aws.String(destinationARN),
		RoleArn:        aws.String(roleARN),
	})
	if err != nil {
		var exists *cwltypes.ResourceAlreadyExistsException
		if errors.As(err, &exists) {
			return fmt.Errorf("log group %s: %w", logGroup, domain.ErrSubscriptionExists)
		}
		return fmt.Errorf("putting subscription filter on %s: %w", logGroup, err)
	}
	return nil
}
