package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

type rdsDescribeAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// RDSSizer reports database instances' allocated storage.
type RDSSizer struct {
	client rdsDescribeAPI
}

func NewRDSSizer(cfg aws.Config) *RDSSizer {
	return &RDSSizer{client: rds.NewFromConfig(cfg)}
}

// AllocatedStorage returns the instance's allocated storage in gibibytes.
func (s *RDSSizer) AllocatedStorage(ctx context.Context, instanceID string) (int32, error) {
	out, err := s.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(instanceID),
	})
	if err != nil {
		return 0, fmt.Errorf("describing db instance %s: %w", instanceID, err)
	}
	if len(out.DBInstances) == 0 {
		return 0, fmt.Errorf("db instance %s not found", instanceID)
	}
	return aws.ToInt32(out.DBInstances[0].AllocatedStorage), nil
}
