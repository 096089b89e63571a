package awscloud

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type objectPutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes aggregated batch objects to a bucket. Bodies are already
// gzip-compressed NDJSON; the object metadata says so, and server-side
// encryption is requested on every write.
type S3Store struct {
	client objectPutAPI
	bucket string
}

func NewS3Store(cfg aws.Config, bucket string) *S3Store {
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(body),
		ContentType:          aws.String("application/gzip"),
		ContentEncoding:      aws.String("gzip"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
