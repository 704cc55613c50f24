package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dinesafe/dinesafe/internal/models"
)

// S3Source reads the catalog document from an S3 object.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

func NewS3Source(ctx context.Context, region, bucket, key string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Source{client: s3.NewFromConfig(cfg), bucket: bucket, key: key}, nil
}

func (s *S3Source) Load(ctx context.Context) (*models.Catalog, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch catalog from s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read catalog object body: %w", err)
	}
	return Parse(data)
}
