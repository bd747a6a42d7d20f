package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// objectGetter is the subset of the S3 client used by S3Source
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads resources from a bucket prefix ("s3://bucket/prefix")
type S3Source struct {
	client objectGetter
	bucket string
	prefix string
}

// NewS3Source creates a source using the default AWS credential chain
func NewS3Source(ctx context.Context, location string) (*S3Source, error) {
	bucket, prefix, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newS3Source(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newS3Source(client objectGetter, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func parseS3Location(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location: %w", err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/prefix", location)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// Method returns the source type
func (s *S3Source) Method() string {
	return "s3"
}

// Fetch implements the Source interface
func (s *S3Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(s.prefix, name)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

// Cleanup implements the Source interface
func (s *S3Source) Cleanup() error {
	return nil
}
