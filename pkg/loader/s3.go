package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// S3Config describes where message documents live in S3-compatible storage.
type S3Config struct {
	// Bucket is required.
	Bucket string `env:"S3_BUCKET"`

	// Prefix is prepended to "{locale}/{domain}.json" object keys.
	Prefix string `env:"S3_PREFIX" envDefault:"messages"`

	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is set for MinIO and other S3-compatible services.
	Endpoint  string `env:"S3_ENDPOINT"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
}

// S3API is the subset of the S3 client used by S3Loader.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader reads JSON message documents from a bucket.
type S3Loader struct {
	client S3API
	bucket string
	prefix string
}

// NewS3 creates an S3 client with static credentials and wraps it in a loader.
func NewS3(cfg S3Config) (*S3Loader, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: bucket and credentials are required", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return NewS3WithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3WithClient wraps an existing client.
func NewS3WithClient(client S3API, bucket, prefix string) *S3Loader {
	return &S3Loader{client: client, bucket: bucket, prefix: prefix}
}

// Load returns (nil, nil) when the object does not exist.
func (l *S3Loader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	if !validKey(locale, domain) {
		return nil, fmt.Errorf("%w: %q/%q", ErrInvalidKey, locale, domain)
	}

	key := l.ObjectKey(locale, domain)
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, nil
		}
		return nil, wrapS3Error(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrFetchFailed, key, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %q", ErrTooLarge, key)
	}

	messages, err := domaindb.Decode(".json", data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", key, err)
	}
	return messages, nil
}

// ObjectKey returns the object key of a locale and domain pair.
func (l *S3Loader) ObjectKey(locale, domain string) string {
	return path.Join(l.prefix, locale, domain+".json")
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// wrapS3Error maps SDK errors to sentinels, keeping the SDK message as text.
func wrapS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}

var _ domaindb.Loader = (*S3Loader)(nil)
