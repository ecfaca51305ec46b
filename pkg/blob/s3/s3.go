// Package s3 implements blob.Store backed by Amazon S3 or any S3-compatible
// service (MinIO, Localstack).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/cubbyhole/cubby/pkg/blob"
)

// Metrics collects blob operation observations. Implementations must be safe
// for concurrent use. A nil Metrics disables collection.
type Metrics interface {
	// ObserveOperation records an S3 operation with its duration and outcome.
	// operation is the API name ("PutObject", "GetObject", "DeleteObject").
	ObserveOperation(operation string, duration time.Duration, err error)
}

// Config holds configuration for the S3 blob store.
type Config struct {
	// Bucket is the S3 bucket name. The bucket must already exist.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region (optional for S3-compatible endpoints).
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint is the S3 endpoint URL (optional, for MinIO/Localstack).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// AccessKeyID and SecretAccessKey are static credentials. When empty the
	// SDK default credential chain is used.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// KeyPrefix is prepended to all object keys. Should end with "/" if
	// non-empty.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`

	// ForcePathStyle forces path-style addressing (required for MinIO).
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style"`

	// MaxRetries is the maximum number of retry attempts for transient
	// errors. Default: 3.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// InitialBackoff is the backoff before the first retry. Default: 100ms.
	InitialBackoff time.Duration `mapstructure:"initial_backoff" yaml:"initial_backoff"`

	// MaxBackoff caps the exponential backoff. Default: 2s.
	MaxBackoff time.Duration `mapstructure:"max_backoff" yaml:"max_backoff"`
}

// Store is an S3-backed implementation of blob.Store.
type Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	retry     retryConfig
	metrics   Metrics
}

type retryConfig struct {
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewClient creates an S3 client from configuration parameters.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return client, nil
}

// New creates an S3 blob store with an existing client and verifies bucket
// access with a HeadBucket call. metrics may be nil.
func New(ctx context.Context, client *s3.Client, cfg Config, metrics Metrics) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	retry := retryConfig{
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
	if retry.maxRetries == 0 {
		retry.maxRetries = 3
	}
	if retry.initialBackoff == 0 {
		retry.initialBackoff = 100 * time.Millisecond
	}
	if retry.maxBackoff == 0 {
		retry.maxBackoff = 2 * time.Second
	}

	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		retry:     retry,
		metrics:   metrics,
	}, nil
}

// NewFromConfig creates an S3 blob store by building the client from cfg.
func NewFromConfig(ctx context.Context, cfg Config, metrics Metrics) (*Store, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(ctx, client, cfg, metrics)
}

func (s *Store) fullKey(key string) string {
	return s.keyPrefix + key
}

func (s *Store) observe(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, time.Since(start), err)
	}
}

// Put uploads data under key. Transient errors are retried with exponential
// backoff.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (err error) {
	start := time.Now()
	defer func() { s.observe("PutObject", start, err) }()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fullKey(key)),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	err = s.withRetry(ctx, func() error {
		// Rewind the body for retried attempts.
		input.Body = bytes.NewReader(data)
		_, putErr := s.client.PutObject(ctx, input)
		return putErr
	})
	if err != nil {
		return fmt.Errorf("s3 put object %q: %w", key, err)
	}
	return nil
}

// Get downloads the object under key. Returns blob.ErrObjectNotFound when the
// object does not exist.
func (s *Store) Get(ctx context.Context, key string) (rc io.ReadCloser, err error) {
	start := time.Now()
	defer func() { s.observe("GetObject", start, err) }()

	var out *s3.GetObjectOutput
	err = s.withRetry(ctx, func() error {
		var getErr error
		out, getErr = s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.fullKey(key)),
		})
		return getErr
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, blob.ErrObjectNotFound
		}
		return nil, fmt.Errorf("s3 get object %q: %w", key, err)
	}
	return out.Body, nil
}

// Delete removes the object under key. S3 DeleteObject succeeds on absent
// keys, which gives the idempotency the interface requires; a not-found error
// from stricter S3-compatible services is also tolerated.
func (s *Store) Delete(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { s.observe("DeleteObject", start, err) }()

	err = s.withRetry(ctx, func() error {
		_, delErr := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.fullKey(key)),
		})
		return delErr
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("s3 delete object %q: %w", key, err)
	}
	return nil
}

// Ping verifies the bucket is accessible.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 health check failed: %w", err)
	}
	return nil
}

// withRetry runs op, retrying transient errors with exponential backoff.
// Not-found and other permanent errors are returned immediately.
func (s *Store) withRetry(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= s.retry.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.calculateBackoff(attempt - 1)):
			}
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isRetryableError(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (s *Store) calculateBackoff(attempt int) time.Duration {
	backoff := float64(s.retry.initialBackoff)
	for i := 0; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > float64(s.retry.maxBackoff) {
		backoff = float64(s.retry.maxBackoff)
	}
	return time.Duration(backoff)
}

// isNotFoundError returns true if the error indicates the object doesn't exist.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "NoSuchKey" || code == "NotFound" || code == "404" {
			return true
		}
	}

	errStr := err.Error()
	return strings.Contains(errStr, "StatusCode: 404") ||
		strings.Contains(errStr, "NotFound") ||
		strings.Contains(errStr, "NoSuchKey")
}

// isRetryableError returns true for transient failures worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "SlowDown" || code == "RequestTimeout" ||
			code == "InternalError" || code == "ServiceUnavailable" ||
			code == "Throttling" || code == "ThrottlingException" {
			return true
		}
		if code == "NoSuchKey" || code == "NotFound" ||
			code == "AccessDenied" || code == "Forbidden" ||
			code == "InvalidRequest" {
			return false
		}
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "500")
}

var _ blob.Store = (*Store)(nil)
