package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of *s3.Client that S3Storage calls.
type S3Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Presigner creates presigned requests. *s3.PresignClient implements it.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ListObjectsV2Paginator matches *s3.ListObjectsV2Paginator.
type S3ListObjectsV2Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Storage reads objects from a single bucket. It is safe for concurrent use.
type S3Storage struct {
	client           S3Client
	presigner        S3Presigner
	bucket           string
	paginatorFactory func(client S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator
}

// S3Config is read from the environment.
// Bucket has no env tag: callers set it from their own constants.
type S3Config struct {
	Bucket         string
	Region         string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey      string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`                              // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // For S3-compatible services like MinIO
}

// S3Option customizes NewS3Storage.
type S3Option func(*s3Setup)

type s3Setup struct {
	client    S3Client
	presigner S3Presigner
	paginate  func(S3Client, *s3.ListObjectsV2Input) S3ListObjectsV2Paginator
}

// WithS3Client replaces the SDK client, typically with a fake in tests.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Setup) { o.client = client }
}

// WithS3Presigner sets the presigner used by PresignGet.
// Without it a presign client is derived from the S3 client when that is a *s3.Client.
func WithS3Presigner(p S3Presigner) S3Option {
	return func(o *s3Setup) { o.presigner = p }
}

// WithPaginatorFactory overrides how ListObjects pages through results.
func WithPaginatorFactory(factory func(S3Client, *s3.ListObjectsV2Input) S3ListObjectsV2Paginator) S3Option {
	return func(o *s3Setup) { o.paginate = factory }
}

// NewS3Storage returns storage bound to cfg.Bucket. Credentials come from cfg
// when both keys are set and from the default AWS chain otherwise.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	var setup s3Setup
	for _, opt := range opts {
		opt(&setup)
	}

	if setup.client == nil {
		client, err := dialS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		setup.client = client
	}
	if sdk, ok := setup.client.(*s3.Client); ok && setup.presigner == nil {
		setup.presigner = s3.NewPresignClient(sdk)
	}
	if setup.paginate == nil {
		setup.paginate = func(c S3Client, in *s3.ListObjectsV2Input) S3ListObjectsV2Paginator {
			return s3.NewListObjectsV2Paginator(c, in)
		}
	}

	return &S3Storage{
		client:           setup.client,
		presigner:        setup.presigner,
		bucket:           cfg.Bucket,
		paginatorFactory: setup.paginate,
	}, nil
}

func dialS3(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		static := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(static))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// Bucket returns the bucket name the storage reads from.
func (s *S3Storage) Bucket() string {
	return s.bucket
}

// ListObjects returns every object whose key starts with prefix, following
// pagination to the end. Backend order is preserved. Folder placeholders
// (keys ending in "/") and keys outside prefix are skipped.
func (s *S3Storage) ListObjects(ctx context.Context, prefix string) ([]Object, error) {
	clean, err := cleanKey(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, prefix)
	}
	prefix = clean

	paginator := s.paginatorFactory(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if paginator == nil {
		return nil, ErrPaginatorNil
	}

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyS3Error(err, "list objects")
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if IsPlaceholder(key) || key == prefix || !strings.HasPrefix(key, prefix) {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}

// Download streams the object body into w and returns the number of bytes written.
func (s *S3Storage) Download(ctx context.Context, key string, w io.Writer) (int64, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, key)
	}
	key = clean

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, classifyS3Error(err, "download file")
	}
	defer func() { _ = out.Body.Close() }()

	n, err := io.Copy(w, out.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, classifyS3Error(ctxErr, "download file")
		}
		return n, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return n, nil
}

// DownloadFile writes the object to localPath, replacing any existing file.
// A partially written file is removed on failure.
func (s *S3Storage) DownloadFile(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	f, err := os.OpenFile(localPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := s.Download(ctx, key, f); err != nil {
		_ = f.Close()
		_ = os.Remove(localPath)
		return err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(localPath)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

// PresignGet returns a URL that authorizes a direct GET of key for ttl.
func (s *S3Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.presigner == nil {
		return "", ErrPresignerUnavailable
	}
	clean, err := cleanKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, key)
	}
	key = clean
	if ttl <= 0 {
		return "", fmt.Errorf("%w: non-positive link ttl", ErrInvalidConfig)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", classifyS3Error(err, "presign file")
	}
	return req.URL, nil
}

// s3ErrorCodes maps S3 API error codes to package sentinels.
var s3ErrorCodes = map[string]error{
	"AccessDenied":          ErrAccessDenied,
	"InvalidAccessKeyId":    ErrAccessDenied,
	"SignatureDoesNotMatch": ErrAccessDenied,
	"RequestTimeout":        ErrRequestTimeout,
	"SlowDown":              ErrServiceUnavailable,
	"ServiceUnavailable":    ErrServiceUnavailable,
	"InternalError":         ErrServiceUnavailable,
	"InvalidObjectState":    ErrInvalidObjectState,
	"NoSuchKey":             ErrFileNotFound,
	"NotFound":              ErrFileNotFound,
	"NoSuchBucket":          ErrBucketNotFound,
}

// classifyS3Error wraps err with the sentinel matching its cause, keeping the
// original error in the chain.
func classifyS3Error(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrOperationTimeout, op, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrOperationCanceled, op, err)
	}

	var (
		noKey    *types.NoSuchKey
		noBucket *types.NoSuchBucket
		apiErr   smithy.APIError
	)
	switch {
	case errors.As(err, &noKey):
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, op, err)
	case errors.As(err, &noBucket):
		return fmt.Errorf("%w: %s: %w", ErrBucketNotFound, op, err)
	case errors.As(err, &apiErr):
		if sentinel, ok := s3ErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s: %w", sentinel, op, err)
		}
		return fmt.Errorf("%s (code %s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
