package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// S3Client is the subset of the S3 API used by S3Store.
// *s3.Client satisfies it.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Config configures an S3 client for Amazon S3 or a compatible service
// such as MinIO or R2.
type S3Config struct {
	Region   string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// UsePathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint. Most self-hosted services need it.
	UsePathStyle bool `yaml:"use_path_style,omitempty" json:"use_path_style,omitempty"`

	// AccessKeyID and SecretAccessKey default to AWS_ACCESS_KEY_ID and
	// AWS_SECRET_ACCESS_KEY.
	AccessKeyID     string `yaml:"access_key_id,omitempty" json:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" json:"-"`
}

// NewS3Client builds an *s3.Client from cfg. Region defaults to AWS_REGION,
// then us-east-1.
func NewS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}
	keyID, secret := cfg.AccessKeyID, cfg.SecretAccessKey
	if keyID == "" {
		keyID = os.Getenv("AWS_ACCESS_KEY_ID")
		secret = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if keyID != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     keyID,
					SecretAccessKey: secret,
					Source:          "flexbuf",
				}, nil
			}))
	}
	return s3.New(opts)
}

// S3Store implements FileStore on an S3 bucket. Paths map to object keys
// under an optional prefix.
type S3Store struct {
	client S3Client
	bucket string
	prefix string
	limit  buffer.Config
}

// NewS3 creates an S3-backed FileStore. Pass "" for no prefix.
func NewS3(client S3Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// WithLimit sets the buffer configuration used to stage uploads. Objects
// larger than its maximum size cannot be written.
func (s *S3Store) WithLimit(cfg buffer.Config) *S3Store {
	s.limit = cfg
	return s
}

func (s *S3Store) key(p string) string {
	if s.prefix == "" {
		return p
	}
	return path.Join(s.prefix, p)
}

// Read returns the body of the object. A missing key yields an error
// wrapping os.ErrNotExist.
func (s *S3Store) Read(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("storage: read s3://%s/%s: %w", s.bucket, s.key(p), os.ErrNotExist)
		}
		return nil, err
	}
	return out.Body, nil
}

// Write stages data in a FlexBuffer and uploads it with a single PutObject
// when the writer is closed, so the body is seekable with a known length.
func (s *S3Store) Write(ctx context.Context, p string) (io.WriteCloser, error) {
	cfg := s.limit
	buf := buffer.NewFlex(&cfg)
	// A slow producer must not lose staged data to the idle shrink.
	buf.Close()
	return &s3Writer{ctx: ctx, store: s, key: s.key(p), buf: buf}, nil
}

func (s *S3Store) Delete(ctx context.Context, p string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	return err
}

func (s *S3Store) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// s3Writer collects an object's content and uploads it on Close.
type s3Writer struct {
	ctx    context.Context
	store  *S3Store
	key    string
	buf    *buffer.FlexBuffer
	closed bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("storage: write to closed s3 writer")
	}
	return w.buf.Write(p)
}

// Close uploads the staged content.
func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	data := w.buf.Bytes()
	_, err := w.store.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.store.bucket),
		Key:           aws.String(w.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("storage: put s3://%s/%s: %w", w.store.bucket, w.key, err)
	}
	return nil
}

// isS3NotFound reports whether err indicates the object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

var _ FileStore = (*S3Store)(nil)
