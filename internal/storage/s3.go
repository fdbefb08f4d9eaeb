package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store keeps blobs in an S3-compatible bucket (AWS or MinIO). References
// are object keys; URL returns a short-lived presigned GET so the bucket can
// stay private.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// S3Options carries the bucket coordinates. Endpoint is optional and only
// needed for non-AWS deployments such as MinIO.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Store builds a client for the given bucket.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey, opts.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, presign: s3.NewPresignClient(client), bucket: opts.Bucket}, nil
}

// objectKey spreads uploads by date so bucket listings stay manageable.
func objectKey(name string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%s%s", d.Year(), d.Month(), uuid.NewString(), filepath.Ext(name))
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := objectKey(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return key, nil
}

func (s *S3Store) URL(ctx context.Context, ref string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &ref,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", ref, err)
	}
	return req.URL, nil
}
