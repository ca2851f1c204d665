package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config configures the S3 driver.
type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

// S3 stores blobs in a bucket that is publicly served from PublicBaseURL.
type S3 struct {
	Client        *s3.Client
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

// NewS3 loads the default AWS credential chain for the configured region.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Region == "" || cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("storage: S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL are required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	return &S3{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.Bucket,
		Prefix:        strings.Trim(cfg.Prefix, "/"),
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put uploads the blob under prefix/<uuid><ext>.
func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	key := uuid.NewString() + imageExt(in.Filename)
	if s.Prefix != "" {
		key = s.Prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
		Body:   r,
	}
	if in.ContentType != "" {
		input.ContentType = &in.ContentType
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return PutResult{}, fmt.Errorf("storage: put %s: %w", key, err)
	}
	return PutResult{Key: key, URL: s.PublicBaseURL + "/" + key}, nil
}

// Delete removes an object from the bucket.
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	return err
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }
