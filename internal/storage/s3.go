package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores uploaded media and returns a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, prefix, filename, contentType string, body io.Reader) (string, error)
}

type Config struct {
	Bucket  string
	Region  string
	BaseURL string
}

// S3Uploader stores media objects in an S3 bucket.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(awscfg),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes the object under a generated key and returns its URL. The
// original filename only contributes its extension; keys never collide.
func (u *S3Uploader) Upload(ctx context.Context, prefix, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}
