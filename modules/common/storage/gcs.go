package storage

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

// GCSBackend - Google Cloud Storage 버킷
type GCSBackend struct {
	service *gcs.Service
	bucket  string
}

// NewGCSBackend - keyFile이 비어있으면 기본 자격 증명 사용
func NewGCSBackend(ctx context.Context, bucket, keyFile string) (*GCSBackend, error) {
	var opts []option.ClientOption
	if keyFile != "" {
		opts = append(opts, option.WithCredentialsFile(keyFile))
	}
	service, err := gcs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSBackend{service: service, bucket: bucket}, nil
}

func (g *GCSBackend) Name() string   { return "gcs" }
func (g *GCSBackend) Bucket() string { return g.bucket }

func (g *GCSBackend) Check(ctx context.Context) error {
	if _, err := g.service.Buckets.Get(g.bucket).Context(ctx).Do(); err != nil {
		return fmt.Errorf("bucket %s: %w", g.bucket, err)
	}
	return nil
}

func (g *GCSBackend) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	obj := &gcs.Object{Name: objectPath, ContentType: contentType}
	if _, err := g.service.Objects.Insert(g.bucket, obj).Media(bytes.NewReader(data)).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objectPath), nil
}
