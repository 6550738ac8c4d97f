package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
)

// SupabaseBackend - Supabase Storage 버킷
type SupabaseBackend struct {
	client     *supabase.Client
	baseURL    string
	serviceKey string
	bucket     string
}

// NewSupabaseBackend - Supabase Storage 백엔드 생성
func NewSupabaseBackend(client *supabase.Client, baseURL, serviceKey, bucket string) *SupabaseBackend {
	return &SupabaseBackend{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
	}
}

func (s *SupabaseBackend) Name() string   { return "supabase" }
func (s *SupabaseBackend) Bucket() string { return s.bucket }

func (s *SupabaseBackend) Check(ctx context.Context) error {
	if _, err := s.client.Storage.GetBucket(s.bucket); err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *SupabaseBackend) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
	if err := putObject(ctx, uploadURL, s.serviceKey, data, contentType); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}
