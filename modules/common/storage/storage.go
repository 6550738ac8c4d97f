package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"ai-fashion-hub/modules/common/config"
	"ai-fashion-hub/modules/common/database"
)

// ErrNotConfigured - 스토리지 백엔드 없음
var ErrNotConfigured = errors.New("storage backend not configured")

// Backend - 오브젝트 스토리지
type Backend interface {
	Name() string
	Bucket() string
	// Check - 버킷 접근 가능 여부
	Check(ctx context.Context) error
	// Upload - 업로드 후 공개 URL 반환
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// Status - GET /api/status 응답
type Status struct {
	Storage string `json:"storage"`
	Backend string `json:"backend,omitempty"`
	Bucket  string `json:"bucket,omitempty"`
	Error   string `json:"error,omitempty"`
}

// 스토리지 상태
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// NewBackend - 설정에 따라 백엔드 생성. none이면 (nil, nil)
func NewBackend(ctx context.Context, cfg *config.Config, db *database.Client) (Backend, error) {
	switch cfg.StorageBackend {
	case config.StorageSupabase:
		if db == nil {
			return nil, fmt.Errorf("supabase client is not available")
		}
		return NewSupabaseBackend(db.Supabase(), cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket), nil
	case config.StorageGCS:
		return NewGCSBackend(ctx, cfg.StorageBucket, cfg.GCSKeyFile)
	default:
		return nil, nil
	}
}

// CheckStatus - 버킷 상태 확인. 에러는 Status.Error에 담고 ok=false
func CheckStatus(ctx context.Context, b Backend) (Status, bool) {
	if b == nil {
		return Status{Storage: StatusDisconnected}, true
	}
	if err := b.Check(ctx); err != nil {
		log.Printf("❌ [Storage] %s bucket check failed: %v", b.Name(), err)
		return Status{Storage: StatusError, Backend: b.Name(), Bucket: b.Bucket(), Error: err.Error()}, false
	}
	return Status{Storage: StatusConnected, Backend: b.Name(), Bucket: b.Bucket()}, true
}

// UploadWebP - 이미지를 WebP로 변환 후 dir 아래에 업로드. (객체 경로, 공개 URL)
func UploadWebP(ctx context.Context, b Backend, imageData []byte, dir string, convertToWebP func([]byte, float32) ([]byte, error)) (string, string, error) {
	if b == nil {
		return "", "", ErrNotConfigured
	}

	webpData, err := convertToWebP(imageData, 90.0)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert image to WebP: %w", err)
	}

	fileName := fmt.Sprintf("%d_%s.webp", time.Now().UnixMilli(), uuid.NewString()[:8])
	objectPath := fmt.Sprintf("%s/%s", dir, fileName)

	log.Printf("📤 [Storage] Uploading WebP image: %s (%d bytes)", objectPath, len(webpData))
	url, err := b.Upload(ctx, objectPath, webpData, "image/webp")
	if err != nil {
		return "", "", err
	}

	log.Printf("✅ [Storage] Uploaded: %s", url)
	return objectPath, url, nil
}

// Download - URL에서 이미지 다운로드 (JPEG 내보내기 등)
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to download image: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// putObject - Authorization 헤더와 함께 POST 업로드
func putObject(ctx context.Context, uploadURL, token string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
