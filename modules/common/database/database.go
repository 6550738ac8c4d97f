package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/supabase-community/supabase-go"

	"ai-fashion-hub/modules/common/config"
)

const faceTable = "face_library"

// FaceRecord - 저장된 얼굴 인덱스 행
type FaceRecord struct {
	ID         string    `json:"id"`
	Gender     string    `json:"gender"`
	Race       string    `json:"race"`
	Age        string    `json:"age"`
	ObjectPath string    `json:"object_path"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

type Client struct {
	supabase *supabase.Client
}

// NewClient - Database 클라이언트 생성. Supabase 설정이 없으면 nil
func NewClient(cfg *config.Config) *Client {
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		log.Printf("ℹ️  [Database] Supabase not configured, face index disabled")
		return nil
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Database] Failed to create Supabase client: %v", err)
		return nil
	}

	return &Client{
		supabase: supabaseClient,
	}
}

// Supabase - 스토리지 백엔드에서 같은 연결 재사용
func (c *Client) Supabase() *supabase.Client {
	return c.supabase
}

// InsertFace - face_library에 행 추가
func (c *Client) InsertFace(ctx context.Context, rec FaceRecord) error {
	log.Printf("💾 [Database] Inserting face record: %s (%s)", rec.ID, rec.ObjectPath)

	insertData := map[string]interface{}{
		"id":          rec.ID,
		"gender":      rec.Gender,
		"race":        rec.Race,
		"age":         rec.Age,
		"object_path": rec.ObjectPath,
		"url":         rec.URL,
		"created_at":  rec.CreatedAt.UTC().Format(time.RFC3339),
	}

	_, _, err := c.supabase.From(faceTable).
		Insert(insertData, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert face record: %w", err)
	}

	log.Printf("✅ [Database] Face record created: %s", rec.ID)
	return nil
}

// ListFaces - 성별 필터(빈 값이면 전체), 최신순
func (c *Client) ListFaces(ctx context.Context, gender string) ([]FaceRecord, error) {
	query := c.supabase.From(faceTable).Select("*", "exact", false)
	if gender != "" {
		query = query.Eq("gender", gender)
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", faceTable, err)
	}

	var records []FaceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse face records: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	log.Printf("✅ [Database] Fetched %d face records", len(records))
	return records, nil
}
