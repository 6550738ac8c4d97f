package facelibrary

import (
	"context"
	"sync"

	"ai-fashion-hub/modules/common/database"
	"ai-fashion-hub/modules/common/gemini"
)

type mockGenerator struct {
	mu    sync.Mutex
	calls []gemini.ImageRequest
	// generateFunc - nil이면 고정 URL
	generateFunc func(req gemini.ImageRequest) (string, error)
}

func (m *mockGenerator) GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(req)
	}
	return "data:image/png;base64,ZmFjZQ==", nil
}

type mockIndex struct {
	inserted []database.FaceRecord
	err      error
}

func (m *mockIndex) InsertFace(ctx context.Context, rec database.FaceRecord) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, rec)
	return nil
}

func (m *mockIndex) ListFaces(ctx context.Context, gender string) ([]database.FaceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []database.FaceRecord
	for _, rec := range m.inserted {
		if gender == "" || rec.Gender == gender {
			out = append(out, rec)
		}
	}
	return out, nil
}

type mockBackend struct {
	uploads map[string][]byte
}

func (m *mockBackend) Name() string                    { return "mock" }
func (m *mockBackend) Bucket() string                  { return "faces-bucket" }
func (m *mockBackend) Check(ctx context.Context) error { return nil }

func (m *mockBackend) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	m.uploads[objectPath] = data
	return "https://cdn.example.com/" + objectPath, nil
}

func fakeWebP(data []byte, quality float32) ([]byte, error) {
	return append([]byte("WEBP"), data...), nil
}
