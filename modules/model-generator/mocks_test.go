package modelgenerator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/workspace"
)

type mockGenerator struct {
	mu    sync.Mutex
	calls []gemini.ImageRequest
	// failAt - n번째 호출(1부터)에서 err 반환
	failAt int
	err    error
	url    string
}

func (m *mockGenerator) GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil && (m.failAt == 0 || len(m.calls) == m.failAt) {
		return "", m.err
	}
	return m.url, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, name string) model.UploadedImage {
	t.Helper()
	return model.UploadedImage{
		Name:     name,
		MimeType: "image/png",
		Base64:   utils.ToDataURL("image/png", pngBytes(t, 4, 4)),
	}
}

func campaignRequest(t *testing.T, models int) CampaignRequest {
	face := upload(t, "face.png")
	req := CampaignRequest{
		Shoes: []model.UploadedImage{upload(t, "shoe1.png"), upload(t, "shoe2.png")},
		Face:  &face,
	}
	for i := 0; i < models; i++ {
		req.Models = append(req.Models, upload(t, "model.png"))
	}
	return req
}

func newTestService(t *testing.T) (*Service, *mockGenerator, *workspace.Manager) {
	t.Helper()
	gen := &mockGenerator{url: utils.ToDataURL("image/png", pngBytes(t, 30, 40))}
	mgr := workspace.NewManager(workspace.NewMemoryStore(time.Hour))
	svc := NewService(gen, mgr)
	var tick int64 = 1700000000000
	svc.now = func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}
	return svc, gen, mgr
}
