package detailgenerator

import (
	"bytes"
	"context"
	"encoding/json"
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
	// failAt - n번째 이미지 호출(1부터)에서 err 반환, 0이면 매번
	failAt int
	err    error
	url    string

	jsonCalls int
	jsonOut   string
	jsonErr   error
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

func (m *mockGenerator) GenerateJSON(ctx context.Context, images []gemini.Image, prompt string, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jsonCalls++
	if m.jsonErr != nil {
		return m.jsonErr
	}
	return json.Unmarshal([]byte(m.jsonOut), out)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{10, 120, 200, 255})
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

func newTestService(t *testing.T) (*Service, *mockGenerator, *workspace.Manager) {
	t.Helper()
	gen := &mockGenerator{
		url:     utils.ToDataURL("image/png", pngBytes(t, 40, 40)),
		jsonOut: `{"productName":"Derby","upper":"천연 소가죽","intro":"timeless","careGuide":"dry"}`,
	}
	mgr := workspace.NewManager(workspace.NewMemoryStore(time.Hour))
	svc := NewService(gen, mgr)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, gen, mgr
}
