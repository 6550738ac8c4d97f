package shoeeditor

import (
	"bytes"
	"context"
	"image"
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
	url   string
	err   error
}

func (m *mockGenerator) GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func testUpload(t *testing.T, name string, size int) model.UploadedImage {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, size, size))))
	return model.UploadedImage{Name: name, MimeType: "image/png", Base64: utils.ToDataURL("image/png", buf.Bytes())}
}

func newTestService() (*Service, *mockGenerator, *workspace.Manager) {
	gen := &mockGenerator{url: "data:image/png;base64,cmVzdWx0"}
	mgr := workspace.NewManager(workspace.NewMemoryStore(time.Hour))
	return NewService(gen, mgr), gen, mgr
}
