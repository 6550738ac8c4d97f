package detailstorage

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/workspace"
)

type mockJSONGenerator struct {
	images [][]gemini.Image
	prompt string
	result string
	err    error
}

func (m *mockJSONGenerator) GenerateJSON(ctx context.Context, images []gemini.Image, prompt string, out interface{}) error {
	m.images = append(m.images, images)
	m.prompt = prompt
	if m.err != nil {
		return m.err
	}
	return json.Unmarshal([]byte(m.result), out)
}

func newTestService(t *testing.T) (*Service, *mockJSONGenerator, *workspace.Manager) {
	t.Helper()
	gen := &mockJSONGenerator{result: `{"productName":"Derby","upper":"천연 소가죽","intro":"timeless","careGuide":"dry"}`}
	mgr := workspace.NewManager(workspace.NewMemoryStore(time.Hour))
	svc := NewService(gen, mgr, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc, gen, mgr
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return utils.ToDataURL("image/png", buf.Bytes())
}
