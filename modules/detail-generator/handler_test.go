package detailgenerator

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
)

func newTestRouter(t *testing.T) (*mux.Router, *mockGenerator) {
	t.Helper()
	svc, gen, _ := newTestService(t)
	r := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r, gen
}

func doRequest(r http.Handler, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleDevices(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doRequest(r, "GET", "/api/detail-generator/devices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Devices []Device `json:"devices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Devices, 3)
	assert.Equal(t, 393, resp.Devices[0].Width)
	assert.Equal(t, 440, resp.Devices[2].Width)
}

func TestHandleGenerate(t *testing.T) {
	r, gen := newTestRouter(t)

	t.Run("세션 없음", func(t *testing.T) {
		rec := doRequest(r, "POST", "/api/detail-generator/generate", "", GenerateRequest{Mode: ModeFrame})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("검증 실패는 400", func(t *testing.T) {
		rec := doRequest(r, "POST", "/api/detail-generator/generate", "s1", GenerateRequest{Mode: ModeFrame})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrNoProducts.Error())

		rec = doRequest(r, "POST", "/api/detail-generator/generate", "s1", GenerateRequest{Mode: "nope", Products: []model.UploadedImage{upload(t, "1.png")}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("frame 생성", func(t *testing.T) {
		rec := doRequest(r, "POST", "/api/detail-generator/generate", "s1", GenerateRequest{
			Mode:     ModeFrame,
			Products: []model.UploadedImage{upload(t, "1.png")},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, ModeFrame, resp.Mode)
		assert.Len(t, resp.Items, 1+len(frameTemplates))
	})

	t.Run("생성 실패는 502", func(t *testing.T) {
		gen.err = &gemini.GenerationError{Kind: gemini.KindNoImageReturned}
		defer func() { gen.err = nil }()
		rec := doRequest(r, "POST", "/api/detail-generator/generate", "s1", GenerateRequest{
			Mode:     ModeStudio,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Models:   []model.UploadedImage{upload(t, "a.png")},
		})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "상세페이지 생성 실패")
		assert.Contains(t, rec.Body.String(), string(gemini.KindNoImageReturned))
	})
}

func TestHandleImport(t *testing.T) {
	r, _ := newTestRouter(t)
	doc := export.HTML([]content.Item{content.NewSection("<p>imported</p>")})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "detail.html")
		require.NoError(t, err)
		_, err = fw.Write([]byte(doc))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", "/api/detail-generator/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("X-Session-ID", "s1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ImportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "<p>imported</p>", resp.Items[0].Payload)
	})

	t.Run("text/html 본문", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/detail-generator/import", strings.NewReader(doc))
		req.Header.Set("Content-Type", "text/html")
		req.Header.Set("X-Session-ID", "s1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("HTML 아님", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/detail-generator/import?filename=a.txt", strings.NewReader("plain"))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("X-Session-ID", "s1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrNotHTML.Error())
	})

	t.Run("세션 없음", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/detail-generator/import", strings.NewReader(doc))
		req.Header.Set("Content-Type", "text/html")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
