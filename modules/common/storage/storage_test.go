package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	checkErr error
	uploads  map[string][]byte
}

func (f *fakeBackend) Name() string   { return "fake" }
func (f *fakeBackend) Bucket() string { return "bucket" }

func (f *fakeBackend) Check(ctx context.Context) error { return f.checkErr }

func (f *fakeBackend) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[objectPath] = data
	return "https://cdn.example.com/" + objectPath, nil
}

func TestCheckStatus(t *testing.T) {
	ctx := context.Background()

	st, ok := CheckStatus(ctx, nil)
	assert.True(t, ok)
	assert.Equal(t, StatusDisconnected, st.Storage)

	st, ok = CheckStatus(ctx, &fakeBackend{})
	assert.True(t, ok)
	assert.Equal(t, Status{Storage: StatusConnected, Backend: "fake", Bucket: "bucket"}, st)

	st, ok = CheckStatus(ctx, &fakeBackend{checkErr: errors.New("forbidden")})
	assert.False(t, ok)
	assert.Equal(t, StatusError, st.Storage)
	assert.Contains(t, st.Error, "forbidden")
}

func TestUploadWebP(t *testing.T) {
	ctx := context.Background()
	convert := func(data []byte, q float32) ([]byte, error) { return append([]byte("webp:"), data...), nil }

	_, _, err := UploadWebP(ctx, nil, []byte("x"), "faces", convert)
	require.ErrorIs(t, err, ErrNotConfigured)

	b := &fakeBackend{}
	path, url, err := UploadWebP(ctx, b, []byte("png"), "faces/female", convert)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "faces/female/"))
	assert.True(t, strings.HasSuffix(path, ".webp"))
	assert.Equal(t, "https://cdn.example.com/"+path, url)
	assert.Equal(t, []byte("webp:png"), b.uploads[path])

	_, _, err = UploadWebP(ctx, b, []byte("png"), "faces", func([]byte, float32) ([]byte, error) {
		return nil, errors.New("bad image")
	})
	require.Error(t, err)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	data, err := Download(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	_, err = Download(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSupabaseUpload(t *testing.T) {
	var gotPath, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewSupabaseBackend(nil, srv.URL+"/", "service-key", "assets")
	url, err := b.Upload(context.Background(), "faces/a.webp", []byte("data"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/assets/faces/a.webp", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "image/webp", gotType)
	assert.Equal(t, "data", gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/assets/faces/a.webp", url)
}
