package contentgenerator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/workspace"
)

type mockTextGenerator struct {
	requests []gemini.TextRequest
	reply    string
	err      error
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, req gemini.TextRequest) (string, error) {
	// 히스토리는 호출 시점 스냅샷으로 보관
	req.History = append([]gemini.ChatTurn(nil), req.History...)
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func newTestService() (*Service, *mockTextGenerator) {
	gen := &mockTextGenerator{reply: "안녕하세요"}
	return NewService(gen, workspace.NewManager(workspace.NewMemoryStore(time.Hour))), gen
}

func TestChat(t *testing.T) {
	ctx := context.Background()

	t.Run("빈 메시지", func(t *testing.T) {
		svc, gen := newTestService()
		_, _, err := svc.Chat(ctx, "s1", "   ")
		require.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, gen.requests)
	})

	t.Run("히스토리 누적", func(t *testing.T) {
		svc, gen := newTestService()

		history, err := svc.History(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, WelcomeMessage, history[0].Text)

		reply, history, err := svc.Chat(ctx, "s1", "상세페이지 만들어줘")
		require.NoError(t, err)
		assert.Equal(t, "안녕하세요", reply)
		assert.Len(t, history, 3)

		_, history, err = svc.Chat(ctx, "s1", "두 번째")
		require.NoError(t, err)
		assert.Len(t, history, 5)

		require.Len(t, gen.requests, 2)
		assert.Empty(t, gen.requests[0].History)
		assert.Equal(t, int32(1000), gen.requests[0].MaxOutputTokens)
		require.Len(t, gen.requests[1].History, 2)
		assert.Equal(t, "user", gen.requests[1].History[0].Role)
		assert.Equal(t, "model", gen.requests[1].History[1].Role)
	})

	t.Run("실패하면 히스토리 유지", func(t *testing.T) {
		svc, gen := newTestService()
		gen.err = errors.New("boom")
		_, _, err := svc.Chat(ctx, "s1", "hi")
		require.Error(t, err)

		history, err := svc.History(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("초기화", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.Chat(ctx, "s1", "hi")
		require.NoError(t, err)
		require.NoError(t, svc.Clear(ctx, "s1"))
		history, _ := svc.History(ctx, "s1")
		assert.Len(t, history, 1)
	})
}

func TestChatHandlers(t *testing.T) {
	svc, gen := newTestService()
	r := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	do := func(method, path, session string, body interface{}) *httptest.ResponseRecorder {
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

	assert.Equal(t, http.StatusBadRequest, do("POST", "/api/gemini/chat", "", ChatRequest{Message: "hi"}).Code)
	assert.Equal(t, http.StatusBadRequest, do("POST", "/api/gemini/chat", "s1", ChatRequest{}).Code)

	rec := do("POST", "/api/gemini/chat", "s1", ChatRequest{Message: "hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "안녕하세요", resp.Reply)

	gen.err = &gemini.GenerationError{Kind: gemini.KindNetwork, Err: errors.New("timeout")}
	rec = do("POST", "/api/gemini/chat", "s1", ChatRequest{Message: "hi"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrorMessage)

	rec = do("DELETE", "/api/gemini/chat/history", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do("GET", "/api/gemini/chat/history?session=s1", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.History, 1)
}
