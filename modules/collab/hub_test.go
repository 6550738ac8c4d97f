package collab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/workspace"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub("*")
	r := mux.NewRouter()
	hub.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, session, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=" + session + "&user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubBroadcast(t *testing.T) {
	hub, srv := newTestServer(t)

	a := dial(t, srv, "s1", "alice")
	msg := readMessage(t, a)
	assert.Equal(t, TypeUserJoined, msg.Type)
	assert.Equal(t, "alice", msg.UserID)

	b := dial(t, srv, "s1", "bob")
	assert.Equal(t, "bob", readMessage(t, a).UserID)
	assert.Equal(t, "bob", readMessage(t, b).UserID)

	t.Run("커서는 본인 제외", func(t *testing.T) {
		require.NoError(t, a.WriteJSON(Message{Type: TypeCursorMove, CursorX: 10, CursorY: 20}))
		got := readMessage(t, b)
		assert.Equal(t, TypeCursorMove, got.Type)
		assert.Equal(t, "alice", got.UserID)
		assert.Equal(t, "s1", got.SessionID)
		assert.Equal(t, 10.0, got.CursorX)
	})

	t.Run("워크스페이스 변경은 전체 전송", func(t *testing.T) {
		ws := workspace.New("s1")
		hub.WorkspaceListener()(ws)

		for _, conn := range []*websocket.Conn{a, b} {
			got := readMessage(t, conn)
			assert.Equal(t, TypePreviewUpdate, got.Type)
			var snapshot map[string]interface{}
			require.NoError(t, json.Unmarshal(got.Payload, &snapshot))
			assert.Equal(t, "s1", snapshot["id"])
		}
	})

	t.Run("다른 세션은 받지 않음", func(t *testing.T) {
		hub.Publish("other", Message{Type: TypePreviewUpdate})
		require.NoError(t, a.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
		_, _, err := a.ReadMessage()
		require.Error(t, err)
	})
}

func TestHubHTTP(t *testing.T) {
	hub, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws?session=s1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	conn := dial(t, srv, "s1", "alice")
	readMessage(t, conn)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	var metrics struct {
		Server struct {
			TotalSessions  int `json:"totalSessions"`
			CurrentClients int `json:"currentClients"`
		} `json:"server"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&metrics))
	resp.Body.Close()
	assert.Equal(t, 1, metrics.Server.TotalSessions)
	assert.Equal(t, 1, metrics.Server.CurrentClients)

	resp, err = http.Get(srv.URL + "/session/s1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/session/none")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 접속 중인 세션은 정리 대상이 아님
	assert.Equal(t, 0, hub.cleanupSessions(time.Now()))
	hub.mutex.Lock()
	hub.sessions["empty"] = newSession("empty")
	hub.mutex.Unlock()
	assert.Equal(t, 1, hub.cleanupSessions(time.Now()))
}

func TestHubJoin(t *testing.T) {
	hub := NewHub("*")

	t.Run("새 세션은 클라이언트와 함께 등록", func(t *testing.T) {
		c := &client{userID: "alice", send: make(chan []byte, 4)}
		s := hub.join("s1", c)

		// 등록 직후 정리가 돌아도 세션과 클라이언트 유지
		assert.Equal(t, 0, hub.cleanupSessions(time.Now()))
		hub.mutex.RLock()
		got, ok := hub.sessions["s1"]
		hub.mutex.RUnlock()
		require.True(t, ok)
		assert.Same(t, s, got)
		assert.Contains(t, s.clients, "alice")

		var msg Message
		require.NoError(t, json.Unmarshal(<-c.send, &msg))
		assert.Equal(t, TypeUserJoined, msg.Type)
	})

	t.Run("같은 사용자 재접속은 이전 연결 교체", func(t *testing.T) {
		old := &client{userID: "bob", send: make(chan []byte, 4)}
		hub.join("s2", old)
		hub.join("s2", &client{userID: "bob", send: make(chan []byte, 4)})

		<-old.send
		_, open := <-old.send
		assert.False(t, open)
		assert.Equal(t, 2, hub.metrics.TotalSessions)
		assert.Equal(t, 3, hub.metrics.TotalConnections)
	})

	t.Run("동시 접속과 정리", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				hub.join(fmt.Sprintf("c%d", i), &client{userID: "u", send: make(chan []byte, 4)})
			}()
			go func() {
				defer wg.Done()
				hub.cleanupSessions(time.Now())
			}()
		}
		wg.Wait()

		hub.mutex.RLock()
		defer hub.mutex.RUnlock()
		for i := 0; i < 20; i++ {
			s, ok := hub.sessions[fmt.Sprintf("c%d", i)]
			require.True(t, ok)
			assert.Len(t, s.clients, 1)
		}
	})
}
