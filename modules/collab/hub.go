package collab

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// 메시지 타입
const (
	TypeUserJoined    = "user_joined"
	TypeUserLeft      = "user_left"
	TypeCursorMove    = "cursor_move"
	TypeSelection     = "user_selection"
	TypeRequestState  = "request_preview_state"
	TypePreviewUpdate = "preview_update"
)

// Message - 세션 내 클라이언트 간 메시지
type Message struct {
	Type      string                 `json:"type"`
	SessionID string                 `json:"sessionId"`
	UserID    string                 `json:"userId,omitempty"`
	UserInfo  map[string]interface{} `json:"userInfo,omitempty"`
	ItemIDs   []string               `json:"itemIds,omitempty"`
	CursorX   float64                `json:"cursorX,omitempty"`
	CursorY   float64                `json:"cursorY,omitempty"`
	// Payload - preview_update 시 워크스페이스 스냅샷
	Payload json.RawMessage `json:"payload,omitempty"`
}

// client - 연결된 클라이언트
type client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// session - 같은 워크스페이스를 보는 클라이언트 묶음
type session struct {
	id           string
	clients      map[string]*client
	mutex        sync.Mutex
	createdAt    time.Time
	lastActivity time.Time
}

// Metrics - 서버 메트릭
type Metrics struct {
	TotalSessions    int       `json:"totalSessions"`
	ActiveSessions   int       `json:"activeSessions"`
	TotalConnections int       `json:"totalConnections"`
	StartTime        time.Time `json:"startTime"`
}

// Hub - 세션별 WebSocket 클라이언트 관리
type Hub struct {
	upgrader websocket.Upgrader

	sessions map[string]*session
	mutex    sync.RWMutex

	metrics      Metrics
	metricsMutex sync.Mutex
}

// NewHub - allowedOrigin이 "*" 또는 빈 값이면 모든 origin 허용
func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
		sessions: make(map[string]*session),
		metrics:  Metrics{StartTime: time.Now()},
	}
}

func newSession(id string) *session {
	now := time.Now()
	return &session{
		id:           id,
		clients:      make(map[string]*client),
		createdAt:    now,
		lastActivity: now,
	}
}

// join - 세션 생성(없으면)과 클라이언트 등록을 허브 잠금 안에서 함께 처리
// cleanupSessions가 그 사이에 빈 세션을 지우지 못함
func (h *Hub) join(id string, c *client) *session {
	h.mutex.Lock()
	s, exists := h.sessions[id]
	if !exists {
		s = newSession(id)
		h.sessions[id] = s
	}
	s.mutex.Lock()
	if old, ok := s.clients[c.userID]; ok {
		close(old.send)
	}
	s.clients[c.userID] = c
	s.lastActivity = time.Now()
	count := len(s.clients)
	s.mutex.Unlock()
	h.mutex.Unlock()

	h.metricsMutex.Lock()
	if !exists {
		h.metrics.TotalSessions++
		h.metrics.ActiveSessions++
	}
	h.metrics.TotalConnections++
	h.metricsMutex.Unlock()

	if !exists {
		log.Printf("✅ [Collab] Created new session: %s", id)
	}
	log.Printf("👤 [Collab] Client %s joined session %s (Clients: %d)", c.userID, id, count)
	s.broadcast(Message{Type: TypeUserJoined, SessionID: id, UserID: c.userID}, "")
	return s
}

func (h *Hub) removeClient(s *session, c *client) {
	s.mutex.Lock()
	current, exists := s.clients[c.userID]
	if exists && current == c {
		close(c.send)
		delete(s.clients, c.userID)
		s.lastActivity = time.Now()
	}
	remaining := len(s.clients)
	s.mutex.Unlock()

	if exists && current == c {
		log.Printf("👋 [Collab] Client %s left session %s (Remaining: %d)", c.userID, s.id, remaining)
		s.broadcast(Message{Type: TypeUserLeft, SessionID: s.id, UserID: c.userID}, c.userID)
	}
}

// broadcast - except를 제외한 모든 클라이언트에게 전송 (except가 빈 값이면 전체)
// 버퍼가 가득 찬 클라이언트는 끊음
func (s *session) broadcast(message Message, except string) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ [Collab] Error marshaling message: %v", err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for userID, c := range s.clients {
		if userID == except {
			continue
		}
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(s.clients, userID)
		}
	}
}

// Publish - 서버 측 이벤트를 세션 전체에 전송. 접속자가 없으면 무시
func (h *Hub) Publish(sessionID string, message Message) {
	h.mutex.RLock()
	s, ok := h.sessions[sessionID]
	h.mutex.RUnlock()
	if !ok {
		return
	}
	message.SessionID = sessionID
	s.broadcast(message, "")
}

// HandleWebSocket - GET /ws?session=&user=
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	userID := r.URL.Query().Get("user")
	if sessionID == "" || userID == "" {
		http.Error(w, "session and user are required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Collab] WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 256),
	}
	s := h.join(sessionID, c)

	go c.writePump()
	go h.readPump(s, c)
}

func (h *Hub) readPump(s *session, c *client) {
	defer func() {
		h.removeClient(s, c)
		c.conn.Close()
	}()

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ [Collab] WebSocket error: %v", err)
			}
			return
		}
		message.SessionID = s.id
		message.UserID = c.userID

		switch message.Type {
		case TypeCursorMove, TypeSelection:
			// 빈번한 메시지는 로깅하지 않음
			s.broadcast(message, c.userID)
		case TypeRequestState:
			log.Printf("📡 [Collab] User %s requested preview state", c.userID)
			s.broadcast(message, "")
		default:
			s.broadcast(message, c.userID)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("❌ [Collab] WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
