package collab

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/workspace"
)

const (
	expiredThreshold  = 24 * time.Hour
	inactiveThreshold = 2 * time.Hour
)

// WorkspaceListener - 워크스페이스 커밋 후 같은 세션 접속자에게 스냅샷 전송
func (h *Hub) WorkspaceListener() workspace.ChangeFunc {
	return func(ws *workspace.Workspace) {
		payload, err := json.Marshal(ws)
		if err != nil {
			log.Printf("❌ [Collab] Failed to encode workspace %s: %v", ws.ID, err)
			return
		}
		h.Publish(ws.ID, Message{Type: TypePreviewUpdate, Payload: payload})
	}
}

// cleanupSessions - 빈 세션, 만료/비활성 세션 정리
func (h *Hub) cleanupSessions(now time.Time) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	cleaned := 0
	for id, s := range h.sessions {
		s.mutex.Lock()
		empty := len(s.clients) == 0
		expired := now.Sub(s.createdAt) > expiredThreshold
		inactive := now.Sub(s.lastActivity) > inactiveThreshold && empty
		if expired {
			for userID, c := range s.clients {
				close(c.send)
				delete(s.clients, userID)
			}
		}
		s.mutex.Unlock()

		if empty || expired || inactive {
			delete(h.sessions, id)
			cleaned++
			h.metricsMutex.Lock()
			h.metrics.ActiveSessions--
			h.metricsMutex.Unlock()
		}
	}

	if cleaned > 0 {
		log.Printf("🧹 [Collab] Cleaned up %d sessions (Active: %d)", cleaned, len(h.sessions))
	}
	return cleaned
}

// StartCleanupRoutine - 주기적 세션 정리
func (h *Hub) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				h.cleanupSessions(now)
			}
		}
	}()
	log.Printf("🔄 [Collab] Started session cleanup routine (every %v)", interval)
}

// RegisterRoutes - /ws, /metrics, /session/{sessionId}, /admin/cleanup
func (h *Hub) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ws", h.HandleWebSocket)
	r.HandleFunc("/metrics", h.HandleMetrics).Methods("GET")
	r.HandleFunc("/session/{sessionId}", h.HandleSessionInfo).Methods("GET")
	r.HandleFunc("/admin/cleanup", h.HandleCleanup).Methods("POST")
}

type sessionInfo struct {
	SessionID    string    `json:"sessionId"`
	ClientCount  int       `json:"clientCount"`
	Clients      []string  `json:"clients"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	Age          string    `json:"age"`
	Inactive     string    `json:"inactive"`
}

func (s *session) info() sessionInfo {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	ids := make([]string, 0, len(s.clients))
	for userID := range s.clients {
		ids = append(ids, userID)
	}
	return sessionInfo{
		SessionID:    s.id,
		ClientCount:  len(ids),
		Clients:      ids,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
		Age:          time.Since(s.createdAt).String(),
		Inactive:     time.Since(s.lastActivity).String(),
	}
}

// HandleSessionInfo - GET /session/{sessionId}
func (h *Hub) HandleSessionInfo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	h.mutex.RLock()
	s, exists := h.sessions[id]
	h.mutex.RUnlock()

	if !exists {
		utils.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.info())
}

// HandleMetrics - GET /metrics
func (h *Hub) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metricsMutex.Lock()
	metrics := h.metrics
	h.metricsMutex.Unlock()

	h.mutex.RLock()
	details := make([]sessionInfo, 0, len(h.sessions))
	totalClients := 0
	for _, s := range h.sessions {
		info := s.info()
		totalClients += info.ClientCount
		details = append(details, info)
	}
	h.mutex.RUnlock()

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"server": map[string]interface{}{
			"uptime":           time.Since(metrics.StartTime).String(),
			"startTime":        metrics.StartTime,
			"totalSessions":    metrics.TotalSessions,
			"activeSessions":   metrics.ActiveSessions,
			"totalConnections": metrics.TotalConnections,
			"currentClients":   totalClients,
		},
		"sessions": details,
	})
}

// HandleCleanup - POST /admin/cleanup
func (h *Hub) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned := h.cleanupSessions(time.Now())
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "Cleanup completed",
		"cleaned": cleaned,
	})
}
