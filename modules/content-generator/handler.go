package contentgenerator

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - /api/gemini/chat
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/gemini/chat", h.HandleChat).Methods("POST")
	r.HandleFunc("/api/gemini/chat/history", h.HandleHistory).Methods("GET")
	r.HandleFunc("/api/gemini/chat/history", h.HandleClear).Methods("DELETE")
	log.Println("✅ [ContentGenerator] Routes registered: /api/gemini/chat")
}

// HandleChat - POST /api/gemini/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}

	var req ChatRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, history, err := h.service.Chat(r.Context(), sessionID, req.Message)
	if errors.Is(err, ErrEmptyMessage) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("❌ [ContentGenerator] Chat error: %v", err)
		gemini.WriteError(w, err, ErrorMessage)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ChatResponse{Success: true, Reply: reply, History: history})
}

// HandleHistory - GET /api/gemini/chat/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}
	history, err := h.service.History(r.Context(), sessionID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, ChatResponse{Success: true, History: history})
}

// HandleClear - DELETE /api/gemini/chat/history
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}
	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
