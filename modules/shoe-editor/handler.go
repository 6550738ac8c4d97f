package shoeeditor

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/prompt"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - /api/gemini/{effect,recolor,enhance,effects}
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/gemini/effect", h.HandleEffect).Methods("POST")
	r.HandleFunc("/api/gemini/recolor", h.HandleRecolor).Methods("POST")
	r.HandleFunc("/api/gemini/enhance", h.HandleEnhance).Methods("POST")
	r.HandleFunc("/api/gemini/effects", h.HandleEffects).Methods("GET")
	log.Println("✅ [ShoeEditor] Routes registered: /api/gemini/{effect,recolor,enhance,effects}")
}

func isValidation(err error) bool {
	return errors.Is(err, ErrNoImages) || errors.Is(err, ErrNoColor) || errors.Is(err, ErrInvalidColor)
}

// respond - 결과 반환. 세션이 있고 add가 true면 목록에 추가
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, url string, add bool) {
	resp := ImageResponse{Success: true, ImageURL: url}
	if add {
		sessionID := utils.SessionID(r)
		if sessionID == "" {
			utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
			return
		}
		item, err := h.service.AddToPreview(r.Context(), sessionID, url)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Item = &item
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// HandleEffect - POST /api/gemini/effect
func (h *Handler) HandleEffect(w http.ResponseWriter, r *http.Request) {
	var req EffectRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.service.ApplyEffect(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "효과 적용 실패")
		return
	}
	h.respond(w, r, url, req.AddToPreview)
}

// HandleRecolor - POST /api/gemini/recolor
func (h *Handler) HandleRecolor(w http.ResponseWriter, r *http.Request) {
	var req RecolorRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.service.Recolor(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "색상 변경 실패")
		return
	}
	h.respond(w, r, url, req.AddToPreview)
}

// HandleEnhance - POST /api/gemini/enhance
func (h *Handler) HandleEnhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.service.Enhance(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "이미지 보정 실패")
		return
	}
	if req.ItemID == "" {
		utils.WriteJSON(w, http.StatusOK, ImageResponse{Success: true, ImageURL: url})
		return
	}

	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}
	item, err := h.service.ReplaceItemImage(r.Context(), sessionID, req.ItemID, url)
	if errors.Is(err, ErrItemNotFound) {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, ImageResponse{Success: true, ImageURL: url, Item: &item})
}

// HandleEffects - GET /api/gemini/effects (효과 목록 + 효과별 씬 키워드)
func (h *Handler) HandleEffects(w http.ResponseWriter, r *http.Request) {
	scenes := make(map[prompt.Effect]string)
	for _, effect := range prompt.Effects {
		if kw := prompt.SceneKeyword(effect); kw != "" {
			scenes[effect] = kw
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"effects": prompt.Effects,
		"scenes":  scenes,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, prefix string) {
	if isValidation(err) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("❌ [ShoeEditor] %s: %v", prefix, err)
	gemini.WriteError(w, err, prefix)
}

