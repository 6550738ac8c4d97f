package facelibrary

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/database"
	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/storage"
	"ai-fashion-hub/modules/common/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - /api/faces
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/faces", h.HandleList).Methods("GET")
	r.HandleFunc("/api/faces", h.HandleSave).Methods("POST")
	r.HandleFunc("/api/faces/batch", h.HandleBatch).Methods("POST")
	r.HandleFunc("/api/faces/upscale", h.HandleUpscale).Methods("POST")
	r.HandleFunc("/api/faces/swap", h.HandleSwap).Methods("POST")
	log.Println("✅ [FaceLibrary] Routes registered: /api/faces")
}

func (h *Handler) writeError(w http.ResponseWriter, err error, prefix string) {
	switch {
	case errors.Is(err, ErrImageRequired), errors.Is(err, ErrSwapInputs):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotConfigured):
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		gemini.WriteError(w, err, prefix)
	}
}

// HandleBatch - POST /api/faces/batch
// 일부 슬롯만 실패하면 200 + failed 개수.
// 5개 모두 실패하면 502, errorCode는 첫 번째 실패 슬롯 기준
// (GENERATION_BLOCKED / NO_IMAGE_RETURNED / NETWORK_ERROR)
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	images, failed, err := h.service.GenerateBatch(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "얼굴 생성 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, BatchResponse{Success: true, Images: images, Failed: failed})
}

// HandleUpscale - POST /api/faces/upscale
func (h *Handler) HandleUpscale(w http.ResponseWriter, r *http.Request) {
	var req UpscaleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.service.Upscale(r.Context(), req.Image)
	if err != nil {
		h.writeError(w, err, "업스케일 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, ImageResponse{Success: true, ImageURL: url})
}

// HandleSwap - POST /api/faces/swap
func (h *Handler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.service.Swap(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "얼굴 교체 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, ImageResponse{Success: true, ImageURL: url})
}

// HandleSave - POST /api/faces
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.service.Save(r.Context(), req)
	if err != nil {
		log.Printf("❌ [FaceLibrary] Failed to save face: %v", err)
		h.writeError(w, err, "얼굴 저장 실패")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, FaceResponse{Success: true, Face: rec})
}

// HandleList - GET /api/faces?gender=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	faces, err := h.service.List(r.Context(), r.URL.Query().Get("gender"))
	if err != nil {
		h.writeError(w, err, "얼굴 목록 조회 실패")
		return
	}
	if faces == nil {
		faces = []database.FaceRecord{}
	}
	utils.WriteJSON(w, http.StatusOK, FacesResponse{Success: true, Faces: faces})
}
