package detailgenerator

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/export"
)

// maxImportBytes - HTML 가져오기 최대 크기
const maxImportBytes = 50 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - /api/detail-generator
func (h *Handler) RegisterRoutes(r *mux.Router) {
	sr := r.PathPrefix("/api/detail-generator").Subrouter()
	sr.HandleFunc("/devices", h.HandleDevices).Methods("GET")
	sr.HandleFunc("/generate", h.HandleGenerate).Methods("POST")
	sr.HandleFunc("/import", h.HandleImport).Methods("POST")
	log.Println("✅ [DetailGenerator] Routes registered: /api/detail-generator")
}

// HandleDevices - GET /devices
func (h *Handler) HandleDevices(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"devices": Devices,
	})
}

// HandleGenerate - POST /generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}
	var req GenerateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Generate(r.Context(), sessionID, req)
	if err != nil {
		if errors.Is(err, ErrUnknownMode) || errors.Is(err, ErrNoProducts) || errors.Is(err, ErrNoModels) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		gemini.WriteError(w, err, "상세페이지 생성 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// HandleImport - POST /import (multipart "file" 또는 text/html 본문)
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.SessionID(r)
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}

	var (
		filename    = r.URL.Query().Get("filename")
		contentType = r.Header.Get("Content-Type")
		body        io.Reader
	)
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		filename = header.Filename
		contentType = header.Header.Get("Content-Type")
		body = file
	} else {
		body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	}

	items, err := h.service.Import(r.Context(), sessionID, filename, contentType, body)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotHTML), errors.Is(err, export.ErrNoContent):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ [DetailGenerator] Import failed: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, ImportResponse{Success: true, Items: items})
}
