package detailstorage

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - /api/detail
func (h *Handler) RegisterRoutes(r *mux.Router) {
	sr := r.PathPrefix("/api/detail").Subrouter()
	sr.HandleFunc("/items", h.HandleList).Methods("GET")
	sr.HandleFunc("/items", h.HandleAdd).Methods("POST")
	sr.HandleFunc("/items", h.HandleClear).Methods("DELETE")
	sr.HandleFunc("/items/move", h.HandleMove).Methods("POST")
	sr.HandleFunc("/items/{id}", h.HandleUpdate).Methods("PUT")
	sr.HandleFunc("/items/{id}", h.HandleRemove).Methods("DELETE")
	sr.HandleFunc("/items/{id}/duplicate", h.HandleDuplicate).Methods("POST")
	sr.HandleFunc("/items/{id}/select", h.HandleSelect).Methods("POST")
	sr.HandleFunc("/items/{id}/typography", h.HandleTypography).Methods("PATCH")
	sr.HandleFunc("/drag", h.HandleDrag).Methods("POST")
	sr.HandleFunc("/viewport", h.HandleGetViewport).Methods("GET")
	sr.HandleFunc("/viewport", h.HandleViewport).Methods("POST")
	sr.HandleFunc("/export/html", h.HandleExportHTML).Methods("GET")
	sr.HandleFunc("/export/jpg", h.HandleExportJPEG).Methods("GET")
	sr.HandleFunc("/templates", h.HandleTemplates).Methods("GET")
	sr.HandleFunc("/templates/{type}", h.HandleAddTemplate).Methods("POST")
	sr.HandleFunc("/autofill", h.HandleAutofill).Methods("POST")
	log.Println("✅ [DetailStorage] Routes registered: /api/detail")
}

func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.SessionID(r)
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return "", false
	}
	return id, true
}

// writeError - 도메인 에러를 상태 코드로 변환
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidMove), errors.Is(err, ErrUnknownAction), errors.Is(err, ErrNotSectionItem),
		errors.Is(err, ErrEmptyItemPayload), errors.Is(err, ErrNoProductImages),
		errors.Is(err, content.ErrInvalidKind), errors.Is(err, export.ErrUnknownTemplate):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, export.ErrPreviewNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("❌ [DetailStorage] %v", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeList(w http.ResponseWriter, list *content.List) {
	utils.WriteJSON(w, http.StatusOK, ListResponse{Success: true, Items: list.Items(), SelectedIDs: list.SelectedIDs()})
}

// HandleList - GET /items
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	list, err := h.service.Items(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, list)
}

// HandleAdd - POST /items
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req AddItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.service.AddItem(r.Context(), sid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: &item})
}

// HandleClear - DELETE /items
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.service.Clear(r.Context(), sid); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ListResponse{Success: true, Items: []content.Item{}, SelectedIDs: []string{}})
}

// HandleMove - POST /items/move
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.service.Move(r.Context(), sid, req.From, req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, list)
}

// HandleUpdate - PUT /items/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.service.UpdatePayload(r.Context(), sid, mux.Vars(r)["id"], req.Payload)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ItemResponse{Success: true, Item: &item})
}

// HandleRemove - DELETE /items/{id}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	list, err := h.service.Remove(r.Context(), sid, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, list)
}

// HandleDuplicate - POST /items/{id}/duplicate
func (h *Handler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	item, err := h.service.Duplicate(r.Context(), sid, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: &item})
}

// HandleSelect - POST /items/{id}/select
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	list, err := h.service.ToggleSelection(r.Context(), sid, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, list)
}

// HandleTypography - PATCH /items/{id}/typography
func (h *Handler) HandleTypography(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var patch content.TypographyPatch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.service.SetTypography(r.Context(), sid, mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ItemResponse{Success: true, Item: &item})
}

// HandleDrag - POST /drag
func (h *Handler) HandleDrag(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req DragRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws, moved, err := h.service.Drag(r.Context(), sid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, DragResponse{Success: true, Drag: ws.Drag, Moved: moved, Items: ws.Items.Items()})
}

// HandleGetViewport - GET /viewport
func (h *Handler) HandleGetViewport(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	state, err := h.service.Viewport(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ViewportResponse{Success: true, Viewport: state})
}

// HandleViewport - POST /viewport
func (h *Handler) HandleViewport(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req ViewportRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := h.service.UpdateViewport(r.Context(), sid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ViewportResponse{Success: true, Viewport: state})
}

// HandleExportHTML - GET /export/html (detail-page.html 다운로드)
func (h *Handler) HandleExportHTML(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	doc, err := h.service.ExportHTML(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.HTMLFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// HandleExportJPEG - GET /export/jpg (detail-page-<ms>.jpg 다운로드)
func (h *Handler) HandleExportJPEG(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	data, filename, err := h.service.ExportJPEG(r.Context(), sid)
	if err != nil {
		log.Printf("❌ [DetailStorage] JPG export failed: %v", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleTemplates - GET /templates
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"templates": export.TemplateTypes,
	})
}

// HandleAddTemplate - POST /templates/{type}. 본문이 없으면 기본값
func (h *Handler) HandleAddTemplate(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var data export.TemplateData
	if r.ContentLength > 0 {
		if err := utils.DecodeJSON(r, &data); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	item, err := h.service.AddTemplate(r.Context(), sid, mux.Vars(r)["type"], data)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: &item})
}

// HandleAutofill - POST /autofill
func (h *Handler) HandleAutofill(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req AutofillRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	info, items, err := h.service.Autofill(r.Context(), sid, req)
	if err != nil {
		if errors.Is(err, ErrNoProductImages) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		gemini.WriteError(w, err, "자동 채우기 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, AutofillResponse{Success: true, Info: info, Items: items})
}
