package modelgenerator

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
	queue   Queue
}

func NewHandler(service *Service, queue Queue) *Handler {
	return &Handler{
		service: service,
		queue:   queue,
	}
}

// RegisterRoutes - /api/model-generator
func (h *Handler) RegisterRoutes(r *mux.Router) {
	sr := r.PathPrefix("/api/model-generator").Subrouter()
	sr.HandleFunc("/campaign", h.HandleCampaign).Methods("POST")
	sr.HandleFunc("/jobs/{id}", h.HandleJob).Methods("GET")
	sr.HandleFunc("/refine/{id}", h.HandleRefine).Methods("POST")
	sr.HandleFunc("/pose/{id}", h.HandlePose).Methods("POST")
	sr.HandleFunc("/poses", h.HandlePoses).Methods("GET")
	sr.HandleFunc("/models", h.HandleModels).Methods("GET")
	sr.HandleFunc("/models", h.HandleReset).Methods("DELETE")
	log.Println("✅ [ModelGenerator] Routes registered: /api/model-generator")
}

func isValidation(err error) bool {
	return errors.Is(err, ErrMissingInputs) || errors.Is(err, ErrTooManyShoes) ||
		errors.Is(err, ErrModelNotFound) || errors.Is(err, ErrFaceMissing) || errors.Is(err, ErrUnknownPose)
}

func sessionOrError(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.SessionID(r)
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return "", false
	}
	return id, true
}

// HandleCampaign - POST /campaign
func (h *Handler) HandleCampaign(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}

	var req CampaignRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.service.SubmitCampaign(r.Context(), sessionID, req)
	if errors.Is(err, ErrCampaignRunning) {
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.Printf("❌ [ModelGenerator] Invalid campaign request: %v", err)
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.queue.Push(r.Context(), sessionID, job.ID); err != nil {
		log.Printf("❌ [ModelGenerator] Failed to enqueue job %s: %v", job.ID, err)
		h.service.CancelJob(r.Context(), sessionID, job.ID, err)
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	view := *job
	view.Input = nil
	utils.WriteJSON(w, http.StatusAccepted, CampaignResponse{Success: true, Job: &view})
}

// HandleJob - GET /jobs/{id}
func (h *Handler) HandleJob(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}
	job, err := h.service.Job(r.Context(), sessionID, mux.Vars(r)["id"])
	if errors.Is(err, ErrJobNotFound) {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, CampaignResponse{Success: true, Job: job})
}

// HandleRefine - POST /refine/{id}
func (h *Handler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}
	refined, err := h.service.Refine(r.Context(), sessionID, mux.Vars(r)["id"])
	if err != nil {
		if isValidation(err) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		gemini.WriteError(w, err, "보정 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, ModelResponse{Success: true, Model: &refined})
}

// HandlePose - POST /pose/{id}
func (h *Handler) HandlePose(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}
	var req PoseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	generated, err := h.service.PoseVariation(r.Context(), sessionID, mux.Vars(r)["id"], req.PoseID)
	if err != nil {
		if isValidation(err) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		gemini.WriteError(w, err, "자세 변경 실패")
		return
	}
	utils.WriteJSON(w, http.StatusOK, ModelResponse{Success: true, Model: &generated})
}

// HandlePoses - GET /poses
func (h *Handler) HandlePoses(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"poses":   prompt.PosePresets,
	})
}

// HandleModels - GET /models
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}
	models, err := h.service.Models(r.Context(), sessionID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, ModelsResponse{Success: true, Models: models})
}

// HandleReset - DELETE /models
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionOrError(w, r)
	if !ok {
		return
	}
	if err := h.service.Reset(r.Context(), sessionID); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
