package handlers

import (
	"net/http"
	"strings"
	"time"

	"intersify/internal/app"
	"intersify/internal/common"
	"intersify/internal/http/middleware"
	"intersify/internal/http/response"
)

type ApplicationHandler struct {
	lifecycle *app.LifecycleService
	limiter   middleware.Limiter
}

func NewApplicationHandler(lifecycle *app.LifecycleService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{lifecycle: lifecycle, limiter: limiter}
}

type submitRequest struct {
	PostingID string `json:"posting_id"`
	ResumeURL string `json:"resume_url"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.PostingID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"posting_id": "posting_id is required"}))
		return
	}
	postingID, err := common.ParseUUID(req.PostingID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"posting_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + postingID.String() + ":" + studentID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.lifecycle.Submit(r.Context(), studentID, postingID, req.ResumeURL)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewValidationError("status is required", map[string]string{"status": "status is required"}))
		return
	}
	if h.limiter != nil {
		key := "transition:" + applicationID.String()
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "transition rate limit exceeded", nil))
			return
		}
	}
	updated, err := h.lifecycle.Transition(r.Context(), applicationID, req.Status, req.Notes, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	view, err := h.lifecycle.GetTracking(r.Context(), applicationID, requesterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Stages exposes the raw history. The tracking endpoint is the authorized
// read path; this one serves already-authorized contexts and re-checks only
// authentication.
func (h *ApplicationHandler) Stages(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	stages, err := h.lifecycle.GetHistory(r.Context(), applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stages)
}
