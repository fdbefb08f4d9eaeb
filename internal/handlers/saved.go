package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/lifecycle"
)

// SavedHandler serves the jobseeker's bookmarks.
type SavedHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewSavedHandler(db *gorm.DB, engine *lifecycle.Engine) *SavedHandler {
	return &SavedHandler{DB: db, Engine: engine}
}

// Save handles POST /saved-jobs/{jobId}.
func (h *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "jobId")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	saved, err := h.Engine.SaveJob(r.Context(), id, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "job saved", saved)
}

// Unsave handles DELETE /saved-jobs/{jobId}.
func (h *SavedHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "jobId")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	if err := h.Engine.UnsaveJob(r.Context(), id, actor); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "job removed from saved", nil)
}

// List handles GET /saved-jobs.
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	saved, err := h.Engine.SavedJobs(r.Context(), actor)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list saved jobs", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": saved})
}
