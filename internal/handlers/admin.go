package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
)

// AdminHandler serves account moderation and global job management.
// Every route is behind the admin role gate.
type AdminHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewAdminHandler(db *gorm.DB, engine *lifecycle.Engine) *AdminHandler {
	return &AdminHandler{DB: db, Engine: engine}
}

// ListEmployers handles GET /admin/employers[?status=].
func (h *AdminHandler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Where("role = ?", string(models.RoleEmployer))
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	var employers []models.User
	if err := dbq.Order("created_at desc").Find(&employers).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list employers", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": employers})
}

// EmployerStatus handles PATCH /admin/employers/{id}/status. Approval and
// rejection notify the employer best-effort; this endpoint succeeds even
// when delivery fails.
func (h *AdminHandler) EmployerStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid employer id", nil)
		return
	}
	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := h.Engine.SetEmployerStatus(r.Context(), id, input.Status, input.Reason, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "employer status updated", user)
}

// ListUsers handles GET /admin/users[?role=].
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Model(&models.User{})
	if role := r.URL.Query().Get("role"); role != "" {
		dbq = dbq.Where("role = ?", role)
	}
	var users []models.User
	if err := dbq.Order("created_at desc").Find(&users).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": users})
}

// DeleteUser handles DELETE /admin/users/{id} with the full cascade.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	if err := h.Engine.DeleteUser(r.Context(), id, actor); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "user deleted", nil)
}

// ListJobs handles GET /admin/jobs: every posting, any status.
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	var total int64
	h.DB.Model(&models.Job{}).Count(&total)
	var jobs []models.Job
	if err := h.DB.Order("created_at desc").Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list jobs", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": jobs, "total": total, "limit": limit, "offset": offset})
}

// JobStatus handles PATCH /admin/jobs/{id}/status: direct set.
func (h *AdminHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	job, err := h.Engine.SetJobStatus(r.Context(), id, input.Status, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "job status updated", job)
}

// DeleteJob handles DELETE /admin/jobs/{id}.
func (h *AdminHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	if err := h.Engine.DeleteJob(r.Context(), id, actor); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "job deleted", nil)
}
