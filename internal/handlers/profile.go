package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/models"
	"github.com/diewo77/jobboard/internal/storage"
	"github.com/diewo77/jobboard/validation"
)

// ProfileHandler serves the authenticated user's own account: read, edit,
// and resume replacement. Email, role, and status are not editable here;
// status belongs to the admin surface.
type ProfileHandler struct {
	DB    *gorm.DB
	Files storage.FileStore
	Log   *logrus.Logger
}

func NewProfileHandler(db *gorm.DB, files storage.FileStore, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{DB: db, Files: files, Log: log}
}

func (h *ProfileHandler) loadSelf(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return nil, false
	}
	var user models.User
	if err := h.DB.First(&user, actor.ID).Error; err != nil {
		httpx.Error(w, http.StatusUnauthorized, "account not found", nil)
		return nil, false
	}
	return &user, true
}

// Me handles GET /me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadSelf(w, r)
	if !ok {
		return
	}
	httpx.OK(w, http.StatusOK, "", user)
}

type profileInput struct {
	Name *string `json:"name"`

	// Employer fields
	CompanyName *string `json:"companyName"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Website     *string `json:"website"`

	// Jobseeker fields
	Skills     *string `json:"skills"`
	Experience *string `json:"experience"`
	Education  *string `json:"education"`
}

// Update handles PATCH /me. Only the fields belonging to the caller's role
// are applied; the rest are ignored.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadSelf(w, r)
	if !ok {
		return
	}
	var input profileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	switch user.Role {
	case models.RoleEmployer:
		if input.CompanyName != nil {
			user.CompanyName = strings.TrimSpace(*input.CompanyName)
		}
		if input.Location != nil {
			user.Location = strings.TrimSpace(*input.Location)
		}
		if input.Description != nil {
			user.Description = *input.Description
		}
		if input.Website != nil {
			user.Website = strings.TrimSpace(*input.Website)
		}
	case models.RoleJobseeker:
		if input.Skills != nil {
			user.Skills = strings.TrimSpace(*input.Skills)
		}
		if input.Experience != nil {
			user.Experience = *input.Experience
		}
		if input.Education != nil {
			user.Education = *input.Education
		}
	}

	v := validation.Violations{}
	validation.Required("name", user.Name, v)
	if user.Role == models.RoleEmployer {
		validation.Required("companyName", user.CompanyName, v)
	}
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	if err := h.DB.Save(user).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not update profile", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "profile updated", user)
}

// UploadResume handles POST /me/resume (multipart, file field "resume").
// Jobseekers only; the stored reference replaces the previous one.
func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadSelf(w, r)
	if !ok {
		return
	}
	if user.Role != models.RoleJobseeker {
		httpx.Error(w, http.StatusForbidden, "only jobseekers have a resume", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	f, fh, err := r.FormFile("resume")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "resume file required", nil)
		return
	}
	defer f.Close()
	ref, err := h.Files.Save(r.Context(), fh.Filename, f)
	if err != nil {
		h.Log.WithError(err).Error("resume upload failed")
		httpx.Error(w, http.StatusInternalServerError, "could not store resume", nil)
		return
	}
	if err := h.DB.Model(user).Update("resume_ref", ref).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not update profile", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "resume updated", map[string]any{"resumeRef": ref})
}
