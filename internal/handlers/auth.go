package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/jobboard/auth"
	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
	"github.com/diewo77/jobboard/internal/storage"
	"github.com/diewo77/jobboard/validation"
)

type AuthHandler struct {
	DB       *gorm.DB
	Files    storage.FileStore
	Secret   []byte
	TokenTTL time.Duration
	Log      *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, files storage.FileStore, secret []byte, ttl time.Duration, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Files: files, Secret: secret, TokenTTL: ttl, Log: log}
}

// storeUpload saves the named multipart file if present and returns its
// reference. A missing file is not an error; uploads are optional.
func (h *AuthHandler) storeUpload(r *http.Request, field string) (string, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer f.Close()
	return h.Files.Save(r.Context(), fh.Filename, f)
}

// RegisterJobseeker handles POST /auth/register/jobseeker (multipart, file
// field "resume"). Jobseekers are active immediately and get a token back.
func (h *AuthHandler) RegisterJobseeker(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	name := strings.TrimSpace(r.FormValue("name"))

	v := validation.Violations{}
	validation.Required("email", email, v)
	validation.Email("email", email, v)
	validation.Required("password", password, v)
	validation.MinLen("password", password, 8, v)
	validation.Required("name", name, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}

	resumeRef, err := h.storeUpload(r, "resume")
	if err != nil {
		h.Log.WithError(err).Error("resume upload failed")
		httpx.Error(w, http.StatusInternalServerError, "could not store resume", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not create account", nil)
		return
	}
	user := models.User{
		Email:      email,
		Password:   string(hash),
		Name:       name,
		Role:       models.RoleJobseeker,
		Status:     string(lifecycle.EmployerActive),
		ResumeRef:  resumeRef,
		Skills:     strings.TrimSpace(r.FormValue("skills")),
		Experience: r.FormValue("experience"),
		Education:  r.FormValue("education"),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			httpx.Error(w, http.StatusConflict, "email already registered", nil)
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "could not create account", nil)
		return
	}
	token, err := auth.GenerateToken(user.ID, string(user.Role), h.Secret, h.TokenTTL)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not issue token", nil)
		return
	}
	httpx.OK(w, http.StatusCreated, "account created", map[string]any{"token": token, "user": user})
}

// RegisterEmployer handles POST /auth/register/employer (multipart, file
// field "businessLicense"). Employers start pending and cannot log in until
// an admin approves them, so no token is issued here.
func (h *AuthHandler) RegisterEmployer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	companyName := strings.TrimSpace(r.FormValue("companyName"))

	v := validation.Violations{}
	validation.Required("email", email, v)
	validation.Email("email", email, v)
	validation.Required("password", password, v)
	validation.MinLen("password", password, 8, v)
	validation.Required("companyName", companyName, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}

	licenseRef, err := h.storeUpload(r, "businessLicense")
	if err != nil {
		h.Log.WithError(err).Error("business license upload failed")
		httpx.Error(w, http.StatusInternalServerError, "could not store business license", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not create account", nil)
		return
	}
	user := models.User{
		Email:       email,
		Password:    string(hash),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Role:        models.RoleEmployer,
		Status:      string(lifecycle.EmployerPending),
		CompanyName: companyName,
		Location:    strings.TrimSpace(r.FormValue("location")),
		Website:     strings.TrimSpace(r.FormValue("website")),
		Description: r.FormValue("description"),
		LicenseRef:  licenseRef,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			httpx.Error(w, http.StatusConflict, "email already registered", nil)
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "could not create account", nil)
		return
	}
	httpx.OK(w, http.StatusCreated, "registration received; account pending approval", map[string]any{"user": user})
}

// Login handles POST /auth/login. Employer accounts that are pending,
// rejected, or suspended are refused here even with valid credentials; this
// check and the posting-rights check in the employer handlers hold
// simultaneously.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "email and password required", nil)
		return
	}
	var user models.User
	if err := h.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		httpx.Error(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		httpx.Error(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if user.Role == models.RoleEmployer {
		switch lifecycle.EmployerStatus(user.Status) {
		case lifecycle.EmployerPending:
			httpx.Error(w, http.StatusForbidden, "account pending approval", nil)
			return
		case lifecycle.EmployerRejected:
			httpx.Error(w, http.StatusForbidden, "account application was rejected", nil)
			return
		case lifecycle.EmployerSuspended:
			httpx.Error(w, http.StatusForbidden, "account suspended", nil)
			return
		}
	}
	token, err := auth.GenerateToken(user.ID, string(user.Role), h.Secret, h.TokenTTL)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not issue token", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "logged in", map[string]any{"token": token, "user": user})
}
