package server

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/jobboard/auth"
	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/config"
	"github.com/diewo77/jobboard/internal/handlers"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/middleware"
	"github.com/diewo77/jobboard/internal/models"
	"github.com/diewo77/jobboard/internal/storage"
)

// Options bundles everything the router needs.
type Options struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
	Files  storage.FileStore
	Redis  *redis.Client // nil disables rate limiting
	Log    *logrus.Logger
	Cfg    config.Config
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(opts Options) http.Handler {
	mux := http.NewServeMux()
	secret := []byte(opts.Cfg.JWTSecret)

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – detailed errors stay out of the body
		if err := opts.DB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(opts.DB, opts.Files, secret, opts.Cfg.TokenTTL, opts.Log)
	mux.HandleFunc("POST /auth/register/jobseeker", ah.RegisterJobseeker)
	mux.HandleFunc("POST /auth/register/employer", ah.RegisterEmployer)
	mux.HandleFunc("POST /auth/login", ah.Login)

	seeker := func(h http.HandlerFunc) http.Handler {
		return auth.RequireRole(string(models.RoleJobseeker), h)
	}
	employer := func(h http.HandlerFunc) http.Handler {
		return auth.RequireRole(string(models.RoleEmployer), h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return auth.RequireRole(string(models.RoleAdmin), h)
	}

	// Own-account surface
	ph := handlers.NewProfileHandler(opts.DB, opts.Files, opts.Log)
	mux.Handle("GET /me", auth.RequireAuth(http.HandlerFunc(ph.Me)))
	mux.Handle("PATCH /me", auth.RequireAuth(http.HandlerFunc(ph.Update)))
	mux.Handle("POST /me/resume", seeker(ph.UploadResume))

	// Public catalog + jobseeker surface
	jh := handlers.NewJobsHandler(opts.DB, opts.Engine)
	mux.HandleFunc("GET /jobs", jh.List)
	mux.HandleFunc("GET /jobs/{id}", jh.Get)
	mux.Handle("POST /jobs/{id}/apply", seeker(jh.Apply))
	mux.Handle("GET /jobs/{id}/application-status", seeker(jh.ApplicationStatus))
	mux.Handle("GET /applications", seeker(jh.MyApplications))
	mux.Handle("DELETE /applications/{id}", seeker(jh.Withdraw))

	// Employer surface
	eh := handlers.NewEmployerHandler(opts.DB, opts.Engine)
	mux.Handle("GET /employer/jobs", employer(eh.ListJobs))
	mux.Handle("POST /employer/jobs", employer(eh.CreateJob))
	mux.Handle("GET /employer/jobs/{id}", employer(eh.GetJob))
	mux.Handle("PATCH /employer/jobs/{id}", employer(eh.UpdateJob))
	mux.Handle("DELETE /employer/jobs/{id}", employer(eh.DeleteJob))
	mux.Handle("PATCH /employer/jobs/{id}/status", employer(eh.JobStatus))
	mux.Handle("GET /employer/applications", employer(eh.ListApplications))
	mux.Handle("GET /employer/applications/{id}", employer(eh.GetApplication))
	mux.Handle("PATCH /employer/applications/{id}/status", employer(eh.UpdateApplicationStatus))
	mux.Handle("POST /employer/applications/{id}/interview", employer(eh.ScheduleInterview))

	// Admin surface
	adh := handlers.NewAdminHandler(opts.DB, opts.Engine)
	mux.Handle("GET /admin/employers", admin(adh.ListEmployers))
	mux.Handle("PATCH /admin/employers/{id}/status", admin(adh.EmployerStatus))
	mux.Handle("GET /admin/users", admin(adh.ListUsers))
	mux.Handle("DELETE /admin/users/{id}", admin(adh.DeleteUser))
	mux.Handle("GET /admin/jobs", admin(adh.ListJobs))
	mux.Handle("PATCH /admin/jobs/{id}/status", admin(adh.JobStatus))
	mux.Handle("DELETE /admin/jobs/{id}", admin(adh.DeleteJob))

	// Saved jobs
	sh := handlers.NewSavedHandler(opts.DB, opts.Engine)
	mux.Handle("GET /saved-jobs", seeker(sh.List))
	mux.Handle("POST /saved-jobs/{jobId}", seeker(sh.Save))
	mux.Handle("DELETE /saved-jobs/{jobId}", seeker(sh.Unsave))

	// Uploaded files, when stored on local disk
	if disk, ok := opts.Files.(*storage.DiskStore); ok {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(disk.Dir))))
	}

	var handler http.Handler = auth.Middleware(secret)(mux)
	handler = middleware.RateLimit(opts.Redis, opts.Cfg.RateLimitWindow, opts.Cfg.RateLimitMax, opts.Log, handler)
	handler = middleware.CORS(opts.Cfg.CORSAllowOrigins, handler)
	handler = middleware.Logging(opts.Log, handler)
	return middleware.Recover(opts.Log, handler)
}
