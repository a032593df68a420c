package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/config"
	"github.com/crucial707/task-api/internal/handlers"
	"github.com/crucial707/task-api/internal/middleware"
	"github.com/crucial707/task-api/internal/repo"
	"github.com/crucial707/task-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repos, services and handlers onto a chi router. Zero config values
// fall back to the defaults so tests can pass a sparse Config.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	ttl := cfg.JWTExpire
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	perMinute, burst := cfg.AuthRatePerMinute, cfg.AuthRateBurst
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}

	// ===== Dependencies =====
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), ttl)
	users := service.NewUserService(repo.NewUserRepo(db), cfg.BcryptCost)
	tasks := service.NewTaskService(repo.NewTaskRepo(db))

	accountHandler := &handlers.AccountHandler{Users: users, Tokens: tokens}
	taskHandler := &handlers.TaskHandler{Tasks: tasks}
	healthHandler := &handlers.HealthHandler{DB: db}

	// ===== Global middleware =====
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// ===== Operational =====
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// ===== API =====
	authLimiter := middleware.AuthRateLimiter(perMinute, burst)
	requireAuth := middleware.Authenticate(tokens, users)

	r.Route("/v1/api", func(r chi.Router) {
		r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/account", accountHandler.GetProfile)
			r.Put("/account", accountHandler.UpdateProfile)
			r.Put("/account/password", accountHandler.ChangePassword)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Delete("/tasks/bulk", taskHandler.BulkDeleteTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	})

	return r
}
