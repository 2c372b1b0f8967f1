package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	apiMiddleware "github.com/phrazzld/insightboard/internal/api/middleware"
	"github.com/phrazzld/insightboard/internal/service"
)

// RouterConfig holds what NewRouter needs.
type RouterConfig struct {
	Tasks       service.TaskService
	Health      HealthChecker
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the HTTP handler with middleware and all routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	taskHandler := NewTaskHandler(cfg.Tasks, cfg.Logger)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Post("/from-transcript", taskHandler.CreateFromTranscript)
		r.Get("/summary", taskHandler.Summary)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	if cfg.Health != nil {
		r.Get("/health", HealthHandler(cfg.Health))
	}

	return r
}
