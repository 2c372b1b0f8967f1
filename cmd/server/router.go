package main

import (
	"net/http"

	"github.com/phrazzld/insightboard/internal/api"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Tasks:       app.taskService,
		Health:      app.taskStore,
		Logger:      app.logger,
		CORSOrigins: app.config.Server.CORSOrigins,
	})
}
