package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/insightboard/internal/api/shared"
)

// HealthChecker reports which task backend is in use. *store.Failover
// implements it.
type HealthChecker interface {
	Check(ctx context.Context) bool
	Backend() string
}

// healthCheckTimeout bounds the database ping done by /health.
const healthCheckTimeout = 2 * time.Second

// HealthHandler handles GET /health. It refreshes the backend choice before
// answering.
func HealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		checker.Check(ctx)
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
			Status:  "ok",
			Backend: checker.Backend(),
		})
	}
}
