package http

import (
	"net/http"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint checking the store connection alongside uptime and version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	grantsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	grantsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &grantsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, grantsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
