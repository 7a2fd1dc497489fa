package http

import (
	"net/http"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/google/uuid"
)

// HealthResponse reports overall service health plus per-dependency checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthzHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Readiness probe returning service health, uptime, and version
//	@Description	Checks database connectivity and a token sign/verify round trip
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/healthz [get].
func HealthzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	codec *jwtx.Codec,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check that the token codec can sign and verify
		if err := signerCheck(codec); err != nil {
			checks.Signer = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}

func signerCheck(codec *jwtx.Codec) error {
	token, err := codec.Issue(uuid.Nil.String())
	if err != nil {
		return err
	}
	_, err = codec.Verify(token)
	return err
}
