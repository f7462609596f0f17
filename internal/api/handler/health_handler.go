package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health (liveness) and GET /health/ready
// (readiness).
type HealthHandler struct {
	status  PersistenceReporter
	pingers map[string]ports.Pinger
}

// PersistenceReporter exposes the outcome of recent snapshot writes.
type PersistenceReporter interface {
	Status() ports.PersistenceStatus
}

// NewHealthHandler builds the probes. pingers are checked on every readiness
// call and may be nil.
func NewHealthHandler(status PersistenceReporter, pingers map[string]ports.Pinger) *HealthHandler {
	return &HealthHandler{status: status, pingers: pingers}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type persistenceStatus struct {
	Backend             string     `json:"backend"`
	Status              string     `json:"status"`
	LastSaveAt          *time.Time `json:"last_save_at,omitempty"`
	LastError           string     `json:"last_error,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Persistence  persistenceStatus           `json:"persistence"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness confirms the process is alive.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness reports degraded while snapshot writes are failing or a network
// backend does not answer a ping.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	healthy := true

	st := h.status.Status()
	persistence := persistenceStatus{
		Backend:             st.Backend,
		Status:              "ok",
		LastError:           st.LastError,
		ConsecutiveFailures: st.ConsecutiveFailures,
	}
	if !st.LastSaveAt.IsZero() {
		at := st.LastSaveAt
		persistence.LastSaveAt = &at
	}
	if !st.Healthy() {
		persistence.Status = "failing"
		healthy = false
	}

	deps := make(map[string]dependencyStatus, len(h.pingers))
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Persistence:  persistence,
		Dependencies: deps,
	})
}
