package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReadinessCheck probes one backing dependency
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler handles liveness, readiness and system info endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	checks    []ReadinessCheck
}

// NewSystemHandler creates a new SystemHandler. checks are probed by the
// readiness endpoint in order.
func NewSystemHandler(checks ...ReadinessCheck) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		checks:    checks,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"CaseCraft Backend API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "CaseCraft Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h30m45s"`
}

// Health godoc
// @Summary      Liveness probe
// @Description  Returns 200 while the process is running. Does not touch backing services.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks"`
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Probes the database and cache. Returns 503 if any dependency is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} ReadyResponse
// @Failure      503 {object} ReadyResponse
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := ReadyResponse{
		Status: "ready",
		Checks: make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			resp.Checks[check.Name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	c.JSON(status, resp)
}
