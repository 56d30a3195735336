package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/backoffice/backend/internal/infrastructure/scheduler"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles system-level API endpoints, including the manual
// controls for the overdue sweep
type SystemHandler struct {
	BaseHandler
	startTime      time.Time
	sweepScheduler *scheduler.SweepScheduler
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(sweepScheduler *scheduler.SweepScheduler) *SystemHandler {
	return &SystemHandler{
		startTime:      time.Now(),
		sweepScheduler: sweepScheduler,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
		system.GET("/sweep/status", h.GetSweepStatus)
		system.POST("/sweep/run", h.TriggerSweep)
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Back-Office Financial API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping checks that the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// GetSweepStatus reports the overdue sweep scheduler's state
func (h *SystemHandler) GetSweepStatus(c *gin.Context) {
	h.Success(c, h.sweepScheduler.GetStatus())
}

// TriggerSweep kicks off an out-of-schedule sweep run. The run itself is
// asynchronous; the distributed lock still applies.
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	if err := h.sweepScheduler.TriggerManualRun(); err != nil {
		h.Error(c, http.StatusConflict, dto.ErrCodeInvalidState, err.Error())
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"triggered": true}))
}
