package handler

import (
	"net/http"
	"time"

	"github.com/chickenviken/backend/internal/infrastructure/availability"
	"github.com/chickenviken/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	startedAt time.Time
	version   string
	deps      map[string]availability.Pinger
}

// NewSystemHandler creates a new SystemHandler. Each entry in deps is probed
// on every health request.
func NewSystemHandler(version string, deps map[string]availability.Pinger) *SystemHandler {
	return &SystemHandler{
		startedAt: time.Now(),
		version:   version,
		deps:      deps,
	}
}

// Health reports service liveness and the state of each dependency
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	statuses := make(gin.H, len(h.deps))
	healthy := true
	for name, p := range h.deps {
		if err := p.Ping(); err != nil {
			statuses[name] = "unavailable"
			healthy = false
		} else {
			statuses[name] = "ok"
		}
	}

	body := gin.H{
		"status":       "ok",
		"version":      h.version,
		"uptime":       time.Since(h.startedAt).Round(time.Second).String(),
		"dependencies": statuses,
	}
	if !healthy {
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(body))
		return
	}
	h.Success(c, body)
}
