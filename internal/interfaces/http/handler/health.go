package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	appName string
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		version: version,
		started: time.Now(),
	}
}

// Check reports service health
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
