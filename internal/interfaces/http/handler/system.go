package handler

import (
	"net/http"
	"time"

	"github.com/gestock/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now().UTC()}
}

// Health reports process liveness and database reachability
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}

// Register wires the probe routes outside the authenticated group
func (h *SystemHandler) Register(public *gin.RouterGroup) {
	public.GET("/health", h.Health)
}
