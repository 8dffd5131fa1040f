package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/database"
)

// HealthResponse is the payload served on /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db        *database.Database
	version   string
	startedAt time.Time
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:        db,
		version:   version,
		startedAt: time.Now(),
	}
}

// checkDatabase pings the underlying connection. A missing database is
// reported but does not fail the health check.
func (h *HealthController) checkDatabase() (string, bool) {
	if h.db == nil {
		return "not configured", true
	}

	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error(), false
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

// Status reports service health.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)

	dbStatus, dbOK := h.checkDatabase()
	checks["database"] = dbStatus

	status := "healthy"
	statusCode := http.StatusOK
	if !dbOK {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Version: h.version,
		Checks:  checks,
	})
}
