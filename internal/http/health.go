package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/database"
)

// HealthController reports process and database liveness.
type HealthController struct {
	db      *database.Database
	version string
}

// NewHealthController creates a new health controller.
func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status returns 200 when the database answers a ping, 503 otherwise.
func (hc *HealthController) Status(c *gin.Context) {
	if err := hc.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": hc.version,
	})
}
