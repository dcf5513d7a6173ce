package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/pkg/logger"
)

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check pings the database and returns the store's current timestamp.
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	var timestamp string
	if err == nil {
		err = h.db.Raw("SELECT CURRENT_TIMESTAMP").Scan(&timestamp).Error
	}

	if err != nil {
		logger.Error().Err(err).Msg("health check failed")
		c.JSON(500, gin.H{
			"status":   "ERROR",
			"database": "disconnected",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":    "OK",
		"database":  "connected",
		"timestamp": timestamp,
	})
}
