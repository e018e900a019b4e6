package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SystemHandler serves health and liveness probes
type SystemHandler struct {
	BaseHandler
	db    *gorm.DB
	redis *redis.Client
}

// NewSystemHandler creates a new SystemHandler. The redis client may be
// nil when the deployment runs on the in-memory cart store.
func NewSystemHandler(db *gorm.DB, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient}
}

// Health reports the status of the service and its dependencies
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "error"
	}
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}
	checks["database"] = dbStatus

	if h.redis != nil {
		redisStatus := "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}
		checks["redis"] = redisStatus
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}
