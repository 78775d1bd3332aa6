package handler

import (
	"net/http"
	"time"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/storage"
	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	postgres *storage.Postgres
}

func NewSystemHandler(postgres *storage.Postgres) *SystemHandler {
	return &SystemHandler{postgres: postgres}
}

func (h *SystemHandler) Health(c *gin.Context) {
	status := "healthy"
	statusCode := http.StatusOK

	checks := gin.H{}
	if h.postgres != nil {
		dbHealthy := h.postgres.Ping(c.Request.Context()) == nil
		checks["database"] = dbHealthy
		if !dbHealthy {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "quickscribe-ai",
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}
