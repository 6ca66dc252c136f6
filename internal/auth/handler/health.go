package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe; it reports store reachability rather
// than just process liveness. The database decides the status code,
// the session backend is informational.
func (h *Handler) Health(c *gin.Context) {
	check := func(hc HealthCheck) string {
		if hc != nil && hc(c.Request.Context()) {
			return "healthy"
		}
		return "unhealthy"
	}

	dbStatus := check(h.dbHealthy)
	redisStatus := check(h.redisHealthy)

	statusCode := http.StatusOK
	message := "Service is up and running"
	if dbStatus != "healthy" {
		statusCode = http.StatusInternalServerError
		message = "Service is not healthy"
	}

	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"success":    statusCode == http.StatusOK,
		"message":    message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"details": gin.H{
			"dependencies": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		},
	})
}
