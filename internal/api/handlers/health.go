package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	engineStatus := "ok"

	if theory.Evaluate(engineSelfCheck.start, engineSelfCheck.expr) != engineSelfCheck.want {
		status, code = "unhealthy", http.StatusServiceUnavailable
		engineStatus = "degraded"
	}

	c.JSON(code, gin.H{
		"status": status,
		"engine": gin.H{
			"status": engineStatus,
		},
	})
}
