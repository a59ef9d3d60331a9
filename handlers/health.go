package handlers

import (
	"net/http"

	"workspot/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck serves the latest dependency snapshot. It never probes inline.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": status.Healthy(), "data": status})
}
