package handlers

import (
	"net/http"

	"hotelops/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	status := http.StatusOK
	state := "ok"
	if !h.CheckedAt.IsZero() && !h.Healthy() {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "dependencies": h})
}
