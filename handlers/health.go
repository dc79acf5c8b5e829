package handlers

import (
	"net/http"

	"cowork/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the latest monitor snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": code == http.StatusOK, "data": status})
}
