package handlers

import (
	"net/http"

	"bookingwizard/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last Redis health snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}
