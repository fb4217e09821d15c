package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookwise/utils"
)

// HealthHandler handles GET /health, serving the latest monitor snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
