package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const ServiceName = "BARBERIN API"

// PublicHandler answers the unauthenticated housekeeping routes.
type PublicHandler struct {
	now func() time.Time
}

func NewPublicHandler() *PublicHandler {
	return &PublicHandler{now: time.Now}
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}

func (h *PublicHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Endpoint not found",
		"path":    c.Request.URL.Path,
		"method":  c.Request.Method,
	})
}
