package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	if message == "" {
		message = "Success"
	}
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func OK(c *gin.Context, data any, message string) {
	Success(c, http.StatusOK, data, message)
}

func Created(c *gin.Context, data any, message string) {
	Success(c, http.StatusCreated, data, message)
}

// List answers with a slice, never null.
func List[T any](c *gin.Context, items []T, message string) {
	if items == nil {
		items = []T{}
	}
	OK(c, items, message)
}

// Error aborts the chain with a failure envelope. A zero status means 500.
func Error(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

func ValidationError(c *gin.Context, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}
