package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/middleware"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

// businessMessages are the client-facing texts for business rule codes.
var businessMessages = map[string]string{
	"time_conflict":        "The selected time slot is already booked",
	"invalid_state":        "The appointment can no longer change status",
	"in_the_past":          "Appointments must be booked in the future",
	"invalid_date_or_time": "Invalid date or time",
	"service_not_found":    "Service not found for this barbershop",
	"barber_not_found":     "Barber not found for this barbershop",
}

// writeError maps err onto the envelope. Internal errors are logged and
// answered with a generic message.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	status := httperr.Status(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
		)
	}

	if code := httperr.Code(err); code != "" {
		msg, ok := businessMessages[code]
		if !ok {
			msg = code
		}
		c.AbortWithStatusJSON(status, httpresp.Envelope{
			Success: false,
			Message: msg,
			Errors:  []string{code},
		})
		return
	}

	httpresp.Error(c, status, httperr.Message(err))
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpresp.ValidationError(c, validators.Messages(err))
		return false
	}
	return true
}

// bindQuery is bindJSON for query strings.
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httpresp.ValidationError(c, validators.Messages(err))
		return false
	}
	return true
}

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httpresp.ValidationError(c, []string{name + " must be a positive integer"})
		return 0, false
	}
	return uint(v), true
}

// caller returns the authenticated identity. Routes without
// Authenticate in front never reach here.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httpresp.Error(c, http.StatusUnauthorized, "Token not provided")
	}
	return id, ok
}
