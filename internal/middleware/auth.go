package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/metrics"
)

const (
	ContextSubjectID = "subjectID"
	ContextRole      = "role"
)

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token. When roles
// are given, the token's role must be one of them.
func Authenticate(tokens TokenVerifier, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			metrics.TokenVerifications.WithLabelValues("missing").Inc()
			httpresp.Error(c, http.StatusUnauthorized, "Token not provided")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			metrics.TokenVerifications.WithLabelValues("invalid").Inc()
			httpresp.Error(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			metrics.TokenVerifications.WithLabelValues("invalid").Inc()
			httpresp.Error(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		id, err := claims.Identity()
		if err != nil {
			metrics.TokenVerifications.WithLabelValues("invalid").Inc()
			httpresp.Error(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, id.Role) {
			metrics.TokenVerifications.WithLabelValues("forbidden").Inc()
			httpresp.Error(c, http.StatusForbidden, "Access denied")
			return
		}

		metrics.TokenVerifications.WithLabelValues("ok").Inc()
		c.Set(ContextSubjectID, id.SubjectID)
		c.Set(ContextRole, id.Role)
		c.Next()
	}
}

// IdentityFrom returns the caller attached by Authenticate.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	id, ok := c.Get(ContextSubjectID)
	if !ok {
		return auth.Identity{}, false
	}
	role, _ := c.Get(ContextRole)
	subject, _ := id.(uint)
	r, _ := role.(auth.Role)
	return auth.Identity{SubjectID: subject, Role: r}, subject != 0
}
