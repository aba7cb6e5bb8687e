package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/service"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthenticator is implemented by *auth.GoogleOAuth.
type GoogleAuthenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// GoogleLogin is implemented by *service.UserService.
type GoogleLogin interface {
	LoginWithGoogle(ctx context.Context, p service.GoogleProfile) (*service.UserSession, error)
}

// AuthHandler runs Google sign-in for users. The session token is handed
// to the frontend through a redirect.
type AuthHandler struct {
	google       GoogleAuthenticator
	users        GoogleLogin
	frontendURL  string
	secureCookie bool
	log          *zap.Logger
}

func NewAuthHandler(google GoogleAuthenticator, users GoogleLogin, frontendURL string, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		google:       google,
		users:        users,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		secureCookie: secureCookie,
		log:          log.Named("oauth"),
	}
}

// --------- Handlers ---------

func (h *AuthHandler) GoogleStart(c *gin.Context) {
	if h.google == nil {
		writeError(c, h.log, httperr.Unavailable("Google login is not configured"))
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/auth/google", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		writeError(c, h.log, httperr.Unavailable("Google login is not configured"))
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/auth/google", "", h.secureCookie, true)
	if err != nil || expected == "" || c.Query("state") != expected {
		writeError(c, h.log, httperr.Invalid("Invalid OAuth state"))
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirect(c, url.Values{"error": {"access_denied"}})
		return
	}

	ctx := c.Request.Context()
	gu, err := h.google.Exchange(ctx, code)
	if err != nil {
		h.log.Warn("google exchange failed", zap.Error(err))
		h.redirect(c, url.Values{"error": {"google_auth_failed"}})
		return
	}

	session, err := h.users.LoginWithGoogle(ctx, service.GoogleProfile{
		ID:         gu.ID,
		Email:      gu.Email,
		GivenName:  gu.GivenName,
		FamilyName: gu.FamilyName,
		Picture:    gu.Picture,
	})
	if err != nil {
		h.log.Error("google login failed", zap.Error(err))
		h.redirect(c, url.Values{"error": {"google_auth_failed"}})
		return
	}

	h.redirect(c, url.Values{"token": {session.Token}})
}

func (h *AuthHandler) redirect(c *gin.Context, q url.Values) {
	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?"+q.Encode())
}
