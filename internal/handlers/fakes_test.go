package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/middleware"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.Init()
}

var nop = zap.NewNop()

// as attaches an identity the way Authenticate does.
func as(id uint, role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSubjectID, id)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// ------------------------------------------------------------------
// users
// ------------------------------------------------------------------

type fakeUsers struct {
	registered []service.RegisterUserInput
	user       *models.User
	patch      service.UserPatch
	err        error
	google     *service.GoogleProfile
}

func (f *fakeUsers) Register(_ context.Context, in service.RegisterUserInput) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.registered {
		if r.Email == in.Email {
			return nil, httperr.Conflict("User with this email already exists")
		}
	}
	f.registered = append(f.registered, in)
	return &models.User{
		ID:           uint(len(f.registered)),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: "$2a$hash",
		AgeRange:     in.AgeRange,
	}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*service.UserSession, error) {
	if password != "secret1" {
		return nil, httperr.Unauthorized("Invalid email or password")
	}
	return &service.UserSession{Token: "tok", User: &models.User{ID: 1, Email: email}}, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUsers) Update(_ context.Context, id uint, patch service.UserPatch) (bool, error) {
	f.patch = patch
	if f.user == nil || f.user.ID != id {
		return false, nil
	}
	if patch.FirstName != nil {
		f.user.FirstName = *patch.FirstName
	}
	if patch.ProfilePhotoURL != nil {
		f.user.ProfilePhotoURL = *patch.ProfilePhotoURL
	}
	return true, nil
}

func (f *fakeUsers) List(_ context.Context, page, limit int) (*service.Page[models.User], error) {
	page, limit = service.NormalizePage(page, limit)
	return &service.Page[models.User]{Items: []models.User{}, Page: page, Limit: limit}, nil
}

func (f *fakeUsers) LoginWithGoogle(_ context.Context, p service.GoogleProfile) (*service.UserSession, error) {
	f.google = &p
	return &service.UserSession{Token: "google-token"}, nil
}

// ------------------------------------------------------------------
// audit
// ------------------------------------------------------------------

type auditRecorder struct {
	events []audit.Event
}

func (a *auditRecorder) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

type fakeAuditReader struct {
	shopID uint
	filter audit.Filter
	page   int
	limit  int
}

func (f *fakeAuditReader) ListForBarbershop(_ context.Context, shopID uint, filter audit.Filter, page, limit int) ([]models.AuditLog, int64, error) {
	f.shopID, f.filter, f.page, f.limit = shopID, filter, page, limit
	return nil, 0, nil
}

// ------------------------------------------------------------------
// storage
// ------------------------------------------------------------------

type memStore struct {
	keys []string
}

func (m *memStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

func postMultipart(r http.Handler, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
