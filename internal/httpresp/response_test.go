package httpresp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreated(t *testing.T) {
	w := run(func(c *gin.Context) { Created(c, gin.H{"id": 1}, "User registered successfully") })

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.NotContains(t, body, "errors")
}

func TestErrorDefaultsTo500(t *testing.T) {
	w := run(func(c *gin.Context) { Error(c, 0, "Internal server error") })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
}

func TestValidationError(t *testing.T) {
	w := run(func(c *gin.Context) { ValidationError(c, []string{"email is required"}) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []any{"email is required"}, body["errors"])
}

func TestListNeverNull(t *testing.T) {
	w := run(func(c *gin.Context) { List[int](c, nil, "") })

	body := decode(t, w)
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, "Success", body["message"])
}

func TestNotFoundDefaultMessage(t *testing.T) {
	w := run(func(c *gin.Context) { NotFound(c, "") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found", decode(t, w)["message"])
}
