package handlers

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"UserAPI/internal/serializer"
	"UserAPI/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func TestOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "svc:9000"
	c, _ := newContext(req)
	assert.Equal(t, "http://svc:9000", origin(c))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://svc:9000", origin(c))

	req.TLS = nil
	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://svc:9000", origin(c))

	req.Header.Set("X-Forwarded-Proto", "javascript")
	assert.Equal(t, "http://svc:9000", origin(c))

	req.Header.Set("X-Forwarded-Proto", " HTTPS ")
	assert.Equal(t, "https://svc:9000", origin(c))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", fmt.Errorf("get: %w", service.ErrNotFound), http.StatusNotFound, `{"detail":"Not found."}`},
		{"validation", serializer.ValidationError{"name": {"bad"}}, http.StatusBadRequest, `{"name":["bad"]}`},
		{"parse", &serializer.ParseError{Err: errors.New("unexpected EOF")}, http.StatusBadRequest, `{"detail":"JSON parse error - unexpected EOF"}`},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, `{"detail":"A server error occurred."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
			writeError(c, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseID_WritesNotFound(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/users/x/", nil))
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	_, ok := parseID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
