package handler

import (
	"bytes"
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

func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "response body should be valid JSON: %s", w.Body.String())
	return resp
}

// Binding rejects these payloads before any service is touched, so a
// zero-value handler is enough.

func TestRegister_ValidationErrors(t *testing.T) {
	h := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", nil},
		{"missing email", map[string]string{"username": "jane", "password": "secret123"}},
		{"invalid email", map[string]string{"email": "nope", "username": "jane", "password": "secret123"}},
		{"short username", map[string]string{"email": "a@b.com", "username": "ab", "password": "secret123"}},
		{"short password", map[string]string{"email": "a@b.com", "username": "jane", "password": "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/v1/auth/register", tt.body)
			h.Register(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, "validation_error", resp["error_type"])
		})
	}
}

func TestConfirmRegistration_ValidationErrors(t *testing.T) {
	h := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing code", map[string]string{"email": "a@b.com"}},
		{"short code", map[string]string{"email": "a@b.com", "code": "123"}},
		{"non-numeric code", map[string]string{"email": "a@b.com", "code": "12345a"}},
		{"missing email", map[string]string{"code": "123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/v1/auth/register/confirm", tt.body)
			h.ConfirmRegistration(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	h := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", nil},
		{"missing identifier", map[string]string{"password": "secret123"}},
		{"missing password", map[string]string{"identifier": "jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/v1/auth/login", tt.body)
			h.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestConfirmPasswordReset_ValidationErrors(t *testing.T) {
	h := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing new password", map[string]string{"email": "a@b.com", "code": "123456"}},
		{"short new password", map[string]string{"email": "a@b.com", "code": "123456", "new_password": "123"}},
		{"bad code", map[string]string{"email": "a@b.com", "code": "abc", "new_password": "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/v1/auth/password-reset/confirm", tt.body)
			h.ConfirmPasswordReset(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
