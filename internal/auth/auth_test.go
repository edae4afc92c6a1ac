package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-webinar/landing/internal/view"
)

func TestJWT_GenerateValidate(t *testing.T) {
	svc := NewJWTService("secret", 1)
	token, expiresAt, err := svc.Generate("Admin", RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_Rejects(t *testing.T) {
	svc := NewJWTService("secret", 1)
	other := NewJWTService("other", 1)
	foreign, _, err := other.Generate("Admin", RoleAdmin)
	require.NoError(t, err)

	expired := NewJWTService("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	stale, _, err := expired.Generate("Admin", RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate, err := view.NewGate(view.DefaultUsername, view.DefaultPassword)
	require.NoError(t, err)
	svc := NewJWTService("secret", 1)
	h := NewHandler(gate, svc, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid", `{"username":"Admin","password":"12345"}`, http.StatusOK},
		{"wrong password", `{"username":"Admin","password":"nope"}`, http.StatusUnauthorized},
		{"wrong case", `{"username":"admin","password":"12345"}`, http.StatusUnauthorized},
		{"missing fields", `{}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			require.Equal(t, tt.wantCode, w.Code)

			var body struct {
				Success bool          `json:"success"`
				Data    TokenResponse `json:"data"`
				Error   string        `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantCode != http.StatusOK {
				assert.Equal(t, view.MsgInvalidCredentials, body.Error)
				return
			}
			assert.True(t, body.Success)
			claims, err := svc.Validate(body.Data.Token)
			require.NoError(t, err)
			assert.Equal(t, RoleAdmin, claims.Role)
		})
	}
}
