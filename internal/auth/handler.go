package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/view"
	"github.com/aura-webinar/landing/pkg/response"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// Handler exposes the demo admin gate over HTTP.
type Handler struct {
	gate   *view.Gate
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(gate *view.Gate, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{gate: gate, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login. The check is the fixed demo comparison; a
// failure is retryable and answered with the inline message.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unauthorized(c, view.MsgInvalidCredentials)
		return
	}
	if !h.gate.Check(req.Username, req.Password) {
		h.logger.Info("admin login rejected", zap.String("client_ip", c.ClientIP()))
		response.Unauthorized(c, view.MsgInvalidCredentials)
		return
	}
	token, expiresAt, err := h.jwt.Generate(req.Username, RoleAdmin)
	if err != nil {
		h.logger.Error("generate token failed", zap.Error(err))
		response.Internal(c, "failed to create session")
		return
	}
	response.OK(c, TokenResponse{Token: token, ExpiresAt: expiresAt, Username: req.Username})
}
