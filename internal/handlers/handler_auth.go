package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
	"github.com/pbk-app/project_bookkeeping_app/internal/platform/config"
)

// authHandler issues access tokens for the operator secret.
type authHandler struct {
	cfg *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)

	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

// issueToken godoc
// @Summary Exchange the operator secret for an access token
// @Description Verifies the operator secret against its configured bcrypt hash and issues a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.TokenRequest true "Operator secret"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Invalid secret"
// @Failure 503 {object} map[string]string "Token issuance disabled"
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for issueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if h.cfg.AdminSecretHash == "" {
		logger.Warn("Token issuance requested but ADMIN_SECRET_HASH is not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Token issuance is disabled"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminSecretHash), []byte(req.Secret)); err != nil {
		logger.Warn("Operator secret rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   "operator",
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
