package api

import (
	"fmt"
	"net/http"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validation.ValidateCredentials(req.Email, req.Password, h.cfg.Auth.MinPasswordLen); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	// Pre-check gives OAuth users a pointer to their provider instead
	// of a bare uniqueness error.
	check, err := h.services.Auth.CheckUser(ctx, req.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to pre-check email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check account"})
		return
	}
	if check.Exists && check.Provider != models.ProviderEmail {
		c.JSON(http.StatusConflict, gin.H{
			"error":    fmt.Sprintf("this email is registered via %s, please use %s login", check.Provider, check.Provider),
			"provider": check.Provider,
		})
		return
	}

	user, err := h.services.Auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "account created, please confirm your email",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, user, err := h.services.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	ident := identity(c)

	if err := h.services.Auth.SignOut(ctx, ident.Session.Token); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Session handles GET /v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	ident := identity(c)

	c.JSON(http.StatusOK, gin.H{
		"user":       ident.User,
		"expires_at": ident.Session.ExpiresAt,
		"is_admin":   ident.IsAdmin,
	})
}

// CheckUser handles GET /v1/auth/check-user?email=
func (h *AuthHandler) CheckUser(c *gin.Context) {
	ctx := c.Request.Context()

	email := c.Query("email")
	if errs := validation.ValidateEmail(email); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	check, err := h.services.Auth.CheckUser(ctx, email)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to check user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check account"})
		return
	}

	c.JSON(http.StatusOK, check)
}

// Confirm handles GET /v1/auth/confirm?token=
func (h *AuthHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.services.Auth.ConfirmEmail(ctx, token); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email confirmed, you can now log in"})
}

// OAuthRedirect handles GET /v1/auth/oauth/google
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	url := h.services.Auth.OAuthRedirectURL()
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// OAuthCallback handles GET /v1/auth/callback?code=&state=
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	ctx := c.Request.Context()

	if errMsg := c.Query("error"); errMsg != "" {
		h.log.Warn().Str("error", errMsg).Msg("OAuth callback returned error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "oauth login failed: " + errMsg})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
		return
	}

	session, user, err := h.services.Auth.HandleOAuthCallback(ctx, code, state)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}
