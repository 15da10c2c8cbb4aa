package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// identityKey is the gin context key for the resolved identity
const identityKey = "identity"

// identityMiddleware resolves the bearer token into an Identity once
// per request. Anonymous requests carry a nil identity and proceed;
// routes that need authentication stack requireIdentity on top.
func identityMiddleware(authService service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		ident, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			c.Abort()
			return
		}
		if ident != nil {
			c.Set(identityKey, ident)
		}

		c.Next()
	}
}

// requireIdentity rejects requests without a resolved identity
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// identity returns the request's resolved identity, or nil
func identity(c *gin.Context) *models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*models.Identity); ok {
			return ident
		}
	}
	return nil
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrEmailNotConfirmed):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrEmailNotConfirmed.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReplyDepth):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrReplyDepth.Error()})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
