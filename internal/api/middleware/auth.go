package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/services/auth"
	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

// BearerAuthMiddleware accepts the static API token and, when JWT is
// configured, HS256 access tokens issued by the JWT service.
func BearerAuthMiddleware(cfg *config.AuthConfig, jwtService *auth.JWTService) gin.HandlerFunc {
	apiToken := []byte(cfg.APIToken)

	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		if len(apiToken) > 0 && subtle.ConstantTimeCompare([]byte(token), apiToken) == 1 {
			c.Set("auth_method", "api_token")
			c.Next()
			return
		}

		if jwtService != nil && jwtService.Enabled() {
			claims, err := jwtService.ValidateAccessToken(token)
			if err == nil {
				c.Set("auth_method", "jwt")
				c.Set("user_id", claims.Subject)
				c.Set("token_jti", claims.ID)
				c.Next()
				return
			}
			utils.LogDebug(c.Request.Context(), "JWT validation failed", utils.Fields{
				"error": err.Error(),
			})
		}

		abortUnauthorized(c)
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="yt-dlp-api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      utils.NewUnauthorizedError(),
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// extractToken extracts the token from an "Authorization: Bearer" header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
