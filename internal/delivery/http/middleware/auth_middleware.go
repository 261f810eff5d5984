package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-resume-backend/config"
	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// LinkTokenAuth validates the candidate's link token and resolves the profile
// it grants access to. Tokens are HMAC-signed by the auth collaborator; this
// service only verifies them. Claims: "pid" (profile id, decimal string) and
// optionally "tid" (tenant id).
func LinkTokenAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from query (links arrive as plain URLs)
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or token query parameter required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if cfg.LinkTokenSecret == "" {
				return nil, fmt.Errorf("LINK_TOKEN_SECRET is not configured")
			}
			return []byte(cfg.LinkTokenSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired link token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		pid, ok := claims["pid"].(string)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Token carries no profile", nil)
			c.Abort()
			return
		}
		profileID, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Malformed profile identifier in token", nil)
			c.Abort()
			return
		}

		tenantID := cfg.DefaultTenantID
		if tid, ok := claims["tid"].(string); ok {
			if parsed, err := strconv.ParseInt(tid, 10, 64); err == nil {
				tenantID = parsed
			}
		}

		c.Set(string(domain.KeyProfileID), profileID)
		c.Set(string(domain.KeyTenantID), tenantID)
		c.Next()
	}
}
