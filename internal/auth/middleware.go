package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"turfbook/internal/api"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "turfbook_session"

	ctxUserID  = "user_id"
	ctxEmail   = "user_email"
	ctxRole    = "user_role"
	ctxIsAdmin = "user_is_admin"
)

// tokensFromRequest lists the session cookie first, then a Bearer header.
func tokensFromRequest(c *gin.Context) []string {
	var tokens []string
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		tokens = append(tokens, cookie)
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) == "Bearer" {
		if t := strings.TrimSpace(parts[1]); t != "" {
			tokens = append(tokens, t)
		}
	}

	return tokens
}

// claimsFromRequest returns the claims of the first valid token. A stale
// cookie does not hide a valid header. With no token at all it returns
// nil, nil; otherwise the first validation error.
func claimsFromRequest(c *gin.Context, secret string) (*Claims, error) {
	var firstErr error
	for _, token := range tokensFromRequest(c) {
		claims, err := ValidateToken(token, secret)
		if err == nil {
			return claims, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxIsAdmin, claims.IsAdmin)
}

// Authenticate attaches the session user when one is present and never aborts.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromRequest(c, secret); err == nil && claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, secret)
		if err == nil && claims == nil {
			api.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				api.Fail(c, http.StatusUnauthorized, "Session expired")
				return
			}
			api.Fail(c, http.StatusUnauthorized, "Invalid session")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			api.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != requiredRole {
			api.Fail(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(ctxIsAdmin)
	if !ok {
		return false
	}
	isAdmin, _ := v.(bool)
	return isAdmin
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
