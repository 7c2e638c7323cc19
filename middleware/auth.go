package middleware

import (
	"net/http"
	"strings"

	"simba/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key holding the verified *auth.Principal.
const PrincipalKey = "principal"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AdminAuth admits operators whose role allows action.
func AdminAuth(authn auth.Authenticator, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		principal, err := authn.Verify(token)
		if err != nil || principal.IsCustomer {
			zap.L().Debug("admin token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if !authn.Authorize(principal, action) {
			zap.L().Warn("admin action forbidden",
				zap.String("adminId", principal.ID),
				zap.String("role", principal.Role),
				zap.String("action", action))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CustomerAuth requires a valid customer token.
func CustomerAuth(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		principal, err := authn.Verify(token)
		if err != nil || !principal.IsCustomer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// OptionalCustomer attaches a customer principal when a valid token is sent
// and lets the request through either way.
func OptionalCustomer(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if principal, err := authn.Verify(token); err == nil && principal.IsCustomer {
				c.Set(PrincipalKey, principal)
			}
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by one of the auth middlewares.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
