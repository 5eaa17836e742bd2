package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ClaimsKey = "claims"
	tokenKey  = "accessToken"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Revocations reports access tokens revoked before their expiry (logout).
type Revocations interface {
	Contains(ctx context.Context, token string) (bool, error)
}

func bearer(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// AuthMiddleware verifies Bearer tokens and stores their claims on the context.
// rev may be nil.
func AuthMiddleware(ver Verifier, rev Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Fail(c, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		token, ok := bearer(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugf("token rejected: %v", err)
			response.Fail(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if rev != nil {
			revoked, err := rev.Contains(c.Request.Context(), token)
			if err != nil {
				logger.Errorf("blacklist lookup failed: %v", err)
				response.Fail(c, http.StatusServiceUnavailable, "authentication unavailable")
				return
			}
			if revoked {
				response.Fail(c, http.StatusUnauthorized, "token has been revoked")
				return
			}
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			response.Fail(c, http.StatusUnauthorized, "failed to parse claims")
			return
		}
		if sub, _ := claims["sub"].(string); sub == "" {
			response.Fail(c, http.StatusUnauthorized, "token has no subject")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRole rejects callers whose role claim is not one of roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, r := range roles {
			if a.Role == r {
				c.Next()
				return
			}
		}
		response.Fail(c, http.StatusForbidden, "insufficient permissions")
	}
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return models.Actor{}, false
	}
	cm, ok := v.(map[string]interface{})
	if !ok {
		return models.Actor{}, false
	}
	sub, _ := cm["sub"].(string)
	role, _ := cm["role"].(string)
	if sub == "" {
		return models.Actor{}, false
	}
	if role == "" {
		role = models.RoleVendor
	}
	return models.Actor{ID: sub, Role: role}, true
}

// AccessToken returns the raw bearer token accepted by AuthMiddleware.
func AccessToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// subjectKey picks the rate-limit key: the authenticated subject, else the client IP.
func subjectKey(c *gin.Context) string {
	if a, ok := ActorFrom(c); ok {
		return "sub:" + a.ID
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
