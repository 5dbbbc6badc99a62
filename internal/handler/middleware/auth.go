package middleware

import (
	"log/slog"
	"net/http"

	"request-hub/internal/handler/httperr"
	"request-hub/internal/pkg/cookie"
	"request-hub/internal/pkg/errs"
	"request-hub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	resolver usecase.IdentityResolver
}

const (
	ctxCredentialKey = "credential"
	ctxIdentityKey   = "identity"
	ctxRolesKey      = "roles"

	KindUnauthenticated = "UNAUTHENTICATED"
)

func NewAuthMiddleware(resolver usecase.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// ExtractCredential returns the raw Authorization header value, falling back to the access token cookie.
func ExtractCredential(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return h
	}
	return cookie.GetAccessToken(c)
}

// RequireCredential only checks that a credential was sent. Verification is left to the usecase.
func (m *AuthMiddleware) RequireCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ExtractCredential(c)
		if credential == "" {
			abortUnauthenticated(c, errs.Mark(errs.New("credential is missing"), errs.ErrUnauthenticated), "Access token required")
			return
		}
		c.Set(ctxCredentialKey, credential)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ExtractCredential(c)
		if credential == "" {
			abortUnauthenticated(c, errs.Mark(errs.New("credential is missing"), errs.ErrUnauthenticated), "Access token required")
			return
		}

		principal, err := m.resolver.ResolvePrincipal(c.Request.Context(), credential)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortUnauthenticated(c, err, "Invalid or expired token")
			return
		}

		c.Set(ctxCredentialKey, credential)
		c.Set(ctxIdentityKey, principal.Identity)
		c.Set(ctxRolesKey, principal.Roles)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusUnauthorized, err, msg, gin.H{"kind": KindUnauthenticated})
}

func GetCredential(c *gin.Context) string {
	return c.GetString(ctxCredentialKey)
}

func GetIdentity(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return "", false
	}
	identity, ok := v.(string)
	return identity, ok
}

func GetRoles(c *gin.Context) ([]string, bool) {
	v, exists := c.Get(ctxRolesKey)
	if !exists {
		return nil, false
	}
	roles, ok := v.([]string)
	return roles, ok
}
