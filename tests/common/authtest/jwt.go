//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"request-hub/internal/pkg/config"
	"request-hub/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken mints a token for username carrying the given realm roles.
func (h *JWTHelper) GenerateToken(t *testing.T, username string, roles ...string) string {
	t.Helper()
	service, err := jwt.NewService(h.cfg)
	require.NoError(t, err)
	token, err := service.GenerateToken(username, roles, time.Hour)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken mints a token that expired well beyond the configured leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, username string) string {
	t.Helper()
	service, err := jwt.NewService(h.cfg)
	require.NoError(t, err)
	token, err := service.GenerateToken(username, nil, -(h.cfg.Leeway + time.Minute))
	require.NoError(t, err)
	return token
}
