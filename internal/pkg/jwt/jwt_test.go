//go:build unit

package jwt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"request-hub/internal/pkg/config"
	"request-hub/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newHS256Service(t *testing.T, mutate func(*config.JWTConfig)) *jwt.Service {
	t.Helper()
	cfg := config.JWTConfig{Secret: testSecret, RolesClient: "account"}
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := jwt.NewService(cfg)
	require.NoError(t, err)
	return svc
}

func signHS256(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims(username string) jwt.Claims {
	now := time.Now()
	return jwt.Claims{
		PreferredUsername: username,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "subject-" + username,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestService_GenerateAndValidate(t *testing.T) {
	svc := newHS256Service(t, nil)

	token, err := svc.GenerateToken("alice", []string{"user"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.PreferredUsername)
	assert.Equal(t, []string{"user"}, claims.Roles("account"))
}

func TestService_ValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.JWTConfig)
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				c := validClaims("alice")
				c.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Hour))
				return signHS256(t, c)
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "token without expiry",
			token: func(t *testing.T) string {
				c := validClaims("alice")
				c.ExpiresAt = nil
				return signHS256(t, c)
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, validClaims("alice")).SignedString([]byte("other"))
				require.NoError(t, err)
				return token
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not-a-jwt"
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:   "issuer mismatch",
			mutate: func(c *config.JWTConfig) { c.Issuer = "https://idp.example/realms/main" },
			token: func(t *testing.T) string {
				c := validClaims("alice")
				c.Issuer = "https://evil.example"
				return signHS256(t, c)
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:   "audience mismatch",
			mutate: func(c *config.JWTConfig) { c.Audiences = []string{"request-hub"} },
			token: func(t *testing.T) string {
				c := validClaims("alice")
				c.Audience = gojwt.ClaimStrings{"billing"}
				return signHS256(t, c)
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "missing preferred_username",
			token: func(t *testing.T) string {
				return signHS256(t, validClaims(""))
			},
			wantErr: jwt.ErrMissingIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newHS256Service(t, tt.mutate)

			claims, err := svc.ValidateToken(tt.token(t))

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_IssuerAndAudienceAccepted(t *testing.T) {
	svc := newHS256Service(t, func(c *config.JWTConfig) {
		c.Issuer = "https://idp.example/realms/main"
		c.Audiences = []string{"account", "request-hub"}
	})
	c := validClaims("bob")
	c.Issuer = "https://idp.example/realms/main"
	c.Audience = gojwt.ClaimStrings{"request-hub"}

	claims, err := svc.ValidateToken(signHS256(t, c))

	require.NoError(t, err)
	assert.Equal(t, "bob", claims.PreferredUsername)
}

func TestService_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	svc, err := jwt.NewService(config.JWTConfig{PublicKeyPEM: string(pemKey)})
	require.NoError(t, err)

	t.Run("accepts RS256 token", func(t *testing.T) {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodRS256, validClaims("carol")).SignedString(key)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "carol", claims.PreferredUsername)
	})

	t.Run("rejects HS256 token", func(t *testing.T) {
		_, err := svc.ValidateToken(signHS256(t, validClaims("carol")))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("cannot mint tokens", func(t *testing.T) {
		_, err := svc.GenerateToken("carol", nil, time.Minute)
		assert.ErrorIs(t, err, jwt.ErrSigningDisabled)
	})
}

func TestNewService_Errors(t *testing.T) {
	_, err := jwt.NewService(config.JWTConfig{})
	assert.ErrorIs(t, err, config.ErrJWTKeyMissing)

	_, err = jwt.NewService(config.JWTConfig{PublicKeyPEM: "not pem"})
	assert.Error(t, err)
}

func TestClaims_Roles(t *testing.T) {
	c := jwt.Claims{
		RealmAccess: jwt.RealmAccess{Roles: []string{"user", "offline_access"}},
		ResourceAccess: map[string]jwt.ClientAccess{
			"account": {Roles: []string{"manage-account", "user"}},
			"other":   {Roles: []string{"admin"}},
		},
	}

	assert.Equal(t, []string{"user", "offline_access", "manage-account"}, c.Roles("account"))
	assert.Equal(t, []string{"user", "offline_access"}, c.Roles("missing"))
}
