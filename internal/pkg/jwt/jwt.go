package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"time"

	"request-hub/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrMissingIdentity = errors.New("token carries no preferred_username")
	ErrSigningDisabled = errors.New("token signing requires a shared secret")
)

type RealmAccess struct {
	Roles []string `json:"roles,omitempty"`
}

type ClientAccess struct {
	Roles []string `json:"roles,omitempty"`
}

// Claims mirrors the access-token layout of Keycloak-style identity providers.
type Claims struct {
	PreferredUsername string                  `json:"preferred_username"`
	RealmAccess       RealmAccess             `json:"realm_access"`
	ResourceAccess    map[string]ClientAccess `json:"resource_access,omitempty"`
	jwt.RegisteredClaims
}

// Roles merges realm roles with the roles granted on the given client.
func (c *Claims) Roles(client string) []string {
	roles := slices.Clone(c.RealmAccess.Roles)
	if access, ok := c.ResourceAccess[client]; ok {
		for _, r := range access.Roles {
			if !slices.Contains(roles, r) {
				roles = append(roles, r)
			}
		}
	}
	return roles
}

type Service struct {
	secretKey []byte
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

func NewService(cfg config.JWTConfig) (*Service, error) {
	s := &Service{}
	methods := []string{jwt.SigningMethodHS256.Alg()}
	switch {
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse JWT public key: %w", err)
		}
		s.publicKey = key
		methods = []string{jwt.SigningMethodRS256.Alg()}
	case cfg.Secret != "":
		s.secretKey = []byte(cfg.Secret)
	default:
		return nil, config.ErrJWTKeyMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audiences) > 0 {
		opts = append(opts, jwt.WithAudience(cfg.Audiences...))
	}
	s.parser = jwt.NewParser(opts...)
	return s, nil
}

// GenerateToken signs claims with the shared secret. Only HS256 deployments and tests can mint tokens.
func (s *Service) GenerateToken(username string, realmRoles []string, ttl time.Duration) (string, error) {
	if s.secretKey == nil {
		return "", ErrSigningDisabled
	}
	now := time.Now()
	claims := Claims{
		PreferredUsername: username,
		RealmAccess:       RealmAccess{Roles: realmRoles},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := s.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if s.publicKey != nil {
			return s.publicKey, nil
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.PreferredUsername == "" {
		return nil, ErrMissingIdentity
	}

	return claims, nil
}
