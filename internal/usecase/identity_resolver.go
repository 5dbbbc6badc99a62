package usecase

import (
	"context"
	"strings"

	"request-hub/internal/pkg/errs"
	"request-hub/internal/pkg/jwt"
)

const bearerPrefix = "Bearer "

// Principal is the authenticated caller.
type Principal struct {
	Identity string
	Roles    []string
}

// IdentityResolver validates bearer credentials and extracts the caller.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, credential string) (string, error)
	ResolvePrincipal(ctx context.Context, credential string) (*Principal, error)
}

type identityResolverImpl struct {
	jwtService  *jwt.Service
	rolesClient string
}

func NewIdentityResolver(jwtService *jwt.Service, rolesClient string) IdentityResolver {
	return &identityResolverImpl{
		jwtService:  jwtService,
		rolesClient: rolesClient,
	}
}

func (r *identityResolverImpl) ResolveIdentity(ctx context.Context, credential string) (string, error) {
	p, err := r.ResolvePrincipal(ctx, credential)
	if err != nil {
		return "", err
	}
	return p.Identity, nil
}

// ResolvePrincipal accepts a raw token or an "Authorization: Bearer <token>" value.
// Every failure is reported as ErrUnauthenticated.
func (r *identityResolverImpl) ResolvePrincipal(_ context.Context, credential string) (*Principal, error) {
	token := strings.TrimSpace(credential)
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	if token == "" {
		return nil, errs.Mark(errs.New("credential is missing"), errs.ErrUnauthenticated)
	}

	claims, err := r.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "credential rejected"), errs.ErrUnauthenticated)
	}

	return &Principal{
		Identity: claims.PreferredUsername,
		Roles:    claims.Roles(r.rolesClient),
	}, nil
}
