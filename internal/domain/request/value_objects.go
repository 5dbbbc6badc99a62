package request

import (
	"strings"

	"request-hub/internal/pkg/errs"
)

const MaxIdentityLength = 255

var (
	ErrEmptyIdentity   = errs.Mark(errs.New("identity cannot be empty"), errs.ErrInvalidArgument)
	ErrIdentityTooLong = errs.Mark(errs.New("identity exceeds maximum length"), errs.ErrInvalidArgument)
	ErrSelfRequest     = errs.Mark(errs.New("sender and receiver must differ"), errs.ErrInvalidArgument)
)

// Identity is the stable name an identity provider issues for a user (e.g. preferred_username).
type Identity struct {
	value string
}

func NewIdentity(s string) (Identity, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Identity{}, ErrEmptyIdentity
	}
	if len(t) > MaxIdentityLength {
		return Identity{}, ErrIdentityTooLong
	}
	return Identity{value: t}, nil
}

func (i Identity) String() string { return i.value }
