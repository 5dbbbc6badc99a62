package request

import (
	"time"

	"request-hub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotPending = errs.Mark(errs.New("request is no longer pending"), errs.ErrRequestAlreadyResolved)

// Request is a proposed connection from Sender to Receiver.
// IDs and timestamps are assigned by the store; Draft produces an unsaved request.
type Request struct {
	id        uuid.UUID
	sender    Identity
	receiver  Identity
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// Draft validates a new pending request before it is handed to the store.
func Draft(sender, receiver string) (*Request, error) {
	s, err := NewIdentity(sender)
	if err != nil {
		return nil, err
	}
	r, err := NewIdentity(receiver)
	if err != nil {
		return nil, err
	}
	if s == r {
		return nil, ErrSelfRequest
	}
	return &Request{
		sender:   s,
		receiver: r,
		status:   StatusPending,
	}, nil
}

// Reconstruct rebuilds a persisted request without re-running creation rules.
func Reconstruct(id uuid.UUID, sender, receiver string, status Status, createdAt, updatedAt time.Time) *Request {
	return &Request{
		id:        id,
		sender:    Identity{value: sender},
		receiver:  Identity{value: receiver},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Request) ID() uuid.UUID        { return r.id }
func (r *Request) Sender() string       { return r.sender.String() }
func (r *Request) Receiver() string     { return r.receiver.String() }
func (r *Request) Status() Status       { return r.status }
func (r *Request) CreatedAt() time.Time { return r.createdAt }
func (r *Request) UpdatedAt() time.Time { return r.updatedAt }

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

// CheckTransition reports whether the request may move to next.
// Only pending requests move, and never back to pending.
func (r *Request) CheckTransition(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if next == StatusPending {
		return ErrInvalidTargetStatus
	}
	if !r.IsPending() {
		return ErrNotPending
	}
	return nil
}
