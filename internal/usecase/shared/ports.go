package shared

import (
	"context"
	"time"

	"request-hub/internal/domain/request"
	sqlc "request-hub/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/mock_ports.go -package=sharedmock

// RequestRepository is the request store contract.
// Lookups return (nil, nil) when nothing matches; errors are infrastructure failures only.
type RequestRepository interface {
	Insert(ctx context.Context, draft *request.Request) (*request.Request, error)
	FindPending(ctx context.Context, sender, receiver string) (*request.Request, error)
	// FindByReceiver lists requests addressed to receiver; a nil status lists every status.
	FindByReceiver(ctx context.Context, receiver string, status *request.Status) ([]*request.Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error)
	// UpdateStatus moves a pending request to status and returns it, or nil when no pending request has the id.
	UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) (*request.Request, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// CredentialResolver turns a bearer credential into the caller's identity.
type CredentialResolver interface {
	ResolveIdentity(ctx context.Context, credential string) (string, error)
}

// Notifier delivers an event to a named downstream channel.
type Notifier interface {
	Send(ctx context.Context, channel, event string, payload any) error
}

// NotificationJobRepository persists outbox jobs awaiting delivery.
type NotificationJobRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDueJobs(ctx context.Context, tx sqlc.DBTX, limit int32) ([]*NotificationJob, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID) error
	RecordFailure(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, nextRunAt time.Time, lastError string) error
}
