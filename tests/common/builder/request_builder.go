//go:build unit || e2e

package builder

import (
	"time"

	domrequest "request-hub/internal/domain/request"
	reqdto "request-hub/internal/handler/dto/request"
	sqlc "request-hub/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestBuilder struct {
	ID        uuid.UUID
	Sender    string
	Receiver  string
	Status    domrequest.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRequestBuilder() *RequestBuilder {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	return &RequestBuilder{
		ID:        uuid.New(),
		Sender:    "alice",
		Receiver:  "bob",
		Status:    domrequest.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) WithID(id uuid.UUID) *RequestBuilder {
	b.ID = id
	return b
}

func (b *RequestBuilder) WithSender(sender string) *RequestBuilder {
	b.Sender = sender
	return b
}

func (b *RequestBuilder) WithReceiver(receiver string) *RequestBuilder {
	b.Receiver = receiver
	return b
}

func (b *RequestBuilder) WithStatus(status domrequest.Status) *RequestBuilder {
	b.Status = status
	return b
}

// Build methods
func (b *RequestBuilder) BuildDraft() (*domrequest.Request, error) {
	return domrequest.Draft(b.Sender, b.Receiver)
}

func (b *RequestBuilder) BuildDomain() *domrequest.Request {
	return domrequest.Reconstruct(b.ID, b.Sender, b.Receiver, b.Status, b.CreatedAt, b.UpdatedAt)
}

func (b *RequestBuilder) BuildInfra() sqlc.Requests {
	return sqlc.Requests{
		ID:        b.ID,
		Sender:    b.Sender,
		Receiver:  b.Receiver,
		Status:    b.Status.String(),
		CreatedAt: pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *RequestBuilder) BuildSendRequestDTO() reqdto.SendRequest {
	return reqdto.SendRequest{Receiver: b.Receiver}
}

func (b *RequestBuilder) BuildUpdateStatusDTO() reqdto.UpdateRequestStatus {
	return reqdto.UpdateRequestStatus{Status: b.Status.String()}
}
