package queries

import (
	"context"
	"time"

	"request-hub/internal/domain/request"
	"request-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("request-hub/usecase/queries")

type RequestView struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

//go:generate mockgen -source=request.go -destination=../../../tests/mock/queries/mock_request.go -package=queriesmock

type RequestQueries interface {
	// GetMyRequests lists the pending requests addressed to the caller, newest first.
	GetMyRequests(ctx context.Context, credential string) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	repo       shared.RequestRepository
	identities shared.CredentialResolver
}

func NewRequestQueries(repo shared.RequestRepository, identities shared.CredentialResolver) RequestQueries {
	return &requestQueriesImpl{repo: repo, identities: identities}
}

func (q *requestQueriesImpl) GetMyRequests(ctx context.Context, credential string) ([]*RequestView, error) {
	ctx, span := tracer.Start(ctx, "RequestQueries.GetMyRequests")
	defer span.End()

	receiver, err := q.identities.ResolveIdentity(ctx, credential)
	if err != nil {
		span.SetStatus(codes.Error, "unauthenticated")
		return nil, err
	}

	pending := request.StatusPending
	rows, err := q.repo.FindByReceiver(ctx, receiver, &pending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failure")
		return nil, err
	}
	span.SetAttributes(attribute.Int("request.count", len(rows)))

	views := make([]*RequestView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toRequestView(r))
	}
	return views, nil
}

func toRequestView(r *request.Request) *RequestView {
	return &RequestView{
		ID:        r.ID(),
		Sender:    r.Sender(),
		Receiver:  r.Receiver(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
