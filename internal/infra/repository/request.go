package repository

import (
	"context"
	"log/slog"

	"request-hub/internal/domain/request"
	"request-hub/internal/infra"
	"request-hub/internal/infra/repository/converter"
	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/errs"
	"request-hub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// pendingPairConstraint is the partial unique index guarding one pending request per ordered pair.
const pendingPairConstraint = "requests_pending_pair_uq"

type RequestQueries interface {
	CreateRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateRequestParams) (sqlc.Requests, error)
	GetPendingRequestByPair(ctx context.Context, db sqlc.DBTX, arg sqlc.GetPendingRequestByPairParams) (sqlc.Requests, error)
	GetRequestByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Requests, error)
	ListRequestsByReceiver(ctx context.Context, db sqlc.DBTX, receiver string) ([]sqlc.Requests, error)
	ListRequestsByReceiverAndStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.ListRequestsByReceiverAndStatusParams) ([]sqlc.Requests, error)
	UpdatePendingRequestStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePendingRequestStatusParams) (sqlc.Requests, error)
	DeleteRequest(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type RequestRepository struct {
	queries RequestQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewRequestRepository(queries RequestQueries, db sqlc.DBTX, logger *slog.Logger) *RequestRepository {
	return &RequestRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *RequestRepository) Insert(ctx context.Context, draft *request.Request) (*request.Request, error) {
	row, err := r.queries.CreateRequest(ctx, r.db, converter.RequestToInfra(draft))
	if err != nil {
		kind := infra.KindOf(err)
		if kind == infra.KindDuplicateKey && infra.ConstraintName(err) == pendingPairConstraint {
			return nil, errs.Mark(errs.Wrap(err, "pending request already exists"), errs.ErrDuplicatePendingRequest)
		}
		return nil, infra.WrapRepoErr(r.logger, kind, "failed to create request", err)
	}
	return converter.RequestFromInfra(row), nil
}

func (r *RequestRepository) FindPending(ctx context.Context, sender, receiver string) (*request.Request, error) {
	row, err := r.queries.GetPendingRequestByPair(ctx, r.db, sqlc.GetPendingRequestByPairParams{
		Sender:   sender,
		Receiver: receiver,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find pending request", err)
	}
	return converter.RequestFromInfra(row), nil
}

func (r *RequestRepository) FindByReceiver(ctx context.Context, receiver string, status *request.Status) ([]*request.Request, error) {
	var (
		rows []sqlc.Requests
		err  error
	)
	if status == nil {
		rows, err = r.queries.ListRequestsByReceiver(ctx, r.db, receiver)
	} else {
		rows, err = r.queries.ListRequestsByReceiverAndStatus(ctx, r.db, sqlc.ListRequestsByReceiverAndStatusParams{
			Receiver: receiver,
			Status:   status.String(),
		})
	}
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list requests by receiver", err)
	}
	return converter.RequestsFromInfra(rows), nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	row, err := r.queries.GetRequestByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find request by ID", err)
	}
	return converter.RequestFromInfra(row), nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) (*request.Request, error) {
	row, err := r.queries.UpdatePendingRequestStatus(ctx, r.db, sqlc.UpdatePendingRequestStatusParams{
		ID:     id,
		Status: status.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update request status", err)
	}
	return converter.RequestFromInfra(row), nil
}

// DeleteByID is idempotent: deleting an absent request succeeds.
func (r *RequestRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.queries.DeleteRequest(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to delete request", err)
	}
	return nil
}
