package repository

import (
	"context"
	"log/slog"
	"time"

	"request-hub/internal/infra"
	"request-hub/internal/infra/repository/converter"
	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/pgconv"
	"request-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	ClaimDueNotificationJobs(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	RecordNotificationJobFailure(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordNotificationJobFailureParams) error
}

type NotificationRepository struct {
	queries NotificationQueries
	logger  *slog.Logger
}

func NewNotificationRepository(queries NotificationQueries, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  shared.JobStatusQueued,
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to create notification job", err)
	}

	return nil
}

// ClaimDueJobs locks up to limit due jobs for the lifetime of tx; concurrent claimers skip them.
func (r *NotificationRepository) ClaimDueJobs(ctx context.Context, tx sqlc.DBTX, limit int32) ([]*shared.NotificationJob, error) {
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, tx, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to claim notification jobs", err)
	}

	jobs := make([]*shared.NotificationJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, converter.NotificationJobFromInfra(row))
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID) error {
	err := r.queries.MarkNotificationJobSent(ctx, tx, jobID)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) RecordFailure(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, nextRunAt time.Time, lastError string) error {
	params := sqlc.RecordNotificationJobFailureParams{
		ID:        jobID,
		Status:    status,
		RunAt:     pgconv.TimeToPgtype(nextRunAt),
		LastError: pgconv.StringToNullablePgtype(lastError),
	}

	err := r.queries.RecordNotificationJobFailure(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to record notification job failure", err)
	}
	return nil
}
