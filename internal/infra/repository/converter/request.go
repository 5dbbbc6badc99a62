package converter

import (
	"request-hub/internal/domain/request"
	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/pgconv"
	"request-hub/internal/usecase/shared"
)

func RequestToInfra(r *request.Request) sqlc.CreateRequestParams {
	return sqlc.CreateRequestParams{
		Sender:   r.Sender(),
		Receiver: r.Receiver(),
	}
}

func RequestFromInfra(row sqlc.Requests) *request.Request {
	return request.Reconstruct(
		row.ID,
		row.Sender,
		row.Receiver,
		request.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func RequestsFromInfra(rows []sqlc.Requests) []*request.Request {
	out := make([]*request.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, RequestFromInfra(row))
	}
	return out
}

func NotificationJobFromInfra(row sqlc.NotificationJobs) *shared.NotificationJob {
	return &shared.NotificationJob{
		ID:        row.ID,
		Kind:      row.Kind,
		Topic:     row.Topic,
		Payload:   row.Payload,
		RunAt:     pgconv.TimeFromPgtype(row.RunAt),
		Attempts:  row.Attempts,
		Status:    row.Status,
		LastError: pgconv.StringPtrFromPgtype(row.LastError),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
