package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/usecase/shared"
)

// OutboxNotifier queues events as notification jobs; the dispatcher delivers them later.
type OutboxNotifier struct {
	jobs  shared.NotificationJobRepository
	db    sqlc.DBTX
	clock clock.Clock
}

func NewOutboxNotifier(jobs shared.NotificationJobRepository, db sqlc.DBTX, clk clock.Clock) *OutboxNotifier {
	return &OutboxNotifier{
		jobs:  jobs,
		db:    db,
		clock: clk,
	}
}

func (n *OutboxNotifier) Send(ctx context.Context, channel, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return n.jobs.CreateJob(ctx, n.db, event, channel, body, n.clock.Now())
}
