package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("request-hub/usecase/dispatch")

const maxBackoff = 5 * time.Minute

type Config struct {
	PollInterval time.Duration
	BatchSize    int32
	MaxAttempts  int32
	RetryBase    time.Duration
}

// Dispatcher drains queued notification jobs into a downstream Notifier.
// Delivery is at-least-once: a job is marked sent only after the target accepted it.
type Dispatcher struct {
	tx     shared.TxRunner
	jobs   shared.NotificationJobRepository
	target shared.Notifier
	clock  clock.Clock
	logger *slog.Logger
	cfg    Config

	cancel context.CancelFunc
	done   chan struct{}
}

func NewDispatcher(tx shared.TxRunner, jobs shared.NotificationJobRepository, target shared.Notifier, clk clock.Clock, logger *slog.Logger, cfg Config) *Dispatcher {
	return &Dispatcher{
		tx:     tx,
		jobs:   jobs,
		target: target,
		clock:  clk,
		logger: logger,
		cfg:    cfg,
	}
}

func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})

	go func() {
		defer close(d.done)
		d.loop(ctx)
	}()
}

// Stop cancels the poll loop and waits for the in-flight batch to finish or ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.cancel == nil {
		return nil
	}
	d.cancel()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) loop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("outbox dispatch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce claims one batch of due jobs and attempts each. It returns the number delivered.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Dispatcher.RunOnce")
	defer span.End()

	var sent int
	err := d.tx.Within(ctx, func(ctx context.Context, tx sqlc.DBTX) error {
		sent = 0
		jobs, err := d.jobs.ClaimDueJobs(ctx, tx, d.cfg.BatchSize)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("outbox.claimed", len(jobs)))

		for _, job := range jobs {
			if sendErr := d.deliver(ctx, job); sendErr != nil {
				status, nextRunAt := d.nextAttempt(job)
				d.logger.Warn("notification delivery failed",
					slog.String("job_id", job.ID.String()),
					slog.String("channel", job.Topic),
					slog.String("event", job.Kind),
					slog.Int("attempt", int(job.Attempts)+1),
					slog.String("next_status", status),
					slog.String("error", sendErr.Error()))
				if err := d.jobs.RecordFailure(ctx, tx, job.ID, status, nextRunAt, sendErr.Error()); err != nil {
					return err
				}
				continue
			}
			if err := d.jobs.MarkSent(ctx, tx, job.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return 0, err
	}
	span.SetAttributes(attribute.Int("outbox.sent", sent))
	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, job *shared.NotificationJob) error {
	return d.target.Send(ctx, job.Topic, job.Kind, json.RawMessage(job.Payload))
}

// nextAttempt schedules an exponential backoff, or gives up once MaxAttempts is reached.
func (d *Dispatcher) nextAttempt(job *shared.NotificationJob) (string, time.Time) {
	now := d.clock.Now()
	attempts := job.Attempts + 1
	if d.cfg.MaxAttempts > 0 && attempts >= d.cfg.MaxAttempts {
		return shared.JobStatusFailed, now
	}
	return shared.JobStatusQueued, now.Add(Backoff(d.cfg.RetryBase, attempts))
}

// Backoff returns base * 2^(attempt-1), capped at five minutes.
func Backoff(base time.Duration, attempt int32) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := int32(1); i < attempt; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}
