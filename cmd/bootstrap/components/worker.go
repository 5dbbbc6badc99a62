package components

import (
	"context"
	"log/slog"

	"request-hub/internal/infra/notifier"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/pkg/config"
	"request-hub/internal/usecase/dispatch"
	"request-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(RegisterDispatcher),
)

// RegisterDispatcher runs the outbox dispatcher for the lifetime of the app.
// Other backends deliver inline and need no worker.
func RegisterDispatcher(
	lc fx.Lifecycle,
	cfg config.Config,
	tx shared.TxRunner,
	jobs shared.NotificationJobRepository,
	target *notifier.RedisNotifier,
	clk clock.Clock,
	logger *slog.Logger,
) {
	if cfg.Notify.Backend != config.NotifyBackendOutbox {
		return
	}

	d := dispatch.NewDispatcher(tx, jobs, target, clk, logger, dispatch.Config{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
		RetryBase:    cfg.Outbox.RetryBase,
	})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			logger.Info("outbox dispatcher started", "poll_interval", cfg.Outbox.PollInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("outbox dispatcher stopping")
			return d.Stop(ctx)
		},
	})
}
