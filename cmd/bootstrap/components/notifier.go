package components

import (
	"log/slog"

	"request-hub/internal/infra/notifier"
	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/pkg/config"
	"request-hub/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		clock.NewRealClock,
		NewRedisNotifier,
		NewNotifier,
		NewSinks,
	),
)

func NewRedisNotifier(client redis.UniversalClient, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notifier.RedisNotifier {
	return notifier.NewRedisNotifier(client, cfg.Redis.StreamPrefix, cfg.Redis.StreamMaxLen, clk, logger)
}

// NewNotifier picks the notifier the request lifecycle writes to.
// With the outbox backend, Redis is reached later through the dispatcher.
func NewNotifier(
	cfg config.Config,
	redisNotifier *notifier.RedisNotifier,
	jobs shared.NotificationJobRepository,
	db sqlc.DBTX,
	clk clock.Clock,
	logger *slog.Logger,
) shared.Notifier {
	switch cfg.Notify.Backend {
	case config.NotifyBackendRedis:
		return redisNotifier
	case config.NotifyBackendLog:
		return notifier.NewLogNotifier(logger)
	default:
		return notifier.NewOutboxNotifier(jobs, db, clk)
	}
}

func NewSinks(cfg config.Config, n shared.Notifier) shared.Sinks {
	return shared.Sinks{
		Conversation: shared.NewSink(cfg.Notify.ConversationChannel, n),
		Audit:        shared.NewSink(cfg.Notify.AuditChannel, n),
	}
}
