package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"request-hub/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient connects lazily; the log backend never touches Redis so the ping is skipped there.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Notify.Backend == config.NotifyBackendLog {
				return nil
			}
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to ping redis: %w", err)
			}
			logger.Info("redis connected", "addr", opts.Addr, "db", opts.DB)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
