package bootstrap

import (
	"context"

	"request-hub/internal/pkg/config"
	"request-hub/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Invoke(RegisterTelemetry),
)

func RegisterTelemetry(lc fx.Lifecycle, cfg config.Config) error {
	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return nil
}
