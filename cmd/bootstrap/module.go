package bootstrap

import (
	"request-hub/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TelemetryModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.RepositoryModule,
	components.NotifierModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
