package components

import (
	"log/slog"

	"request-hub/internal/pkg/clock"
	"request-hub/internal/pkg/config"
	"request-hub/internal/pkg/jwt"
	"request-hub/internal/usecase"
	"request-hub/internal/usecase/commands"
	"request-hub/internal/usecase/queries"
	"request-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseResolversModule,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseResolversModule = fx.Module("usecase/resolvers",
	fx.Provide(
		NewIdentityResolver,
		func(r usecase.IdentityResolver) shared.CredentialResolver { return r },
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewRequestCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
	),
)

func NewIdentityResolver(svc *jwt.Service, cfg config.Config) usecase.IdentityResolver {
	return usecase.NewIdentityResolver(svc, cfg.JWT.RolesClient)
}

func NewRequestCommands(
	repo shared.RequestRepository,
	identities shared.CredentialResolver,
	sinks shared.Sinks,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) commands.RequestCommands {
	return commands.NewRequestUseCase(repo, identities, sinks, clk, logger, cfg.Notify.SendTimeout)
}
