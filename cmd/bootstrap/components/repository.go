package components

import (
	"request-hub/internal/infra/repository"
	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		NewTxBeginner,
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.RequestQueries)),
		),
		fx.Annotate(
			repository.NewRequestRepository,
			fx.As(new(shared.RequestRepository)),
		),
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.NotificationQueries)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(shared.NotificationJobRepository)),
		),
		shared.NewTxRunner,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) shared.TxBeginner {
	return pool
}
