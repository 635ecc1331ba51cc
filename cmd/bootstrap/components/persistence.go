package components

import (
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/infra/readstore"
	"ellevate-booking/internal/infra/uow"
	"ellevate-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are built lazily by the unit of work per
// transaction; only the pool-bound read side is wired here.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Factory for queries that must read several tables from one
		// transaction snapshot.
		func() queries.SlotReadStoreFactory {
			return func(dbtx db.DBTX) queries.SlotReadStore {
				return readstore.NewSlotReadStore(dbtx)
			}
		},
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
