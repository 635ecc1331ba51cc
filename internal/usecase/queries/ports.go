package queries

import (
	"context"
	"time"

	"ellevate-booking/internal/infra/db"

	"github.com/google/uuid"
)

// Read-side ports. The infra read stores satisfy these; the factories let a
// query run its reads against a read-only transaction instead of the pool
// when one snapshot must cover several statements.

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByFilter(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
}

type SlotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*SlotView, error)
	AttendeesBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]AttendeeView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*CredentialsView, error)
}

type SlotReadStoreFactory func(dbtx db.DBTX) SlotReadStore
