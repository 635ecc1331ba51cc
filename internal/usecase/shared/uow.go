package shared

import (
	"context"
	"time"

	"ellevate-booking/internal/domain/reservation"
	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/domain/user"
	"ellevate-booking/internal/infra/db"

	"github.com/google/uuid"
)

// Actor is the already-authenticated identity a request runs under. The core
// never authenticates; it only consumes what the auth layer established.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Slots() SlotRepository
	Reservations() ReservationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	// SlotByIDForUpdate takes a row lock on the slot; inside a transaction it
	// is the serialization point for all booking activity on that slot.
	SlotByIDForUpdate(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	ActiveReservationCount(ctx context.Context, slotID uuid.UUID) (int32, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	ReservationByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (*ReservationSnapshot, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Minimal snapshots for command-side decisions
type SlotSnapshot struct {
	ID          uuid.UUID
	Date        time.Time
	StartTime   string
	EndTime     string
	MaxCapacity int32
	CreatedAt   time.Time
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SlotID      uuid.UUID
	Status      string
	CreatedAt   time.Time
	CancelledAt *time.Time
}

type SlotRepository interface {
	// CreateBatch inserts slots skipping (date, start_time) duplicates and
	// returns the number actually created.
	CreateBatch(ctx context.Context, dbtx db.DBTX, slots []*slot.TrainingSlot) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	// Save persists a status transition (cancel or reactivate) of an
	// existing row.
	Save(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
}
