package readstore

import (
	"context"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the command side's decision reads. Bound to a
// transaction it participates in that transaction's locks.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

const slotSnapshotSelect = `
SELECT id, date, start_time, end_time, max_capacity, created_at
FROM training_slots WHERE id = $1`

// SlotByIDForUpdate locks the slot row for the rest of the transaction.
// Every Book and Cancel goes through this lock, which serializes the
// count-check-write sequence per slot.
func (c *CommandReads) SlotByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	return c.scanSlot(c.db.QueryRow(ctx, slotSnapshotSelect+" FOR UPDATE", id))
}

func (c *CommandReads) scanSlot(row pgx.Row) (*shared.SlotSnapshot, error) {
	var snap shared.SlotSnapshot
	err := row.Scan(&snap.ID, &snap.Date, &snap.StartTime, &snap.EndTime, &snap.MaxCapacity, &snap.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read slot", err)
	}
	return &snap, nil
}

func (c *CommandReads) ActiveReservationCount(ctx context.Context, slotID uuid.UUID) (int32, error) {
	var count int32
	err := c.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE slot_id = $1 AND status = 'active'`,
		slotID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return count, nil
}

const reservationSnapshotSelect = `
SELECT id, user_id, slot_id, status, created_at, cancelled_at FROM reservations`

func (c *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return c.scanReservation(c.db.QueryRow(ctx, reservationSnapshotSelect+" WHERE id = $1", id))
}

func (c *CommandReads) ReservationByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (*shared.ReservationSnapshot, error) {
	return c.scanReservation(c.db.QueryRow(ctx,
		reservationSnapshotSelect+" WHERE user_id = $1 AND slot_id = $2", userID, slotID))
}

func (c *CommandReads) scanReservation(row pgx.Row) (*shared.ReservationSnapshot, error) {
	var snap shared.ReservationSnapshot
	err := row.Scan(&snap.ID, &snap.UserID, &snap.SlotID, &snap.Status, &snap.CreatedAt, &snap.CancelledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}
	return &snap, nil
}

func (c *CommandReads) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := c.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check user existence", err)
	}
	return exists, nil
}
