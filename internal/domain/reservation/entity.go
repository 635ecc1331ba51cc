package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyActive          = errors.New("reservation is already active")
	ErrAlreadyCancelled       = errors.New("reservation is already cancelled")
	ErrCancellationWindowOver = errors.New("cancellation window closed")
	ErrInvalidStatus          = errors.New("invalid reservation status")
)

// Reservation is one member's claim on a seat in a slot. There is at most one
// row per (userID, slotID) ever; cancel and rebook flip the same row between
// active and cancelled.
type Reservation struct {
	id          uuid.UUID
	userID      uuid.UUID
	slotID      uuid.UUID
	status      Status
	createdAt   time.Time
	cancelledAt *time.Time
}

func NewReservation(userID, slotID uuid.UUID) *Reservation {
	return &Reservation{
		id:     uuid.New(),
		userID: userID,
		slotID: slotID,
		status: StatusActive,
	}
}

func ReconstructReservation(
	id, userID, slotID uuid.UUID,
	status Status,
	createdAt time.Time,
	cancelledAt *time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		userID:      userID,
		slotID:      slotID,
		status:      status,
		createdAt:   createdAt,
		cancelledAt: cancelledAt,
	}
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) SlotID() uuid.UUID       { return r.slotID }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

// Cancel flips an active reservation to cancelled, subject to the
// cancellation window measured against the slot's start instant.
func (r *Reservation) Cancel(now, slotStart time.Time, policy CancellationPolicy) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !policy.WindowOpen(now, slotStart) {
		return ErrCancellationWindowOver
	}

	r.status = StatusCancelled
	cancelledAt := now
	r.cancelledAt = &cancelledAt
	return nil
}

// Reactivate flips a cancelled reservation back to active, reusing the row.
// Capacity and timing are the caller's responsibility; the entity only
// guards the state transition.
func (r *Reservation) Reactivate() error {
	if r.status == StatusActive {
		return ErrAlreadyActive
	}

	r.status = StatusActive
	r.cancelledAt = nil
	return nil
}
