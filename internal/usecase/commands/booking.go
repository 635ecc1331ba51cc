package commands

import (
	"context"
	"time"

	"ellevate-booking/internal/domain/reservation"
	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/pkg/clock"
	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/queries"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingCommands is the reservation ledger: the only writer of reservation
// state. Capacity, uniqueness and timing rules are all enforced here, inside
// one transaction per call, serialized per slot by the slot row lock.
type BookingCommands interface {
	Book(ctx context.Context, actor shared.Actor, userID, slotID uuid.UUID) (*queries.ReservationView, error)
	Cancel(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) (*queries.ReservationView, error)
}

type bookingCommandsImpl struct {
	uow              shared.UnitOfWork
	reservationReads queries.ReservationReadStore
	clock            clock.Clock
	policy           reservation.CancellationPolicy
	loc              *time.Location
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	reservationReads queries.ReservationReadStore,
	clk clock.Clock,
	cfg config.BookingConfig,
) (BookingCommands, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking timezone")
	}

	return &bookingCommandsImpl{
		uow:              uow,
		reservationReads: reservationReads,
		clock:            clk,
		policy:           reservation.NewCancellationPolicy(cfg.CancelCutoff),
		loc:              loc,
	}, nil
}

func (c *bookingCommandsImpl) Book(ctx context.Context, actor shared.Actor, userID, slotID uuid.UUID) (*queries.ReservationView, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, errs.ErrForbidden
	}

	now := c.clock.Now()
	var reservationID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Reads().UserExists(ctx, userID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !exists {
			return errs.ErrUserNotFound
		}

		slotEntity, err := c.lockSlot(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if slotEntity.HasStarted(now, c.loc) {
			return errs.ErrSlotInPast
		}

		activeCount, err := tx.Reads().ActiveReservationCount(ctx, slotID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !slotEntity.HasCapacityFor(activeCount) {
			return errs.ErrSlotFull
		}

		existing, err := tx.Reads().ReservationByUserAndSlot(ctx, userID, slotID)
		switch {
		case err == nil:
			// One row per (user, slot) ever: rebooking reactivates it.
			res, convErr := reservationFromSnapshot(existing)
			if convErr != nil {
				return convErr
			}
			if reactErr := res.Reactivate(); reactErr != nil {
				return errs.ErrAlreadyBooked
			}
			if saveErr := tx.Reservations().Save(ctx, tx.DB(), res); saveErr != nil {
				return errs.Mark(saveErr, errs.ErrDatabaseOperationFailed)
			}
			reservationID = res.ID()
			return nil

		case infra.IsKind(err, infra.KindNotFound):
			res := reservation.NewReservation(userID, slotID)
			id, createErr := tx.Reservations().Create(ctx, tx.DB(), res)
			if createErr != nil {
				if infra.IsKind(createErr, infra.KindDuplicateKey) {
					return errs.ErrAlreadyBooked
				}
				return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
			}
			reservationID = id
			return nil

		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, reservationID)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) (*queries.ReservationView, error) {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() && snap.UserID != actor.UserID {
			return errs.ErrForbidden
		}

		// Same lock as Book: a cancel cannot interleave with a booking
		// attempt on the slot, including reactivation of this very row.
		slotEntity, err := c.lockSlot(ctx, tx, snap.SlotID)
		if err != nil {
			return err
		}

		// The pre-lock read only resolved the slot and the owner; a
		// concurrent cancel or rebooking may have committed before the
		// lock was acquired, so the status decision needs a fresh row.
		snap, err = tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		res, err := reservationFromSnapshot(snap)
		if err != nil {
			return err
		}

		if cancelErr := res.Cancel(now, slotEntity.StartsAt(c.loc), c.policy); cancelErr != nil {
			switch cancelErr {
			case reservation.ErrAlreadyCancelled:
				return errs.ErrAlreadyCancelled
			case reservation.ErrCancellationWindowOver:
				return errs.ErrCancellationWindowClosed
			default:
				return errs.Mark(cancelErr, errs.ErrDomainValidation)
			}
		}

		if saveErr := tx.Reservations().Save(ctx, tx.DB(), res); saveErr != nil {
			return errs.Mark(saveErr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, reservationID)
}

func (c *bookingCommandsImpl) lockSlot(ctx context.Context, tx shared.Tx, slotID uuid.UUID) (*slot.TrainingSlot, error) {
	snap, err := tx.Reads().SlotByIDForUpdate(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return slotFromSnapshot(snap)
}

func (c *bookingCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := c.reservationReads.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func slotFromSnapshot(snap *shared.SlotSnapshot) (*slot.TrainingSlot, error) {
	start, err := slot.ParseTimeOfDay(snap.StartTime)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored slot start time unreadable"), errs.ErrDatabaseOperationFailed)
	}
	end, err := slot.ParseTimeOfDay(snap.EndTime)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored slot end time unreadable"), errs.ErrDatabaseOperationFailed)
	}
	return slot.ReconstructTrainingSlot(snap.ID, snap.Date, start, end, snap.MaxCapacity, snap.CreatedAt), nil
}

func reservationFromSnapshot(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	status := reservation.Status(snap.Status)
	if !status.IsValid() {
		return nil, errs.Mark(errs.New("stored reservation status unreadable"), errs.ErrDatabaseOperationFailed)
	}
	return reservation.ReconstructReservation(snap.ID, snap.UserID, snap.SlotID, status, snap.CreatedAt, snap.CancelledAt), nil
}
