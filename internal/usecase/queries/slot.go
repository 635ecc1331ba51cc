package queries

import (
	"context"
	"time"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/pkg/clock"
	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// SlotListParams selects a viewing window. Date wins when set; otherwise the
// week WeekOffset weeks from now is listed.
type SlotListParams struct {
	Date       *time.Time
	WeekOffset int
}

type SlotQueries interface {
	GetSlot(ctx context.Context, actor shared.Actor, id uuid.UUID) (*SlotView, error)
	ListSlots(ctx context.Context, actor shared.Actor, params SlotListParams) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	uow           shared.UnitOfWork
	slotsForTx    SlotReadStoreFactory
	clock         clock.Clock
	loc           *time.Location
	showAttendees bool
}

func NewSlotQueries(
	uow shared.UnitOfWork,
	slotsForTx SlotReadStoreFactory,
	clk clock.Clock,
	cfg config.BookingConfig,
) (SlotQueries, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking timezone")
	}

	return &slotQueriesImpl{
		uow:           uow,
		slotsForTx:    slotsForTx,
		clock:         clk,
		loc:           loc,
		showAttendees: cfg.ShowAttendees,
	}, nil
}

func (q *slotQueriesImpl) GetSlot(ctx context.Context, actor shared.Actor, id uuid.UUID) (*SlotView, error) {
	var view *SlotView

	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		store := q.slotsForTx(dbtx)

		found, err := store.FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrSlotNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if q.attendeesVisibleTo(actor) {
			attendees, err := store.AttendeesBySlotIDs(ctx, []uuid.UUID{found.ID})
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			found.Attendees = attendees[found.ID]
		}

		view = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListSlots reads the slots and their attendee lists in one read-only
// transaction so the counts and the names describe the same instant.
func (q *slotQueriesImpl) ListSlots(ctx context.Context, actor shared.Actor, params SlotListParams) ([]*SlotView, error) {
	from, to := q.window(params)

	var views []*SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		store := q.slotsForTx(dbtx)

		found, err := store.FindByDateRange(ctx, from, to)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if q.attendeesVisibleTo(actor) && len(found) > 0 {
			ids := make([]uuid.UUID, len(found))
			for i, v := range found {
				ids[i] = v.ID
			}
			attendees, err := store.AttendeesBySlotIDs(ctx, ids)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			for _, v := range found {
				v.Attendees = attendees[v.ID]
			}
		}

		views = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *slotQueriesImpl) window(params SlotListParams) (time.Time, time.Time) {
	if params.Date != nil {
		day := params.Date.In(q.loc)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, q.loc)
		return day, day
	}
	return slot.WeekRange(q.clock.Now(), params.WeekOffset, q.loc)
}

func (q *slotQueriesImpl) attendeesVisibleTo(actor shared.Actor) bool {
	return q.showAttendees || actor.IsAdmin()
}
