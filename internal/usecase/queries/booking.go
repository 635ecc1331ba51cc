package queries

import (
	"context"

	"ellevate-booking/internal/domain/reservation"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetReservation(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	ListReservations(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationView, error)
}

type bookingQueriesImpl struct {
	reservations ReservationReadStore
}

func NewBookingQueries(reservations ReservationReadStore) BookingQueries {
	return &bookingQueriesImpl{reservations: reservations}
}

func (q *bookingQueriesImpl) GetReservation(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !actor.IsAdmin() && view.UserID != actor.UserID {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListReservations(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationView, error) {
	// Members only ever see their own history regardless of the filter.
	if !actor.IsAdmin() {
		own := actor.UserID
		filter.UserID = &own
	}

	if filter.Status != nil && !reservation.Status(*filter.Status).IsValid() {
		return nil, errs.Mark(errs.New("unknown reservation status"), errs.ErrDomainValidation)
	}

	views, err := q.reservations.FindByFilter(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
