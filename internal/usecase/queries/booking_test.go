//go:build unit

package queries_test

import (
	"context"
	"testing"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/queries"
	"ellevate-booking/internal/usecase/shared"
	"ellevate-booking/tests/common/builder"
	queriesmock "ellevate-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBookingQueries(t *testing.T) (queries.BookingQueries, *queriesmock.MockReservationReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockReservationReadStore(ctrl)
	return queries.NewBookingQueries(store), store
}

func TestBookingQueries_GetReservation(t *testing.T) {
	userID := uuid.New()
	member := shared.Actor{UserID: userID, Role: "user"}

	t.Run("owner reads own reservation", func(t *testing.T) {
		q, store := newBookingQueries(t)
		view := builder.NewReservationBuilder().WithUserID(userID).BuildView()

		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := q.GetReservation(context.Background(), member, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, actual)
	})

	t.Run("admin reads any reservation", func(t *testing.T) {
		q, store := newBookingQueries(t)
		admin := shared.Actor{UserID: uuid.New(), Role: "admin"}
		view := builder.NewReservationBuilder().BuildView()

		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := q.GetReservation(context.Background(), admin, view.ID)
		require.NoError(t, err)
	})

	t.Run("member cannot read someone else's reservation", func(t *testing.T) {
		q, store := newBookingQueries(t)
		view := builder.NewReservationBuilder().BuildView()

		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := q.GetReservation(context.Background(), member, view.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		q, store := newBookingQueries(t)
		id := uuid.New()

		store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		_, err := q.GetReservation(context.Background(), member, id)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestBookingQueries_ListReservations(t *testing.T) {
	userID := uuid.New()
	member := shared.Actor{UserID: userID, Role: "user"}

	t.Run("member filter is pinned to their own history", func(t *testing.T) {
		q, store := newBookingQueries(t)
		other := uuid.New()

		store.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
				require.NotNil(t, filter.UserID)
				assert.Equal(t, userID, *filter.UserID)
				return nil, nil
			},
		)

		// Asking for another member's reservations silently collapses to own.
		_, err := q.ListReservations(context.Background(), member, queries.ReservationFilter{UserID: &other})
		require.NoError(t, err)
	})

	t.Run("admin filter passes through untouched", func(t *testing.T) {
		q, store := newBookingQueries(t)
		admin := shared.Actor{UserID: uuid.New(), Role: "admin"}
		target := uuid.New()
		views := []*queries.ReservationView{builder.NewReservationBuilder().WithUserID(target).BuildView()}

		store.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
				require.NotNil(t, filter.UserID)
				assert.Equal(t, target, *filter.UserID)
				return views, nil
			},
		)

		actual, err := q.ListReservations(context.Background(), admin, queries.ReservationFilter{UserID: &target})
		require.NoError(t, err)
		assert.Equal(t, views, actual)
	})

	t.Run("status filter values", func(t *testing.T) {
		q, store := newBookingQueries(t)

		valid := "cancelled"
		store.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(nil, nil)
		_, err := q.ListReservations(context.Background(), member, queries.ReservationFilter{Status: &valid})
		require.NoError(t, err)

		invalid := "pending"
		_, err = q.ListReservations(context.Background(), member, queries.ReservationFilter{Status: &invalid})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
