//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/pkg/clock"
	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/commands"
	"ellevate-booking/internal/usecase/shared"
	"ellevate-booking/tests/common/builder"
	queriesmock "ellevate-booking/tests/mock/queries"
	sharedmock "ellevate-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// now is fixed at noon; the default test slot starts the next evening, well
// outside the 3h cancellation cutoff.
var (
	testNow       = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	testSlotDate  = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	testSlotStart = time.Date(2026, 9, 2, 19, 15, 0, 0, time.UTC)
)

type bookingMocks struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	resRepo  *sharedmock.MockReservationRepository
	resReads *queriesmock.MockReservationReadStore
	clock    *clock.MockClock
}

func newBookingCommands(t *testing.T) (commands.BookingCommands, *bookingMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &bookingMocks{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		reads:    sharedmock.NewMockCommandReads(ctrl),
		resRepo:  sharedmock.NewMockReservationRepository(ctrl),
		resReads: queriesmock.NewMockReservationReadStore(ctrl),
		clock:    clock.NewMockClock(testNow),
	}

	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		},
	).AnyTimes()
	m.tx.EXPECT().Reads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().Reservations().Return(m.resRepo).AnyTimes()
	m.tx.EXPECT().DB().Return(db.DBTX(nil)).AnyTimes()

	cfg := config.BookingConfig{
		CancelCutoff:  3 * time.Hour,
		ShowAttendees: true,
		SlotCapacity:  8,
		TimeZone:      "UTC",
	}

	cmd, err := commands.NewBookingCommands(m.uow, m.resReads, m.clock, cfg)
	require.NoError(t, err)
	return cmd, m
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func TestBookingCommands_Book(t *testing.T) {
	userID := uuid.New()
	slotID := uuid.New()
	actor := shared.Actor{UserID: userID, Role: "user"}

	slotSnap := func() *shared.SlotSnapshot {
		return builder.NewSlotBuilder().WithID(slotID).WithDate(testSlotDate).BuildSnapshot()
	}

	t.Run("first booking creates a reservation", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		reservationID := uuid.New()
		view := builder.NewReservationBuilder().
			WithID(reservationID).WithUserID(userID).WithSlotID(slotID).BuildView()

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(3), nil)
		m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(nil, notFoundErr())
		m.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservationID, nil)
		m.resReads.EXPECT().FindByID(gomock.Any(), reservationID).Return(view, nil)

		actual, err := cmd.Book(context.Background(), actor, userID, slotID)
		require.NoError(t, err)
		assert.Equal(t, view, actual)
	})

	t.Run("rebooking reactivates the cancelled row", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		existing := builder.NewReservationBuilder().
			WithUserID(userID).WithSlotID(slotID).AsCancelled()
		view := existing.BuildView()

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(0), nil)
		m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(existing.BuildSnapshot(), nil)
		m.resRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.resReads.EXPECT().FindByID(gomock.Any(), existing.ID).Return(view, nil)

		actual, err := cmd.Book(context.Background(), actor, userID, slotID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, actual.ID)
	})

	t.Run("booking for another member is forbidden", func(t *testing.T) {
		cmd, _ := newBookingCommands(t)

		_, err := cmd.Book(context.Background(), actor, uuid.New(), slotID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("admin can book on behalf of a member", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		admin := shared.Actor{UserID: uuid.New(), Role: "admin"}
		reservationID := uuid.New()
		view := builder.NewReservationBuilder().
			WithID(reservationID).WithUserID(userID).WithSlotID(slotID).BuildView()

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(0), nil)
		m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(nil, notFoundErr())
		m.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservationID, nil)
		m.resReads.EXPECT().FindByID(gomock.Any(), reservationID).Return(view, nil)

		actual, err := cmd.Book(context.Background(), admin, userID, slotID)
		require.NoError(t, err)
		assert.Equal(t, userID, actual.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(false, nil)

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("unknown slot", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(nil, notFoundErr())

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrSlotNotFound)
	})

	t.Run("slot already started", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		pastSnap := builder.NewSlotBuilder().WithID(slotID).
			WithDate(testNow.AddDate(0, 0, -1)).BuildSnapshot()

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(pastSnap, nil)

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrSlotInPast)
	})

	t.Run("slot at the start instant is no longer bookable", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		m.clock.Set(testSlotStart)

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrSlotInPast)
	})

	t.Run("full slot", func(t *testing.T) {
		cmd, m := newBookingCommands(t)

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(8), nil)

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrSlotFull)
	})

	t.Run("already booked and still active", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		existing := builder.NewReservationBuilder().
			WithUserID(userID).WithSlotID(slotID).BuildSnapshot()

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(1), nil)
		m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(existing, nil)

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrAlreadyBooked)
	})

	t.Run("unique index backstop maps to already booked", func(t *testing.T) {
		cmd, m := newBookingCommands(t)

		m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(0), nil)
		m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(nil, notFoundErr())
		m.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey))

		_, err := cmd.Book(context.Background(), actor, userID, slotID)
		assert.ErrorIs(t, err, errs.ErrAlreadyBooked)
	})
}

func TestBookingCommands_Cancel(t *testing.T) {
	userID := uuid.New()
	slotID := uuid.New()
	actor := shared.Actor{UserID: userID, Role: "user"}

	activeRes := func() *builder.ReservationBuilder {
		return builder.NewReservationBuilder().WithUserID(userID).WithSlotID(slotID)
	}
	slotSnap := func() *shared.SlotSnapshot {
		return builder.NewSlotBuilder().WithID(slotID).WithDate(testSlotDate).BuildSnapshot()
	}

	t.Run("cancel inside the window", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		res := activeRes()
		snap := res.BuildSnapshot()
		view := res.AsCancelled().BuildView()

		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(snap, nil).Times(2)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.resRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.resReads.EXPECT().FindByID(gomock.Any(), res.ID).Return(view, nil)

		actual, err := cmd.Cancel(context.Background(), actor, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", actual.Status)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		id := uuid.New()
		m.reads.EXPECT().ReservationByID(gomock.Any(), id).Return(nil, notFoundErr())

		_, err := cmd.Cancel(context.Background(), actor, id)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("cancelling someone else's reservation is forbidden", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		other := builder.NewReservationBuilder().WithSlotID(slotID)

		m.reads.EXPECT().ReservationByID(gomock.Any(), other.ID).Return(other.BuildSnapshot(), nil)

		_, err := cmd.Cancel(context.Background(), actor, other.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("admin can cancel any reservation", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		admin := shared.Actor{UserID: uuid.New(), Role: "admin"}
		res := activeRes()
		snap := res.BuildSnapshot()
		view := res.AsCancelled().BuildView()

		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(snap, nil).Times(2)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.resRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.resReads.EXPECT().FindByID(gomock.Any(), res.ID).Return(view, nil)

		_, err := cmd.Cancel(context.Background(), admin, res.ID)
		require.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		res := activeRes().AsCancelled()

		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(res.BuildSnapshot(), nil).Times(2)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)

		_, err := cmd.Cancel(context.Background(), actor, res.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyCancelled)
	})

	t.Run("cancel that lost the lock race sees the committed state", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		res := activeRes()
		stale := res.BuildSnapshot()
		committed := res.AsCancelled().BuildSnapshot()

		// Another cancel committed between the first read and the lock;
		// the re-read under the lock must surface it.
		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(stale, nil)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)
		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(committed, nil)

		_, err := cmd.Cancel(context.Background(), actor, res.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyCancelled)
	})

	t.Run("window closed inside the cutoff", func(t *testing.T) {
		cmd, m := newBookingCommands(t)
		res := activeRes()
		// 2h before a 19:15 start with a 3h cutoff.
		m.clock.Set(testSlotStart.Add(-2 * time.Hour))

		m.reads.EXPECT().ReservationByID(gomock.Any(), res.ID).Return(res.BuildSnapshot(), nil).Times(2)
		m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(slotSnap(), nil)

		_, err := cmd.Cancel(context.Background(), actor, res.ID)
		assert.ErrorIs(t, err, errs.ErrCancellationWindowClosed)
	})
}

// Guards against the readback silently swallowing read store failures.
func TestBookingCommands_ReadBackFailure(t *testing.T) {
	cmd, m := newBookingCommands(t)
	userID := uuid.New()
	slotID := uuid.New()
	actor := shared.Actor{UserID: userID, Role: "user"}
	snap := builder.NewSlotBuilder().WithID(slotID).WithDate(testSlotDate).BuildSnapshot()

	m.reads.EXPECT().UserExists(gomock.Any(), userID).Return(true, nil)
	m.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotID).Return(snap, nil)
	m.reads.EXPECT().ActiveReservationCount(gomock.Any(), slotID).Return(int32(0), nil)
	m.reads.EXPECT().ReservationByUserAndSlot(gomock.Any(), userID, slotID).Return(nil, notFoundErr())
	m.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	m.resReads.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, notFoundErr())

	_, err := cmd.Book(context.Background(), actor, userID, slotID)
	assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
}
