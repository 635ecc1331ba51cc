//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/pkg/clock"
	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/commands"
	"ellevate-booking/internal/usecase/shared"
	sharedmock "ellevate-booking/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newScheduleCommands(t *testing.T, cfg config.BookingConfig) (commands.ScheduleCommands, *sharedmock.MockSlotRepository, *clock.MockClock) {
	t.Helper()
	ctrl := gomock.NewController(t)

	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	slotRepo := sharedmock.NewMockSlotRepository(ctrl)
	clk := clock.NewMockClock(testNow)

	uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		},
	).AnyTimes()
	tx.EXPECT().Slots().Return(slotRepo).AnyTimes()
	tx.EXPECT().DB().Return(nil).AnyTimes()

	cmd, err := commands.NewScheduleCommands(uow, clk, cfg)
	require.NoError(t, err)
	return cmd, slotRepo, clk
}

func defaultScheduleConfig() config.BookingConfig {
	return config.BookingConfig{
		CancelCutoff:  3 * time.Hour,
		SlotCapacity:  8,
		TrainingDays:  []string{"Mon", "Wed", "Fri"},
		TrainingTimes: []string{"09:00-10:00", "19:15-20:15", "20:30-21:30"},
		TimeZone:      "UTC",
	}
}

func TestScheduleCommands_GenerateWeek(t *testing.T) {
	admin := shared.Actor{UserID: uuid.New(), Role: "admin"}

	t.Run("generates the full weekly template", func(t *testing.T) {
		cmd, slotRepo, _ := newScheduleCommands(t, defaultScheduleConfig())

		var captured []*slot.TrainingSlot
		slotRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, slots []*slot.TrainingSlot) (int64, error) {
				captured = slots
				return int64(len(slots)), nil
			},
		)

		result, err := cmd.GenerateWeek(context.Background(), admin, 1)
		require.NoError(t, err)

		// 3 days x 3 times
		assert.Equal(t, int64(9), result.Created)
		require.Len(t, captured, 9)

		// testNow is Tue 2026-09-01; next week starts Mon 2026-09-07.
		assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), result.WeekStart)
		assert.Equal(t, int32(8), captured[0].MaxCapacity())

		type session struct {
			Date  string
			Start string
			End   string
		}
		var got []session
		for _, ts := range captured {
			got = append(got, session{
				Date:  ts.Date().Format("2006-01-02"),
				Start: ts.StartTime().String(),
				End:   ts.EndTime().String(),
			})
		}
		want := []session{
			{"2026-09-07", "09:00", "10:00"},
			{"2026-09-07", "19:15", "20:15"},
			{"2026-09-07", "20:30", "21:30"},
			{"2026-09-09", "09:00", "10:00"},
			{"2026-09-09", "19:15", "20:15"},
			{"2026-09-09", "20:30", "21:30"},
			{"2026-09-11", "09:00", "10:00"},
			{"2026-09-11", "19:15", "20:15"},
			{"2026-09-11", "20:30", "21:30"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("generated week mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("regeneration reports only newly created slots", func(t *testing.T) {
		cmd, slotRepo, _ := newScheduleCommands(t, defaultScheduleConfig())

		slotRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		result, err := cmd.GenerateWeek(context.Background(), admin, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Created)
	})

	t.Run("members cannot generate the schedule", func(t *testing.T) {
		cmd, _, _ := newScheduleCommands(t, defaultScheduleConfig())
		member := shared.Actor{UserID: uuid.New(), Role: "user"}

		_, err := cmd.GenerateWeek(context.Background(), member, 0)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("current week from a midweek day", func(t *testing.T) {
		cmd, slotRepo, clk := newScheduleCommands(t, defaultScheduleConfig())
		// Thursday of the testNow week.
		clk.Set(time.Date(2026, 9, 3, 15, 0, 0, 0, time.UTC))

		slotRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(9), nil)

		result, err := cmd.GenerateWeek(context.Background(), admin, 0)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), result.WeekStart)
	})
}

func TestNewScheduleCommands_InvalidTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	clk := clock.NewMockClock(testNow)

	t.Run("bad day", func(t *testing.T) {
		cfg := defaultScheduleConfig()
		cfg.TrainingDays = []string{"Monday"}

		_, err := commands.NewScheduleCommands(uow, clk, cfg)
		assert.Error(t, err)
	})

	t.Run("bad time range", func(t *testing.T) {
		cfg := defaultScheduleConfig()
		cfg.TrainingTimes = []string{"10:00-09:00"}

		_, err := commands.NewScheduleCommands(uow, clk, cfg)
		assert.Error(t, err)
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := defaultScheduleConfig()
		cfg.TimeZone = "Mars/Olympus"

		_, err := commands.NewScheduleCommands(uow, clk, cfg)
		assert.Error(t, err)
	})
}
