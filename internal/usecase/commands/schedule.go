package commands

import (
	"context"
	"time"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/pkg/clock"
	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/shared"
)

type GenerateWeekResult struct {
	WeekStart time.Time
	Created   int64
}

type ScheduleCommands interface {
	// GenerateWeek materializes the weekly training template for the week
	// weekOffset weeks from now. Slots that already exist are left alone.
	GenerateWeek(ctx context.Context, actor shared.Actor, weekOffset int) (*GenerateWeekResult, error)
}

type scheduleCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	loc      *time.Location
	days     []int
	times    []slot.TimeRange
	capacity int32
}

func NewScheduleCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.BookingConfig,
) (ScheduleCommands, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking timezone")
	}

	days := make([]int, 0, len(cfg.TrainingDays))
	for _, d := range cfg.TrainingDays {
		offset, err := slot.ParseTrainingDay(d)
		if err != nil {
			return nil, errs.Wrap(err, "invalid training day in schedule template")
		}
		days = append(days, offset)
	}

	times := make([]slot.TimeRange, 0, len(cfg.TrainingTimes))
	for _, t := range cfg.TrainingTimes {
		tr, err := slot.ParseTimeRange(t)
		if err != nil {
			return nil, errs.Wrap(err, "invalid time range in schedule template")
		}
		times = append(times, tr)
	}

	return &scheduleCommandsImpl{
		uow:      uow,
		clock:    clk,
		loc:      loc,
		days:     days,
		times:    times,
		capacity: cfg.SlotCapacity,
	}, nil
}

func (c *scheduleCommandsImpl) GenerateWeek(ctx context.Context, actor shared.Actor, weekOffset int) (*GenerateWeekResult, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	weekStart := slot.WeekStart(c.clock.Now(), weekOffset, c.loc)

	slots := make([]*slot.TrainingSlot, 0, len(c.days)*len(c.times))
	for _, dayOffset := range c.days {
		date := weekStart.AddDate(0, 0, dayOffset)
		for _, tr := range c.times {
			s, err := slot.NewTrainingSlot(date, tr.Start, tr.End, c.capacity)
			if err != nil {
				return nil, errs.Mark(err, errs.ErrDomainValidation)
			}
			slots = append(slots, s)
		}
	}

	var created int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Slots().CreateBatch(ctx, tx.DB(), slots)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &GenerateWeekResult{WeekStart: weekStart, Created: created}, nil
}
