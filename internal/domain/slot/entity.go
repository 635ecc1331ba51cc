package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
)

// TrainingSlot is one fixed-capacity session on the schedule. Identity is the
// (date, startTime) pair; the surrogate id exists for references.
type TrainingSlot struct {
	id          uuid.UUID
	date        time.Time
	startTime   TimeOfDay
	endTime     TimeOfDay
	maxCapacity int32
	createdAt   time.Time
}

func NewTrainingSlot(date time.Time, startTime, endTime TimeOfDay, maxCapacity int32) (*TrainingSlot, error) {
	if maxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !startTime.Before(endTime) {
		return nil, ErrEndBeforeStart
	}

	return &TrainingSlot{
		id:          uuid.New(),
		date:        truncateToDay(date),
		startTime:   startTime,
		endTime:     endTime,
		maxCapacity: maxCapacity,
	}, nil
}

func ReconstructTrainingSlot(
	id uuid.UUID,
	date time.Time,
	startTime, endTime TimeOfDay,
	maxCapacity int32,
	createdAt time.Time,
) *TrainingSlot {
	return &TrainingSlot{
		id:          id,
		date:        truncateToDay(date),
		startTime:   startTime,
		endTime:     endTime,
		maxCapacity: maxCapacity,
		createdAt:   createdAt,
	}
}

func (s *TrainingSlot) ID() uuid.UUID        { return s.id }
func (s *TrainingSlot) Date() time.Time      { return s.date }
func (s *TrainingSlot) StartTime() TimeOfDay { return s.startTime }
func (s *TrainingSlot) EndTime() TimeOfDay   { return s.endTime }
func (s *TrainingSlot) MaxCapacity() int32   { return s.maxCapacity }
func (s *TrainingSlot) CreatedAt() time.Time { return s.createdAt }

// StartsAt is the instant the session begins in the facility timezone.
func (s *TrainingSlot) StartsAt(loc *time.Location) time.Time {
	return s.startTime.On(s.date, loc)
}

func (s *TrainingSlot) HasStarted(now time.Time, loc *time.Location) bool {
	return !s.StartsAt(loc).After(now)
}

func (s *TrainingSlot) HasCapacityFor(activeCount int32) bool {
	return activeCount < s.maxCapacity
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
