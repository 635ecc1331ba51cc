//go:build unit || e2e

package builder

import (
	"time"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/usecase/queries"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID          uuid.UUID
	Date        time.Time
	StartTime   string
	EndTime     string
	MaxCapacity int32
	ActiveCount int32
	CreatedAt   time.Time
}

func NewSlotBuilder() *SlotBuilder {
	tomorrow := time.Now().AddDate(0, 0, 1)
	return &SlotBuilder{
		ID:          uuid.New(),
		Date:        time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   "19:15",
		EndTime:     "20:15",
		MaxCapacity: 8,
		ActiveCount: 0,
		CreatedAt:   time.Now(),
	}
}

func (b *SlotBuilder) WithID(id uuid.UUID) *SlotBuilder {
	b.ID = id
	return b
}

func (b *SlotBuilder) WithDate(date time.Time) *SlotBuilder {
	b.Date = date
	return b
}

func (b *SlotBuilder) WithTimes(start, end string) *SlotBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *SlotBuilder) WithMaxCapacity(capacity int32) *SlotBuilder {
	b.MaxCapacity = capacity
	return b
}

func (b *SlotBuilder) WithActiveCount(count int32) *SlotBuilder {
	b.ActiveCount = count
	return b
}

// AsPast moves the slot a day into the past.
func (b *SlotBuilder) AsPast() *SlotBuilder {
	yesterday := time.Now().AddDate(0, 0, -1)
	b.Date = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	return b
}

func (b *SlotBuilder) AsFull() *SlotBuilder {
	b.ActiveCount = b.MaxCapacity
	return b
}

func (b *SlotBuilder) BuildDomain() (*slot.TrainingSlot, error) {
	start, err := slot.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := slot.ParseTimeOfDay(b.EndTime)
	if err != nil {
		return nil, err
	}
	return slot.NewTrainingSlot(b.Date, start, end, b.MaxCapacity)
}

func (b *SlotBuilder) BuildSnapshot() *shared.SlotSnapshot {
	return &shared.SlotSnapshot{
		ID:          b.ID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		MaxCapacity: b.MaxCapacity,
		CreatedAt:   b.CreatedAt,
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	availability := slot.ProjectAvailability(b.MaxCapacity, b.ActiveCount)
	return &queries.SlotView{
		ID:             b.ID,
		Date:           b.Date,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		MaxCapacity:    b.MaxCapacity,
		CurrentCount:   availability.CurrentCount,
		IsFull:         availability.IsFull,
		AvailableSpots: availability.AvailableSpots,
		CreatedAt:      b.CreatedAt,
	}
}
