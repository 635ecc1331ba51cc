package slot

import (
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock "HH:MM" value with no timezone attached. Slots
// store their times this way; the instant a slot starts is only decided when
// combined with the calendar date and the facility timezone.
type TimeOfDay struct {
	hour   int
	minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}

// On anchors the wall-clock time to a calendar day in the given location.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, loc)
}

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// Availability is the derived occupancy projection for one slot. It never
// feeds back into booking decisions; Book re-checks capacity itself.
type Availability struct {
	CurrentCount   int32
	IsFull         bool
	AvailableSpots int32
}

func ProjectAvailability(maxCapacity, activeCount int32) Availability {
	available := maxCapacity - activeCount
	if available < 0 {
		available = 0
	}
	return Availability{
		CurrentCount:   activeCount,
		IsFull:         activeCount >= maxCapacity,
		AvailableSpots: available,
	}
}
