package slot

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTrainingDay = errors.New("invalid training day")
	ErrInvalidTimeRange   = errors.New("invalid time range, expected HH:MM-HH:MM")
)

// Weeks start on Monday, matching how the schedule is presented to members.
var dayOffsets = map[string]int{
	"Mon": 0, "Tue": 1, "Wed": 2, "Thu": 3, "Fri": 4, "Sat": 5, "Sun": 6,
}

// WeekStart returns the Monday of the week `offset` weeks away from now, at
// midnight in the given location.
func WeekStart(now time.Time, offset int, loc *time.Location) time.Time {
	local := now.In(loc)
	weekday := int(local.Weekday())
	// time.Weekday counts Sunday as 0
	daysSinceMonday := (weekday + 6) % 7

	monday := local.AddDate(0, 0, -daysSinceMonday+offset*7)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
}

// WeekRange returns the Monday and Sunday bounding the week.
func WeekRange(now time.Time, offset int, loc *time.Location) (time.Time, time.Time) {
	start := WeekStart(now, offset, loc)
	return start, start.AddDate(0, 0, 6)
}

func ParseTrainingDay(s string) (int, error) {
	offset, ok := dayOffsets[s]
	if !ok {
		return 0, ErrInvalidTrainingDay
	}
	return offset, nil
}

// TimeRange is one recurring session time in the weekly template.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, ErrInvalidTimeRange
	}

	start, err := ParseTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, ErrInvalidTimeRange
	}
	end, err := ParseTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}

	return TimeRange{Start: start, End: end}, nil
}
