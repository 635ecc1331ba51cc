package response

import (
	"time"

	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID             uuid.UUID          `json:"id"`
	Date           string             `json:"date"`
	StartTime      string             `json:"startTime"`
	EndTime        string             `json:"endTime"`
	MaxCapacity    int32              `json:"maxCapacity"`
	CurrentCount   int32              `json:"currentCount"`
	IsFull         bool               `json:"isFull"`
	AvailableSpots int32              `json:"availableSpots"`
	Attendees      []AttendeeResponse `json:"attendees,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type AttendeeResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	UserID        uuid.UUID `json:"userId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
}

type GenerateScheduleResponse struct {
	WeekStart string `json:"weekStart"`
	Created   int64  `json:"created"`
}

func FromSlotView(rm *queries.SlotView) *SlotResponse {
	resp := &SlotResponse{
		ID:             rm.ID,
		Date:           rm.Date.Format("2006-01-02"),
		StartTime:      rm.StartTime,
		EndTime:        rm.EndTime,
		MaxCapacity:    rm.MaxCapacity,
		CurrentCount:   rm.CurrentCount,
		IsFull:         rm.IsFull,
		AvailableSpots: rm.AvailableSpots,
		CreatedAt:      rm.CreatedAt,
	}
	for _, a := range rm.Attendees {
		resp.Attendees = append(resp.Attendees, AttendeeResponse{
			ReservationID: a.ReservationID,
			UserID:        a.UserID,
			FirstName:     a.FirstName,
			LastName:      a.LastName,
		})
	}
	return resp
}
