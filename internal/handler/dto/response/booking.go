package response

import (
	"time"

	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	UserFirstName string     `json:"userFirstName"`
	UserLastName  string     `json:"userLastName"`
	UserEmail     string     `json:"userEmail"`
	SlotID        uuid.UUID  `json:"slotId"`
	SlotDate      string     `json:"slotDate"`
	SlotStartTime string     `json:"slotStartTime"`
	SlotEndTime   string     `json:"slotEndTime"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		UserFirstName: rm.UserFirstName,
		UserLastName:  rm.UserLastName,
		UserEmail:     rm.UserEmail,
		SlotID:        rm.SlotID,
		SlotDate:      rm.SlotDate.Format("2006-01-02"),
		SlotStartTime: rm.SlotStartTime,
		SlotEndTime:   rm.SlotEndTime,
		Status:        rm.Status,
		CreatedAt:     rm.CreatedAt,
		CancelledAt:   rm.CancelledAt,
	}
}
