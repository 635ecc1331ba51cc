//go:build unit || e2e

package builder

import (
	"time"

	"ellevate-booking/internal/domain/reservation"
	reqdto "ellevate-booking/internal/handler/dto/request"
	"ellevate-booking/internal/usecase/queries"
	"ellevate-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	SlotID        uuid.UUID
	Status        string
	CreatedAt     time.Time
	CancelledAt   *time.Time
	UserFirstName string
	UserLastName  string
	UserEmail     string
	SlotDate      time.Time
	SlotStartTime string
	SlotEndTime   string
}

func NewReservationBuilder() *ReservationBuilder {
	tomorrow := time.Now().AddDate(0, 0, 1)
	return &ReservationBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		SlotID:        uuid.New(),
		Status:        "active",
		CreatedAt:     time.Now(),
		UserFirstName: "Ana",
		UserLastName:  "Horvat",
		UserEmail:     "member@example.com",
		SlotDate:      time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC),
		SlotStartTime: "19:15",
		SlotEndTime:   "20:15",
	}
}

func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	b.UserID = userID
	return b
}

func (b *ReservationBuilder) WithSlotID(slotID uuid.UUID) *ReservationBuilder {
	b.SlotID = slotID
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = "cancelled"
	cancelledAt := time.Now()
	b.CancelledAt = &cancelledAt
	return b
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.UserID, b.SlotID,
		reservation.Status(b.Status),
		b.CreatedAt, b.CancelledAt,
	)
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          b.ID,
		UserID:      b.UserID,
		SlotID:      b.SlotID,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
}

// BuildView copies the snapshot fields and fills in the denormalized user and
// slot columns the read side joins in.
func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	var view queries.ReservationView
	_ = copier.Copy(&view, b.BuildSnapshot())

	view.UserFirstName = b.UserFirstName
	view.UserLastName = b.UserLastName
	view.UserEmail = b.UserEmail
	view.SlotDate = b.SlotDate
	view.SlotStartTime = b.SlotStartTime
	view.SlotEndTime = b.SlotEndTime
	return &view
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SlotID: b.SlotID,
	}
}
