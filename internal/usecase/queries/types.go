package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for the read side)

// ReservationView is one reservation with its slot and the owner's minimal
// identity denormalized for display.
type ReservationView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	UserFirstName string     `json:"user_first_name"`
	UserLastName  string     `json:"user_last_name"`
	UserEmail     string     `json:"user_email"`
	SlotID        uuid.UUID  `json:"slot_id"`
	SlotDate      time.Time  `json:"slot_date"`
	SlotStartTime string     `json:"slot_start_time"`
	SlotEndTime   string     `json:"slot_end_time"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// SlotView carries the projected availability facts alongside the slot.
type SlotView struct {
	ID             uuid.UUID      `json:"id"`
	Date           time.Time      `json:"date"`
	StartTime      string         `json:"start_time"`
	EndTime        string         `json:"end_time"`
	MaxCapacity    int32          `json:"max_capacity"`
	CurrentCount   int32          `json:"current_count"`
	IsFull         bool           `json:"is_full"`
	AvailableSpots int32          `json:"available_spots"`
	Attendees      []AttendeeView `json:"attendees,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AttendeeView is the minimal identity shown for an active reservation on a
// slot. Whether members see it at all is a visibility policy decision.
type AttendeeView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
}

// UserView is the identity surface the booking core reads; the user
// directory itself lives elsewhere.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}

// CredentialsView is read only by the login path.
type CredentialsView struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
}

// ReservationFilter narrows reservation listings; nil fields match all.
type ReservationFilter struct {
	UserID *uuid.UUID
	SlotID *uuid.UUID
	Status *string
}
