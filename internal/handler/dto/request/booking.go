package request

import "github.com/google/uuid"

type CreateReservationRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
	// UserID lets an admin book on a member's behalf; members omit it.
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

type ListReservationsQuery struct {
	UserID *uuid.UUID `form:"user_id"`
	SlotID *uuid.UUID `form:"slot_id"`
	Status *string    `form:"status" binding:"omitempty,oneof=active cancelled"`
}
