package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Slot errors
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotInPast   = errors.New("slot already started")
	ErrSlotFull     = errors.New("slot is full")

	// Reservation errors
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrAlreadyBooked            = errors.New("already booked for this slot")
	ErrAlreadyCancelled         = errors.New("reservation already cancelled")
	ErrCancellationWindowClosed = errors.New("cancellation window closed")

	// Actor errors
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
