package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrQuotaExceeded         = errors.New("ticket quota exceeded")
	ErrInsufficientInventory = errors.New("not enough tickets available")
	ErrExpired               = errors.New("reservation expired")
	ErrConflict              = errors.New("concurrent reservation conflict, try again")

	// ErrNumberTaken is returned by the record store when a ticket insert collides with a live ticket
	// holding the same number in the same raffle.
	ErrNumberTaken = errors.New("ticket number already held")
)

// QuotaError reports a per-request or per-user cap violation.
type QuotaError struct {
	Limit int
	Held  int
}

func (e *QuotaError) Error() string {
	if e.Held == 0 {
		return fmt.Sprintf("quantity above the maximum allowed (%d)", e.Limit)
	}

	return fmt.Sprintf("you already hold %d tickets in this raffle, limit is %d", e.Held, e.Limit)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// InvalidInput wraps ErrInvalidInput with a caller-facing reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
