package domain

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID             uuid.UUID         `db:"id"`
	RaffleID       uuid.UUID         `db:"raffle_id"`
	ReservationID  uuid.UUID         `db:"reservation_id"`
	BuyerID        uuid.UUID         `db:"buyer_id"`
	NumberSelected int               `db:"number_selected"`
	Status         ReservationStatus `db:"status"`
	ExpiresAt      time.Time         `db:"expires_at"`
	PaymentID      *string           `db:"payment_id"`
	CreatedAt      time.Time         `db:"created_at"`
}
