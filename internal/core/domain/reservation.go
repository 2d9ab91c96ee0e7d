package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	StatusReserved ReservationStatus = "reserved"
	StatusPaid     ReservationStatus = "paid"
	StatusExpired  ReservationStatus = "expired"
)

// LiveStatuses count against inventory and per-user quota.
var LiveStatuses = []ReservationStatus{StatusReserved, StatusPaid}

func (s ReservationStatus) IsLive() bool {
	return s == StatusReserved || s == StatusPaid
}

type Reservation struct {
	ID         uuid.UUID         `db:"id"`
	RaffleID   uuid.UUID         `db:"raffle_id"`
	BuyerID    uuid.UUID         `db:"buyer_id"`
	Quantity   int               `db:"quantity"`
	TotalPrice decimal.Decimal   `db:"total_price"`
	Status     ReservationStatus `db:"status"`
	ExpiresAt  time.Time         `db:"expires_at"`
	PaymentID  *string           `db:"payment_id"`
	CreatedAt  time.Time         `db:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at"`
}

// IsStale reports whether a reserved hold is past its deadline and only waits for a sweep.
func (r *Reservation) IsStale(now time.Time) bool {
	return r.Status == StatusReserved && r.ExpiresAt.Before(now)
}
