package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventReservationCreated  EventType = "reservation.created"
	EventPaymentBound        EventType = "reservation.payment_bound"
	EventReservationPaid     EventType = "reservation.paid"
	EventReservationsExpired EventType = "reservations.expired"
)

type ReservationEvent struct {
	Type          EventType        `json:"type"`
	RaffleID      uuid.UUID        `json:"raffle_id"`
	ReservationID uuid.UUID        `json:"reservation_id"`
	BuyerID       uuid.UUID        `json:"buyer_id"`
	Numbers       []int            `json:"numbers,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentID     string           `json:"payment_id,omitempty"`
	Count         int              `json:"count,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
