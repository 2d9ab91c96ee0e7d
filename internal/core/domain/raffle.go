package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultHoldMinutes = 15

type Raffle struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	Title             string          `db:"title" json:"title"`
	TotalTickets      int             `db:"total_tickets" json:"total_tickets"`
	MaxTicketsPerUser int             `db:"max_tickets_per_user" json:"max_tickets_per_user"`
	TicketPrice       decimal.Decimal `db:"ticket_price" json:"ticket_price"`
	HoldMinutes       int             `db:"hold_minutes" json:"hold_minutes"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// HoldDuration is how long a new reservation keeps its numbers before the sweeper may reclaim them.
func (r *Raffle) HoldDuration() time.Duration {
	minutes := r.HoldMinutes
	if minutes <= 0 {
		minutes = DefaultHoldMinutes
	}

	return time.Duration(minutes) * time.Minute
}
