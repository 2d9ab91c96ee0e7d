package ports

import (
	"context"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
}

type PaymentIDMinter interface {
	Mint() string
}
