package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type RaffleRepository interface {
	GetByID(ctx context.Context, raffleID uuid.UUID) (*domain.Raffle, error)
	List(ctx context.Context, limit int) ([]domain.Raffle, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, reservationID uuid.UUID) error
	GetByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error)
	GetByIDForBuyer(ctx context.Context, reservationID uuid.UUID, buyerID uuid.UUID) (*domain.Reservation, error)
	ListLiveByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.Reservation, error)
	// ExpireStale moves reserved rows past their deadline to expired and returns the raffles they belonged to.
	ExpireStale(ctx context.Context, raffleID uuid.NullUUID, now time.Time) ([]uuid.UUID, error)
	// BindPaymentID sets the payment id on the reservation and its tickets if none is set yet.
	// It reports false when another writer got there first or the reservation expired meanwhile.
	BindPaymentID(ctx context.Context, reservationID uuid.UUID, paymentID string) (bool, error)
	// MarkPaid moves a still-reserved, unexpired reservation and its tickets to paid.
	MarkPaid(ctx context.Context, paymentID string, now time.Time) (*domain.Reservation, error)
}

type TicketRepository interface {
	// CreateBatch inserts all tickets or none. A collision on a live number yields domain.ErrNumberTaken.
	CreateBatch(ctx context.Context, tickets []domain.Ticket) error
	CountLiveByBuyer(ctx context.Context, raffleID uuid.UUID, buyerID uuid.UUID) (int, error)
	CountLive(ctx context.Context, raffleID uuid.UUID) (int, error)
	ListLiveNumbers(ctx context.Context, raffleID uuid.UUID) ([]int, error)
	ListNumbersByReservation(ctx context.Context, reservationID uuid.UUID) ([]int, error)
	ExpireStale(ctx context.Context, raffleID uuid.NullUUID, now time.Time) (int64, error)
}
