package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
	"github.com/srgjo27/raffle_ticket/internal/platform/metrics"
)

// MaxReserveAttempts bounds how many times Reserve re-runs after losing a number to a concurrent buyer.
const MaxReserveAttempts = 3

// errQuotaOverrun marks an attempt whose insert pushed the buyer past the per-user cap.
var errQuotaOverrun = errors.New("buyer quota overrun by a concurrent reservation")

type ReserveRequest struct {
	RaffleID string `json:"raffle_id"`
	Quantity int    `json:"quantity"`
	BuyerID  string `json:"-"`
}

type ReserveResponse struct {
	ReservationID string          `json:"reservation_id"`
	TicketNumbers []int           `json:"ticket_numbers"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ExpiresAt     string          `json:"expires_at"`
}

type ReservationView struct {
	ID            uuid.UUID                `json:"id"`
	RaffleID      uuid.UUID                `json:"raffle_id"`
	RaffleTitle   string                   `json:"raffle_title"`
	Status        domain.ReservationStatus `json:"status"`
	Quantity      int                      `json:"quantity"`
	TotalPrice    decimal.Decimal          `json:"total_price"`
	ExpiresAt     time.Time                `json:"expires_at"`
	PaymentID     *string                  `json:"payment_id,omitempty"`
	TicketNumbers []int                    `json:"ticket_numbers"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type ReservationService struct {
	raffles      ports.RaffleRepository
	reservations ports.ReservationRepository
	tickets      ports.TicketRepository
	sweeper      *ExpirationSweeper
	settings
}

func NewReservationService(
	raffles ports.RaffleRepository,
	reservations ports.ReservationRepository,
	tickets ports.TicketRepository,
	sweeper *ExpirationSweeper,
	opts ...Option,
) *ReservationService {
	return &ReservationService{
		raffles:      raffles,
		reservations: reservations,
		tickets:      tickets,
		sweeper:      sweeper,
		settings:     newSettings(opts),
	}
}

// Reserve holds the lowest free ticket numbers of a raffle for the buyer.
//
// Numbers are read and then inserted without a lock; the store's uniqueness on live numbers decides
// races between buyers, and a recount after the insert catches a buyer racing their own quota.
// A lost race deletes the speculative reservation and starts over, up to MaxReserveAttempts.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResponse, error) {
	raffleID, err := uuid.Parse(req.RaffleID)
	if err != nil {
		return nil, domain.InvalidInput("invalid raffle id")
	}

	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		return nil, domain.InvalidInput("invalid buyer id")
	}

	if req.Quantity < 1 {
		return nil, domain.InvalidInput("quantity must be at least 1")
	}

	for attempt := 1; attempt <= MaxReserveAttempts; attempt++ {
		resp, err := s.tryReserve(ctx, raffleID, buyerID, req.Quantity)
		if err == nil {
			metrics.ReserveRequests.WithLabelValues("reserved").Inc()
			return resp, nil
		}

		if !errors.Is(err, domain.ErrNumberTaken) && !errors.Is(err, errQuotaOverrun) {
			metrics.ReserveRequests.WithLabelValues(outcome(err)).Inc()
			return nil, err
		}

		metrics.ReserveRetries.Inc()
		log.Printf("Reserve attempt %d/%d on raffle %s lost a race: %v", attempt, MaxReserveAttempts, raffleID, err)
	}

	metrics.ReserveRequests.WithLabelValues("conflict").Inc()
	return nil, domain.ErrConflict
}

func (s *ReservationService) tryReserve(ctx context.Context, raffleID, buyerID uuid.UUID, quantity int) (*ReserveResponse, error) {
	if err := s.sweeper.SweepRaffle(ctx, raffleID); err != nil {
		return nil, err
	}

	raffle, err := s.raffles.GetByID(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	if err := checkRequestCap(raffle, quantity); err != nil {
		return nil, err
	}

	held, err := s.tickets.CountLiveByBuyer(ctx, raffleID, buyerID)
	if err != nil {
		return nil, fmt.Errorf("count buyer tickets: %w", err)
	}

	live, err := s.tickets.ListLiveNumbers(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("list live numbers: %w", err)
	}

	if err := checkBuyerQuota(raffle, held, quantity); err != nil {
		return nil, err
	}

	numbers := PickNumbers(raffle.TotalTickets, numberSet(live), quantity)
	if len(numbers) < quantity {
		return nil, domain.ErrInsufficientInventory
	}

	now := s.now()
	reservation := &domain.Reservation{
		ID:         uuid.New(),
		RaffleID:   raffleID,
		BuyerID:    buyerID,
		Quantity:   quantity,
		TotalPrice: raffle.TicketPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:     domain.StatusReserved,
		ExpiresAt:  now.Add(raffle.HoldDuration()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(numbers))
	for _, number := range numbers {
		tickets = append(tickets, domain.Ticket{
			ID:             uuid.New(),
			RaffleID:       raffleID,
			ReservationID:  reservation.ID,
			BuyerID:        buyerID,
			NumberSelected: number,
			Status:         domain.StatusReserved,
			ExpiresAt:      reservation.ExpiresAt,
			CreatedAt:      now,
		})
	}

	if err := s.tickets.CreateBatch(ctx, tickets); err != nil {
		return nil, s.rollback(ctx, reservation.ID, err)
	}

	// Two requests of the same buyer can both pass the quota check before either inserts.
	held, err = s.tickets.CountLiveByBuyer(ctx, raffleID, buyerID)
	if err != nil {
		return nil, s.rollback(ctx, reservation.ID, fmt.Errorf("recount buyer tickets: %w", err))
	}

	if held > raffle.MaxTicketsPerUser {
		return nil, s.rollback(ctx, reservation.ID, errQuotaOverrun)
	}

	metrics.TicketsReserved.Add(float64(len(numbers)))
	s.cache.invalidate(ctx, raffleID)
	s.publish(ctx, domain.ReservationEvent{
		Type:          domain.EventReservationCreated,
		RaffleID:      raffleID,
		ReservationID: reservation.ID,
		BuyerID:       buyerID,
		Numbers:       numbers,
		Amount:        &reservation.TotalPrice,
	})

	return &ReserveResponse{
		ReservationID: reservation.ID.String(),
		TicketNumbers: numbers,
		TotalPrice:    reservation.TotalPrice,
		ExpiresAt:     reservation.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// rollback deletes a speculative reservation together with its tickets and returns cause.
// When the delete itself fails the reservation may linger, so that error wins and ends the retry loop.
func (s *ReservationService) rollback(ctx context.Context, reservationID uuid.UUID, cause error) error {
	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		log.Printf("Failed to roll back reservation %s: %v", reservationID, err)
		return fmt.Errorf("roll back reservation %s after %v: %w", reservationID, cause, err)
	}

	return cause
}

// GetReservation returns a buyer's own reservation for checkout. Expired holds yield domain.ErrExpired.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID, buyerID string) (*ReservationView, error) {
	reservation, err := loadFreshReservation(ctx, s.reservations, s.sweeper, reservationID, buyerID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == domain.StatusExpired {
		return nil, domain.ErrExpired
	}

	raffle, err := s.raffles.GetByID(ctx, reservation.RaffleID)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, reservation, raffle.Title)
}

// ListMyReservations returns the buyer's live reservations, newest first.
func (s *ReservationService) ListMyReservations(ctx context.Context, buyerID string) ([]ReservationView, error) {
	buyer, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, domain.InvalidInput("invalid buyer id")
	}

	if err := s.sweeper.SweepAll(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListLiveByBuyer(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	titles := make(map[uuid.UUID]string)
	views := make([]ReservationView, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]

		title, ok := titles[r.RaffleID]
		if !ok {
			raffle, err := s.raffles.GetByID(ctx, r.RaffleID)
			if err != nil {
				return nil, err
			}
			title = raffle.Title
			titles[r.RaffleID] = title
		}

		v, err := s.view(ctx, r, title)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}

	return views, nil
}

func (s *ReservationService) view(ctx context.Context, r *domain.Reservation, title string) (*ReservationView, error) {
	numbers, err := s.tickets.ListNumbersByReservation(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("list reservation numbers: %w", err)
	}

	return &ReservationView{
		ID:            r.ID,
		RaffleID:      r.RaffleID,
		RaffleTitle:   title,
		Status:        r.Status,
		Quantity:      r.Quantity,
		TotalPrice:    r.TotalPrice,
		ExpiresAt:     r.ExpiresAt,
		PaymentID:     r.PaymentID,
		TicketNumbers: numbers,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// loadFreshReservation reads a reservation owned by buyerID, sweeps its raffle and reads it again.
// Reservations of other buyers are reported as domain.ErrNotFound.
func loadFreshReservation(ctx context.Context, repo ports.ReservationRepository, sweeper *ExpirationSweeper, reservationID, buyerID string) (*domain.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, domain.InvalidInput("invalid reservation id")
	}

	buyer, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, domain.InvalidInput("invalid buyer id")
	}

	reservation, err := repo.GetByIDForBuyer(ctx, id, buyer)
	if err != nil {
		return nil, err
	}

	if err := sweeper.SweepRaffle(ctx, reservation.RaffleID); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, id)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
