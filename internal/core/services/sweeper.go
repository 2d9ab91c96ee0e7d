package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
	"github.com/srgjo27/raffle_ticket/internal/platform/metrics"
)

// ExpirationSweeper moves reserved holds past their deadline to expired so their numbers return to the pool.
// It is safe to run concurrently and redundantly: the only transition it makes is reserved to expired.
type ExpirationSweeper struct {
	reservations ports.ReservationRepository
	tickets      ports.TicketRepository
	settings
}

func NewExpirationSweeper(reservations ports.ReservationRepository, tickets ports.TicketRepository, opts ...Option) *ExpirationSweeper {
	return &ExpirationSweeper{
		reservations: reservations,
		tickets:      tickets,
		settings:     newSettings(opts),
	}
}

func (s *ExpirationSweeper) SweepRaffle(ctx context.Context, raffleID uuid.UUID) error {
	return s.Sweep(ctx, uuid.NullUUID{UUID: raffleID, Valid: true})
}

func (s *ExpirationSweeper) SweepAll(ctx context.Context) error {
	return s.Sweep(ctx, uuid.NullUUID{})
}

// Sweep expires stale holds of one raffle, or of every raffle when raffleID is not valid.
// Tickets go first so a reservation is never expired while its numbers still count as live.
func (s *ExpirationSweeper) Sweep(ctx context.Context, raffleID uuid.NullUUID) error {
	now := s.now()

	expiredTickets, err := s.tickets.ExpireStale(ctx, raffleID, now)
	if err != nil {
		return fmt.Errorf("expire stale tickets: %w", err)
	}

	raffles, err := s.reservations.ExpireStale(ctx, raffleID, now)
	if err != nil {
		return fmt.Errorf("expire stale reservations: %w", err)
	}

	if expiredTickets > 0 {
		metrics.HoldsExpired.Add(float64(expiredTickets))
	}

	if len(raffles) == 0 {
		return nil
	}

	perRaffle := make(map[uuid.UUID]int)
	for _, id := range raffles {
		perRaffle[id]++
	}

	for id, count := range perRaffle {
		s.cache.invalidate(ctx, id)
		s.publish(ctx, domain.ReservationEvent{
			Type:     domain.EventReservationsExpired,
			RaffleID: id,
			Count:    count,
		})
	}

	log.Printf("Expired %d reservations (%d tickets) across %d raffles.", len(raffles), expiredTickets, len(perRaffle))

	return nil
}

// RunBackgroundCleanup sweeps every raffle on a ticker until ctx is done.
// Per-request sweeping stays in place; this only keeps numbers from looking held between requests.
func (s *ExpirationSweeper) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Background sweeper started: expiring stale holds every %s...", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background sweeper stopped.")
			return
		case <-ticker.C:
			if err := s.SweepAll(ctx); err != nil {
				log.Printf("Error sweeping expired holds: %v", err)
			}
		}
	}
}
