package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
)

const maxRaffleListLimit = 50

type RaffleView struct {
	domain.Raffle
	AvailableCount int `json:"available_count"`
}

type RaffleService struct {
	raffles ports.RaffleRepository
	tickets ports.TicketRepository
	sweeper *ExpirationSweeper
	settings
}

func NewRaffleService(raffles ports.RaffleRepository, tickets ports.TicketRepository, sweeper *ExpirationSweeper, opts ...Option) *RaffleService {
	return &RaffleService{
		raffles:  raffles,
		tickets:  tickets,
		sweeper:  sweeper,
		settings: newSettings(opts),
	}
}

func (s *RaffleService) GetRaffle(ctx context.Context, raffleID string) (*RaffleView, error) {
	id, err := uuid.Parse(raffleID)
	if err != nil {
		return nil, domain.InvalidInput("invalid raffle id")
	}

	if err := s.sweeper.SweepRaffle(ctx, id); err != nil {
		return nil, err
	}

	raffle, err := s.raffles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	available, err := s.available(ctx, raffle)
	if err != nil {
		return nil, err
	}

	return &RaffleView{Raffle: *raffle, AvailableCount: available}, nil
}

// ListRaffles returns the newest raffles with their free ticket counts.
func (s *RaffleService) ListRaffles(ctx context.Context, limit int) ([]RaffleView, error) {
	if limit <= 0 || limit > maxRaffleListLimit {
		limit = maxRaffleListLimit
	}

	if err := s.sweeper.SweepAll(ctx); err != nil {
		return nil, err
	}

	raffles, err := s.raffles.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list raffles: %w", err)
	}

	views := make([]RaffleView, 0, len(raffles))
	for i := range raffles {
		available, err := s.available(ctx, &raffles[i])
		if err != nil {
			return nil, err
		}
		views = append(views, RaffleView{Raffle: raffles[i], AvailableCount: available})
	}

	return views, nil
}

func (s *RaffleService) available(ctx context.Context, raffle *domain.Raffle) (int, error) {
	cached := s.cache.get(ctx, raffle.ID)
	if cached.hit {
		return cached.count, nil
	}

	live, err := s.tickets.CountLive(ctx, raffle.ID)
	if err != nil {
		return 0, fmt.Errorf("count live tickets: %w", err)
	}

	available := raffle.TotalTickets - live
	if available < 0 {
		available = 0
	}

	s.cache.set(ctx, raffle.ID, cached, available)

	return available, nil
}
