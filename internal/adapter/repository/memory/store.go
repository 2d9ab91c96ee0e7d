// Package memory is a process-local record store. It enforces the same live-number uniqueness as the
// Postgres schema, so allocator behavior under contention matches production.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type liveKey struct {
	raffleID uuid.UUID
	number   int
}

type Store struct {
	mu           sync.RWMutex
	raffles      map[uuid.UUID]domain.Raffle
	reservations map[uuid.UUID]*domain.Reservation
	tickets      map[uuid.UUID]*domain.Ticket
	live         map[liveKey]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		raffles:      make(map[uuid.UUID]domain.Raffle),
		reservations: make(map[uuid.UUID]*domain.Reservation),
		tickets:      make(map[uuid.UUID]*domain.Ticket),
		live:         make(map[liveKey]uuid.UUID),
	}
}

func (s *Store) Raffles() *RaffleRepository           { return &RaffleRepository{s: s} }
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
func (s *Store) Tickets() *TicketRepository           { return &TicketRepository{s: s} }

// PutRaffle inserts or replaces raffle configuration.
func (s *Store) PutRaffle(raffle domain.Raffle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raffle.CreatedAt.IsZero() {
		raffle.CreatedAt = time.Now()
	}
	s.raffles[raffle.ID] = raffle
}

// TicketsOf returns a copy of every ticket of a raffle, ordered by number.
func (s *Store) TicketsOf(raffleID uuid.UUID) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Ticket
	for _, t := range s.tickets {
		if t.RaffleID == raffleID {
			out = append(out, copyTicket(t))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].NumberSelected < out[j].NumberSelected })
	return out
}

type RaffleRepository struct{ s *Store }

func (r *RaffleRepository) GetByID(_ context.Context, raffleID uuid.UUID) (*domain.Raffle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	raffle, ok := r.s.raffles[raffleID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return &raffle, nil
}

// Create stores the raffle unless one with the same id exists.
func (r *RaffleRepository) Create(_ context.Context, raffle *domain.Raffle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.raffles[raffle.ID]; exists {
		return nil
	}

	c := *raffle
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.s.raffles[c.ID] = c

	return nil
}

func (r *RaffleRepository) List(_ context.Context, limit int) ([]domain.Raffle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	raffles := make([]domain.Raffle, 0, len(r.s.raffles))
	for _, raffle := range r.s.raffles {
		raffles = append(raffles, raffle)
	}

	sort.Slice(raffles, func(i, j int) bool { return raffles[i].CreatedAt.After(raffles[j].CreatedAt) })
	if len(raffles) > limit {
		raffles = raffles[:limit]
	}

	return raffles, nil
}

type ReservationRepository struct{ s *Store }

func (r *ReservationRepository) Create(_ context.Context, reservation *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.raffles[reservation.RaffleID]; !ok {
		return fmt.Errorf("raffle %s: %w", reservation.RaffleID, domain.ErrNotFound)
	}

	if _, exists := r.s.reservations[reservation.ID]; exists {
		return fmt.Errorf("reservation %s already exists", reservation.ID)
	}

	c := copyReservation(reservation)
	r.s.reservations[reservation.ID] = &c

	return nil
}

// Delete removes the reservation and, like the ON DELETE CASCADE in Postgres, its tickets.
func (r *ReservationRepository) Delete(_ context.Context, reservationID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.reservations, reservationID)
	for id, t := range r.s.tickets {
		if t.ReservationID != reservationID {
			continue
		}
		if t.Status.IsLive() {
			delete(r.s.live, liveKey{t.RaffleID, t.NumberSelected})
		}
		delete(r.s.tickets, id)
	}

	return nil
}

func (r *ReservationRepository) GetByID(_ context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.reservations[reservationID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	c := copyReservation(res)
	return &c, nil
}

func (r *ReservationRepository) GetByIDForBuyer(ctx context.Context, reservationID uuid.UUID, buyerID uuid.UUID) (*domain.Reservation, error) {
	res, err := r.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if res.BuyerID != buyerID {
		return nil, domain.ErrNotFound
	}

	return res, nil
}

func (r *ReservationRepository) ListLiveByBuyer(_ context.Context, buyerID uuid.UUID) ([]domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Reservation{}
	for _, res := range r.s.reservations {
		if res.BuyerID == buyerID && res.Status.IsLive() {
			out = append(out, copyReservation(res))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *ReservationRepository) ExpireStale(_ context.Context, raffleID uuid.NullUUID, now time.Time) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var raffles []uuid.UUID
	for _, res := range r.s.reservations {
		if raffleID.Valid && res.RaffleID != raffleID.UUID {
			continue
		}
		if res.IsStale(now) {
			res.Status = domain.StatusExpired
			res.UpdatedAt = now
			raffles = append(raffles, res.RaffleID)
		}
	}

	return raffles, nil
}

func (r *ReservationRepository) BindPaymentID(_ context.Context, reservationID uuid.UUID, paymentID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[reservationID]
	if !ok || res.PaymentID != nil || res.Status == domain.StatusExpired {
		return false, nil
	}

	res.PaymentID = strPtr(paymentID)
	res.UpdatedAt = time.Now()
	for _, t := range r.s.tickets {
		if t.ReservationID == reservationID && t.PaymentID == nil {
			t.PaymentID = strPtr(paymentID)
		}
	}

	return true, nil
}

func (r *ReservationRepository) MarkPaid(_ context.Context, paymentID string, now time.Time) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, res := range r.s.reservations {
		if res.PaymentID == nil || *res.PaymentID != paymentID {
			continue
		}
		if res.Status != domain.StatusReserved || res.ExpiresAt.Before(now) {
			return nil, domain.ErrNotFound
		}

		res.Status = domain.StatusPaid
		res.UpdatedAt = now
		for _, t := range r.s.tickets {
			if t.ReservationID == res.ID && t.Status == domain.StatusReserved {
				t.Status = domain.StatusPaid
			}
		}

		c := copyReservation(res)
		return &c, nil
	}

	return nil, domain.ErrNotFound
}

type TicketRepository struct{ s *Store }

func (r *TicketRepository) CreateBatch(_ context.Context, tickets []domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[liveKey]bool, len(tickets))
	for _, t := range tickets {
		key := liveKey{t.RaffleID, t.NumberSelected}
		if _, held := r.s.live[key]; held || seen[key] {
			return fmt.Errorf("ticket %d: %w", t.NumberSelected, domain.ErrNumberTaken)
		}
		if _, ok := r.s.reservations[t.ReservationID]; !ok {
			return fmt.Errorf("reservation %s: %w", t.ReservationID, domain.ErrNotFound)
		}
		seen[key] = true
	}

	for i := range tickets {
		c := copyTicket(&tickets[i])
		r.s.tickets[c.ID] = &c
		if c.Status.IsLive() {
			r.s.live[liveKey{c.RaffleID, c.NumberSelected}] = c.ID
		}
	}

	return nil
}

func (r *TicketRepository) CountLiveByBuyer(_ context.Context, raffleID uuid.UUID, buyerID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, id := range r.s.live {
		t := r.s.tickets[id]
		if t.RaffleID == raffleID && t.BuyerID == buyerID {
			count++
		}
	}

	return count, nil
}

func (r *TicketRepository) CountLive(_ context.Context, raffleID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for key := range r.s.live {
		if key.raffleID == raffleID {
			count++
		}
	}

	return count, nil
}

func (r *TicketRepository) ListLiveNumbers(_ context.Context, raffleID uuid.UUID) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	numbers := []int{}
	for key := range r.s.live {
		if key.raffleID == raffleID {
			numbers = append(numbers, key.number)
		}
	}

	return numbers, nil
}

func (r *TicketRepository) ListNumbersByReservation(_ context.Context, reservationID uuid.UUID) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	numbers := []int{}
	for _, t := range r.s.tickets {
		if t.ReservationID == reservationID && t.Status.IsLive() {
			numbers = append(numbers, t.NumberSelected)
		}
	}

	sort.Ints(numbers)
	return numbers, nil
}

func (r *TicketRepository) ExpireStale(_ context.Context, raffleID uuid.NullUUID, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var expired int64
	for _, t := range r.s.tickets {
		if raffleID.Valid && t.RaffleID != raffleID.UUID {
			continue
		}
		if t.Status == domain.StatusReserved && t.ExpiresAt.Before(now) {
			t.Status = domain.StatusExpired
			delete(r.s.live, liveKey{t.RaffleID, t.NumberSelected})
			expired++
		}
	}

	return expired, nil
}

func copyReservation(r *domain.Reservation) domain.Reservation {
	c := *r
	if r.PaymentID != nil {
		c.PaymentID = strPtr(*r.PaymentID)
	}

	return c
}

func copyTicket(t *domain.Ticket) domain.Ticket {
	c := *t
	if t.PaymentID != nil {
		c.PaymentID = strPtr(*t.PaymentID)
	}

	return c
}

func strPtr(s string) *string {
	return &s
}
