package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
)

type settings struct {
	now    func() time.Time
	cache  availabilityCache
	events ports.EventPublisher
}

type Option func(*settings)

// WithClock replaces time.Now, mostly for tests that need to move past a hold deadline.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCache enables the Redis availability cache.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(s *settings) {
		s.cache = availabilityCache{client: client, ttl: ttl}
	}
}

func WithPublisher(p ports.EventPublisher) Option {
	return func(s *settings) {
		s.events = p
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

func (s *settings) publish(ctx context.Context, event domain.ReservationEvent) {
	if s.events == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}

	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s for raffle %s: %v", event.Type, event.RaffleID, err)
	}
}

// Publishers fans an event out to every publisher and reports the first failure.
func Publishers(publishers ...ports.EventPublisher) ports.EventPublisher {
	return fanout(publishers)
}

type fanout []ports.EventPublisher

func (f fanout) Publish(ctx context.Context, event domain.ReservationEvent) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
