package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// availabilityCache stores free-ticket counts as "<generation>:<count>". Invalidation bumps the raffle's
// generation, so a count computed by a reader that started before the bump is never served.
type availabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedAvailability struct {
	count int
	hit   bool
	// gen is the generation observed before counting; valid reports whether it could be read.
	gen   int64
	valid bool
}

func AvailabilityKey(raffleID uuid.UUID) string {
	return fmt.Sprintf("raffle:%s:available", raffleID)
}

func GenerationKey(raffleID uuid.UUID) string {
	return fmt.Sprintf("raffle:%s:available:gen", raffleID)
}

// get must run before the store is counted, so the generation it reports predates the count.
func (c availabilityCache) get(ctx context.Context, raffleID uuid.UUID) cachedAvailability {
	if c.client == nil {
		return cachedAvailability{}
	}

	vals, err := c.client.MGet(ctx, AvailabilityKey(raffleID), GenerationKey(raffleID)).Result()
	if err != nil {
		log.Printf("Availability cache read failed for raffle %s: %v", raffleID, err)
		return cachedAvailability{}
	}

	var gen int64
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			log.Printf("Availability generation for raffle %s is corrupt: %q", raffleID, raw)
			return cachedAvailability{}
		}
	}

	entry := cachedAvailability{gen: gen, valid: true}

	raw, ok := vals[0].(string)
	if !ok {
		return entry
	}

	entryGen, count, found := strings.Cut(raw, ":")
	if !found || entryGen != strconv.FormatInt(gen, 10) {
		return entry
	}

	n, err := strconv.Atoi(count)
	if err != nil {
		return entry
	}

	entry.count, entry.hit = n, true
	return entry
}

func (c availabilityCache) set(ctx context.Context, raffleID uuid.UUID, entry cachedAvailability, available int) {
	if c.client == nil || !entry.valid {
		return
	}

	value := fmt.Sprintf("%d:%d", entry.gen, available)
	if err := c.client.Set(ctx, AvailabilityKey(raffleID), value, c.ttl).Err(); err != nil {
		log.Printf("Availability cache write failed for raffle %s: %v", raffleID, err)
	}
}

func (c availabilityCache) invalidate(ctx context.Context, raffleID uuid.UUID) {
	if c.client == nil {
		return
	}

	if err := c.client.Incr(ctx, GenerationKey(raffleID)).Err(); err != nil {
		log.Printf("Availability cache invalidation failed for raffle %s: %v", raffleID, err)
	}
}
