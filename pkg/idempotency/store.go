package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store marks operations as performed with a redis SetNX, so an event that is
// delivered twice (retry, duplicate publish) executes its side effect once.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// OrderTicketsKey guards kitchen ticket generation for one order.
func OrderTicketsKey(orderID uint) string {
	return fmt.Sprintf("idem:order-tickets:%d", orderID)
}

// Claimed reports whether key has already been claimed.
func (s *Store) Claimed(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Claim marks key as done. Callers claim only after the guarded work has
// committed; a failed attempt leaves the key free so a retry can run.
func (s *Store) Claim(ctx context.Context, key string) error {
	return s.rdb.SetNX(ctx, key, "1", s.ttl).Err()
}
