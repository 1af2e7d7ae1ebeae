// Package redis holds the Redis-backed stores: the AI quota lockout and the
// catalog read-through cache.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const quotaKeyPrefix = "ai:quota_exhausted:"

// QuotaStore implements repository.QuotaStore. A key per student lives for
// the lockout window after the AI provider reported the quota used up.
type QuotaStore struct {
	client  *redis.Client
	lockout time.Duration
}

// NewQuotaStore creates a quota store with the given lockout window.
func NewQuotaStore(client *redis.Client, lockout time.Duration) *QuotaStore {
	return &QuotaStore{client: client, lockout: lockout}
}

func quotaKey(studentID int64) string {
	return quotaKeyPrefix + strconv.FormatInt(studentID, 10)
}

// Exhausted reports whether the student is inside a lockout window.
func (s *QuotaStore) Exhausted(ctx context.Context, studentID int64) (bool, error) {
	n, err := s.client.Exists(ctx, quotaKey(studentID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists quota: %w", err)
	}
	return n > 0, nil
}

// MarkExhausted starts a lockout window for the student.
func (s *QuotaStore) MarkExhausted(ctx context.Context, studentID int64) error {
	if err := s.client.Set(ctx, quotaKey(studentID), time.Now().UTC().Format(time.RFC3339), s.lockout).Err(); err != nil {
		return fmt.Errorf("redis set quota: %w", err)
	}
	return nil
}
