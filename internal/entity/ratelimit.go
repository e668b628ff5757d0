package entity

import (
	"context"
	"errors"
	"time"
)

var ErrCounterNotFound = errors.New("rate limit counter not found")

// RateLimitCounter is keyed by client identifier + action (e.g. "1.2.3.4:submit").
// Count resets to 1 whenever now passes ResetAt.
type RateLimitCounter struct {
	ID      string    `json:"id" bson:"_id"`
	Count   int       `json:"count" bson:"count"`
	ResetAt time.Time `json:"reset_at" bson:"resetAt"`
}

type RateLimitRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*RateLimitCounter, error)
	Upsert(ctx context.Context, counter *RateLimitCounter) error
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}
