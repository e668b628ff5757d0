package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

// RateLimiter is an advisory abuse-mitigation gate in front of the public
// endpoints, not a hard quota:
//
//   - It FAILS OPEN: if the counter store is unreachable the request is
//     allowed. Availability of the public forms is deliberately prioritized
//     over strict enforcement.
//   - The counter update is a read-modify-write without a transaction, so
//     concurrent requests for the same identifier can undercount (lost
//     update). Accepted for this use.
type RateLimiter struct {
	Repo entity.RateLimitRepositoryInterface
}

func NewRateLimiter(repo entity.RateLimitRepositoryInterface) *RateLimiter {
	return &RateLimiter{Repo: repo}
}

func (rl *RateLimiter) Allow(ctx context.Context, identifier string, limit int, window time.Duration) bool {
	now := time.Now()

	counter, err := rl.Repo.FindByID(ctx, identifier)
	if err != nil && !errors.Is(err, entity.ErrCounterNotFound) {
		log.Printf("⚠️ rate limiter store unreachable, failing open: %v", err)
		return true
	}

	if counter == nil || now.After(counter.ResetAt) {
		counter = &entity.RateLimitCounter{
			ID:      identifier,
			Count:   1,
			ResetAt: now.Add(window),
		}
		if err := rl.Repo.Upsert(ctx, counter); err != nil {
			log.Printf("⚠️ rate limiter write failed, failing open: %v", err)
		}
		return true
	}

	if counter.Count < limit {
		counter.Count++
		if err := rl.Repo.Upsert(ctx, counter); err != nil {
			log.Printf("⚠️ rate limiter write failed, failing open: %v", err)
		}
		return true
	}

	return false
}
