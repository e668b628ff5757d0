package worker

import (
	"context"
	"log"
	"time"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

// RateLimitJanitor sweeps stale rate-limit counters. Verification codes are
// evicted by a TTL index; counters keyed by ip:action have no TTL field of
// their own, so a periodic sweep keeps the collection from growing without
// bound.
type RateLimitJanitor struct {
	repo         entity.RateLimitRepositoryInterface
	retention    time.Duration
	tickInterval time.Duration
}

func NewRateLimitJanitor(repo entity.RateLimitRepositoryInterface) *RateLimitJanitor {
	return &RateLimitJanitor{
		repo:         repo,
		retention:    2 * time.Hour, // longest window is 1h; keep double that
		tickInterval: 10 * time.Minute,
	}
}

func (w *RateLimitJanitor) Start(ctx context.Context) {
	log.Println("🕒 rate-limit janitor started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ rate-limit janitor stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RateLimitJanitor) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	deleted, err := w.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		log.Printf("❌ rate-limit sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ swept %d stale rate-limit counter(s)", deleted)
	}
}
