// Package visit provides the visit counter use case. Every page view
// increments a single shared counter; the counter store adapter is the
// one place in the system where unrelated callers race on the same
// record, so all correctness is delegated to the store's transaction.
package visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
	"personal-site/internal/resilience/circuitbreaker"
)

// Service increments and reads the visit counter. Increments run
// through a circuit breaker: when the store is failing, further
// increments are rejected fast as store-unavailable and callers show
// the read-only value instead.
type Service struct {
	Repo    repository.CounterRepository
	Breaker *circuitbreaker.CircuitBreaker
}

// New creates a visit service with the counter-store breaker profile.
func New(repo repository.CounterRepository) *Service {
	return &Service{
		Repo:    repo,
		Breaker: circuitbreaker.New(circuitbreaker.CounterStoreConfig()),
	}
}

// Increment advances the counter by exactly one and returns the new
// value. Concurrent increments never lose updates; the repository's
// transaction serializes them. An open breaker reports
// entity.ErrStoreUnavailable without touching the store.
func (s *Service) Increment(ctx context.Context) (int64, error) {
	result, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Repo.Increment(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, fmt.Errorf("increment visits: %w", entity.ErrStoreUnavailable)
		}
		return 0, fmt.Errorf("increment visits: %w", err)
	}
	return result.(int64), nil
}

// Current returns the counter value without mutating it. This is the
// fallback for callers that already failed the increment path; it must
// never itself increment. Bypasses the breaker on purpose: a read can
// still succeed through a different access path.
func (s *Service) Current(ctx context.Context) (int64, error) {
	value, err := s.Repo.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read visits: %w", err)
	}
	return value, nil
}
