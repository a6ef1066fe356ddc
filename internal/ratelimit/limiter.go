// Package ratelimit bounds submission attempts per client identifier using
// a fixed window. The windowing algorithm lives in Limiter; the counter
// state lives behind Store so deployments can swap the in-memory map for a
// shared Redis instance without touching the algorithm.
package ratelimit

import (
	"context"
	"time"
)

// Record is one client's counter within the current window.
type Record struct {
	Count   int
	ResetAt time.Time
}

// Store holds per-identifier records. Implementations must expire records
// no earlier than their ResetAt; lazy replacement on the next access is
// acceptable.
type Store interface {
	// Get returns the record for key, or nil when none exists.
	Get(ctx context.Context, key string) (*Record, error)
	// Set replaces the record for key, starting a fresh window.
	Set(ctx context.Context, key string, rec *Record) error
	// Incr adds one to the counter for key and returns the new count.
	Incr(ctx context.Context, key string) (int, error)
}

// Result reports the outcome of a limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter applies a fixed window of Limit requests per Window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration

	// now is swapped in tests to step across window boundaries.
	now func() time.Time
}

// New creates a limiter, e.g. New(store, 5, 15*time.Minute).
func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request from identifier and reports whether it fits the
// current window. The first request of a window (or the first after expiry)
// opens a fresh window.
func (l *Limiter) Allow(ctx context.Context, identifier string) (Result, error) {
	now := l.now()

	rec, err := l.store.Get(ctx, identifier)
	if err != nil {
		return Result{}, err
	}

	if rec == nil || now.After(rec.ResetAt) {
		fresh := &Record{Count: 1, ResetAt: now.Add(l.window)}
		if err := l.store.Set(ctx, identifier, fresh); err != nil {
			return Result{}, err
		}
		return Result{Allowed: true, Remaining: l.limit - 1, ResetAt: fresh.ResetAt}, nil
	}

	if rec.Count >= l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.ResetAt}, nil
	}

	count, err := l.store.Incr(ctx, identifier)
	if err != nil {
		return Result{}, err
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Remaining: remaining, ResetAt: rec.ResetAt}, nil
}
