// Package ratelimit provides fixed-window attempt limiters keyed by client
// address. The in-memory limiter is process-local and suits a single-instance
// deployment; the Redis limiter shares its window across instances.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultWindow      = 15 * time.Minute
	DefaultMaxAttempts = 5
)

type entry struct {
	count         int
	windowResetAt time.Time
}

// Memory is a fixed-window limiter backed by a mutex-guarded map. It is
// constructed once per process and injected, never a package-level singleton,
// so tests can build isolated instances.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry

	window time.Duration
	max    int
	now    func() time.Time
}

// NewMemory returns a limiter allowing max attempts per window. Non-positive
// arguments fall back to the defaults.
func NewMemory(window time.Duration, max int) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	return &Memory{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow performs an atomic check-and-increment for key. A first sighting, or
// any attempt after the window elapsed, resets the counter to 1. Once the
// counter reaches max, further attempts are denied without incrementing, so
// the counter cannot grow without bound.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || now.After(e.windowResetAt) {
		m.entries[key] = &entry{count: 1, windowResetAt: now.Add(m.window)}
		return true, nil
	}
	if e.count >= m.max {
		return false, nil
	}
	e.count++
	return true, nil
}
