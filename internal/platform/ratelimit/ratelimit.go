// Package ratelimit provides a sliding-window request limiter for the
// portal's abuse-prone endpoints: admin login and document upload.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result reports the outcome of a limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter checks whether a keyed request is within its window budget.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// SlidingWindow is an in-memory limiter. It tracks request timestamps per
// key, so bursts straddling a window boundary cannot double the budget. Not
// distributed; each instance enforces its own budget.
type SlidingWindow struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	timestamps []time.Time
	span       time.Duration
}

func NewSlidingWindow() *SlidingWindow {
	return &SlidingWindow{windows: make(map[string]*window)}
}

func (s *SlidingWindow) Allow(_ context.Context, key string, limit int, span time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w := s.windows[key]
	if w == nil {
		w = &window{span: span}
		s.windows[key] = w
	}
	w.cleanup(now)

	if len(w.timestamps) >= limit {
		return &Result{
			Allowed: false,
			ResetAt: w.timestamps[0].Add(span),
		}, nil
	}

	w.timestamps = append(w.timestamps, now)
	return &Result{
		Allowed:   true,
		Remaining: limit - len(w.timestamps),
		ResetAt:   w.timestamps[0].Add(span),
	}, nil
}

// Reset clears the window for a key.
func (s *SlidingWindow) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
}

func (w *window) cleanup(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for ; i < len(w.timestamps); i++ {
		if w.timestamps[i].After(cutoff) {
			break
		}
	}
	w.timestamps = w.timestamps[i:]
}
