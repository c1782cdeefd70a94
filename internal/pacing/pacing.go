// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pacing spaces outbound requests. A Pacer guarantees a minimum
// interval between consecutive dispatches regardless of how many goroutines
// share it, and between the completion of a request and the next dispatch;
// the first dispatch is never delayed.
package pacing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the spacing used between batch fetches.
const DefaultInterval = 500 * time.Millisecond

// Pacer hands out turns no closer together than its interval.
type Pacer struct {
	interval time.Duration
	limiter  *rate.Limiter

	// turn serializes waiters so grants are handed out one at a time.
	turn sync.Mutex

	mu   sync.Mutex
	last time.Time // most recent Done
}

// New returns a Pacer for interval. A non-positive interval disables pacing.
func New(interval time.Duration) *Pacer {
	p := &Pacer{interval: interval}
	if interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return p
}

// Interval returns the configured spacing.
func (p *Pacer) Interval() time.Duration { return p.interval }

// WaitTurn blocks until the caller may dispatch its next request or ctx is
// done, in which case it returns ctx.Err(). A turn starts at least one
// interval after the previous turn and after the latest Done.
func (p *Pacer) WaitTurn(ctx context.Context) error {
	if p.limiter == nil {
		return ctx.Err()
	}
	p.turn.Lock()
	defer p.turn.Unlock()

	p.mu.Lock()
	after := p.last.Add(p.interval)
	p.mu.Unlock()
	if err := sleepUntil(ctx, after); err != nil {
		return err
	}
	return p.limiter.Wait(ctx)
}

// Done records that a request dispatched through WaitTurn has finished.
func (p *Pacer) Done() {
	if p.limiter == nil {
		return
	}
	p.mu.Lock()
	p.last = time.Now()
	p.mu.Unlock()
}

func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
