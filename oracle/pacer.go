package oracle

import (
	"context"
	"time"
)

// Pacer enforces a minimum wall-clock interval between successive calls to a
// shared external service. Construct one per process and hand it to every
// client that talks to the service. The search issues calls strictly
// sequentially, so Pacer is not safe for concurrent use and does not need
// to be.
type Pacer struct {
	interval time.Duration
	last     time.Time
}

// NewPacer returns a Pacer with the given minimum interval. A non-positive
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the minimum interval has elapsed since the previous call,
// then records the current time as the new last-call timestamp. It returns
// early with ctx.Err() if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.interval > 0 && !p.last.IsZero() {
		if wait := p.interval - time.Since(p.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	p.last = time.Now()
	return nil
}
