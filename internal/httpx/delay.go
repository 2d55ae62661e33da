package httpx

import (
	"context"
	"math/rand"
	"time"
)

// Delay is the demo latency injected on product creation so the UI tests
// have something slow to wait on. It lives entirely at the HTTP boundary;
// the stores themselves never sleep.
type Delay struct {
	Enabled     bool
	Duration    time.Duration
	Probability float64
}

// Sleep pauses with the configured probability, returning early when the
// request is cancelled.
func (d Delay) Sleep(ctx context.Context) bool {
	if !d.Enabled || rand.Float64() >= d.Probability {
		return false
	}
	t := time.NewTimer(d.Duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	return true
}
