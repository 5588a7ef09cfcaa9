package limiter

import (
	"context"

	"golang.org/x/time/rate"
)

// DisposalLimiter throttles trash operations to a maximum rate.
// A nil *DisposalLimiter never waits.
type DisposalLimiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing perSecond operations per second.
// perSecond <= 0 means unlimited.
func New(perSecond float64) *DisposalLimiter {
	return &DisposalLimiter{
		limiter: rate.NewLimiter(toLimit(perSecond), 1),
	}
}

// Wait blocks until the next operation may proceed or ctx is done
func (l *DisposalLimiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

// SetRate updates the maximum rate
func (l *DisposalLimiter) SetRate(perSecond float64) {
	if l == nil {
		return
	}
	l.limiter.SetLimit(toLimit(perSecond))
}

// Unlimited reports whether the limiter never blocks
func (l *DisposalLimiter) Unlimited() bool {
	return l == nil || l.limiter.Limit() == rate.Inf
}

func toLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}
