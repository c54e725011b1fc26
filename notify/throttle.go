package notify

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/veldt/tap"
	"github.com/veldt/tap/pipeline"
)

// throttled wraps a hook with a token-bucket limiter.
type throttled struct {
	inner   pipeline.Hook
	limiter *rate.Limiter
}

// Throttle wraps a hook so it delivers at most limit events per second
// with the given burst. A delivery arriving without an available token is
// dropped and reported as a throttled diagnostic — it never blocks the
// pipeline.
func Throttle(h pipeline.Hook, limit rate.Limit, burst int) pipeline.Hook {
	if burst <= 0 {
		burst = 1
	}
	return &throttled{
		inner:   h,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Name returns the wrapped hook's name.
func (t *throttled) Name() string { return t.inner.Name() }

// OnCompleted delivers if a token is available, otherwise reports the
// delivery as throttled.
func (t *throttled) OnCompleted(ctx context.Context, d pipeline.Delivery) error {
	if !t.limiter.Allow() {
		return fmt.Errorf("notify: %s: %w", t.inner.Name(), tap.ErrThrottled)
	}
	return t.inner.OnCompleted(ctx, d)
}
