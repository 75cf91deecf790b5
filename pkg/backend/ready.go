package backend

import (
	"context"
	"time"

	"github.com/matzehuels/structviz/pkg/errors"
)

// Policy bounds the readiness polling loop.
type Policy struct {
	Attempts int           // Maximum number of Ready checks
	Interval time.Duration // Delay between checks
}

// DefaultPolicy polls every 100ms for up to 5 seconds.
var DefaultPolicy = Policy{Attempts: 50, Interval: 100 * time.Millisecond}

func (p Policy) normalized() Policy {
	if p.Attempts <= 0 {
		p.Attempts = DefaultPolicy.Attempts
	}
	if p.Interval <= 0 {
		p.Interval = DefaultPolicy.Interval
	}
	return p
}

// Timeout returns the longest time WaitReady can block under p.
func (p Policy) Timeout() time.Duration {
	p = p.normalized()
	return time.Duration(p.Attempts-1) * p.Interval
}

// WaitReady polls m until it reports ready, the attempts are exhausted or ctx
// is done. Exhaustion returns a BACKEND_UNAVAILABLE error.
func WaitReady(ctx context.Context, m Module, p Policy) error {
	if m == nil {
		return errors.New(errors.ErrCodeBackendUnavailable, "no structure backend configured")
	}
	p = p.normalized()

	for i := 0; i < p.Attempts; i++ {
		if m.Ready() {
			return nil
		}
		if i == p.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval):
		}
	}
	return errors.New(errors.ErrCodeBackendUnavailable,
		"structure backend did not load after %d checks (%s)", p.Attempts, p.Timeout())
}
