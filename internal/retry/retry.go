// Package retry is a minimal fixed-delay retry combinator shared by
// device introspection and debug-probe pack installation. It stays on
// the standard library deliberately: the only thing either caller
// needs is "try N times, sleep between tries, respect ctx", and no
// third-party retry library in the retrieval pack offers a narrower
// surface than writing that loop directly.
package retry

import (
	"context"
	"time"
)

// Do calls fn up to attempts times, waiting delay between attempts. It
// returns nil as soon as fn succeeds, or fn's last error if every
// attempt fails. A cancelled ctx aborts immediately with ctx.Err().
func Do(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
