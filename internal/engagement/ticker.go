package engagement

import (
	"context"
	"sync"
	"time"
)

// StartTicker runs fn every interval until the returned stop function is
// called or ctx is cancelled. Stop is idempotent and safe to call from
// any exit path; every started ticker must be stopped so no periodic
// callback leaks past the display lifetime that started it.
func StartTicker(ctx context.Context, interval time.Duration, fn func()) (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	stop = func() {
		once.Do(func() { close(done) })
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return stop
}
