// Package awaitx adapts the remote API's one-shot success/failure callback
// idiom into blocking calls usable by sequential orchestration code.
//
// Instead of spin-polling a completion flag, a Completion is a single-fire
// channel woken directly by whichever callback fires first. The cancellation
// predicate is still a poll-only construct, so Wait checks it on a short
// ticker alongside the channel.
package awaitx

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/client/status"
	"github.com/dmitrijs2005/worldpub/internal/common"
)

// DefaultPollInterval bounds how often Wait re-checks the cancellation token.
const DefaultPollInterval = 50 * time.Millisecond

type outcome[T any] struct {
	value T
	err   error
}

// Completion records exactly one of a success or failure outcome. Create one
// Completion per in-flight remote call; instances must not be reused.
type Completion[T any] struct {
	done chan outcome[T]
	once sync.Once
}

func New[T any]() *Completion[T] {
	return &Completion[T]{done: make(chan outcome[T], 1)}
}

// Succeed records a success outcome. Calls after the first outcome
// (either kind) are ignored.
func (c *Completion[T]) Succeed(v T) {
	c.once.Do(func() { c.done <- outcome[T]{value: v} })
}

// Fail records a failure outcome. Calls after the first outcome are ignored.
func (c *Completion[T]) Fail(err error) {
	c.once.Do(func() { c.done <- outcome[T]{err: err} })
}

// Wait blocks until a callback fires, ctx is done, or cancelled reports
// true. The token is polled at interval (DefaultPollInterval when interval
// is not positive). A backend that never invokes either callback keeps Wait
// blocked until ctx or the token releases it.
func (c *Completion[T]) Wait(ctx context.Context, cancelled status.CancelToken, interval time.Duration) (T, error) {
	var zero T

	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if cancelled == nil {
		cancelled = status.NeverCancelled
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case out := <-c.done:
			return out.value, out.err
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ticker.C:
			if cancelled() {
				return zero, common.ErrCancelled
			}
		}
	}
}
