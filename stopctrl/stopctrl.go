// Package stopctrl provides a one-shot cooperative stop signal. A Trigger
// transitions at most once from "not stopped" to "stopped" and never reverts;
// any number of Token holders can poll or wait for that transition.
//
// Long-running operations (tessellation builds, wide-area covering queries)
// accept a *Token and poll it between independent units of work.
package stopctrl

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by operations aborted because a stop was triggered.
var ErrStopped = errors.New("operation stopped")

// Trigger fires the stop event. Construct one with NewTrigger, hand out its
// Token to workers, and call Stop to release every current and future waiter.
type Trigger struct {
	once sync.Once
	tok  *Token
}

// NewTrigger constructs a Trigger in the "not stopped" state.
func NewTrigger() *Trigger {
	return &Trigger{tok: &Token{done: make(chan struct{})}}
}

// Stop fires the stop event. Safe to call from any goroutine; calls after the
// first are no-ops.
func (t *Trigger) Stop() {
	t.once.Do(func() { close(t.tok.done) })
}

// Token returns the Token tied to this trigger. Every call returns the same
// token.
func (t *Trigger) Token() *Token { return t.tok }

// Stopped reports whether the stop event has been triggered.
func (t *Trigger) Stopped() bool { return t.tok.Stopped() }

// Token is the read side of a Trigger. The zero value is not usable, but a
// nil *Token is: it reads as "never stopped", so optional stop parameters
// need no guarding at call sites.
type Token struct {
	done chan struct{}
}

// Done returns a channel that is closed when the stop event fires. Suitable
// for use in select statements alongside other channels. On a nil token it
// returns a channel that never closes.
func (t *Token) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	return t.done
}

// Stopped reports the current state without blocking. A nil token is never
// stopped.
func (t *Token) Stopped() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Err returns ErrStopped once the stop event has fired, nil before.
func (t *Token) Err() error {
	if t.Stopped() {
		return ErrStopped
	}
	return nil
}

// Wait blocks until the stop event fires or the context is done. It returns
// nil when the stop event fired and the context error otherwise.
func (t *Token) Wait(ctx context.Context) error {
	select {
	case <-t.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout blocks up to the given duration for the stop event. It reports
// whether the event fired within the time limit.
func (t *Token) WaitTimeout(d time.Duration) bool {
	if t.Stopped() {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-t.Done():
		return true
	case <-timer.C:
		return false
	}
}
