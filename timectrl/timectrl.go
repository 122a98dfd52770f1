// Package timectrl paces a time-stepped loop. A Stepper advances a virtual
// clock in fixed increments, either as fast as the loop body allows or locked
// to the wall clock, and aborts cooperatively through a stop token.
package timectrl

import (
	"sync"
	"time"

	"github.com/signalsfoundry/spheretess/stopctrl"
)

// Clock exposes the current virtual time to components that should not
// depend on a concrete stepper.
type Clock interface {
	Now() time.Time
}

// Mode describes how a Stepper advances virtual time.
type Mode int

const (
	// Accelerated advances as quickly as the loop body allows.
	Accelerated Mode = iota
	// RealTime advances one step per elapsed wall-clock step.
	RealTime
)

// Stepper drives a time-stepped loop from Start in fixed Step increments.
type Stepper struct {
	Start time.Time
	Step  time.Duration
	Mode  Mode

	mu      sync.RWMutex
	current time.Time
}

// NewStepper constructs a stepper positioned at start.
func NewStepper(start time.Time, step time.Duration, mode Mode) *Stepper {
	return &Stepper{Start: start, Step: step, Mode: mode, current: start}
}

// Now returns the virtual time of the most recent step.
func (s *Stepper) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Run invokes fn for each step from Start until duration has elapsed in
// virtual time. In RealTime mode it waits out the step's wall-clock length
// between invocations. It returns fn's first error, stopctrl.ErrStopped when
// the stop token fires, or nil after the last step.
func (s *Stepper) Run(duration time.Duration, stop *stopctrl.Token, fn func(time.Time) error) error {
	end := s.Start.Add(duration)
	for t := s.Start; t.Before(end); t = t.Add(s.Step) {
		if stop.Stopped() {
			return stopctrl.ErrStopped
		}

		s.mu.Lock()
		s.current = t
		s.mu.Unlock()

		if err := fn(t); err != nil {
			return err
		}

		if s.Mode == RealTime {
			timer := time.NewTimer(s.Step)
			select {
			case <-timer.C:
			case <-stop.Done():
				timer.Stop()
				return stopctrl.ErrStopped
			}
		}
	}
	return nil
}
