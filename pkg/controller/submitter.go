package controller

import (
	"context"
	"time"

	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

// DefaultSubmitDelay is the simulated round trip of a contact submission.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Submission is the payload handed to a Submitter.
type Submission struct {
	ID          string            `json:"id"`
	FormID      string            `json:"formId"`
	Values      map[string]string `json:"values"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// Submitter delivers a submission and reports completion through done. The
// call itself must not block; done may run on another goroutine.
type Submitter interface {
	Submit(ctx context.Context, sub Submission, done func(error))
}

// SimulatedSubmitter completes every submission successfully after Delay.
// There is no failure outcome.
type SimulatedSubmitter struct {
	Delay time.Duration
	Clock ratelimit.Clock
}

// NewSimulatedSubmitter builds a SimulatedSubmitter. A nil clock uses the
// system clock; a non-positive delay uses DefaultSubmitDelay.
func NewSimulatedSubmitter(delay time.Duration, clock ratelimit.Clock) *SimulatedSubmitter {
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	if clock == nil {
		clock = ratelimit.SystemClock()
	}
	return &SimulatedSubmitter{Delay: delay, Clock: clock}
}

// Submit schedules done(nil) after the configured delay.
func (s *SimulatedSubmitter) Submit(_ context.Context, _ Submission, done func(error)) {
	s.Clock.AfterFunc(s.Delay, func() { done(nil) })
}

// BlockingSubmitter adapts a synchronous delivery function into a Submitter by
// running it on its own goroutine.
type BlockingSubmitter func(ctx context.Context, sub Submission) error

// Submit runs fn in the background and reports its result through done.
func (fn BlockingSubmitter) Submit(ctx context.Context, sub Submission, done func(error)) {
	go func() {
		done(fn(ctx, sub))
	}()
}
