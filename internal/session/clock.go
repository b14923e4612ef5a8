package session

import "time"

// Clock abstracts tick scheduling so the spin cadence and the countdown
// can be driven manually in tests.
type Clock interface {
	Ticker(d time.Duration) Ticker
}

// Ticker is a cancellable tick source.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// realClock schedules on the wall clock.
type realClock struct{}

// NewClock returns a wall-clock backed Clock.
func NewClock() Clock {
	return realClock{}
}

func (realClock) Ticker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}
