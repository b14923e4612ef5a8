// Package session implements the commitment session state machine: one
// run of select -> confirm -> commit/timer -> result per user. All state
// lives in an explicit state value guarded by the session mutex; nothing
// outside the transition methods mutates it.
package session

import (
	"errors"
	"sync"

	"github.com/pravinpanwar/impulse/internal/score"
)

// State is the session's position in the flow.
type State string

const (
	StateIdle      State = "IDLE"
	StateSelecting State = "SELECTING"
	StateConfirm   State = "CONFIRM"
	StateCommitted State = "COMMITTED"
	StateEditing   State = "EDITING"
	StateResult    State = "RESULT"
)

// Kind discriminates what a session draws from: pending dailies or
// one-shot chaos tasks.
type Kind string

const (
	KindDaily Kind = "DAILY"
	KindChaos Kind = "CHAOS"
)

// Candidate is one eligible pool entry, carried through the session once
// committed.
type Candidate struct {
	ID   uint    `json:"id"`
	Kind Kind    `json:"kind"`
	Text string  `json:"text"`
	Time *string `json:"time,omitempty"`
}

// outcomeRingSize bounds the session-local outcome feed. It is UI
// feedback only, never authoritative.
const outcomeRingSize = 5

var (
	// ErrInvalidTransition reports an action not allowed in the current
	// state. Reaching it means the caller ignored the allowed-action set.
	ErrInvalidTransition = errors.New("session: invalid transition")
	// ErrEmptyPool reports a start with no eligible candidates.
	ErrEmptyPool = errors.New("session: no eligible candidates")
	// ErrDailiesPending reports a chaos start while dailies gate it.
	ErrDailiesPending = errors.New("session: dailies still pending")
	// ErrNoSession reports an action against a user with no session state.
	ErrNoSession = errors.New("session: no active session")
)

// Snapshot is a read-only copy of a session for rendering.
type Snapshot struct {
	State     State      `json:"state"`
	Kind      Kind       `json:"kind,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Remaining int        `json:"remaining_seconds"`
	Initial   int        `json:"initial_seconds"`
	// LastXPDelta and LastStreak describe the most recent result, valid
	// while the session sits in RESULT.
	LastOutcome string   `json:"last_outcome,omitempty"`
	LastXPDelta int      `json:"last_xp_delta"`
	LastStreak  int      `json:"last_streak"`
	Outcomes    []string `json:"outcomes"`
}

// session is the per-user machine state. Guarded by mu; transition
// methods on Manager are the only writers.
type session struct {
	mu sync.Mutex

	userID    uint
	state     State
	kind      Kind
	candidate *Candidate
	remaining int
	initial   int

	lastOutcome score.Outcome
	lastDelta   int
	lastStreak  int
	outcomes    []string

	// spinGen and timerGen invalidate in-flight spin and timer
	// goroutines; a goroutine observing a stale generation exits without
	// touching state.
	spinGen   uint64
	timerGen  uint64
	timerStop chan struct{}
}

// pushOutcome prepends a feed line, trimming to the ring size.
func (s *session) pushOutcome(line string) {
	s.outcomes = append([]string{line}, s.outcomes...)
	if len(s.outcomes) > outcomeRingSize {
		s.outcomes = s.outcomes[:outcomeRingSize]
	}
}

// snapshot copies the visible state. Caller must hold the session lock.
func (s *session) snapshot() *Snapshot {
	snap := &Snapshot{
		State:       s.state,
		Kind:        s.kind,
		Remaining:   s.remaining,
		Initial:     s.initial,
		LastXPDelta: s.lastDelta,
		LastStreak:  s.lastStreak,
		Outcomes:    append([]string(nil), s.outcomes...),
	}
	if s.state == StateResult {
		snap.LastOutcome = s.lastOutcome.String()
	}
	if s.candidate != nil {
		c := *s.candidate
		snap.Candidate = &c
	}
	return snap
}
