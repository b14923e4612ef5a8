package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pravinpanwar/impulse/internal/score"
)

// Reference mechanics: 15 reveal steps at 80ms, 20-minute sessions.
const (
	DefaultDuration     = 1200 * time.Second
	DefaultSpinSteps    = 15
	DefaultSpinInterval = 80 * time.Millisecond
)

// Manager owns every user's session machine and drives all transitions.
// One session per user; only the transition methods touch session state.
type Manager struct {
	backend Backend
	clock   Clock
	rng     Rand

	duration     time.Duration
	spinSteps    int
	spinInterval time.Duration

	mu       sync.Mutex
	sessions map[uint]*session
}

// Opts holds parameters for creating a Manager. Zero values fall back to
// the reference mechanics, a wall clock, and a crypto-seeded draw source.
type Opts struct {
	Backend      Backend
	Clock        Clock
	Rand         Rand
	Duration     time.Duration
	SpinSteps    int
	SpinInterval time.Duration
}

// NewManager creates a Manager.
func NewManager(opts Opts) (*Manager, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("session: backend is required")
	}
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}
	if opts.Rand == nil {
		rng, err := defaultRand()
		if err != nil {
			return nil, err
		}
		opts.Rand = rng
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.SpinSteps <= 0 {
		opts.SpinSteps = DefaultSpinSteps
	}
	if opts.SpinInterval <= 0 {
		opts.SpinInterval = DefaultSpinInterval
	}
	return &Manager{
		backend:      opts.Backend,
		clock:        opts.Clock,
		rng:          opts.Rand,
		duration:     opts.Duration,
		spinSteps:    opts.SpinSteps,
		spinInterval: opts.SpinInterval,
		sessions:     make(map[uint]*session),
	}, nil
}

// get returns the user's session, creating an idle one on first use.
func (m *Manager) get(userID uint) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{userID: userID, state: StateIdle}
		m.sessions[userID] = s
	}
	return s
}

// Snapshot returns the current visible state of the user's session.
func (m *Manager) Snapshot(userID uint) *Snapshot {
	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Start begins a selection run for the given kind. DAILY requires at
// least one pending daily; CHAOS is blocked while any daily is pending
// and requires at least one open task. The reveal spin runs
// asynchronously; the session sits in SELECTING until the final draw
// commits it to CONFIRM.
func (m *Manager) Start(userID uint, kind Kind) (*Snapshot, error) {
	pending, err := m.backend.PendingDailies(userID)
	if err != nil {
		return nil, fmt.Errorf("session: read daily pool: %w", err)
	}

	var pool []Candidate
	switch kind {
	case KindDaily:
		pool = dailyCandidates(pending)
		if len(pool) == 0 {
			return nil, ErrEmptyPool
		}
	case KindChaos:
		if len(pending) > 0 {
			return nil, ErrDailiesPending
		}
		tasks, err := m.backend.Tasks(userID)
		if err != nil {
			return nil, fmt.Errorf("session: read chaos pool: %w", err)
		}
		pool = taskCandidates(tasks)
		if len(pool) == 0 {
			return nil, ErrEmptyPool
		}
	default:
		return nil, fmt.Errorf("session: unknown kind %q", kind)
	}

	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return nil, fmt.Errorf("session: start from %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = StateSelecting
	s.kind = kind
	s.candidate = nil
	s.spinGen++
	go m.spin(s, pool, s.spinGen)
	return s.snapshot(), nil
}

// spin runs the reveal sequence: at each tick a uniform draw from the
// pool is presented transiently; only the final draw carries semantics,
// committing the session to CONFIRM. A stale generation or a state
// change aborts without touching anything.
func (m *Manager) spin(s *session, pool []Candidate, gen uint64) {
	ticker := m.clock.Ticker(m.spinInterval)
	defer ticker.Stop()

	for step := 1; step <= m.spinSteps; step++ {
		<-ticker.C()
		c := pool[m.rng.Intn(len(pool))]

		s.mu.Lock()
		if s.spinGen != gen || s.state != StateSelecting {
			s.mu.Unlock()
			return
		}
		s.candidate = &c
		if step == m.spinSteps {
			s.state = StateConfirm
		}
		s.mu.Unlock()
	}
}

// Commit accepts the presented candidate and starts the countdown.
func (m *Manager) Commit(userID uint) (*Snapshot, error) {
	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirm || s.candidate == nil {
		return nil, fmt.Errorf("session: commit from %s: %w", s.state, ErrInvalidTransition)
	}
	seconds := int(m.duration / time.Second)
	s.state = StateCommitted
	s.remaining = seconds
	s.initial = seconds
	s.timerGen++
	s.timerStop = make(chan struct{})
	go m.runTimer(s, s.timerGen, s.timerStop)
	return s.snapshot(), nil
}

// runTimer decrements remaining once per second while the session stays
// COMMITTED. Hitting zero forces the failure transition exactly once.
// Ticks that arrive after a terminal transition see a stale generation
// and are ignored, so a user action and a late tick can never both fire.
func (m *Manager) runTimer(s *session, gen uint64, stop <-chan struct{}) {
	ticker := m.clock.Ticker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			s.mu.Lock()
			if s.timerGen != gen || s.state != StateCommitted {
				s.mu.Unlock()
				return
			}
			s.remaining--
			expired := s.remaining <= 0
			s.mu.Unlock()
			if expired {
				if _, err := m.finish(s, score.Failure); err != nil {
					log.Printf("session: timeout for user %d: %v", s.userID, err)
				}
				return
			}
		}
	}
}

// Succeed reports the committed attempt as done.
func (m *Manager) Succeed(userID uint) (*Snapshot, error) {
	return m.finish(m.get(userID), score.Success)
}

// Abort gives up on the committed attempt; it scores as a failure.
func (m *Manager) Abort(userID uint) (*Snapshot, error) {
	return m.finish(m.get(userID), score.Failure)
}

// finish is the single COMMITTED -> RESULT transition. It cancels the
// timer, scores the outcome, persists stats, and applies the success
// effect for the candidate's kind (chaos tasks are consumed, dailies run
// the completion transaction).
func (m *Manager) finish(s *session, outcome score.Outcome) (*Snapshot, error) {
	s.mu.Lock()
	if s.state != StateCommitted || s.candidate == nil {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("session: finish from %s: %w", state, ErrInvalidTransition)
	}
	s.timerGen++
	if s.timerStop != nil {
		close(s.timerStop)
		s.timerStop = nil
	}
	s.state = StateResult
	cand := *s.candidate
	kind := s.kind
	s.mu.Unlock()

	stats, err := m.backend.Stats(s.userID)
	if err != nil {
		return nil, fmt.Errorf("session: read stats: %w", err)
	}
	delta, newStreak := score.Score(outcome, stats.Streak)
	if err := m.backend.SaveStats(s.userID, stats.XP+delta, newStreak); err != nil {
		return nil, fmt.Errorf("session: save stats: %w", err)
	}

	if outcome == score.Success {
		switch kind {
		case KindChaos:
			if err := m.backend.DeleteTask(cand.ID, s.userID); err != nil {
				log.Printf("session: consume task %d: %v", cand.ID, err)
			}
		case KindDaily:
			if _, err := m.backend.CompleteDaily(cand.ID, s.userID); err != nil {
				log.Printf("session: complete daily %d: %v", cand.ID, err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOutcome = outcome
	s.lastDelta = delta
	s.lastStreak = newStreak
	s.pushOutcome(outcome.String() + ": " + cand.Text)
	return s.snapshot(), nil
}

// Defer opens the edit branch instead of committing: the user must alter
// or reschedule the candidate before returning to IDLE.
func (m *Manager) Defer(userID uint) (*Snapshot, error) {
	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirm || s.candidate == nil {
		return nil, fmt.Errorf("session: defer from %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = StateEditing
	return s.snapshot(), nil
}

// SaveEdit persists the rewritten candidate through the update operation
// for its kind and returns the session to IDLE.
func (m *Manager) SaveEdit(userID uint, text string, at *string) (*Snapshot, error) {
	s := m.get(userID)
	s.mu.Lock()
	if s.state != StateEditing || s.candidate == nil {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("session: save edit from %s: %w", state, ErrInvalidTransition)
	}
	cand := *s.candidate
	s.mu.Unlock()

	var err error
	switch cand.Kind {
	case KindChaos:
		err = m.backend.UpdateTask(cand.ID, userID, text, at)
	case KindDaily:
		err = m.backend.UpdateDaily(cand.ID, userID, text, at)
	}
	if err != nil {
		return nil, fmt.Errorf("session: save edit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return s.snapshot(), nil
}

// CancelEdit abandons the edit branch and returns to IDLE.
func (m *Manager) CancelEdit(userID uint) (*Snapshot, error) {
	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return nil, fmt.Errorf("session: cancel edit from %s: %w", s.state, ErrInvalidTransition)
	}
	s.reset()
	return s.snapshot(), nil
}

// Acknowledge leaves the RESULT screen, clearing session-local state.
func (m *Manager) Acknowledge(userID uint) (*Snapshot, error) {
	s := m.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return nil, fmt.Errorf("session: acknowledge from %s: %w", s.state, ErrInvalidTransition)
	}
	s.reset()
	return s.snapshot(), nil
}

// reset clears everything but the outcome feed. Caller holds the lock.
func (s *session) reset() {
	s.state = StateIdle
	s.kind = ""
	s.candidate = nil
	s.remaining = 0
	s.initial = 0
	s.spinGen++
	s.timerGen++
	if s.timerStop != nil {
		close(s.timerStop)
		s.timerStop = nil
	}
}
