// Package reset implements the day-boundary rollover for daily
// completion flags. The original client only tracked the boundary in
// browser storage and never cleared server state; here the policy is
// server-side and two-pronged: a lazy reset-on-read before pool reads,
// and a scheduled midnight sweep across all users.
package reset

import (
	"fmt"
	"log"
	"time"

	"github.com/pravinpanwar/impulse/internal/store"
	"github.com/robfig/cron/v3"
)

// midnightSpec fires the sweep at 00:00 local time.
const midnightSpec = "0 0 * * *"

// Resetter applies the rollover policy against the store.
type Resetter struct {
	store *store.Store
	now   func() time.Time
}

// Opts holds parameters for creating a Resetter.
type Opts struct {
	Store *store.Store
	Now   func() time.Time // defaults to time.Now
}

// New creates a Resetter.
func New(opts Opts) (*Resetter, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("reset: store is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Resetter{store: opts.Store, now: now}, nil
}

// EnsureToday clears the user's completed-today flags if the last
// rollover happened on an earlier calendar day. Reports whether a reset
// ran. Called before any pool read so a user who skips midnight still
// sees a fresh day.
func (r *Resetter) EnsureToday(userID uint) (bool, error) {
	stats, err := r.store.Stats(userID)
	if err != nil {
		return false, fmt.Errorf("reset: read stats: %w", err)
	}
	if stats.LastReset != nil && sameDay(*stats.LastReset, r.now()) {
		return false, nil
	}
	if err := r.store.ResetDailies(userID); err != nil {
		return false, err
	}
	if err := r.store.MarkReset(userID); err != nil {
		return false, err
	}
	return true, nil
}

// SweepAll runs EnsureToday for every user. Per-user failures are logged
// and skipped so one broken row cannot stall the rollover.
func (r *Resetter) SweepAll() {
	ids, err := r.store.AllUserIDs()
	if err != nil {
		log.Printf("reset: sweep: %v", err)
		return
	}
	for _, id := range ids {
		if _, err := r.EnsureToday(id); err != nil {
			log.Printf("reset: sweep user %d: %v", id, err)
		}
	}
}

// Schedule registers the midnight sweep on the given cron runner.
func (r *Resetter) Schedule(c *cron.Cron) (cron.EntryID, error) {
	id, err := c.AddFunc(midnightSpec, r.SweepAll)
	if err != nil {
		return 0, fmt.Errorf("reset: schedule sweep: %w", err)
	}
	return id, nil
}

// sameDay reports whether a and b fall on the same calendar date in b's
// location.
func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
