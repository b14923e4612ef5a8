// Package score computes XP awards and the global session streak.
package score

// XP award parameters: a flat base per success plus a bonus that scales
// with the streak length going into the session.
const (
	BaseXP      = 150
	StreakBonus = 10
	// XPPerLevel converts accumulated XP into a display level.
	XPPerLevel = 1000
)

// Outcome is the terminal result of one commitment session.
type Outcome int

const (
	Failure Outcome = iota
	Success
)

// String returns the outcome label used in session history.
func (o Outcome) String() string {
	if o == Success {
		return "COMPLETED"
	}
	return "FAILED"
}

// Score maps a session outcome and the streak prior to the session onto
// the XP delta and the new streak. A success extends the streak and pays
// out against its pre-increment length; any failure zeroes the streak and
// pays nothing.
func Score(outcome Outcome, priorStreak int) (xpDelta, newStreak int) {
	if priorStreak < 0 {
		priorStreak = 0
	}
	if outcome == Success {
		return BaseXP + priorStreak*StreakBonus, priorStreak + 1
	}
	return 0, 0
}

// Level derives the display level from total XP.
func Level(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / XPPerLevel
}
