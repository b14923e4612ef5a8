// Package history projects a daily's completion events onto a fixed
// attendance calendar.
package history

import "time"

// DefaultWindowDays is the span of the attendance calendar.
const DefaultWindowDays = 30

// Day is one cell of the projected calendar.
type Day struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Project builds a windowDays-long calendar ending on the day containing
// ref. A day is marked completed when any event falls on that calendar
// date in ref's location; time of day is ignored. Events outside the
// window are ignored. The result runs oldest day first.
func Project(events []time.Time, windowDays int, ref time.Time) []Day {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	completed := make(map[string]bool, len(events))
	loc := ref.Location()
	for _, ev := range events {
		completed[ev.In(loc).Format(time.DateOnly)] = true
	}

	days := make([]Day, windowDays)
	start := ref.AddDate(0, 0, -(windowDays - 1))
	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i)
		days[i] = Day{
			Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc),
			Completed: completed[date.Format(time.DateOnly)],
		}
	}
	return days
}
