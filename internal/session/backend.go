package session

import "github.com/pravinpanwar/impulse/internal/models"

// Backend is the persistence surface a session needs: pool reads, the
// outcome effects, and the stats row the scoring engine reads and writes.
// *store.Store satisfies it.
type Backend interface {
	PendingDailies(userID uint) ([]models.Daily, error)
	Tasks(userID uint) ([]models.Task, error)

	CompleteDaily(dailyID, userID uint) ([]models.DailyHistory, error)
	DeleteTask(taskID, userID uint) error
	UpdateDaily(dailyID, userID uint, text string, at *string) error
	UpdateTask(taskID, userID uint, text string, at *string) error

	Stats(userID uint) (*models.UserStats, error)
	SaveStats(userID uint, xp, streak int) error
}

// dailyCandidates adapts pending dailies into pool entries.
func dailyCandidates(dailies []models.Daily) []Candidate {
	out := make([]Candidate, 0, len(dailies))
	for _, d := range dailies {
		out = append(out, Candidate{ID: d.ID, Kind: KindDaily, Text: d.Text, Time: d.Time})
	}
	return out
}

// taskCandidates adapts chaos tasks into pool entries.
func taskCandidates(tasks []models.Task) []Candidate {
	out := make([]Candidate, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Candidate{ID: t.ID, Kind: KindChaos, Text: t.Text, Time: t.Time})
	}
	return out
}
