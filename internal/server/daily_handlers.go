package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pravinpanwar/impulse/internal/history"
	"github.com/pravinpanwar/impulse/internal/models"
)

type dailyRequest struct {
	Text   string  `json:"text"`
	Time   *string `json:"time"`
	GoalID *uint   `json:"goal_id"`
}

func (s *Server) handleListDailies(c *gin.Context) {
	uid := userID(c)
	// Roll stale completion flags over before serving the pool.
	if _, err := s.reset.EnsureToday(uid); err != nil {
		log.Printf("server: rollover for user %d: %v", uid, err)
	}
	dailies, err := s.store.Dailies(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailies)
}

func (s *Server) handleCreateDaily(c *gin.Context) {
	var req dailyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	daily, err := s.store.CreateDaily(userID(c), req.Text, req.Time, req.GoalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, daily)
}

func (s *Server) handleUpdateDaily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dailyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	if err := s.store.UpdateDaily(id, userID(c), req.Text, req.Time); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily updated"})
}

func (s *Server) handleDeleteDaily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteDaily(id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily deleted"})
}

func (s *Server) handleCompleteDaily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := s.store.CompleteDaily(id, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Daily completed",
		"history": historyTimestamps(events),
	})
}

func (s *Server) handleDailyHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := s.store.DailyHistory(id, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	times := make([]time.Time, len(events))
	for i, ev := range events {
		times[i] = ev.CompletedAt
	}
	c.JSON(http.StatusOK, gin.H{
		"history":  historyTimestamps(events),
		"calendar": history.Project(times, history.DefaultWindowDays, time.Now()),
	})
}

// historyTimestamps renders completion events as RFC 3339 strings,
// newest first, matching the store's ordering.
func historyTimestamps(events []models.DailyHistory) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.CompletedAt.UTC().Format(time.RFC3339)
	}
	return out
}
