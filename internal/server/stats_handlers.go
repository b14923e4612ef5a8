package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pravinpanwar/impulse/internal/score"
)

func (s *Server) handleGetStats(c *gin.Context) {
	stats, err := s.store.Stats(userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"xp":         stats.XP,
		"streak":     stats.Streak,
		"last_login": stats.LastLogin,
		"level":      score.Level(stats.XP),
	})
}

// statsRequest uses pointers so a missing or mistyped field is
// distinguishable: both must be present and numeric.
type statsRequest struct {
	XP     *int `json:"xp"`
	Streak *int `json:"streak"`
}

func (s *Server) handlePutStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.XP == nil || req.Streak == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "XP and streak must be numbers"})
		return
	}
	if *req.XP < 0 || *req.Streak < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "XP and streak must be non-negative"})
		return
	}
	if err := s.store.SaveStats(userID(c), *req.XP, *req.Streak); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stats updated"})
}
