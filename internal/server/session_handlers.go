package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pravinpanwar/impulse/internal/session"
	"gorm.io/gorm"
)

func (s *Server) handleSessionState(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessions.Snapshot(userID(c)))
}

type sessionStartRequest struct {
	Kind session.Kind `json:"kind"`
}

func (s *Server) handleSessionStart(c *gin.Context) {
	uid := userID(c)
	if _, err := s.reset.EnsureToday(uid); err != nil {
		log.Printf("server: rollover for user %d: %v", uid, err)
	}

	var req sessionStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Kind != session.KindDaily && req.Kind != session.KindChaos {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kind must be DAILY or CHAOS"})
		return
	}
	snap, err := s.sessions.Start(uid, req.Kind)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionCommit(c *gin.Context) {
	snap, err := s.sessions.Commit(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionDefer(c *gin.Context) {
	snap, err := s.sessions.Defer(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionSave(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	snap, err := s.sessions.SaveEdit(userID(c), req.Text, req.Time)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionCancel(c *gin.Context) {
	snap, err := s.sessions.CancelEdit(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionSucceed(c *gin.Context) {
	snap, err := s.sessions.Succeed(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionAbort(c *gin.Context) {
	snap, err := s.sessions.Abort(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleSessionAcknowledge(c *gin.Context) {
	snap, err := s.sessions.Acknowledge(userID(c))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// respondSessionError maps session errors: actions not allowed in the
// current state are conflicts, pool problems are conflicts with their
// reason, missing entities stay 404.
func respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Action not allowed in current state"})
	case errors.Is(err, session.ErrEmptyPool):
		c.JSON(http.StatusConflict, gin.H{"error": "No eligible candidates"})
	case errors.Is(err, session.ErrDailiesPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Dailies still pending"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
