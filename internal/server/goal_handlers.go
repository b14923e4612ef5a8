package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type goalRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListGoals(c *gin.Context) {
	goals, err := s.store.Goals(userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	goal, err := s.store.CreateGoal(userID(c), req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) handleDeleteGoal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteGoal(id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
