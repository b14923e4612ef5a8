package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pravinpanwar/impulse/internal/auth"
	"gorm.io/gorm"
)

// registerRoutes sets up the public auth routes and the protected API.
func (s *Server) registerRoutes(router *gin.Engine) {
	router.POST("/api/auth/register", s.handleRegister)
	router.POST("/api/auth/login", s.handleLogin)

	api := router.Group("/api", auth.Middleware(s.auth))

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/dailies", s.handleListDailies)
	api.POST("/dailies", s.handleCreateDaily)
	api.PUT("/dailies/:id", s.handleUpdateDaily)
	api.DELETE("/dailies/:id", s.handleDeleteDaily)
	api.POST("/dailies/:id/complete", s.handleCompleteDaily)
	api.GET("/dailies/:id/history", s.handleDailyHistory)

	api.GET("/goals", s.handleListGoals)
	api.POST("/goals", s.handleCreateGoal)
	api.DELETE("/goals/:id", s.handleDeleteGoal)

	api.GET("/notes", s.handleListNotes)
	api.POST("/notes", s.handleCreateNote)
	api.DELETE("/notes/:id", s.handleDeleteNote)

	api.GET("/stats", s.handleGetStats)
	api.PUT("/stats", s.handlePutStats)

	api.GET("/session", s.handleSessionState)
	api.POST("/session/start", s.handleSessionStart)
	api.POST("/session/commit", s.handleSessionCommit)
	api.POST("/session/defer", s.handleSessionDefer)
	api.POST("/session/save", s.handleSessionSave)
	api.POST("/session/cancel", s.handleSessionCancel)
	api.POST("/session/succeed", s.handleSessionSucceed)
	api.POST("/session/abort", s.handleSessionAbort)
	api.POST("/session/acknowledge", s.handleSessionAcknowledge)
}

// respondError maps store errors onto the API taxonomy: missing or
// not-owned entities are both a generic 404, everything else a generic
// 500. Nothing leaks whose entity it was.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// userID pulls the authenticated user off the context. The middleware
// guarantees it is present on protected routes.
func userID(c *gin.Context) uint {
	id, _ := auth.UserID(c)
	return id
}
