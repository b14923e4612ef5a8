// Package server exposes the Impulse HTTP/JSON API.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pravinpanwar/impulse/internal/auth"
	"github.com/pravinpanwar/impulse/internal/reset"
	"github.com/pravinpanwar/impulse/internal/session"
	"github.com/pravinpanwar/impulse/internal/store"
)

// Server wires the store, auth, reset policy, and session machine behind
// a gin router.
type Server struct {
	store    *store.Store
	auth     *auth.Service
	sessions *session.Manager
	reset    *reset.Resetter
}

// Opts holds dependencies for creating a Server.
type Opts struct {
	Store    *store.Store
	Auth     *auth.Service
	Sessions *session.Manager
	Reset    *reset.Resetter
}

// New creates a Server.
func New(opts Opts) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("server: store is required")
	}
	if opts.Auth == nil {
		return nil, fmt.Errorf("server: auth is required")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("server: session manager is required")
	}
	if opts.Reset == nil {
		return nil, fmt.Errorf("server: resetter is required")
	}
	return &Server{
		store:    opts.Store,
		auth:     opts.Auth,
		sessions: opts.Sessions,
		reset:    opts.Reset,
	}, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s.registerRoutes(router)
	return router
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int, out io.Writer) error {
	if port <= 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if out != nil {
		fmt.Fprintf(out, "Impulse API listening on http://localhost:%d\n", port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
