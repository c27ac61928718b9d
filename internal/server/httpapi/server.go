// Package httpapi exposes the user and message services over HTTP. The
// route surface mirrors the original Forevo API: /api/register, /api/login,
// /api/users and /api/messages, plus static frontend files.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/forevo/internal/logging"
	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

type Server struct {
	address  string
	engine   *gin.Engine
	logger   logging.Logger
	users    *users.Service
	messages *messages.Service
}

func NewServer(address, staticDir string, l logging.Logger, us *users.Service, ms *messages.Service) *Server {
	s := &Server{
		address:  address,
		engine:   gin.Default(),
		logger:   l.With("module", "http_server"),
		users:    us,
		messages: ms,
	}

	s.setupRoutes(staticDir)

	return s
}

func (s *Server) setupRoutes(staticDir string) {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.engine.Use(cors.New(config))

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := s.engine.Group("/api")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.GET("/users", s.handleListUsers)
	api.POST("/messages", s.handleSendMessage)
	api.GET("/messages", s.handleListMessages)

	// frontend files; index.html answers "/"
	if staticDir != "" {
		s.engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
