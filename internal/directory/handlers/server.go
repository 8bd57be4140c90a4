// Package handlers provides the HTTP server for the company directory,
// bridging the transport layer and business logic, translating between
// JSON payloads and domain models.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the HTTP server serving the dashboard API.
type Server struct {
	httpServer   *http.Server
	logger       *zap.Logger
	httpEndpoint string
}

// NewServer constructs a Server listening on the given port.
func NewServer(httpPort int, logger *zap.Logger) *Server {
	return &Server{
		httpServer:   &http.Server{},
		logger:       logger,
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterRoutes builds the gin engine, wires middleware and mounts the
// company and about-counting endpoints on their fixed paths.
func (s *Server) RegisterRoutes(companies *CompanyHandler, counters *CountersHandler, corsOrigins []string) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(s.logger))

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		corsConfig.AllowOrigins = corsOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Company directory backend is running...")
	})

	router.GET("/company", companies.List)
	router.POST("/company", companies.Create)
	router.GET("/company/:id", companies.Get)
	router.PUT("/company/:id", companies.Update)
	router.DELETE("/company/:id", companies.Delete)

	router.GET("/aboutCounting", counters.Get)
	router.PUT("/aboutCounting", counters.Upsert)
	router.POST("/aboutCounting", counters.Insert)

	s.httpServer.Handler = router
	s.httpServer.Addr = s.httpEndpoint
}

// Start runs the HTTP server, blocking until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
