package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/method"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/version"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server exposes the calculator over HTTP. Requests share no state apart
// from the read-only profile registry.
type Server struct {
	router   *gin.Engine
	profiles *calibration.Registry
	logger   *slog.Logger
}

// New builds the router.
func New(profiles *calibration.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:   gin.New(),
		profiles: profiles,
		logger:   logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/method", s.handleMethod)

	api := s.router.Group("/api/v1")
	api.GET("/limits", s.handleLimits)
	api.GET("/profiles", s.handleProfiles)
	api.POST("/validate", s.handleValidate)
	api.POST("/evaluate", s.handleEvaluate)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr, "version", version.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// RequestIDHeader carries the request ID. A caller-supplied ID is kept,
// otherwise a new one is generated.
const RequestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit(),
	})
}

func (s *Server) handleMethod(c *gin.Context) {
	profile, err := s.profiles.Lookup(c.Query("profile"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", method.HTML(profile))
}

func (s *Server) handleLimits(c *gin.Context) {
	c.JSON(http.StatusOK, calibration.Envelope())
}

func (s *Server) handleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":  calibration.DefaultProfileID,
		"profiles": s.profiles.List(),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}
	v := residual.Validate(req.Entry, req.Targets.Fr3)
	c.JSON(http.StatusOK, gin.H{
		"valid":       v.Valid(),
		"validation":  v,
		"can_compute": residual.CanCompute(v, req.AllowExtrapolation),
	})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	profile, err := s.profiles.Lookup(c.Query("profile"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	rep, err := residual.Evaluate(req, profile)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	for _, target := range req.Targets.List() {
		if out := rep.Results.Get(target); out != nil && out.Err != nil {
			s.logger.Warn("prediction failed", "target", target.Key(), "err", out.Err)
		}
	}
	c.JSON(http.StatusOK, rep)
}

func bindRequest(c *gin.Context) (residual.Request, bool) {
	var form residual.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return residual.Request{}, false
	}
	req, err := form.Request()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return residual.Request{}, false
	}
	return req, true
}
