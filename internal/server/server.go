// Package server exposes a service.Service over HTTP JSON and a
// WebSocket stream.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/service"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	svc    *service.Service
	cfg    config.ServerConfig
	logger *slog.Logger
	e      *echo.Echo
}

func New(svc *service.Service, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tick <= 0 {
		cfg.Tick = config.DefaultTick
	}
	s := &Server{svc: svc, cfg: cfg, logger: logger, e: echo.New()}
	s.e.Use(middleware.Recover())
	s.e.Use(requestLogger(logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.e.GET("/", s.handleRoot)
	s.e.GET("/health", s.handleHealth)
	s.e.GET("/ws", s.handleWS)

	api := s.e.Group("/api")
	api.POST("/simulate", s.handleSimulate)
	api.POST("/preset", s.handlePreset)
	api.POST("/step", s.handleStep)
	api.POST("/step-once", s.handleStepOnce)
	api.POST("/add-object", s.handleAddObject)
	api.POST("/remove-object", s.handleRemoveObject)
	api.POST("/update", s.handleUpdate)
	api.POST("/update-world", s.handleUpdateWorld)
	api.POST("/circular-motion", s.handleCircularMotion)
	api.POST("/circular-motion-radius", s.handleCircularRadius)
	api.POST("/collision-settings", s.handleCollisionSettings)
	api.POST("/reset", s.handleReset)
	api.POST("/start", s.handleStart)
	api.POST("/stop", s.handleStop)
	api.GET("/state", s.handleState)
	api.GET("/metrics", s.handleMetrics)
	api.GET("/presets", s.handlePresets)
}

// Handler returns the routed handler with its middleware.
func (s *Server) Handler() http.Handler { return s.e }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- s.e.Start(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	return s.e.Shutdown(shutdownCtx)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()
			err := next(c)

			req := (*c).Request()
			attrs := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"latency", time.Since(start),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("request", attrs...)
			return err
		}
	}
}
