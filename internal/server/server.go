// Package server exposes a running field over HTTP so a browser page can
// act as its presentation layer.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/san-kum/logofall/internal/config"
	"github.com/san-kum/logofall/internal/field"
	"github.com/san-kum/logofall/internal/loop"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	field    *field.Field
	cfg      *config.Config
	loop     *loop.Loop
	viewport atomic.Pointer[field.Viewport]
	logger   *log.Logger
	engine   *gin.Engine
}

type FieldResponse struct {
	Frame     int              `json:"frame"`
	Size      float64          `json:"size"`
	Viewport  field.Viewport   `json:"viewport"`
	Pointer   field.Pointer    `json:"pointer"`
	Particles []field.Particle `json:"particles"`
}

type pointerRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type viewportRequest struct {
	Width  *float64 `json:"width" binding:"required"`
	Height *float64 `json:"height" binding:"required"`
}

func New(f *field.Field, cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		field:  f,
		cfg:    cfg,
		logger: logger,
	}
	vp := cfg.Viewport
	s.viewport.Store(&vp)
	s.loop = loop.New(s.step, cfg.Interval(), loop.WithLogger(logger))
	s.engine = s.routes()
	return s
}

func (s *Server) step() {
	s.field.Step(*s.viewport.Load())
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "running": s.loop.Running()})
	})

	api := r.Group("/api")
	api.GET("/field", s.getField)
	api.POST("/pointer", s.setPointer)
	api.PUT("/viewport", s.setViewport)
	api.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.cfg)
	})
	api.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.field.Metrics())
	})

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

func (s *Server) getField(c *gin.Context) {
	c.JSON(http.StatusOK, FieldResponse{
		Frame:     s.field.Frame(),
		Size:      s.field.Config().Size,
		Viewport:  *s.viewport.Load(),
		Pointer:   s.field.Pointer(),
		Particles: s.field.Snapshot(),
	})
}

// setPointer accepts any coordinates; off-viewport values simply highlight
// nothing.
func (s *Server) setPointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.field.SetPointer(*req.X, *req.Y)
	c.Status(http.StatusNoContent)
}

func (s *Server) setViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vp := field.Viewport{Width: *req.Width, Height: *req.Height}
	s.viewport.Store(&vp)
	c.JSON(http.StatusOK, vp)
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Loop() *loop.Loop { return s.loop }

// Run starts the frame loop and serves HTTP on addr until ctx is done. The
// loop is stopped before Run returns.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.loop.Start(ctx); err != nil {
		return err
	}
	defer s.loop.Stop()

	srv := &http.Server{Addr: addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving field", "addr", addr, "fps", s.cfg.FPS, "logos", s.field.Len())
		errCh <- srv.ListenAndServe()
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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
