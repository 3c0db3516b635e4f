// Package admin is the ops sidecar: a small Echo server exposing
// health, readiness, and Prometheus metrics on a listener separate from
// the federation socket (SPEC_FULL.md §3). It is adapted from the
// teacher's internal/app and internal/handler/http/health packages,
// which built exactly this kind of readiness-gated Echo surface.
package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/atomic"

	"github.com/grunfink/snac-core/pkg/logger"
)

// Sidecar owns the Echo instance and the readiness flag the federation
// lifecycle.Server flips once startup completes.
type Sidecar struct {
	echo      *echo.Echo
	readiness *atomic.Bool
	listen    string
}

// New builds a Sidecar bound to listen, sharing readiness with the
// caller so lifecycle.Server's Start/Shutdown can drive it directly.
func New(listen string, readiness *atomic.Bool) *Sidecar {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("snac_core_admin"))
	e.GET("/metrics", echoprometheus.NewHandler())

	s := &Sidecar{echo: e, readiness: readiness, listen: listen}

	e.GET("/healthz", s.liveness)
	e.GET("/readyz", s.readinessCheck)

	return s
}

// liveness always returns 200: the process is alive if it can answer.
func (s *Sidecar) liveness(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// readinessCheck returns 200 once the federation listener and worker
// pool are up, 503 otherwise (before startup completes or during
// shutdown), exactly the teacher's health.HandleReadiness contract.
func (s *Sidecar) readinessCheck(c echo.Context) error {
	if s.readiness.Load() {
		return c.NoContent(http.StatusOK)
	}
	return c.NoContent(http.StatusServiceUnavailable)
}

// Start runs the sidecar's HTTP server in a new goroutine and returns
// immediately; errors other than a graceful Shutdown are logged.
func (s *Sidecar) Start() {
	go func() {
		if err := s.echo.Start(s.listen); err != nil && err != http.ErrServerClosed {
			logger.Error("admin sidecar: %v", err)
		}
	}()
}

// Shutdown stops the sidecar's HTTP server, honoring ctx's deadline.
func (s *Sidecar) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
