// Package server exposes the HTTP entry points for the assistant.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mailbrief/mailbrief/internal/assistant"
	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/storage"
)

// Server wires the assistant service into a Fiber app.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	svc    *assistant.Service
	store  *storage.Store
	logger zerolog.Logger
}

// New creates the HTTP server and registers its routes.
func New(cfg *config.Config, svc *assistant.Service, store *storage.Store, logger zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "mailbrief",
			DisableStartupMessage: true,
		}),
		cfg:    cfg,
		svc:    svc,
		store:  store,
		logger: logger.With().Str("component", "server").Logger(),
	}

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app.Get("/api/email-assistant", s.handleTriggered)
	s.app.Post("/api/email-assistant", s.handleAnalyze)
	s.app.Get("/api/reports", s.handleHistory)

	return s
}

// Listen starts serving on the configured address.
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.HTTPHost, s.cfg.Server.HTTPPort)
	s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying Fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}
