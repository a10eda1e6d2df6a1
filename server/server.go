// SPDX-License-Identifier: MIT

// Package server exposes the cycle search over HTTP.
//
//	GET  /healthz     liveness probe
//	POST /v1/cycles   search the events of the request body
//
// Request body:
//
//	{
//	  "events":  [{"from": "a", "to": "b", "time": 2}, ...],
//	  "options": {"max_length": 6, "max_duration": 3600,
//	              "window": {"from": 0, "to": 100}, "max_results": 100,
//	              "self_loops": false, "realizations": 1, "timeout_ms": 500}
//	}
//
// Absent options fall back to the server's search configuration; the
// request timeout can only shorten the configured one. The response is a
// report.Report, its run ID is echoed in the X-Run-ID header.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/katalvlaran/tempocycle/config"
	"github.com/katalvlaran/tempocycle/report"
	"github.com/katalvlaran/tempocycle/source"
	"github.com/katalvlaran/tempocycle/tcycle"
	"github.com/katalvlaran/tempocycle/tgraph"
)

// Window is the JSON form of a half-open time filter.
type Window struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Options overrides the configured search per request. Nil fields are unset.
type Options struct {
	MaxLength    *int    `json:"max_length,omitempty"`
	MaxDuration  *int64  `json:"max_duration,omitempty"`
	Window       *Window `json:"window,omitempty"`
	MaxResults   *int    `json:"max_results,omitempty"`
	SelfLoops    *bool   `json:"self_loops,omitempty"`
	Realizations *int    `json:"realizations,omitempty"`
	TimeoutMS    *int64  `json:"timeout_ms,omitempty"`
}

// Request is the body of POST /v1/cycles.
type Request struct {
	Events  []source.Record `json:"events"`
	Options Options         `json:"options"`
}

// Server wraps a fiber application.
type Server struct {
	app *fiber.App
	cfg config.Config
	log *slog.Logger
}

// New builds the application and registers its routes.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:   "tempocycle",
			BodyLimit: cfg.Server.BodyLimit,
		}),
		cfg: cfg,
		log: logger,
	}

	s.app.Use(s.logRequests)
	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/v1/cycles", s.findCycles)

	return s
}

// App exposes the fiber application, for tests and embedding.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("server: listening", "addr", addr)

	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info("server: request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"elapsed", time.Since(start))

	return err
}

func (s *Server) findCycles(c fiber.Ctx) error {
	// 1) Decode and bound the request.
	var req Request
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if len(req.Events) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": source.ErrNoEvents.Error()})
	}
	if limit := s.cfg.Server.MaxEvents; limit > 0 && len(req.Events) > limit {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "too many events"})
	}
	if w := req.Options.Window; w != nil && w.From >= w.To {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "window: from must be below to"})
	}

	// 2) Build the snapshot. Loops are always kept; the search decides.
	g := tgraph.NewGraph(tgraph.WithLoops())
	if err := source.Load(g, req.Events); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	// 3) Search.
	runID := report.NewRunID()
	search := s.merge(req.Options)
	opts := append(search.Options(c.Context()), tcycle.WithLogger(s.log.With("run_id", runID)))
	res, err := tcycle.Search(g, opts...)
	if errors.Is(err, tcycle.ErrEmptyGraph) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("X-Run-ID", runID)

	return c.JSON(report.New(runID, res))
}

// merge overlays request options on the configured search.
func (s *Server) merge(o Options) config.Search {
	out := s.cfg.Search
	if out.Timeout <= 0 || (s.cfg.Server.Timeout > 0 && s.cfg.Server.Timeout < out.Timeout) {
		out.Timeout = s.cfg.Server.Timeout
	}
	if o.MaxLength != nil {
		out.MaxLength = *o.MaxLength
	}
	if o.MaxDuration != nil {
		out.MaxDuration = *o.MaxDuration
	}
	if o.Window != nil {
		out.Window = &config.Window{From: o.Window.From, To: o.Window.To}
	}
	if o.MaxResults != nil {
		out.MaxResults = *o.MaxResults
	}
	if o.SelfLoops != nil {
		out.SelfLoops = *o.SelfLoops
	}
	if o.Realizations != nil {
		out.Realizations = *o.Realizations
	}
	if o.TimeoutMS != nil && *o.TimeoutMS > 0 {
		if d := time.Duration(*o.TimeoutMS) * time.Millisecond; out.Timeout <= 0 || d < out.Timeout {
			out.Timeout = d
		}
	}

	return out
}
