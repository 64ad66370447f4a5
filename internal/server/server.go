// Package server exposes one planner session over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/philipparndt/throwplan/pkg/store"
)

// Server serializes HTTP callers onto a single planner
type Server struct {
	mu      sync.Mutex
	planner *app.Planner
	store   *store.Store // optional
	app     *fiber.App
}

// New builds the fiber app. st may be nil, which disables /api/projects.
func New(planner *app.Planner, st *store.Store) *Server {
	s := &Server{planner: planner, store: st}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		AppName:      "throwplan",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	s.app.Use(recover.New())
	if debug.IsEnabled(debug.LevelInfo) {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	// ============================================================
	// Routes
	// ============================================================

	s.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	api := s.app.Group("/api")
	api.Get("/settings", s.getSettings)
	api.Put("/settings", s.putSettings)
	api.Get("/readout", s.getReadout)
	api.Get("/summary", s.getSummary)
	api.Post("/drawing", s.postDrawing)
	api.Post("/projectors", s.postProjector)
	api.Delete("/projectors/:id", s.deleteProjector)
	api.Post("/projectors/:id/select", s.selectProjector)
	api.Patch("/projectors/selected", s.patchSelected)
	api.Post("/view", s.postView)
	api.Post("/pointer", s.postPointer)
	api.Get("/render.png", s.getRender)

	if st != nil {
		api.Get("/projects", s.listProjects)
		api.Post("/projects", s.saveProject)
		api.Post("/projects/:id/load", s.loadProject)
		api.Delete("/projects/:id", s.deleteProject)
	}

	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or Shutdown is called
func (s *Server) Listen(addr string) error {
	debug.Info("Listening on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// locked runs fn with the planner mutex held
func (s *Server) locked(fn func(p *app.Planner) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.planner)
}

func fail(c fiber.Ctx, status int, err error) error {
	debug.Verbose("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

// summaryResponse pairs the computed figures with display lines
type summaryResponse struct {
	Summaries []report.Summary `json:"summaries"`
	Lines     []string         `json:"lines"`
}

func (s *Server) summary(p *app.Planner) summaryResponse {
	sums := p.Summaries()
	return summaryResponse{Summaries: sums, Lines: report.Lines(sums, p.DisplayUnit())}
}

// pointerRequest is one pointer event in viewport coordinates
type pointerRequest struct {
	Phase string  `json:"phase"` // down, move, up, leave
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Touch bool    `json:"touch"`
}

// viewRequest changes the camera. All fields are optional.
type viewRequest struct {
	ZoomBy   float64 `json:"zoomBy,omitempty"`
	Rotate   float64 `json:"rotate,omitempty"`
	Fit      bool    `json:"fit,omitempty"`
	Width    float64 `json:"width,omitempty"` // viewport resize
	Height   float64 `json:"height,omitempty"`
	ViewMode string  `json:"viewMode,omitempty"`
}

type drawingRequest struct {
	Path string `json:"path"`
	Page int    `json:"page"`
}

type projectRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func encodeSettings(p *app.Planner) ([]byte, error) {
	var buf bytes.Buffer
	if err := app.EncodeSettings(&buf, p.Settings()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pointOf(r pointerRequest) geometry.Point {
	return geometry.NewPoint(r.X, r.Y)
}
