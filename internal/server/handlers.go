package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/philipparndt/throwplan/pkg/store"
)

// ============================================================
// Settings
// ============================================================

func (s *Server) getSettings(c fiber.Ctx) error {
	var settings app.Settings
	s.locked(func(p *app.Planner) error {
		settings = p.Settings()
		return nil
	})
	return c.JSON(settings)
}

// putSettings applies a snapshot. The drawing field is ignored; drawings
// are loaded through /api/drawing.
func (s *Server) putSettings(c fiber.Ctx) error {
	settings, err := app.DecodeSettings(bytes.NewReader(c.Body()))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	var out app.Settings
	err = s.locked(func(p *app.Planner) error {
		if err := p.ApplySettings(settings); err != nil {
			return err
		}
		out = p.Settings()
		return nil
	})
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	return c.JSON(out)
}

func (s *Server) getReadout(c fiber.Ctx) error {
	var r app.Readout
	s.locked(func(p *app.Planner) error {
		r = p.Readout()
		return nil
	})
	return c.JSON(r)
}

func (s *Server) getSummary(c fiber.Ctx) error {
	var out summaryResponse
	s.locked(func(p *app.Planner) error {
		out = s.summary(p)
		return nil
	})
	return c.JSON(out)
}

// ============================================================
// Drawing
// ============================================================

func (s *Server) postDrawing(c fiber.Ctx) error {
	var req drawingRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	if req.Path == "" {
		return fail(c, fiber.StatusBadRequest, errors.New("path required"))
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	var page, pages int
	var size geometry.Size
	err := s.locked(func(p *app.Planner) error {
		if err := p.LoadFile(c.Context(), req.Path, req.Page); err != nil {
			return err
		}
		page, pages = p.Page()
		size = p.DrawingSize()
		return nil
	})
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	return c.JSON(fiber.Map{"page": page, "pages": pages, "width": size.Width, "height": size.Height})
}

// ============================================================
// Projectors
// ============================================================

func (s *Server) postProjector(c fiber.Ctx) error {
	var id int
	s.locked(func(p *app.Planner) error {
		id = p.AddProjector()
		return nil
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func paramID(c fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, fmt.Errorf("invalid projector id %q", c.Params("id"))
	}
	return id, nil
}

func (s *Server) deleteProjector(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	var removed bool
	s.locked(func(p *app.Planner) error {
		removed = p.RemoveProjector(id)
		return nil
	})
	if !removed {
		return fail(c, fiber.StatusNotFound, fmt.Errorf("projector %d not found or last unit", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) selectProjector(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	var ok bool
	s.locked(func(p *app.Planner) error {
		ok = p.Select(id)
		return nil
	})
	if !ok {
		return fail(c, fiber.StatusNotFound, fmt.Errorf("projector %d not found", id))
	}
	return s.getReadout(c)
}

func (s *Server) patchSelected(c fiber.Ctx) error {
	var patch projector.UnitPatch
	if err := decode(c, &patch); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	if patch.Lens != nil && *patch.Lens != projector.LensFixed && *patch.Lens != projector.LensZoom {
		return fail(c, fiber.StatusBadRequest, fmt.Errorf("lensType must be fixed or zoom, got %q", *patch.Lens))
	}
	if patch.Aspect != nil && !patch.Aspect.Valid() {
		return fail(c, fiber.StatusBadRequest, fmt.Errorf("aspectRatio must be one of %v, got %q", projector.Aspects, *patch.Aspect))
	}
	var u projector.Unit
	s.locked(func(p *app.Planner) error {
		p.UpdateSelected(patch)
		u, _ = p.Unit(p.SelectedID())
		return nil
	})
	return c.JSON(u)
}

// ============================================================
// View and pointer input
// ============================================================

func (s *Server) postView(c fiber.Ctx) error {
	var req viewRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	var mode projector.ViewMode
	if req.ViewMode != "" {
		m, err := projector.ParseViewMode(req.ViewMode)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		mode = m
	}
	var out app.ViewState
	s.locked(func(p *app.Planner) error {
		if req.Width > 0 && req.Height > 0 {
			p.ResizeViewport(geometry.NewSize(req.Width, req.Height))
		}
		if mode != "" {
			p.SetViewMode(mode)
		}
		if req.Fit {
			p.Fit()
		}
		if req.Rotate != 0 {
			p.Rotate(req.Rotate)
		}
		if req.ZoomBy > 0 {
			p.ZoomBy(req.ZoomBy)
		}
		out = p.View()
		return nil
	})
	return c.JSON(out)
}

func (s *Server) postPointer(c fiber.Ctx) error {
	var req pointerRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	err := s.locked(func(p *app.Planner) error {
		switch req.Phase {
		case "down":
			p.PointerDown(pointOf(req), req.Touch)
		case "move":
			p.PointerMove(pointOf(req))
		case "up":
			p.PointerUp()
		case "leave":
			p.PointerLeave()
		default:
			return fmt.Errorf("unknown pointer phase %q", req.Phase)
		}
		return nil
	})
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	return s.getReadout(c)
}

// getRender returns a PNG. layer=viewport renders through the view
// transform; the default is the drawing plus overlay at drawing size.
func (s *Server) getRender(c fiber.Ctx) error {
	var buf bytes.Buffer
	err := s.locked(func(p *app.Planner) error {
		if !p.Ready() {
			return errors.New("no drawing loaded")
		}
		if c.Query("layer") == "viewport" {
			return report.WritePNG(&buf, p.RenderViewport())
		}
		return report.WritePNG(&buf, p.RenderComposite())
	})
	if err != nil {
		return fail(c, fiber.StatusConflict, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// ============================================================
// Projects
// ============================================================

func (s *Server) listProjects(c fiber.Ctx) error {
	list, err := s.store.List(c.Context())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	if list == nil {
		list = []store.Project{}
	}
	return c.JSON(list)
}

func (s *Server) saveProject(c fiber.Ctx) error {
	var req projectRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	if req.Name == "" {
		return fail(c, fiber.StatusBadRequest, errors.New("name required"))
	}
	var body []byte
	err := s.locked(func(p *app.Planner) error {
		var err error
		body, err = encodeSettings(p)
		return err
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	id, err := s.store.Save(c.Context(), req.ID, req.Name, body)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "name": req.Name})
}

func (s *Server) loadProject(c fiber.Ctx) error {
	project, err := s.store.Load(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	settings, err := app.DecodeSettings(bytes.NewReader(project.Body))
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	var out app.Settings
	err = s.locked(func(p *app.Planner) error {
		if err := loadSettingsDrawing(c.Context(), p, settings); err != nil {
			return err
		}
		if err := p.ApplySettings(settings); err != nil {
			return err
		}
		out = p.Settings()
		return nil
	})
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	return c.JSON(out)
}

// loadSettingsDrawing loads the drawing a stored project refers to when it
// is not the one already shown
func loadSettingsDrawing(ctx context.Context, p *app.Planner, settings app.Settings) error {
	if settings.Drawing == "" {
		return nil
	}
	page, _ := p.Page()
	if settings.Drawing == p.DrawingPath() && settings.Page == page {
		return nil
	}
	pg := settings.Page
	if pg <= 0 {
		pg = 1
	}
	return p.LoadFile(ctx, settings.Drawing, pg)
}

func (s *Server) deleteProject(c fiber.Ctx) error {
	err := s.store.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
