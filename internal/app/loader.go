package app

import (
	"context"
	"fmt"

	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/drawing"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// LoadDrawing renders one page of a source and installs it. On failure the
// previous drawing and all other state stay as they were.
//
// Rendering may take a while. Front ends that must stay responsive call
// drawing.Load on a worker and hand the result to InstallPage on the
// goroutine that owns the planner.
func (p *Planner) LoadDrawing(ctx context.Context, src drawing.Source, page int) error {
	pg, err := drawing.Load(ctx, src, page)
	if err != nil {
		debug.Error(err)
		return fmt.Errorf("load drawing: %w", err)
	}
	p.InstallPage(pg)
	return nil
}

// LoadFile is LoadDrawing for a path
func (p *Planner) LoadFile(ctx context.Context, path string, page int) error {
	pg, err := drawing.LoadFile(ctx, path, page)
	if err != nil {
		debug.Error(err)
		return fmt.Errorf("load drawing: %w", err)
	}
	p.InstallPage(pg)
	p.Drawing.path = path
	return nil
}

// InstallPage makes a rendered page the current drawing and fits the view.
// Measurement tools that live in drawing pixels are reset to their defaults
// for the new page size.
func (p *Planner) InstallPage(pg *drawing.Page) {
	size := pg.Size()
	p.Drawing = DrawingState{
		image:  pg.Image,
		page:   pg.Number,
		pages:  pg.Count,
		source: pg.Source,
		size:   size,
	}
	p.Drag = DragState{}
	p.overlay = viewer.NewCanvas(int(size.Width), int(size.Height))
	p.view.SetDrawing(size)
	if p.pendingView != nil {
		p.restoreView(*p.pendingView)
		p.pendingView = nil
	}
	if p.Measurement.line != nil {
		p.resetLine()
	}
	if p.Measurement.floor.Position != nil && !p.insideDrawing(p.Measurement.floor.Point()) {
		p.Measurement.floor.Set(p.clampToDrawing(p.Measurement.floor.Point()))
	}
	debug.Drawing(pg.Source, pg.Number, pg.Count, int(size.Width), int(size.Height))
	debug.Value("scale", p.Mode.scale)
	p.recompute()
}

// DrawingSource returns the name of the installed drawing
func (p *Planner) DrawingSource() string {
	return p.Drawing.source
}

// DrawingPath returns the file the drawing was loaded from, if any
func (p *Planner) DrawingPath() string {
	return p.Drawing.path
}
