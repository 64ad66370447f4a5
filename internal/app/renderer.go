package app

import (
	"image"
	"image/color"
	"strconv"

	"github.com/philipparndt/throwplan/internal/measurement"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projection"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// Overlay sizes in drawing pixels
const (
	screenRadius         = 20.0
	screenRadiusSelected = 24.0
	projRadius           = 28.0
	projRadiusSelected   = 34.0
	handleStroke         = 2.0
	handleStrokeSelected = 4.0
	beamOutline          = 1.5
	centerLineWidth      = 2.0
	measureLineWidth     = 3.0
	endpointRadius       = 8.0
	floorMarkerHalf      = 40.0
	floorMarkerRadius    = 10.0
	floorLabelOffset     = 24.0
)

var (
	centerLineDashes = []float64{10, 6}
	handleFill       = color.NRGBA{255, 255, 255, 200}
	measureColor     = color.NRGBA{255, 220, 0, 255}
	floorColor       = color.NRGBA{120, 220, 255, 255}
)

// RenderOverlay redraws the overlay from the current state and returns it.
// The overlay is in drawing pixels and is only valid until the next call.
// Nothing is drawn before a drawing is installed.
func (p *Planner) RenderOverlay() *image.RGBA {
	return p.renderOverlay(p.view.Rotation)
}

// renderOverlay draws with labels upright for the given view rotation
func (p *Planner) renderOverlay(rot float64) *image.RGBA {
	if !p.Ready() || p.overlay == nil {
		return nil
	}
	c := p.overlay
	c.Clear()
	mode := p.Mode.viewMode
	selected := p.registry.SelectedID()

	for i, u := range p.registry.Units() {
		drawUnit(c, u, mode, projector.ColorAt(i), u.ID == selected, rot)
	}

	if l, ok := p.MeasureLine(); ok {
		c.StrokeLine(l.Start, l.End, measureLineWidth, measureColor, nil)
		c.FillCircle(l.Start, endpointRadius, measureColor)
		c.FillCircle(l.End, endpointRadius, measureColor)
		measurement.LineLabel(l, p.Mode.scale, p.Mode.displayUnit).Draw(c, rot)
	}

	if f := p.Measurement.floor; mode == projector.Section && f.Active() {
		drawFloorMarker(c, f, rot)
	}
	return c.Img
}

func drawUnit(c *viewer.Canvas, u projector.Unit, mode projector.ViewMode, col projector.Color, selected bool, rot float64) {
	if beam, ok := projection.ComputeBeam(u, mode); ok {
		poly := beam.Polygon()
		c.FillPolygon(poly, col.Fill)
		c.StrokePolyline(poly, beamOutline, col.Stroke, nil, true)
		c.StrokeLine(beam.Apex, beam.Center, centerLineWidth, col.Stroke, centerLineDashes)
	}

	sr, pr, stroke := screenRadius, projRadius, handleStroke
	if selected {
		sr, pr, stroke = screenRadiusSelected, projRadiusSelected, handleStrokeSelected
	}
	label := strconv.Itoa(u.ID)

	screen := u.Point(mode, projector.HandleScreen)
	c.FillCircle(screen, sr, handleFill)
	c.StrokeCircle(screen, sr, stroke, col.Stroke)
	c.Label(label, screen, rot, col.Stroke, nil)

	proj := u.Point(mode, projector.HandleProjector)
	c.FillCircle(proj, pr, col.Stroke)
	c.StrokeCircle(proj, pr, stroke, handleFill)
	c.Label(label, proj, rot, color.White, nil)
}

func drawFloorMarker(c *viewer.Canvas, f measurement.FloorReference, rot float64) {
	pt := f.Point()
	// The marker line runs along the screen horizontal whatever the rotation
	arm := geometry.NewPoint(floorMarkerHalf, 0).RotateDegrees(-rot)
	c.StrokeLine(pt.Sub(arm), pt.Add(arm), measureLineWidth, floorColor, nil)
	c.FillCircle(pt, floorMarkerRadius, floorColor)
	offset := geometry.NewPoint(0, floorLabelOffset).RotateDegrees(-rot)
	lbl := measurement.FloorLabel(f, 0)
	lbl.Pos = pt.Add(offset)
	lbl.Draw(c, rot)
}

// RenderViewport composites the drawing and overlay into the viewport
// through the view transform
func (p *Planner) RenderViewport() image.Image {
	overlay := p.RenderOverlay()
	if overlay == nil {
		return p.view.Composite()
	}
	return p.view.Composite(p.Drawing.image, overlay)
}

// RenderComposite returns drawing plus overlay at the drawing's own pixel
// size, unrotated. Used for exports and reports.
func (p *Planner) RenderComposite() *image.RGBA {
	if !p.Ready() {
		return nil
	}
	size := image.Rect(0, 0, int(p.Drawing.size.Width), int(p.Drawing.size.Height))
	return viewer.Flatten(size, p.Drawing.image, p.renderOverlay(0))
}
