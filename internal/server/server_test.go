package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/pkg/drawing"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/store"
)

func newPlanner(t *testing.T, withDrawing bool) *app.Planner {
	t.Helper()
	opts := app.DefaultOptions()
	opts.Viewport = geometry.NewSize(800, 600)
	p := app.New(opts)
	if withDrawing {
		p.InstallPage(&drawing.Page{
			Image:  image.NewRGBA(image.Rect(0, 0, 1000, 800)),
			Number: 1,
			Count:  1,
			Source: "plan.png",
		})
	}
	return p
}

func do(t *testing.T, s *Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	s := New(newPlanner(t, false), nil)
	resp, body := do(t, s, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("alive")) {
		t.Errorf("health = %d %s", resp.StatusCode, body)
	}
}

func TestProjectorLifecycle(t *testing.T) {
	p := newPlanner(t, true)
	s := New(p, nil)

	resp, body := do(t, s, http.MethodPost, "/api/projectors", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add = %d %s", resp.StatusCode, body)
	}
	var added struct{ ID int }
	json.Unmarshal(body, &added)
	if added.ID != 2 || p.SelectedID() != 2 {
		t.Errorf("added id = %d, selected = %d", added.ID, p.SelectedID())
	}

	resp, body = do(t, s, http.MethodPatch, "/api/projectors/selected", map[string]any{"lumens": 20000, "brand": "Acme"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch = %d %s", resp.StatusCode, body)
	}
	if u, _ := p.Unit(2); u.Lumens != 20000 || u.Brand != "Acme" {
		t.Errorf("unit after patch = %+v", u)
	}

	resp, _ = do(t, s, http.MethodPatch, "/api/projectors/selected", map[string]any{"aspectRatio": "5:4"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad aspect = %d", resp.StatusCode)
	}

	resp, _ = do(t, s, http.MethodPost, "/api/projectors/1/select", nil)
	if resp.StatusCode != http.StatusOK || p.SelectedID() != 1 {
		t.Errorf("select = %d, selected %d", resp.StatusCode, p.SelectedID())
	}

	resp, _ = do(t, s, http.MethodDelete, "/api/projectors/2", nil)
	if resp.StatusCode != http.StatusNoContent || len(p.Units()) != 1 {
		t.Errorf("delete = %d, units %d", resp.StatusCode, len(p.Units()))
	}
	resp, _ = do(t, s, http.MethodDelete, "/api/projectors/1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleting the last unit = %d, want 404", resp.StatusCode)
	}
	resp, _ = do(t, s, http.MethodDelete, "/api/projectors/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id = %d", resp.StatusCode)
	}
}

func TestPointerDrag(t *testing.T) {
	p := newPlanner(t, true)
	s := New(p, nil)

	from := p.DrawingToScreen(projector.DefaultScreen)
	to := p.DrawingToScreen(geometry.NewPoint(700, 400))
	steps := []pointerRequest{
		{Phase: "down", X: from.X, Y: from.Y},
		{Phase: "move", X: to.X, Y: to.Y},
		{Phase: "up"},
	}
	for _, step := range steps {
		resp, body := do(t, s, http.MethodPost, "/api/pointer", step)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s = %d %s", step.Phase, resp.StatusCode, body)
		}
	}
	u, _ := p.Unit(1)
	got := u.Point(projector.Plan, projector.HandleScreen)
	if got.Distance(geometry.NewPoint(700, 400)) > 1e-6 {
		t.Errorf("screen moved to %v, want (700, 400)", got)
	}

	resp, _ := do(t, s, http.MethodPost, "/api/pointer", pointerRequest{Phase: "wiggle"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown phase = %d", resp.StatusCode)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	p := newPlanner(t, true)
	s := New(p, nil)

	resp, body := do(t, s, http.MethodGet, "/api/settings", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get = %d", resp.StatusCode)
	}
	var settings app.Settings
	if err := json.Unmarshal(body, &settings); err != nil {
		t.Fatal(err)
	}

	settings.DisplayUnit = "meters"
	settings.ViewMode = projector.Section
	resp, body = do(t, s, http.MethodPut, "/api/settings", settings)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put = %d %s", resp.StatusCode, body)
	}
	if p.DisplayUnit() != "meters" || p.ViewMode() != projector.Section {
		t.Errorf("settings not applied: unit %s mode %s", p.DisplayUnit(), p.ViewMode())
	}

	settings.View.Rotation = 45
	resp, _ = do(t, s, http.MethodPut, "/api/settings", settings)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid rotation = %d, want 422", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader([]byte("{not json")))
	r, err := s.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed = %d, want 400", r.StatusCode)
	}
}

func TestViewAndSummary(t *testing.T) {
	p := newPlanner(t, true)
	s := New(p, nil)

	resp, body := do(t, s, http.MethodPost, "/api/view", viewRequest{Rotate: 90, ZoomBy: 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view = %d %s", resp.StatusCode, body)
	}
	v := p.View()
	if v.Rotation != 90 || v.Zoom <= v.MinZoom {
		t.Errorf("view = %+v", v)
	}

	resp, _ = do(t, s, http.MethodPost, "/api/view", viewRequest{ViewMode: "isometric"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad view mode = %d", resp.StatusCode)
	}
	resp, _ = do(t, s, http.MethodPost, "/api/view", viewRequest{ViewMode: "elevation"})
	if resp.StatusCode != http.StatusOK || p.ViewMode() != projector.Section {
		t.Errorf("elevation alias = %d, mode %s", resp.StatusCode, p.ViewMode())
	}

	resp, body = do(t, s, http.MethodGet, "/api/summary", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary = %d", resp.StatusCode)
	}
	var sum summaryResponse
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatal(err)
	}
	if len(sum.Summaries) != 1 || len(sum.Lines) != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRender(t *testing.T) {
	s := New(newPlanner(t, false), nil)
	resp, _ := do(t, s, http.MethodGet, "/api/render.png", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("render without drawing = %d, want 409", resp.StatusCode)
	}

	s = New(newPlanner(t, true), nil)
	resp, body := do(t, s, http.MethodGet, "/api/render.png", nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("render = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != 800 {
		t.Errorf("composite bounds = %v", b)
	}

	_, body = do(t, s, http.MethodGet, "/api/render.png?layer=viewport", nil)
	img, err = png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("viewport bounds = %v", b)
	}
}

func TestDrawingAndProjects(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.png")
	f, err := os.Create(planPath)
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, image.NewRGBA(image.Rect(0, 0, 400, 300)))
	f.Close()

	st, err := store.Open(filepath.Join(dir, "projects.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	p := newPlanner(t, false)
	s := New(p, st)

	resp, body := do(t, s, http.MethodPost, "/api/drawing", drawingRequest{Path: planPath})
	if resp.StatusCode != http.StatusOK || !p.Ready() {
		t.Fatalf("drawing = %d %s", resp.StatusCode, body)
	}
	resp, _ = do(t, s, http.MethodPost, "/api/drawing", drawingRequest{Path: filepath.Join(dir, "plan.dwg")})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unsupported drawing = %d", resp.StatusCode)
	}

	resp, body = do(t, s, http.MethodPost, "/api/projects", projectRequest{Name: "lobby"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save = %d %s", resp.StatusCode, body)
	}
	var saved struct{ ID string }
	json.Unmarshal(body, &saved)

	p.AddProjector()
	resp, body = do(t, s, http.MethodPost, "/api/projects/"+saved.ID+"/load", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load = %d %s", resp.StatusCode, body)
	}
	if n := len(p.Units()); n != 1 {
		t.Errorf("units after load = %d, want 1", n)
	}

	resp, body = do(t, s, http.MethodGet, "/api/projects", nil)
	var list []store.Project
	json.Unmarshal(body, &list)
	if resp.StatusCode != http.StatusOK || len(list) != 1 || list[0].Name != "lobby" {
		t.Errorf("list = %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, s, http.MethodDelete, "/api/projects/"+saved.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete = %d", resp.StatusCode)
	}
	resp, _ = do(t, s, http.MethodPost, "/api/projects/"+saved.ID+"/load", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("load deleted = %d", resp.StatusCode)
	}
}
