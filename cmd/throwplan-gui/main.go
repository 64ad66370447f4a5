package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/internal/config"
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/philipparndt/throwplan/pkg/viewer"
	"github.com/philipparndt/throwplan/pkg/watcher"
)

type App struct {
	window   fyne.Window
	planner  *app.Planner
	drawing  *viewer.DrawingWidget
	watcher  *watcher.FileWatcher
	readout  *ReadoutPanel
	settings string // path of the last saved or opened settings file
}

// ReadoutPanel holds the side panel labels for the selected projector
type ReadoutPanel struct {
	selected      *widget.Select
	name          *widget.Label
	throw         *widget.Label
	ratio         *widget.Label
	image         *widget.Label
	brightness    *widget.Label
	hangingHeight *widget.Label
	measured      *widget.Label
	view          *widget.Label

	throwRatio *widget.Entry
	lumens     *widget.Entry
	shiftV     *widget.Entry
	aspect     *widget.Select
}

func main() {
	cfg, err := config.Load(os.Getenv("THROWPLAN_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	debug.Init(cfg.DebugLevel)

	a := fyneapp.New()
	w := a.NewWindow("throwplan - Projector Planner")

	appInstance := &App{
		window:  w,
		planner: app.New(app.OptionsFrom(cfg)),
	}
	appInstance.planner.OnChange(appInstance.updateReadout)
	if fw, err := watcher.NewFileWatcher(300 * time.Millisecond); err == nil {
		appInstance.watcher = fw
		fw.Start()
		defer fw.Close()
	}

	// Check if a drawing or settings file was provided as argument
	if len(os.Args) > 1 {
		appInstance.openPath(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1280, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to throwplan")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open a PDF or image drawing, or a saved project (.json)")

	openButton := widget.NewButton("Open Drawing or Project", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.openPath(reader.URI().Path())
	}, a.window)
}

// openPath opens a settings file (.json) or a drawing
func (a *App) openPath(path string) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		a.openSettings(path)
		return
	}
	a.loadDrawing(path, 1)
}

func (a *App) loadDrawing(path string, page int) {
	if err := a.planner.LoadFile(context.Background(), path, page); err != nil {
		dialog.ShowError(fmt.Errorf("failed to load drawing: %w", err), a.window)
		return
	}
	a.watch(path)
	a.setupMainUI()
}

func (a *App) openSettings(path string) {
	f, err := os.Open(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	s, err := app.DecodeSettings(f)
	f.Close()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if s.Drawing != "" && s.Drawing != a.planner.DrawingPath() {
		page := s.Page
		if page <= 0 {
			page = 1
		}
		if err := a.planner.LoadFile(context.Background(), s.Drawing, page); err != nil {
			dialog.ShowError(fmt.Errorf("failed to load drawing: %w", err), a.window)
			return
		}
		a.watch(s.Drawing)
	}
	if err := a.planner.ApplySettings(s); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.settings = path
	a.setupMainUI()
}

// watch reloads the drawing when it changes on disk
func (a *App) watch(path string) {
	if a.watcher == nil {
		return
	}
	err := a.watcher.Watch([]string{path}, func(string) {
		fyne.Do(func() {
			page, _ := a.planner.Page()
			settings := a.planner.Settings()
			if err := a.planner.LoadFile(context.Background(), path, page); err != nil {
				debug.Error(err)
				return
			}
			// keep projectors and view across the reload
			a.planner.ApplySettings(settings)
			a.drawing.Redraw()
		})
	})
	if err != nil {
		debug.Error(err)
	}
}

func (a *App) setupMainUI() {
	a.readout = &ReadoutPanel{
		name:          widget.NewLabel(""),
		throw:         widget.NewLabel(""),
		ratio:         widget.NewLabel(""),
		image:         widget.NewLabel(""),
		brightness:    widget.NewLabel(""),
		hangingHeight: widget.NewLabel(""),
		measured:      widget.NewLabel(""),
		view:          widget.NewLabel(""),
		throwRatio:    widget.NewEntry(),
		lumens:        widget.NewEntry(),
		shiftV:        widget.NewEntry(),
	}
	a.readout.name.TextStyle = fyne.TextStyle{Bold: true}
	a.readout.throw.TextStyle = fyne.TextStyle{Bold: true}

	a.drawing = viewer.NewDrawingWidget(a.planner)

	// Projector selection
	a.readout.selected = widget.NewSelect(nil, func(choice string) {
		if id, ok := choiceID(choice); ok {
			a.planner.Select(id)
			a.drawing.Redraw()
		}
	})
	addButton := widget.NewButton("Add Projector", func() {
		a.planner.AddProjector()
		a.drawing.Redraw()
	})
	removeButton := widget.NewButton("Remove Projector", func() {
		a.planner.RemoveProjector(a.planner.SelectedID())
		a.drawing.Redraw()
	})

	// Projector parameters
	apply := func(patch projector.UnitPatch) {
		a.planner.UpdateSelected(patch)
		a.drawing.Redraw()
	}
	a.readout.throwRatio.OnSubmitted = func(text string) {
		if v := units.ParseNumber(text); v > 0 {
			apply(projector.UnitPatch{ThrowRatio: projector.Float(v)})
		}
	}
	a.readout.lumens.OnSubmitted = func(text string) {
		apply(projector.UnitPatch{Lumens: projector.Float(units.ParseNumber(text))})
	}
	a.readout.shiftV.OnSubmitted = func(text string) {
		apply(projector.UnitPatch{ShiftV: projector.Float(units.ParseNumber(text))})
	}
	aspects := make([]string, len(projector.Aspects))
	for i, asp := range projector.Aspects {
		aspects[i] = string(asp)
	}
	a.readout.aspect = widget.NewSelect(aspects, func(choice string) {
		asp := projector.Aspect(choice)
		apply(projector.UnitPatch{Aspect: &asp})
	})

	// Drawing options
	viewMode := widget.NewRadioGroup([]string{string(projector.Plan), string(projector.Section)}, func(choice string) {
		if m, err := projector.ParseViewMode(choice); err == nil {
			a.planner.SetViewMode(m)
			a.drawing.Redraw()
		}
	})
	viewMode.Horizontal = true
	viewMode.SetSelected(string(a.planner.ViewMode()))

	scaleNames := make([]string, len(units.Presets))
	for i, p := range units.Presets {
		scaleNames[i] = p.Name
	}
	scaleSelect := widget.NewSelectEntry(scaleNames)
	scaleSelect.SetText(a.planner.Scale().String())
	scaleSelect.OnChanged = func(text string) {
		if s, err := units.ParseScale(text); err == nil {
			a.planner.SetScale(s)
			a.drawing.Redraw()
		}
	}

	unitNames := make([]string, len(units.AllUnits))
	for i, u := range units.AllUnits {
		unitNames[i] = string(u)
	}
	unitSelect := widget.NewSelect(unitNames, func(choice string) {
		a.planner.SetDisplayUnit(units.Unit(choice))
	})
	unitSelect.SetSelected(string(a.planner.DisplayUnit()))

	measureCheck := widget.NewCheck("Measure", func(on bool) {
		a.planner.SetMeasureMode(on)
		a.drawing.Redraw()
	})
	panCheck := widget.NewCheck("Pan Mode", func(on bool) {
		a.planner.SetPanMode(on)
	})
	floorButton := widget.NewButton("Toggle Floor Marker", func() {
		a.planner.ToggleFloorReference()
		a.drawing.Redraw()
	})

	// Camera
	camera := container.NewGridWithColumns(3,
		widget.NewButton("Zoom -", func() { a.planner.ZoomOut(); a.drawing.Redraw() }),
		widget.NewButton("Fit", func() { a.planner.Fit(); a.drawing.Redraw() }),
		widget.NewButton("Zoom +", func() { a.planner.ZoomIn(); a.drawing.Redraw() }),
		widget.NewButton("Rotate ⟲", func() { a.planner.Rotate(-90); a.drawing.Redraw() }),
		widget.NewButton("Open", func() { a.showFileDialog() }),
		widget.NewButton("Rotate ⟳", func() { a.planner.Rotate(90); a.drawing.Redraw() }),
	)

	saveButton := widget.NewButton("Save Project", func() { a.saveSettings() })
	exportButton := widget.NewButton("Export Report", func() { a.exportReport() })

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag a projector or screen bubble to place it\n" +
			"• Drag empty space to pan, scroll to zoom\n" +
			"• Section view: place the floor marker for hanging height",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Projector:"),
		a.readout.selected,
		container.NewGridWithColumns(2, addButton, removeButton),
		widget.NewSeparator(),
		a.readout.name,
		a.readout.throw,
		a.readout.ratio,
		a.readout.image,
		a.readout.brightness,
		a.readout.hangingHeight,
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Throw ratio", a.readout.throwRatio),
			widget.NewFormItem("Lumens", a.readout.lumens),
			widget.NewFormItem("V shift %", a.readout.shiftV),
			widget.NewFormItem("Aspect", a.readout.aspect),
		),
		widget.NewSeparator(),
		widget.NewLabel("Drawing:"),
		viewMode,
		widget.NewForm(
			widget.NewFormItem("Scale", scaleSelect),
			widget.NewFormItem("Units", unitSelect),
		),
		container.NewHBox(measureCheck, panCheck),
		floorButton,
		a.readout.measured,
		widget.NewSeparator(),
		camera,
		a.readout.view,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, saveButton, exportButton),
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(320, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.drawing,  // center
	)

	a.window.SetContent(content)
	a.updateReadout(a.planner.Readout())
}

// choiceID parses the "#<id> <name>" form used by the projector selector
func choiceID(choice string) (int, bool) {
	head, _, _ := strings.Cut(choice, " ")
	id, err := strconv.Atoi(strings.TrimPrefix(head, "#"))
	return id, err == nil
}

func (a *App) updateReadout(r app.Readout) {
	if a.readout == nil {
		return
	}
	ro := a.readout

	var choices []string
	selected := ""
	for _, u := range a.planner.Units() {
		choice := fmt.Sprintf("#%d %s", u.ID, u.Name())
		choices = append(choices, choice)
		if u.ID == r.SelectedID {
			selected = choice
		}
	}
	ro.selected.Options = choices
	if ro.selected.Selected != selected {
		ro.selected.Selected = selected
	}
	ro.selected.Refresh()

	ro.name.SetText(r.Name)
	ro.throw.SetText("Throw: " + r.Throw)
	ro.ratio.SetText("Ratio: " + r.Ratio)
	ro.image.SetText(fmt.Sprintf("Image: %s x %s", r.ImageWidth, r.ImageHeight))
	ro.brightness.SetText("Brightness: " + r.Brightness)
	if r.HasHangingHeight {
		ro.hangingHeight.SetText("Hanging height: " + r.HangingHeight)
	} else {
		ro.hangingHeight.SetText("Hanging height: " + app.NotAvailable)
	}
	if r.HasMeasurement {
		ro.measured.SetText("Measured: " + r.Measured)
	} else {
		ro.measured.SetText("")
	}
	ro.view.SetText(fmt.Sprintf("Zoom %.0f%%, rotation %.0f°", r.Zoom*100, r.Rotation))

	if u, ok := a.planner.Unit(r.SelectedID); ok {
		ro.throwRatio.SetText(strconv.FormatFloat(u.ThrowRatio, 'f', -1, 64))
		ro.lumens.SetText(strconv.FormatFloat(u.Lumens, 'f', -1, 64))
		ro.shiftV.SetText(strconv.FormatFloat(u.ShiftV, 'f', -1, 64))
		ro.aspect.Selected = string(u.Aspect)
		ro.aspect.Refresh()
	}
}

func (a *App) saveSettings() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := app.EncodeSettings(writer, a.planner.Settings()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.settings = writer.URI().Path()
		debug.Info("Saved project %s", a.settings)
	}, a.window)
}

func (a *App) exportReport() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		doc := report.Document{
			Title: "Projector plan",
			Info:  []string{fmt.Sprintf("Scale %s, %s view", a.planner.Scale(), a.planner.ViewMode())},
			Lines: report.Lines(a.planner.Summaries(), a.planner.DisplayUnit()),
		}
		if a.planner.Ready() {
			doc.Image = a.planner.RenderComposite()
		}

		if strings.EqualFold(filepath.Ext(writer.URI().Path()), ".png") {
			err = report.WritePNG(writer, doc.Image)
		} else {
			err = report.WritePDF(writer, doc)
		}
		if err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}
