package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/spf13/cobra"
)

var renderViewport bool

var renderCmd = &cobra.Command{
	Use:   "render [output.png]",
	Short: "Render the drawing with the projector overlay to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var reportCmd = &cobra.Command{
	Use:   "report [output.pdf]",
	Short: "Write a one-page PDF report with the plan and all projector figures",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addSessionFlags(renderCmd)
	renderCmd.Flags().BoolVar(&renderViewport, "viewport", false, "render through the saved view (zoom, pan, rotation) at viewport size")

	rootCmd.AddCommand(reportCmd)
	addSessionFlags(reportCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := openSession(cmd.Context(), settingsFile, drawingFile, drawingPage)
	if err != nil {
		return err
	}
	if !p.Ready() {
		return errors.New("no drawing: pass --drawing or a settings file that names one")
	}

	var img image.Image
	if renderViewport {
		img = p.RenderViewport()
	} else {
		img = p.RenderComposite()
	}
	if err := report.SavePNG(args[0], img); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	p, err := openSession(cmd.Context(), settingsFile, drawingFile, drawingPage)
	if err != nil {
		return err
	}
	if err := writeReport(args[0], p); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func writeReport(path string, p *app.Planner) error {
	doc := report.Document{
		Title: "Projector plan",
		Lines: report.Lines(p.Summaries(), p.DisplayUnit()),
	}
	if src := p.DrawingSource(); src != "" {
		page, pages := p.Page()
		doc.Title = fmt.Sprintf("Projector plan: %s", strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
		doc.Info = append(doc.Info, fmt.Sprintf("Drawing %s, page %d of %d", filepath.Base(src), page, pages))
	}
	doc.Info = append(doc.Info,
		fmt.Sprintf("Scale %s, %s view, lengths in %s", p.Scale(), p.ViewMode(), p.DisplayUnit()),
		fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")),
	)
	if p.Ready() {
		doc.Image = p.RenderComposite()
	}
	return report.SavePDF(path, doc)
}
