package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/philipparndt/throwplan/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch [settings.json]",
	Short: "Reprint the summary whenever a project or its drawing changes",
	Long: `Watch a project settings file and the drawing it names. After every change
the project is reloaded, the summary is printed and, with --output, the PNG
or PDF export is rewritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "export to rewrite on change (.png or .pdf)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settingsPath := args[0]
	ctx := cmd.Context()

	fw, err := watcher.NewFileWatcher(200 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	var reload func(string)
	reload = func(changed string) {
		p, err := openSession(ctx, settingsPath, "", 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		printWatchSummary(p, changed)
		if watchOutput != "" {
			if err := export(watchOutput, p); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
		// the settings may now name a different drawing
		if d := p.DrawingPath(); d != "" {
			if err := fw.Watch([]string{d}, reload); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}

	if err := fw.Watch([]string{settingsPath}, reload); err != nil {
		return err
	}
	fw.Start()
	reload(settingsPath)

	fmt.Println("Watching for changes, press Ctrl+C to stop")
	return waitForSignal(ctx)
}

func printWatchSummary(p *app.Planner, changed string) {
	fmt.Printf("\n[%s] %s\n", time.Now().Format("15:04:05"), filepath.Base(changed))
	for _, line := range report.Lines(p.Summaries(), p.DisplayUnit()) {
		fmt.Println(line)
	}
}

func export(path string, p *app.Planner) error {
	if filepath.Ext(path) == ".pdf" {
		return writeReport(path, p)
	}
	if !p.Ready() {
		return fmt.Errorf("no drawing to render into %s", path)
	}
	return report.SavePNG(path, p.RenderComposite())
}

func waitForSignal(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
