package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/spf13/cobra"
)

// session flags shared by commands that open a project
var (
	settingsFile string
	drawingFile  string
	drawingPage  int
)

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "project settings file (JSON)")
	cmd.Flags().StringVarP(&drawingFile, "drawing", "f", "", "drawing file, overrides the one in the settings")
	cmd.Flags().IntVarP(&drawingPage, "page", "p", 0, "drawing page (default from settings, else 1)")
}

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print throw figures for every projector in a project",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addSessionFlags(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON instead of text")
}

func runSummary(cmd *cobra.Command, args []string) error {
	p, err := openSession(cmd.Context(), settingsFile, drawingFile, drawingPage)
	if err != nil {
		return err
	}
	sums := p.Summaries()

	if summaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}

	fmt.Printf("Scale: %s, view: %s\n", p.Scale(), p.ViewMode())
	for _, line := range report.Lines(sums, p.DisplayUnit()) {
		fmt.Println(line)
	}
	return nil
}
