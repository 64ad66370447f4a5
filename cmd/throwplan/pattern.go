package main

import (
	"fmt"

	"github.com/philipparndt/throwplan/pkg/pattern"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/spf13/cobra"
)

var patternWidth, patternHeight int

var patternCmd = &cobra.Command{
	Use:   "pattern [grid|crosshatch|aspect|gray-ramp] [output.png]",
	Short: "Generate a projector alignment test pattern",
	Args:  cobra.ExactArgs(2),
	RunE:  runPattern,
}

func init() {
	rootCmd.AddCommand(patternCmd)

	patternCmd.Flags().IntVar(&patternWidth, "width", 1920, "pattern width in pixels")
	patternCmd.Flags().IntVar(&patternHeight, "height", 1080, "pattern height in pixels")
}

func runPattern(cmd *cobra.Command, args []string) error {
	kind, err := pattern.ParseKind(args[0])
	if err != nil {
		return err
	}
	img, err := pattern.Generate(kind, patternWidth, patternHeight)
	if err != nil {
		return err
	}
	if err := report.SavePNG(args[1], img); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%s, %dx%d)\n", args[1], kind, patternWidth, patternHeight)
	return nil
}
