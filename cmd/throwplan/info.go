package main

import (
	"fmt"

	"github.com/philipparndt/throwplan/pkg/drawing"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/spf13/cobra"
)

var (
	infoPage  int
	infoScale string
)

var infoCmd = &cobra.Command{
	Use:   "info [drawing]",
	Short: "Display page count and dimensions of a drawing",
	Long:  "Rasterize one page of a PDF or image drawing and show its size in pixels, drawing inches and real-world length at a scale.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoPage, "page", "p", 1, "page number")
	infoCmd.Flags().StringVarP(&infoScale, "scale", "s", "", `drawing scale, e.g. 1/8" = 1'-0" (default from config)`)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	scale := cfg.Scale()
	if infoScale != "" {
		s, err := units.ParseScale(infoScale)
		if err != nil {
			return err
		}
		scale = s
	}

	page, err := drawing.LoadFile(cmd.Context(), filename, infoPage)
	if err != nil {
		return err
	}
	size := page.Size()
	unit := cfg.DisplayUnit()

	fmt.Println("Drawing Information")
	fmt.Println("===================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Page: %d of %d\n\n", page.Number, page.Count)

	fmt.Println("Raster:")
	fmt.Printf("  Size: %.0f x %.0f px at %.0f dpi\n", size.Width, size.Height, units.DrawingDPI)
	fmt.Printf("  Paper: %.2f x %.2f in\n\n", size.Width/units.DrawingDPI, size.Height/units.DrawingDPI)

	fmt.Printf("At scale %s:\n", scale)
	fmt.Printf("  Width: %s\n", units.FormatLength(units.PixelsToFeet(size.Width, scale), unit))
	fmt.Printf("  Height: %s\n", units.FormatLength(units.PixelsToFeet(size.Height, scale), unit))
	return nil
}
