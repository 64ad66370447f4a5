package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/throwplan/pkg/projection"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/spf13/cobra"
)

var (
	calcWidth    float64
	calcDiagonal float64
	calcThrow    float64
	calcRatio    string
	calcAspect   string
	calcLumens   float64
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Throw distance calculator",
	Long: `Compute the throw distance range for an image size and lens, or the image
size a lens produces at a throw distance. Lengths are in the display unit.

  throwplan calc --width 12 --ratio 1.5-2.0
  throwplan calc --diagonal 150 --ratio 0.8 --aspect 16:10
  throwplan calc --throw 20 --ratio 1.7 --lumens 8000`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Float64Var(&calcWidth, "width", 0, "image width")
	calcCmd.Flags().Float64Var(&calcDiagonal, "diagonal", 0, "image diagonal")
	calcCmd.Flags().Float64Var(&calcThrow, "throw", 0, "throw distance")
	calcCmd.Flags().StringVar(&calcRatio, "ratio", "", "throw ratio or zoom range, e.g. 1.5 or 1.5-2.0")
	calcCmd.Flags().StringVar(&calcAspect, "aspect", string(projector.Aspect16x9), "image aspect (16:9, 16:10, 4:3)")
	calcCmd.Flags().Float64Var(&calcLumens, "lumens", 0, "projector lumens, enables a brightness estimate")

	calcCmd.MarkFlagRequired("ratio")
	calcCmd.MarkFlagsMutuallyExclusive("width", "diagonal", "throw")
	calcCmd.MarkFlagsOneRequired("width", "diagonal", "throw")
}

// parseRatio accepts "1.5" or "1.5-2.0"
func parseRatio(text string) (lo, hi float64, err error) {
	parts := strings.SplitN(text, "-", 2)
	lo, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid throw ratio %q", text)
	}
	hi = lo
	if len(parts) == 2 {
		hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid throw ratio %q", text)
		}
	}
	if lo <= 0 || hi <= 0 {
		return 0, 0, errors.New("throw ratio must be positive")
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	lo, hi, err := parseRatio(calcRatio)
	if err != nil {
		return err
	}
	aspect := projector.Aspect(calcAspect)
	if !aspect.Valid() {
		return fmt.Errorf("aspect must be one of %v", projector.Aspects)
	}
	hpw := aspect.HeightPerWidth()
	unit := cfg.DisplayUnit()
	length := func(feet float64) string { return units.FormatLength(feet, unit) }

	if calcThrow > 0 {
		throw := unit.ToFeet(calcThrow)
		fmt.Printf("Throw %s, ratio %s, %s\n", length(throw), calcRatio, aspect)
		for _, r := range uniqueRatios(lo, hi) {
			w := projection.ImageWidthFor(throw, r)
			fmt.Printf("  ratio %.2f:1: image %s x %s, diagonal %s%s\n",
				r, length(w), length(w*hpw), length(projection.Diagonal(w, hpw)), brightness(w, w*hpw))
		}
		return nil
	}

	width := unit.ToFeet(calcWidth)
	if calcDiagonal > 0 {
		width = projection.WidthForDiagonal(unit.ToFeet(calcDiagonal), hpw)
	}
	if width <= 0 {
		return errors.New("image size must be positive")
	}
	nearest, farthest := projection.ThrowRange(width, lo, hi)
	fmt.Printf("Image %s x %s (%s), diagonal %s%s\n",
		length(width), length(width*hpw), aspect, length(projection.Diagonal(width, hpw)), brightness(width, width*hpw))
	if nearest == farthest {
		fmt.Printf("  throw distance: %s\n", length(nearest))
	} else {
		fmt.Printf("  throw distance: %s to %s\n", length(nearest), length(farthest))
	}
	return nil
}

func uniqueRatios(lo, hi float64) []float64 {
	if lo == hi {
		return []float64{lo}
	}
	return []float64{lo, hi}
}

func brightness(widthFeet, heightFeet float64) string {
	if calcLumens <= 0 {
		return ""
	}
	fl, ok := projection.Brightness(calcLumens, widthFeet, heightFeet)
	if !ok {
		return ", brightness N/A"
	}
	return fmt.Sprintf(", %.1f fL", fl)
}
