package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/internal/config"
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugLevel int
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "throwplan",
	Short: "Plan projector and screen placement on architectural drawings",
	Long: `throwplan places projectors and screens on a scaled plan or section drawing
and reports throw distance, throw ratio, image size, brightness and hanging
height for every unit.`,
	Version: version.GetFullVersion(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		level := cfg.DebugLevel
		if cmd.Flags().Changed("debug") {
			level = debugLevel
		}
		debug.Init(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().IntVarP(&debugLevel, "debug", "d", 0, "debug level 0-4")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newPlanner creates a planner from the loaded configuration
func newPlanner() *app.Planner {
	return app.New(app.OptionsFrom(cfg))
}

// openSession builds a planner from a settings file, a drawing, or both.
// An explicit drawing overrides the one named in the settings.
func openSession(ctx context.Context, settingsPath, drawingPath string, page int) (*app.Planner, error) {
	p := newPlanner()

	var settings *app.Settings
	if settingsPath != "" {
		f, err := os.Open(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("open settings: %w", err)
		}
		s, err := app.DecodeSettings(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		settings = &s
		if drawingPath == "" {
			drawingPath = s.Drawing
		}
		if page == 0 {
			page = s.Page
		}
	}
	if page <= 0 {
		page = 1
	}

	if drawingPath != "" {
		if err := p.LoadFile(ctx, drawingPath, page); err != nil {
			return nil, err
		}
	}
	if settings != nil {
		if err := p.ApplySettings(*settings); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// writeSettings saves the planner's settings to a file
func writeSettings(path string, p *app.Planner) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := app.EncodeSettings(f, p.Settings()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
