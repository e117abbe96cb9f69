package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/driftgesture/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show resolved gesture settings",
		Long: `Show the gesture settings a coordinator would use in this project.

Settings are read from gestures.yaml, gestures.yml or gestures.toml in the
project root (the directory holding go.mod, or --dir). Missing fields take
the built-in defaults.`,
		Usage: "gesturetrace config",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	s := cfg.Settings
	fmt.Fprintf(stdout, "Root:     %s\n", cfg.Root)
	if cfg.ModulePath != "" {
		fmt.Fprintf(stdout, "Module:   %s\n", cfg.ModulePath)
	}
	fmt.Fprintf(stdout, "Source:   %s\n", source)
	fmt.Fprintf(stdout, "Version:  %s\n", cfg.Version)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Gestures:")
	fmt.Fprintf(stdout, "  %-20s %v\n", "touch_slop", s.TouchSlop)
	fmt.Fprintf(stdout, "  %-20s %v\n", "double_tap_timeout", s.DoubleTapTimeout)
	fmt.Fprintf(stdout, "  %-20s %v\n", "long_press_timeout", s.LongPressTimeout)
	fmt.Fprintf(stdout, "  %-20s %v\n", "swipe_threshold", s.SwipeThreshold)
	fmt.Fprintf(stdout, "  %-20s %v\n", "quick_scale", s.QuickScaleEnabled)
	fmt.Fprintf(stdout, "  %-20s %v\n", "min_scale_span", s.MinScaleSpan)
	return nil
}

// resolveConfig loads settings from --dir, the module root, or the working
// directory, in that order.
func resolveConfig() (*config.Resolved, error) {
	dir := globals.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			if root, err = os.Getwd(); err != nil {
				return nil, err
			}
		}
		dir = root
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
