// Package config loads gesture timing and threshold settings.
//
// Settings come from an optional gestures.yaml (or gestures.yml, or
// gestures.toml) in the project root. Every field is optional; missing fields
// take the defaults in [Default].
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema this package understands.
const SchemaVersion = "v1.0.0"

// Settings are the resolved gesture parameters. Distances are in logical
// units.
type Settings struct {
	TouchSlop         float64
	DoubleTapTimeout  time.Duration
	LongPressTimeout  time.Duration
	SwipeThreshold    float64
	QuickScaleEnabled bool
	MinScaleSpan      float64
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		TouchSlop:         8,
		DoubleTapTimeout:  300 * time.Millisecond,
		LongPressTimeout:  500 * time.Millisecond,
		SwipeThreshold:    100,
		QuickScaleEnabled: true,
		MinScaleSpan:      16,
	}
}

// File is the on-disk configuration.
type File struct {
	Version  string        `yaml:"version,omitempty" toml:"version,omitempty"`
	Gestures GesturesBlock `yaml:"gestures" toml:"gestures"`
}

// GesturesBlock holds the optional gesture overrides. Durations use
// time.ParseDuration syntax ("450ms").
type GesturesBlock struct {
	TouchSlop        *float64 `yaml:"touch_slop,omitempty" toml:"touch_slop,omitempty"`
	DoubleTapTimeout string   `yaml:"double_tap_timeout,omitempty" toml:"double_tap_timeout,omitempty"`
	LongPressTimeout string   `yaml:"long_press_timeout,omitempty" toml:"long_press_timeout,omitempty"`
	SwipeThreshold   *float64 `yaml:"swipe_threshold,omitempty" toml:"swipe_threshold,omitempty"`
	QuickScale       *bool    `yaml:"quick_scale,omitempty" toml:"quick_scale,omitempty"`
	MinScaleSpan     *float64 `yaml:"min_scale_span,omitempty" toml:"min_scale_span,omitempty"`
}

// Resolved contains the resolved configuration.
type Resolved struct {
	Root       string
	ModulePath string
	Source     string
	Version    string
	Settings   Settings
}

var fileNames = []string{"gestures.yaml", "gestures.yml", "gestures.toml"}

// LoadOptional reads the first configuration file found in dir. It returns
// an empty File and an empty source path when none exists.
func LoadOptional(dir string) (*File, string, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		f, err := Parse(name, data)
		if err != nil {
			return nil, "", err
		}
		return f, path, nil
	}
	return &File{}, "", nil
}

// Parse decodes data according to the extension of name.
func Parse(name string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(name))
	}
	return &f, nil
}

// Resolve loads the configuration in dir (if present) and applies defaults.
func Resolve(dir string) (*Resolved, error) {
	f, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	settings, version, err := f.Apply(Default())
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", filepath.Base(source), err)
		}
		return nil, err
	}
	return &Resolved{
		Root:       dir,
		ModulePath: modulePath(dir),
		Source:     source,
		Version:    version,
		Settings:   settings,
	}, nil
}

// Apply overlays the file onto base and validates the result.
func (f *File) Apply(base Settings) (Settings, string, error) {
	version, err := normalizeVersion(f.Version)
	if err != nil {
		return base, "", err
	}
	s := base
	g := f.Gestures
	if g.TouchSlop != nil {
		s.TouchSlop = *g.TouchSlop
	}
	if g.SwipeThreshold != nil {
		s.SwipeThreshold = *g.SwipeThreshold
	}
	if g.QuickScale != nil {
		s.QuickScaleEnabled = *g.QuickScale
	}
	if g.MinScaleSpan != nil {
		s.MinScaleSpan = *g.MinScaleSpan
	}
	if s.DoubleTapTimeout, err = parseDuration("double_tap_timeout", g.DoubleTapTimeout, s.DoubleTapTimeout); err != nil {
		return base, "", err
	}
	if s.LongPressTimeout, err = parseDuration("long_press_timeout", g.LongPressTimeout, s.LongPressTimeout); err != nil {
		return base, "", err
	}
	if err := s.Validate(); err != nil {
		return base, "", err
	}
	return s, version, nil
}

// Validate rejects negative distances and non-positive timeouts.
func (s Settings) Validate() error {
	switch {
	case s.TouchSlop < 0:
		return fmt.Errorf("touch_slop must not be negative (got %v)", s.TouchSlop)
	case s.SwipeThreshold < 0:
		return fmt.Errorf("swipe_threshold must not be negative (got %v)", s.SwipeThreshold)
	case s.MinScaleSpan < 0:
		return fmt.Errorf("min_scale_span must not be negative (got %v)", s.MinScaleSpan)
	case s.DoubleTapTimeout <= 0:
		return fmt.Errorf("double_tap_timeout must be positive (got %v)", s.DoubleTapTimeout)
	case s.LongPressTimeout <= 0:
		return fmt.Errorf("long_press_timeout must be positive (got %v)", s.LongPressTimeout)
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func normalizeVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return SchemaVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return "", fmt.Errorf("unsupported config version %s (want %s.x)", v, semver.Major(SchemaVersion))
	}
	return semver.Canonical(v), nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// there is none.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
