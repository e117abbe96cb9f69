// Package script parses gesturetrace replay scripts.
//
// A script is YAML:
//
//	name: pinch over pan
//	view: {width: 400, height: 400, density: 2}
//	recognizers:
//	  - kind: pan
//	  - kind: pinch
//	steps:
//	  - {action: down, pointer: 1, x: 150, y: 200}
//	  - {action: down, pointer: 2, x: 250, y: 200}
//	  - {action: wait, duration: 16ms}
//	  - {action: move, pointer: 2, x: 300, y: 200}
//	  - {action: up, pointer: 2, x: 300, y: 200}
//	  - {action: up, pointer: 1, x: 150, y: 200}
//
// Positions are logical units. Besides raw pointer actions a step may be a
// whole gesture (tap, double_tap, long_press, drag, fling, pinch, drop), a
// view change (enable, disable, transparent, opaque), or release, which
// invalidates a detector's native handle the way the platform would.
package script

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/driftgesture/pkg/detectors"
	"github.com/go-drift/driftgesture/pkg/gestures"
)

// Script is a parsed replay script.
type Script struct {
	Name        string           `yaml:"name"`
	View        View             `yaml:"view"`
	Recognizers []RecognizerSpec `yaml:"recognizers"`
	Steps       []Step           `yaml:"steps"`
}

// View describes the simulated view. Zero fields keep the tester defaults.
type View struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Density float64 `yaml:"density"`
}

// RecognizerSpec declares one recognizer on the view.
type RecognizerSpec struct {
	Kind        string   `yaml:"kind"`
	Taps        int      `yaml:"taps,omitempty"`
	TouchPoints int      `yaml:"touch_points,omitempty"`
	Direction   []string `yaml:"direction,omitempty"`
	Threshold   float64  `yaml:"threshold,omitempty"`
	LongPress   string   `yaml:"long_press,omitempty"`
}

// Step is one scripted action.
type Step struct {
	Action   string     `yaml:"action"`
	Pointer  int64      `yaml:"pointer,omitempty"`
	X        float64    `yaml:"x,omitempty"`
	Y        float64    `yaml:"y,omitempty"`
	DX       float64    `yaml:"dx,omitempty"`
	DY       float64    `yaml:"dy,omitempty"`
	Span     [2]float64 `yaml:"span,omitempty"`
	Moves    int        `yaml:"moves,omitempty"`
	Duration string     `yaml:"duration,omitempty"`
	Detector string     `yaml:"detector,omitempty"`
}

// Actions lists every step action a script may use.
var Actions = []string{
	"down", "move", "up", "cancel", "wait",
	"tap", "double_tap", "long_press", "drag", "fling", "pinch", "drop",
	"enable", "disable", "transparent", "opaque", "release",
}

var recognizerKinds = map[string]gestures.Kind{
	"tap":   gestures.KindTap,
	"pan":   gestures.KindPan,
	"swipe": gestures.KindSwipe,
	"pinch": gestures.KindPinch,
	"drag":  gestures.KindDrag,
	"drop":  gestures.KindDrop,
}

var directions = map[string]gestures.SwipeDirection{
	"right": gestures.SwipeRight,
	"left":  gestures.SwipeLeft,
	"up":    gestures.SwipeUp,
	"down":  gestures.SwipeDown,
	"any":   gestures.SwipeAny,
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks recognizer kinds, step actions and durations.
func (s *Script) Validate() error {
	if s.View.Width < 0 || s.View.Height < 0 || s.View.Density < 0 {
		return fmt.Errorf("view dimensions must not be negative")
	}
	for i, r := range s.Recognizers {
		if _, ok := recognizerKinds[r.Kind]; !ok {
			return fmt.Errorf("recognizer %d: unknown kind %q", i, r.Kind)
		}
		if _, err := r.SwipeDirection(); err != nil {
			return fmt.Errorf("recognizer %d: %w", i, err)
		}
		if _, err := optionalDuration(r.LongPress); err != nil {
			return fmt.Errorf("recognizer %d: long_press: %w", i, err)
		}
	}
	for i, st := range s.Steps {
		if !isAction(st.Action) {
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
		if _, err := optionalDuration(st.Duration); err != nil {
			return fmt.Errorf("step %d: duration: %w", i, err)
		}
		if st.Action == "release" {
			if _, err := DetectorKind(st.Detector); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}

// SwipeDirection folds the direction names into a bit set. An empty list
// means any direction.
func (r RecognizerSpec) SwipeDirection() (gestures.SwipeDirection, error) {
	var d gestures.SwipeDirection
	for _, name := range r.Direction {
		bit, ok := directions[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown swipe direction %q", name)
		}
		d |= bit
	}
	return d, nil
}

// LongPressDuration returns the parsed long_press override, or zero.
func (r RecognizerSpec) LongPressDuration() time.Duration {
	d, _ := optionalDuration(r.LongPress)
	return d
}

// Wait returns the parsed step duration, or zero.
func (st Step) Wait() time.Duration {
	d, _ := optionalDuration(st.Duration)
	return d
}

// DetectorKind maps a detector name to its kind.
func DetectorKind(name string) (detectors.Kind, error) {
	for _, k := range detectors.Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown detector %q", name)
}

func isAction(a string) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

func optionalDuration(v string) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return 0, nil
	}
	return time.ParseDuration(v)
}
