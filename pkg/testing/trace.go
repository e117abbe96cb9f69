package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// updateTracesEnv, when set to "1", makes MatchesFile rewrite golden files.
const updateTracesEnv = "DRIFTGESTURE_UPDATE_TRACES"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// TraceEntry is one recognized gesture callback.
type TraceEntry struct {
	Gesture   string     `json:"gesture"`
	Status    string     `json:"status,omitempty"`
	Taps      int        `json:"taps,omitempty"`
	Position  [2]float64 `json:"pos"`
	Scale     float64    `json:"scale,omitempty"`
	Direction string     `json:"direction,omitempty"`
	Distance  float64    `json:"distance,omitempty"`
}

// Trace records gesture callbacks from recognizers it creates.
type Trace struct {
	Entries []TraceEntry `json:"entries"`
}

func (tr *Trace) add(e TraceEntry) {
	tr.Entries = append(tr.Entries, e)
}

// Tap returns a tap recognizer requiring taps taps that records into tr.
func (tr *Trace) Tap(taps int) *gestures.TapGestureRecognizer {
	return &gestures.TapGestureRecognizer{
		NumberOfTapsRequired: taps,
		OnTapped: func(e gestures.TappedEvent) {
			tr.add(TraceEntry{Gesture: "tap", Taps: e.Taps, Position: point(e.Position)})
		},
	}
}

// Pan returns a pan recognizer requiring touchPoints pointers.
func (tr *Trace) Pan(touchPoints int) *gestures.PanGestureRecognizer {
	return &gestures.PanGestureRecognizer{
		TouchPoints: touchPoints,
		OnPanUpdated: func(e gestures.PanUpdatedEvent) {
			tr.add(TraceEntry{Gesture: "pan", Status: e.Status.String(), Position: point(e.Total)})
		},
	}
}

// Swipe returns a swipe recognizer for direction with the default threshold.
func (tr *Trace) Swipe(direction gestures.SwipeDirection) *gestures.SwipeGestureRecognizer {
	return &gestures.SwipeGestureRecognizer{
		Direction: direction,
		OnSwiped: func(e gestures.SwipedEvent) {
			tr.add(TraceEntry{Gesture: "swipe", Direction: e.Direction.String(), Distance: round2(e.Distance)})
		},
	}
}

// Pinch returns a pinch recognizer.
func (tr *Trace) Pinch() *gestures.PinchGestureRecognizer {
	return &gestures.PinchGestureRecognizer{
		OnPinchUpdated: func(e gestures.PinchUpdatedEvent) {
			tr.add(TraceEntry{Gesture: "pinch", Status: e.Status.String(), Scale: round2(e.Scale), Position: point(e.Origin)})
		},
	}
}

// Drag returns a draggable drag recognizer.
func (tr *Trace) Drag() *gestures.DragGestureRecognizer {
	return &gestures.DragGestureRecognizer{
		CanDrag: true,
		OnDragStarting: func(e *gestures.DragStartingEvent) {
			tr.add(TraceEntry{Gesture: "drag_starting", Position: point(e.Position)})
		},
		OnDropCompleted: func(e gestures.DropCompletedEvent) {
			status := "rejected"
			if e.Accepted {
				status = "accepted"
			}
			tr.add(TraceEntry{Gesture: "drop_completed", Status: status})
		},
	}
}

// Drop returns a drop recognizer that accepts every drop.
func (tr *Trace) Drop() *gestures.DropGestureRecognizer {
	return &gestures.DropGestureRecognizer{
		AllowDrop: true,
		OnDragOver: func(e *gestures.DragEvent) {
			e.Accepted = true
			tr.add(TraceEntry{Gesture: "drag_over", Position: point(e.Position)})
		},
		OnDragLeave: func(e *gestures.DragEvent) {
			tr.add(TraceEntry{Gesture: "drag_leave", Position: point(e.Position)})
		},
		OnDrop: func(e *gestures.DropEvent) {
			e.Handled = true
			tr.add(TraceEntry{Gesture: "drop", Position: point(e.Position)})
		},
	}
}

// Count returns how many entries have the given gesture name.
func (tr *Trace) Count(gesture string) int {
	n := 0
	for _, e := range tr.Entries {
		if e.Gesture == gesture {
			n++
		}
	}
	return n
}

// Last returns the most recent entry for gesture.
func (tr *Trace) Last(gesture string) (TraceEntry, bool) {
	for i := len(tr.Entries) - 1; i >= 0; i-- {
		if tr.Entries[i].Gesture == gesture {
			return tr.Entries[i], true
		}
	}
	return TraceEntry{}, false
}

// Reset drops every recorded entry.
func (tr *Trace) Reset() {
	tr.Entries = nil
}

// MatchesFile compares this trace against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// DRIFTGESTURE_UPDATE_TRACES=1 is set, the file is silently updated instead.
func (tr *Trace) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(updateTracesEnv) == "1" {
		if err := tr.UpdateFile(path); err != nil {
			t.Fatalf("failed to update trace: %v", err)
		}
		return
	}

	expected, err := loadTrace(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("trace file missing: %s\n\nTo create: %s=1 go test -run %s", path, updateTracesEnv, t.Name())
			return
		}
		t.Fatalf("failed to load trace: %v", err)
		return
	}

	if diff := tr.Diff(expected); diff != "" {
		t.Errorf("trace mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, updateTracesEnv, t.Name())
	}
}

// UpdateFile writes this trace to path, creating directories as needed.
func (tr *Trace) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalTrace(tr)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this trace and other, or "" if equal.
func (tr *Trace) Diff(other *Trace) string {
	a, _ := marshalTrace(tr)
	b, _ := marshalTrace(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("invalid trace JSON: %w", err)
	}
	return &tr, nil
}

func marshalTrace(tr *Trace) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}

func point(o graphics.Offset) [2]float64 {
	return [2]float64{round2(o.X), round2(o.Y)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
