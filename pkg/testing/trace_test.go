package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/driftgesture/pkg/graphics"
)

func TestTrace_Diff_Equal(t *testing.T) {
	a := &Trace{Entries: []TraceEntry{{Gesture: "tap", Taps: 1}}}
	b := &Trace{Entries: []TraceEntry{{Gesture: "tap", Taps: 1}}}
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical traces, got:\n%s", diff)
	}
}

func TestTrace_Diff_Different(t *testing.T) {
	a := &Trace{Entries: []TraceEntry{{Gesture: "tap", Taps: 1}}}
	b := &Trace{Entries: []TraceEntry{{Gesture: "tap", Taps: 2}}}
	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different traces")
	}
}

func TestTrace_UpdateAndMatch(t *testing.T) {
	trace := &Trace{}
	tester := NewGestureTesterWithT(t, trace.Tap(1))
	tester.TapAt(graphics.Offset{X: 12, Y: 34})

	path := filepath.Join(t.TempDir(), "testdata", "tap.trace.json")
	if err := trace.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("trace file should exist after UpdateFile")
	}
	trace.MatchesFile(t, path)
}

func TestTrace_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(updateTracesEnv, "")
	trace := &Trace{}

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	trace.MatchesFile(sub, "/nonexistent/path/trace.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestTrace_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(updateTracesEnv, "")
	first := &Trace{Entries: []TraceEntry{{Gesture: "swipe", Direction: "left"}}}
	path := filepath.Join(t.TempDir(), "trace.json")
	first.UpdateFile(path)

	second := &Trace{Entries: []TraceEntry{{Gesture: "swipe", Direction: "right"}}}
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestTrace_UpdateMode(t *testing.T) {
	trace := &Trace{Entries: []TraceEntry{{Gesture: "pinch", Status: "started", Scale: 1}}}
	path := filepath.Join(t.TempDir(), "update.trace.json")

	t.Setenv(updateTracesEnv, "1")
	trace.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file should be created in update mode")
	}
}

func TestTrace_CountAndReset(t *testing.T) {
	trace := &Trace{Entries: []TraceEntry{{Gesture: "tap"}, {Gesture: "pan"}, {Gesture: "tap"}}}
	if trace.Count("tap") != 2 {
		t.Errorf("expected 2 taps, got %d", trace.Count("tap"))
	}
	trace.Reset()
	if _, ok := trace.Last("tap"); ok {
		t.Error("expected empty trace after Reset")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
