package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/driftgesture/cmd/gesturetrace/internal/script"
	"github.com/go-drift/driftgesture/pkg/config"
	"github.com/go-drift/driftgesture/pkg/detectors"
	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/platform"
	gesturetest "github.com/go-drift/driftgesture/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a touch script",
		Long: `Replay a YAML touch script through a gesture coordinator.

Each step prints the simulated clock, the action, whether the coordinator
consumed the events it produced, and the gestures recognized as a result.
Gesture settings come from the project's gestures.yaml or gestures.toml.

Flags:
  --json    Print the recognized gestures as a JSON trace instead`,
		Usage: "gesturetrace replay [--json] <script.yaml>",
		Run:   runReplay,
	})
}

func runReplay(args []string) error {
	asJSON := false
	var path string
	for _, arg := range args {
		switch {
		case arg == "--json":
			asJSON = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case path == "":
			path = arg
		default:
			return fmt.Errorf("replay takes one script")
		}
	}
	if path == "" {
		return fmt.Errorf("script is required\n\nUsage: gesturetrace replay [--json] <script.yaml>")
	}

	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	var collect errorCollector
	errors.SetHandler(&collect)
	defer errors.SetHandler(nil)

	r := newReplayer(sc, cfg.Settings)
	defer r.tester.Cleanup()

	p := newPalette(globals.color)
	if asJSON {
		p = palette{}
	} else if sc.Name != "" {
		fmt.Fprintf(stdout, "%s\n\n", sc.Name)
	}

	for i, st := range sc.Steps {
		res := r.step(st)
		if !asJSON {
			printStep(p, r, i, st, res)
		}
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r.trace)
	}
	fmt.Fprintf(stdout, "\n%d gestures recognized", len(r.trace.Entries))
	if n := len(collect.errs); n > 0 {
		fmt.Fprintf(stdout, ", %s", p.bad(fmt.Sprintf("%d errors reported", n)))
	}
	fmt.Fprintln(stdout)
	return nil
}

// errorCollector is an errors.ErrorHandler that keeps reports for the
// summary line.
type errorCollector struct {
	errs []*errors.GestureError
}

func (c *errorCollector) HandleError(err *errors.GestureError) { c.errs = append(c.errs, err) }
func (c *errorCollector) HandlePanic(err *errors.PanicError) {
	c.errs = append(c.errs, &errors.GestureError{Op: err.Op, Kind: errors.KindPanic, Err: err})
}

// replayer runs script steps against a gesture tester.
type replayer struct {
	tester *gesturetest.GestureTester
	trace  *gesturetest.Trace
	epoch  time.Time
	start  int
}

// stepResult summarizes one step.
type stepResult struct {
	events   []bool
	gestures []gesturetest.TraceEntry
	err      error
}

func newReplayer(sc *script.Script, settings config.Settings) *replayer {
	trace := &gesturetest.Trace{}
	recs := make([]gestures.Recognizer, 0, len(sc.Recognizers))
	for _, spec := range sc.Recognizers {
		recs = append(recs, buildRecognizer(trace, spec))
	}
	t := gesturetest.NewGestureTester(recs...)
	if sc.View.Density > 0 {
		t.SetScale(sc.View.Density)
	}
	if settings != t.Settings() {
		t.SetSettings(settings)
	}
	if sc.View.Width > 0 || sc.View.Height > 0 {
		size := t.View().Size()
		if sc.View.Width > 0 {
			size.Width = sc.View.Width
		}
		if sc.View.Height > 0 {
			size.Height = sc.View.Height
		}
		t.SetSize(size)
	}
	return &replayer{tester: t, trace: trace, epoch: t.Now()}
}

func buildRecognizer(trace *gesturetest.Trace, spec script.RecognizerSpec) gestures.Recognizer {
	switch spec.Kind {
	case "tap":
		return trace.Tap(max(spec.Taps, 1))
	case "pan":
		return trace.Pan(spec.TouchPoints)
	case "swipe":
		dir, _ := spec.SwipeDirection()
		r := trace.Swipe(dir)
		r.Threshold = spec.Threshold
		return r
	case "pinch":
		return trace.Pinch()
	case "drag":
		r := trace.Drag()
		r.LongPressDuration = spec.LongPressDuration()
		return r
	default:
		return trace.Drop()
	}
}

func (r *replayer) step(st script.Step) stepResult {
	t := r.tester
	before := len(t.Consumed())
	at := graphics.Offset{X: st.X, Y: st.Y}
	delta := graphics.Offset{X: st.DX, Y: st.DY}

	var err error
	switch st.Action {
	case "down":
		err = t.SendPointerDown(at, st.Pointer)
	case "move":
		err = t.SendPointerMove(at, st.Pointer)
	case "up":
		err = t.SendPointerUp(at, st.Pointer)
	case "cancel":
		err = t.SendPointerCancel()
	case "wait":
		t.Advance(st.Wait())
	case "tap":
		err = t.TapAt(at)
	case "double_tap":
		err = t.DoubleTapAt(at)
	case "long_press":
		err = t.LongPressAt(at)
	case "drag":
		err = t.DragFrom(at, delta)
	case "fling":
		err = t.Fling(at, delta)
	case "pinch":
		err = t.PinchAt(at, st.Span[0], st.Span[1], st.Moves)
	case "drop":
		t.DropAt(at, map[string]any{"x": st.X, "y": st.Y})
	case "enable", "disable":
		t.View().SetEnabled(st.Action == "enable")
	case "transparent", "opaque":
		t.View().SetInputTransparent(st.Action == "transparent")
	case "release":
		err = r.release(st.Detector)
	}

	res := stepResult{events: t.Consumed()[before:], err: err}
	res.gestures = r.trace.Entries[r.start:]
	r.start = len(r.trace.Entries)
	return res
}

// release invalidates the named detector's native handle.
func (r *replayer) release(name string) error {
	kind, err := script.DetectorKind(name)
	if err != nil {
		return err
	}
	reg := r.tester.Coordinator().Registry()
	var d interface{ Handle() platform.Handle }
	switch kind {
	case detectors.KindScale:
		if s, ok := reg.Scale().Peek(); ok {
			d = s
		}
	case detectors.KindTapPanSwipe:
		if s, ok := reg.TapPanSwipe().Peek(); ok {
			d = s
		}
	case detectors.KindDragDrop:
		if s, ok := reg.DragDrop().Peek(); ok {
			d = s
		}
	}
	if d == nil {
		return fmt.Errorf("detector %s has not been created", name)
	}
	r.tester.Handles().Release(d.Handle().ID())
	return nil
}

func printStep(p palette, r *replayer, i int, st script.Step, res stepResult) {
	elapsed := r.tester.Now().Sub(r.epoch)
	line := fmt.Sprintf("%s %-12s", p.dim(fmt.Sprintf("%3d %7s", i, elapsed)), st.Action)
	if len(res.events) > 0 {
		consumed := 0
		for _, c := range res.events {
			if c {
				consumed++
			}
		}
		status := fmt.Sprintf("%d/%d consumed", consumed, len(res.events))
		if consumed > 0 {
			status = p.good(status)
		}
		line += " " + status
	}
	if res.err != nil {
		line += " " + p.bad(res.err.Error())
	}
	fmt.Fprintln(stdout, line)
	for _, g := range res.gestures {
		fmt.Fprintf(stdout, "      -> %s\n", formatEntry(p, g))
	}
}

func formatEntry(p palette, e gesturetest.TraceEntry) string {
	var b strings.Builder
	b.WriteString(p.gesture(e.Gesture))
	if e.Status != "" {
		fmt.Fprintf(&b, " %s", e.Status)
	}
	if e.Taps > 0 {
		fmt.Fprintf(&b, " taps=%d", e.Taps)
	}
	if e.Direction != "" {
		fmt.Fprintf(&b, " %s %.2f", e.Direction, e.Distance)
	}
	if e.Scale != 0 {
		fmt.Fprintf(&b, " scale=%.2f", e.Scale)
	}
	fmt.Fprintf(&b, " (%.2f, %.2f)", e.Position[0], e.Position[1])
	return b.String()
}
