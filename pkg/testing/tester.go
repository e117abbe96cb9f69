package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/driftgesture/pkg/config"
	"github.com/go-drift/driftgesture/pkg/gesturemanager"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/platform"
	"github.com/go-drift/driftgesture/pkg/view"
)

const (
	// DefaultTestWidth is the default logical width of the test view.
	DefaultTestWidth = 400
	// DefaultTestHeight is the default logical height of the test view.
	DefaultTestHeight = 400
	// DefaultScale is the default device pixel ratio.
	DefaultScale = 1.0
)

// ErrNoListener is returned when an event is sent while the coordinator is
// not installed as the control's touch listener.
var ErrNoListener = errors.New("gesture tester: no touch listener installed")

// GestureTester drives a coordinator with simulated pointer input. It uses a
// manual scheduler instead of wall-clock timers and a private handle table
// instead of the process-wide one.
type GestureTester struct {
	coordinator *gesturemanager.Coordinator
	node        *view.Node
	control     *platform.NativeControl
	ctx         *platform.InputContext
	scheduler   *platform.ManualScheduler
	handles     *platform.HandleTable
	settings    config.Settings

	pointers      map[int64]graphics.Offset
	order         []int64
	nextPointerID int64
	consumed      []bool
}

// NewGestureTester creates a tester bound to a view holding recognizers.
// Call Cleanup when done, or use NewGestureTesterWithT instead.
func NewGestureTester(recognizers ...gestures.Recognizer) *GestureTester {
	sched := platform.NewManualScheduler()
	handles := platform.NewHandleTable()
	ctx := &platform.InputContext{
		Density:   DefaultScale,
		Scheduler: sched,
		Handles:   handles,
		Now:       sched.Now,
	}
	t := &GestureTester{
		node:      view.NewNode(recognizers...),
		control:   platform.NewNativeControl("gesture_tester", ctx),
		ctx:       ctx,
		scheduler: sched,
		handles:   handles,
		settings:  config.Default(),
		pointers:  make(map[int64]graphics.Offset),
	}
	t.node.SetSize(graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight})
	t.bind()
	return t
}

// NewGestureTesterWithT creates a tester that cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewGestureTesterWithT(t *testing.T, recognizers ...gestures.Recognizer) *GestureTester {
	tester := NewGestureTester(recognizers...)
	t.Cleanup(tester.Cleanup)
	return tester
}

func (t *GestureTester) bind() {
	t.coordinator = gesturemanager.New(gesturemanager.WithSettings(t.settings))
	// Bind only fails on a disposed coordinator.
	_ = t.coordinator.Bind(t.node, t.control)
}

// Cleanup disposes the coordinator and destroys the native control.
func (t *GestureTester) Cleanup() {
	t.coordinator.Dispose()
	t.control.Destroy()
}

// SetSize sets the logical size of the view. Pinch origins are normalized
// against it.
func (t *GestureTester) SetSize(size graphics.Size) {
	t.node.SetSize(size)
}

// SetScale sets the device pixel ratio and rebinds a fresh coordinator,
// since detectors read the density once when they are built. Must be called
// before the first event.
func (t *GestureTester) SetScale(scale float64) {
	t.coordinator.Dispose()
	t.ctx.Density = scale
	t.bind()
}

// SetSettings replaces the coordinator with one using s. Must be called
// before the first event.
func (t *GestureTester) SetSettings(s config.Settings) {
	t.coordinator.Dispose()
	t.settings = s
	t.bind()
}

// Settings returns the thresholds in use.
func (t *GestureTester) Settings() config.Settings { return t.settings }

// Coordinator returns the coordinator under test.
func (t *GestureTester) Coordinator() *gesturemanager.Coordinator { return t.coordinator }

// View returns the bound view.
func (t *GestureTester) View() *view.Node { return t.node }

// Control returns the bound native control.
func (t *GestureTester) Control() *platform.NativeControl { return t.control }

// Handles returns the handle table detectors allocate from. Releasing an
// entry simulates the platform invalidating a detector.
func (t *GestureTester) Handles() *platform.HandleTable { return t.handles }

// Consumed returns whether each event sent so far was consumed, in order.
func (t *GestureTester) Consumed() []bool { return t.consumed }

// LastConsumed reports whether the most recent event was consumed.
func (t *GestureTester) LastConsumed() bool {
	if len(t.consumed) == 0 {
		return false
	}
	return t.consumed[len(t.consumed)-1]
}
