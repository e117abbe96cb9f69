package detectors

import (
	"testing"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/platform"
	"github.com/go-drift/driftgesture/pkg/view"
)

type fixture struct {
	node    *view.Node
	control *platform.NativeControl
	sched   *platform.ManualScheduler
	handles *platform.HandleTable
	opts    Options
}

func newFixture(t *testing.T, recs ...gestures.Recognizer) *fixture {
	t.Helper()
	platform.SetupTestBridge(t.Cleanup)
	sched := platform.NewManualScheduler()
	handles := platform.NewHandleTable()
	control := platform.NewNativeControl("test_view", &platform.InputContext{
		Density:   1,
		Scheduler: sched,
		Handles:   handles,
		Now:       sched.Now,
	})
	node := view.NewNode(recs...)
	f := &fixture{node: node, control: control, sched: sched, handles: handles}
	f.opts = Options{
		View:    func() view.View { return f.node },
		Control: func() platform.Control { return f.control },
	}
	return f
}

func at(x, y float64) graphics.Offset { return graphics.Offset{X: x, Y: y} }

func down(x, y float64) gestures.PointerEvent {
	return gestures.PointerEvent{PointerID: 1, Position: at(x, y), Phase: gestures.PointerPhaseDown}
}

func move(x, y float64) gestures.PointerEvent {
	return gestures.PointerEvent{PointerID: 1, Position: at(x, y), Phase: gestures.PointerPhaseMove}
}

func up(x, y float64) gestures.PointerEvent {
	return gestures.PointerEvent{PointerID: 1, Position: at(x, y), Phase: gestures.PointerPhaseUp}
}

// twoFinger builds an event with pointers 1 and 2 at a and b; pointer 2 is
// the one that changed.
func twoFinger(phase gestures.PointerPhase, a, b graphics.Offset) gestures.PointerEvent {
	return gestures.PointerEvent{
		PointerID: 2,
		Position:  b,
		Phase:     phase,
		Pointers:  []gestures.Pointer{{ID: 1, Position: a}, {ID: 2, Position: b}},
	}
}
