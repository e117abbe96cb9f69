package gesturemanager

import (
	"fmt"
	"time"

	"github.com/go-drift/driftgesture/pkg/detectors"
	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/logging"
)

// dispatchState is what the gates of one dispatch see.
type dispatchState struct {
	hasPinch        bool
	scaleInProgress bool
}

// dispatchStep feeds one detector kind when its gate allows it.
type dispatchStep struct {
	kind detectors.Kind
	gate func(dispatchState) bool
}

// dispatchSteps is evaluated in order. Detector kind, not recognizer
// position, decides priority.
var dispatchSteps = []dispatchStep{
	{kind: detectors.KindScale, gate: func(s dispatchState) bool { return s.hasPinch }},
	{kind: detectors.KindTapPanSwipe, gate: func(s dispatchState) bool { return !s.scaleInProgress }},
}

// route runs the dispatch table for one event. The caller has already
// checked the binding gates.
func (c *Coordinator) route(ev gestures.PointerEvent) (bool, error) {
	recs := c.view.GestureRecognizers()
	st := dispatchState{hasPinch: recs.HasKind(gestures.KindPinch)}
	consumed := false

	for _, step := range dispatchSteps {
		if !step.gate(st) {
			continue
		}
		if c.registry.stale(step.kind) {
			logging.Logger().Debug("skipping detector with released handle",
				"kind", step.kind.String(), "view", c.viewID())
			continue
		}
		d, err := c.registry.get(step.kind)
		if err != nil {
			return consumed, err
		}
		used, err := c.feed(d, ev)
		if err != nil {
			return consumed, err
		}
		consumed = consumed || used

		if s, ok := d.(*detectors.Scale); ok {
			st.scaleInProgress = s.InProgress()
			// A pinch that starts mid-gesture takes over from the composite.
			if st.scaleInProgress && !c.scaleActive {
				c.interruptTapPanSwipe()
			}
			c.scaleActive = st.scaleInProgress
		}
	}
	return consumed, nil
}

// feed calls d.Feed and converts a panic into a GestureError.
func (c *Coordinator) feed(d detectors.Detector, ev gestures.PointerEvent) (consumed bool, err error) {
	op := fmt.Sprintf("detectors.%s.Feed", d.Kind())
	defer func() {
		if pe := errors.Capture(op, recover()); pe != nil {
			consumed = false
			err = &errors.GestureError{
				Op:         "gesturemanager.Dispatch",
				Kind:       errors.KindPanic,
				Err:        pe,
				ViewID:     c.viewID(),
				StackTrace: pe.StackTrace,
				Timestamp:  time.Now(),
			}
		}
	}()
	return d.Feed(ev), nil
}

func (c *Coordinator) interruptTapPanSwipe() {
	if tps, ok := c.registry.tps.Peek(); ok && tps.Valid() {
		tps.Interrupt()
	}
}

func (c *Coordinator) interruptScale() {
	if s, ok := c.registry.scale.Peek(); ok && s.Valid() {
		s.Interrupt()
	}
}
