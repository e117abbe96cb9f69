package gesturemanager

import (
	"github.com/go-drift/driftgesture/pkg/detectors"
	"github.com/go-drift/driftgesture/pkg/logging"
	"github.com/go-drift/driftgesture/pkg/platform"
)

// DetectorRegistry holds one lazy slot per detector kind.
type DetectorRegistry struct {
	scale    *Slot[*detectors.Scale]
	tps      *Slot[*detectors.TapPanSwipe]
	dragDrop *Slot[*detectors.DragDrop]
}

func newDetectorRegistry(opts detectors.Options) *DetectorRegistry {
	r := &DetectorRegistry{}
	r.scale = NewSlot(func() (*detectors.Scale, error) {
		return detectors.NewScale(opts)
	})
	r.dragDrop = NewSlot(func() (*detectors.DragDrop, error) {
		return detectors.NewDragDrop(opts)
	})
	r.tps = NewSlot(func() (*detectors.TapPanSwipe, error) {
		drag, err := r.dragDrop.Get()
		if err != nil {
			return nil, err
		}
		return detectors.NewTapPanSwipe(opts, drag)
	})
	return r
}

// Scale returns the scale detector slot.
func (r *DetectorRegistry) Scale() *Slot[*detectors.Scale] { return r.scale }

// TapPanSwipe returns the composite detector slot.
func (r *DetectorRegistry) TapPanSwipe() *Slot[*detectors.TapPanSwipe] { return r.tps }

// DragDrop returns the drag-and-drop handler slot.
func (r *DetectorRegistry) DragDrop() *Slot[*detectors.DragDrop] { return r.dragDrop }

// State returns the slot state for kind.
func (r *DetectorRegistry) State(kind detectors.Kind) SlotState {
	switch kind {
	case detectors.KindScale:
		return r.scale.State()
	case detectors.KindTapPanSwipe:
		return r.tps.State()
	case detectors.KindDragDrop:
		return r.dragDrop.State()
	}
	return SlotNotCreated
}

// Created reports whether a detector of kind has been built and not disposed.
func (r *DetectorRegistry) Created(kind detectors.Kind) bool {
	return r.State(kind) == SlotCreated
}

// get returns the detector for kind, building it if needed.
func (r *DetectorRegistry) get(kind detectors.Kind) (detectors.Detector, error) {
	switch kind {
	case detectors.KindScale:
		return r.scale.Get()
	case detectors.KindTapPanSwipe:
		return r.tps.Get()
	default:
		return r.dragDrop.Get()
	}
}

func (r *DetectorRegistry) peek(kind detectors.Kind) (detectors.Detector, bool) {
	switch kind {
	case detectors.KindScale:
		return r.scale.Peek()
	case detectors.KindTapPanSwipe:
		return r.tps.Peek()
	default:
		return r.dragDrop.Peek()
	}
}

// Live reports whether a detector of kind has been built and still holds a
// valid native handle.
func (r *DetectorRegistry) Live(kind detectors.Kind) bool {
	d, ok := r.peek(kind)
	return ok && d.Valid()
}

// stale reports whether kind was built but its native handle is gone.
func (r *DetectorRegistry) stale(kind detectors.Kind) bool {
	d, ok := r.peek(kind)
	return ok && !d.Valid()
}

// retarget moves every built detector onto ctx. A nil ctx leaves them as
// they are.
func (r *DetectorRegistry) retarget(ctx *platform.InputContext) {
	if ctx == nil {
		return
	}
	if d, ok := r.scale.Peek(); ok {
		d.Retarget(ctx)
	}
	if d, ok := r.tps.Peek(); ok {
		d.Retarget(ctx)
	}
	if d, ok := r.dragDrop.Peek(); ok {
		d.Retarget(ctx)
	}
}

// disposeAll releases every detector that was built. The composite goes
// first because it references the drag-and-drop handler.
func (r *DetectorRegistry) disposeAll() {
	for _, kind := range []detectors.Kind{detectors.KindTapPanSwipe, detectors.KindScale, detectors.KindDragDrop} {
		if r.Created(kind) {
			logging.Logger().Debug("detector disposed", "kind", kind.String())
		}
	}
	r.tps.DisposeIfCreated()
	r.scale.DisposeIfCreated()
	r.dragDrop.DisposeIfCreated()
}
