package detectors

import (
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/logging"
	"github.com/go-drift/driftgesture/pkg/platform"
)

// DragDrop connects drag and drop recognizers to the platform's drag
// session. It is a drag source (long press starts a session when a drag
// recognizer allows it) and, once armed, the control's drop target.
//
// Raw touches do not flow through it: Feed always reports false. Drag
// sessions arrive through the control's drop-target callback instead.
type DragDrop struct {
	native
	opts Options

	armed      bool
	dropTarget bool
	source     *gestures.DragGestureRecognizer
	setups     int
}

// NewDragDrop builds the drag-and-drop handler on the bound control.
func NewDragDrop(opts Options) (*DragDrop, error) {
	n, err := newNative("detectors.NewDragDrop", KindDragDrop, opts)
	if err != nil {
		return nil, err
	}
	return &DragDrop{native: n, opts: opts}, nil
}

func (h *DragDrop) Feed(gestures.PointerEvent) bool { return false }

// Armed reports whether SetupForDrop has wired the handler for the current
// recognizer set.
func (h *DragDrop) Armed() bool { return h.armed }

// IsDropTarget reports whether the handler is installed as the control's
// drop target.
func (h *DragDrop) IsDropTarget() bool { return h.dropTarget }

// SetupCount returns how many times SetupForDrop ran.
func (h *DragDrop) SetupCount() int { return h.setups }

// SetupForDrop arms the handler and installs it as the drop target when some
// drop recognizer currently allows drops; otherwise it removes itself. It is
// re-run on every recognizer change because AllowDrop can change at runtime.
func (h *DragDrop) SetupForDrop() {
	if h.disposed {
		return
	}
	h.setups++
	h.armed = true
	c := h.control()
	if c == nil {
		return
	}
	if h.allowsDrop() {
		c.SetDropTarget(h)
		h.dropTarget = true
		return
	}
	if c.DropTarget() == h {
		c.SetDropTarget(nil)
	}
	h.dropTarget = false
}

// Disarm removes the handler from the control's drop target slot.
func (h *DragDrop) Disarm() {
	h.armed = false
	if c := h.control(); c != nil && c.DropTarget() == h {
		c.SetDropTarget(nil)
	}
	h.dropTarget = false
}

func (h *DragDrop) allowsDrop() bool {
	for _, r := range h.opts.recognizers().All() {
		if drop, ok := r.(*gestures.DropGestureRecognizer); ok && drop.AllowDrop {
			return true
		}
	}
	return false
}

func (h *DragDrop) control() platform.Control {
	if h.opts.Control == nil {
		return nil
	}
	c := h.opts.Control()
	if c == nil || !c.IsAlive() {
		return nil
	}
	return c
}

// onLongPress starts a drag when a drag recognizer can drag. pos is in
// logical units.
func (h *DragDrop) onLongPress(pos graphics.Offset) bool {
	if !h.Valid() {
		return false
	}
	var source *gestures.DragGestureRecognizer
	for _, r := range h.opts.recognizers().All() {
		if drag, ok := r.(*gestures.DragGestureRecognizer); ok && drag.CanDrag {
			source = drag
			break
		}
	}
	c := h.control()
	if source == nil || c == nil {
		return false
	}
	ev := &gestures.DragStartingEvent{Position: pos, Data: map[string]any{}}
	if source.OnDragStarting != nil {
		source.OnDragStarting(ev)
	}
	if ev.Cancel {
		return false
	}
	if !c.StartDrag(ev.Data, h) {
		return false
	}
	h.source = source
	logging.Logger().Debug("drag started", "view", c.ViewID())
	return true
}

// OnDragEnded implements platform.DragSource.
func (h *DragDrop) OnDragEnded(accepted bool) {
	src := h.source
	h.source = nil
	if src != nil && src.OnDropCompleted != nil {
		src.OnDropCompleted(gestures.DropCompletedEvent{Accepted: accepted})
	}
}

// OnDrag implements platform.DropTarget.
func (h *DragDrop) OnDrag(ev platform.DragEvent) bool {
	if h.disposed || !h.dropTarget {
		return false
	}
	pos := h.pixels.Point(ev.Position)
	var drops []*gestures.DropGestureRecognizer
	for _, r := range h.opts.recognizers().All() {
		if drop, ok := r.(*gestures.DropGestureRecognizer); ok && drop.AllowDrop {
			drops = append(drops, drop)
		}
	}
	switch ev.Action {
	case platform.DragActionStarted:
		return len(drops) > 0
	case platform.DragActionEntered, platform.DragActionLocation:
		accepted := false
		for _, drop := range drops {
			de := &gestures.DragEvent{Position: pos, Data: ev.Data}
			if drop.OnDragOver != nil {
				drop.OnDragOver(de)
			}
			accepted = accepted || de.Accepted
		}
		return accepted
	case platform.DragActionExited:
		for _, drop := range drops {
			if drop.OnDragLeave != nil {
				drop.OnDragLeave(&gestures.DragEvent{Position: pos, Data: ev.Data})
			}
		}
		return true
	case platform.DragActionDrop:
		handled := false
		for _, drop := range drops {
			de := &gestures.DropEvent{Position: pos, Data: ev.Data}
			if drop.OnDrop != nil {
				drop.OnDrop(de)
			}
			handled = handled || de.Handled
		}
		return handled
	case platform.DragActionEnded:
		return true
	}
	return false
}

// Dispose removes the drop target and releases the native handle.
func (h *DragDrop) Dispose() {
	if h.disposed {
		return
	}
	h.Disarm()
	h.source = nil
	h.release()
}
