package detectors

import (
	"math"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/view"
)

// tapHandler fires tap recognizers whose required tap count matches.
type tapHandler struct {
	opts Options
}

// wantsTaps reports whether any tap recognizer asks for exactly n taps.
func (h tapHandler) wantsTaps(n int) bool {
	for _, r := range h.opts.recognizers().All() {
		if tap, ok := r.(*gestures.TapGestureRecognizer); ok && tap.TapsRequired() == n {
			return true
		}
	}
	return false
}

func (h tapHandler) onTap(n int, pos graphics.Offset) bool {
	recs := h.opts.recognizers()
	if recs == nil {
		return false
	}
	// Snapshot: a tap callback may mutate the collection.
	var matched []*gestures.TapGestureRecognizer
	for _, r := range recs.All() {
		if tap, ok := r.(*gestures.TapGestureRecognizer); ok && tap.TapsRequired() == n {
			matched = append(matched, tap)
		}
	}
	for _, tap := range matched {
		if tap.OnTapped != nil {
			tap.OnTapped(gestures.TappedEvent{Position: pos, Taps: n})
		}
	}
	return len(matched) > 0
}

// panHandler drives pan recognizers whose touch-point count matches the
// active pointer count.
type panHandler struct {
	opts      Options
	active    map[*gestures.PanGestureRecognizer]bool
	gestureID int64
}

func (h *panHandler) hasRecognizers() bool {
	return h.opts.recognizers().HasKind(gestures.KindPan)
}

func (h *panHandler) onPan(total graphics.Offset, pointers int) bool {
	recs := h.opts.recognizers()
	if recs == nil {
		return false
	}
	if h.active == nil {
		h.active = make(map[*gestures.PanGestureRecognizer]bool)
		h.gestureID++
	}
	handled := false
	for _, r := range recs.All() {
		pan, ok := r.(*gestures.PanGestureRecognizer)
		if !ok || pan.RequiredTouchPoints() != pointers {
			continue
		}
		handled = true
		if !h.active[pan] {
			h.active[pan] = true
			h.send(pan, gestures.GestureStarted, graphics.Offset{})
		}
		h.send(pan, gestures.GestureRunning, total)
	}
	return handled
}

func (h *panHandler) end(status gestures.GestureStatus) bool {
	if len(h.active) == 0 {
		h.active = nil
		return false
	}
	recs := h.opts.recognizers()
	for _, r := range recs.All() {
		if pan, ok := r.(*gestures.PanGestureRecognizer); ok && h.active[pan] {
			h.send(pan, status, graphics.Offset{})
		}
	}
	h.active = nil
	return true
}

func (h *panHandler) send(pan *gestures.PanGestureRecognizer, status gestures.GestureStatus, total graphics.Offset) {
	if pan.OnPanUpdated != nil {
		pan.OnPanUpdated(gestures.PanUpdatedEvent{Status: status, Total: total, GestureID: h.gestureID})
	}
}

// swipeHandler accumulates travel and fires on gesture end.
type swipeHandler struct {
	opts  Options
	total graphics.Offset
}

func (h *swipeHandler) hasRecognizers() bool {
	return h.opts.recognizers().HasKind(gestures.KindSwipe)
}

func (h *swipeHandler) onSwipe(total graphics.Offset) bool {
	h.total = total
	return h.hasRecognizers()
}

func (h *swipeHandler) complete() bool {
	total := h.total
	h.total = graphics.Offset{}
	recs := h.opts.recognizers()
	if recs == nil {
		return false
	}
	dir, dist := swipeDirection(total)
	if dir == 0 {
		return false
	}
	threshold := h.opts.settings().SwipeThreshold
	fired := false
	for _, r := range recs.All() {
		swipe, ok := r.(*gestures.SwipeGestureRecognizer)
		if !ok || swipe.AllowedDirections()&dir == 0 {
			continue
		}
		need := swipe.Threshold
		if need <= 0 {
			need = threshold
		}
		if dist < need {
			continue
		}
		fired = true
		if swipe.OnSwiped != nil {
			swipe.OnSwiped(gestures.SwipedEvent{Direction: dir, Distance: dist})
		}
	}
	return fired
}

func (h *swipeHandler) reset() {
	h.total = graphics.Offset{}
}

// swipeDirection picks the dominant axis of total. Screen Y grows downward.
func swipeDirection(total graphics.Offset) (gestures.SwipeDirection, float64) {
	ax, ay := math.Abs(total.X), math.Abs(total.Y)
	switch {
	case ax == 0 && ay == 0:
		return 0, 0
	case ax >= ay && total.X > 0:
		return gestures.SwipeRight, ax
	case ax >= ay:
		return gestures.SwipeLeft, ax
	case total.Y > 0:
		return gestures.SwipeDown, ay
	default:
		return gestures.SwipeUp, ay
	}
}

// pinchHandler forwards scale progress to pinch recognizers.
type pinchHandler struct {
	opts    Options
	started bool
}

func (h *pinchHandler) origin(focus graphics.Offset) graphics.Offset {
	size := view.SizeOf(h.opts.view())
	if size.IsEmpty() {
		return focus
	}
	return graphics.Offset{
		X: clamp01(focus.X / size.Width),
		Y: clamp01(focus.Y / size.Height),
	}
}

func (h *pinchHandler) onStarted(focus graphics.Offset) bool {
	h.started = true
	return h.send(gestures.GestureStarted, 1, focus)
}

func (h *pinchHandler) onPinch(scale float64, focus graphics.Offset) bool {
	if !h.started {
		return false
	}
	return h.send(gestures.GestureRunning, scale, focus)
}

func (h *pinchHandler) onEnded(status gestures.GestureStatus, focus graphics.Offset) bool {
	if !h.started {
		return false
	}
	h.started = false
	return h.send(status, 1, focus)
}

func (h *pinchHandler) send(status gestures.GestureStatus, scale float64, focus graphics.Offset) bool {
	recs := h.opts.recognizers()
	if recs == nil {
		return false
	}
	origin := h.origin(focus)
	handled := false
	for _, r := range recs.All() {
		pinch, ok := r.(*gestures.PinchGestureRecognizer)
		if !ok {
			continue
		}
		handled = true
		if pinch.OnPinchUpdated != nil {
			pinch.OnPinchUpdated(gestures.PinchUpdatedEvent{Status: status, Scale: scale, Origin: origin})
		}
	}
	return handled
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
