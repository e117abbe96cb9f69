package testing

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/platform"
)

// frameInterval is the clock step between simulated move events.
const frameInterval = 8 * time.Millisecond

// TapAt simulates a single tap at the given logical position.
func (t *GestureTester) TapAt(pos graphics.Offset) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(pos, id); err != nil {
		return err
	}
	t.Advance(frameInterval)
	return t.SendPointerUp(pos, id)
}

// DoubleTapAt simulates two taps at pos inside the double-tap window.
func (t *GestureTester) DoubleTapAt(pos graphics.Offset) error {
	if err := t.TapAt(pos); err != nil {
		return err
	}
	t.Advance(t.settings.DoubleTapTimeout / 3)
	return t.TapAt(pos)
}

// LongPressAt presses at pos, holds past the long-press timeout, and
// releases.
func (t *GestureTester) LongPressAt(pos graphics.Offset) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(pos, id); err != nil {
		return err
	}
	t.Advance(t.longPressDelay() + time.Millisecond)
	return t.SendPointerUp(pos, id)
}

func (t *GestureTester) longPressDelay() time.Duration {
	for _, r := range t.node.GestureRecognizers().All() {
		if drag, ok := r.(*gestures.DragGestureRecognizer); ok && drag.CanDrag && drag.LongPressDuration > 0 {
			return drag.LongPressDuration
		}
	}
	return t.settings.LongPressTimeout
}

// DragFrom simulates a one-finger drag from start by delta.
func (t *GestureTester) DragFrom(start, delta graphics.Offset) error {
	return t.moveFrom(start, delta, 4)
}

// Fling simulates a fast drag from start by delta, emitting intermediate
// moves one frame apart.
func (t *GestureTester) Fling(start, delta graphics.Offset) error {
	return t.moveFrom(start, delta, 10)
}

func (t *GestureTester) moveFrom(start, delta graphics.Offset, steps int) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(start, id); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		t.Advance(frameInterval)
		if err := t.SendPointerMove(start.Add(delta.Scale(float64(i)/float64(steps))), id); err != nil {
			return err
		}
	}
	t.Advance(frameInterval)
	return t.SendPointerUp(start.Add(delta), id)
}

// PinchAt simulates a horizontal two-finger pinch centered on center whose
// span goes from fromSpan to toSpan in steps moves.
func (t *GestureTester) PinchAt(center graphics.Offset, fromSpan, toSpan float64, steps int) error {
	if steps < 1 {
		steps = 1
	}
	half := func(span float64) graphics.Offset { return graphics.Offset{X: span / 2} }
	a, b := t.allocPointerID(), t.allocPointerID()
	if err := t.SendPointerDown(center.Sub(half(fromSpan)), a); err != nil {
		return err
	}
	if err := t.SendPointerDown(center.Add(half(fromSpan)), b); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		t.Advance(frameInterval)
		span := fromSpan + (toSpan-fromSpan)*float64(i)/float64(steps)
		t.pointers[a] = t.toPixels(center.Sub(half(span)))
		if err := t.SendPointerMove(center.Add(half(span)), b); err != nil {
			return err
		}
	}
	t.Advance(frameInterval)
	if err := t.SendPointerUp(center.Add(half(toSpan)), b); err != nil {
		return err
	}
	return t.SendPointerUp(center.Sub(half(toSpan)), a)
}

// DropAt simulates a platform drag entering the view and dropping data at
// pos. It reports whether the drop was handled.
func (t *GestureTester) DropAt(pos graphics.Offset, data map[string]any) bool {
	px := t.toPixels(pos)
	t.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionEntered, Position: px, Data: data})
	handled := t.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionDrop, Position: px, Data: data})
	t.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionEnded, Position: px, Result: handled})
	return handled
}

// SendPointerDown puts pointer id down at pos. The first active pointer
// produces a Down event, later ones PointerDown.
func (t *GestureTester) SendPointerDown(pos graphics.Offset, id int64) error {
	phase := gestures.PointerPhaseDown
	if len(t.order) > 0 {
		phase = gestures.PointerPhasePointerDown
	}
	px := t.toPixels(pos)
	t.pointers[id] = px
	t.order = append(t.order, id)
	return t.send(gestures.PointerEvent{PointerID: id, Position: px, Phase: phase})
}

// SendPointerMove moves pointer id to pos.
func (t *GestureTester) SendPointerMove(pos graphics.Offset, id int64) error {
	px := t.toPixels(pos)
	prev, ok := t.pointers[id]
	if !ok {
		return nil
	}
	t.pointers[id] = px
	return t.send(gestures.PointerEvent{PointerID: id, Position: px, Delta: px.Sub(prev), Phase: gestures.PointerPhaseMove})
}

// SendPointerUp lifts pointer id at pos. The last active pointer produces an
// Up event, earlier ones PointerUp.
func (t *GestureTester) SendPointerUp(pos graphics.Offset, id int64) error {
	px := t.toPixels(pos)
	prev, ok := t.pointers[id]
	if !ok {
		return nil
	}
	phase := gestures.PointerPhaseUp
	if len(t.order) > 1 {
		phase = gestures.PointerPhasePointerUp
	}
	t.pointers[id] = px
	ev := gestures.PointerEvent{PointerID: id, Position: px, Delta: px.Sub(prev), Phase: phase}
	err := t.send(ev)
	t.forget(id)
	return err
}

// SendPointerCancel cancels every active pointer.
func (t *GestureTester) SendPointerCancel() error {
	if len(t.order) == 0 {
		return nil
	}
	id := t.order[len(t.order)-1]
	err := t.send(gestures.PointerEvent{PointerID: id, Position: t.pointers[id], Phase: gestures.PointerPhaseCancel})
	t.pointers = make(map[int64]graphics.Offset)
	t.order = nil
	return err
}

func (t *GestureTester) send(ev gestures.PointerEvent) error {
	if t.control.TouchListener() == nil {
		return ErrNoListener
	}
	if len(t.order) > 1 || ev.Phase == gestures.PointerPhasePointerUp {
		for _, id := range t.order {
			ev.Pointers = append(ev.Pointers, gestures.Pointer{ID: id, Position: t.pointers[id]})
		}
	}
	ev.Time = t.Now()
	consumed, err := t.coordinator.Dispatch(ev)
	t.consumed = append(t.consumed, consumed)
	return err
}

func (t *GestureTester) forget(id int64) {
	delete(t.pointers, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *GestureTester) toPixels(pos graphics.Offset) graphics.Offset {
	if t.ctx.Density <= 0 {
		return pos
	}
	return pos.Scale(t.ctx.Density)
}

func (t *GestureTester) allocPointerID() int64 {
	t.nextPointerID++
	return t.nextPointerID
}
