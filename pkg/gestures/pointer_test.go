package gestures

import (
	"math"
	"testing"

	"github.com/go-drift/driftgesture/pkg/graphics"
)

func TestPointerEventFocusAndSpan(t *testing.T) {
	ev := PointerEvent{
		PointerID: 2,
		Phase:     PointerPhaseMove,
		Pointers: []Pointer{
			{ID: 1, Position: graphics.Offset{X: 0, Y: 0}},
			{ID: 2, Position: graphics.Offset{X: 100, Y: 0}},
		},
	}
	if f := ev.Focus(); !f.Equal(graphics.Offset{X: 50, Y: 0}) {
		t.Errorf("Focus() = %v", f)
	}
	if s := ev.Span(); math.Abs(s-100) > 1e-9 {
		t.Errorf("Span() = %v, want 100", s)
	}
	if ev.PointerCount() != 2 {
		t.Errorf("PointerCount() = %d", ev.PointerCount())
	}

	ev.Phase = PointerPhasePointerUp
	if f := ev.Focus(); !f.Equal(graphics.Offset{X: 0, Y: 0}) {
		t.Errorf("lifting pointer should be excluded from focus, got %v", f)
	}
	if s := ev.Span(); s != 0 {
		t.Errorf("Span() with one remaining pointer = %v, want 0", s)
	}
}

func TestPointerEventSingle(t *testing.T) {
	ev := PointerEvent{Position: graphics.Offset{X: 3, Y: 4}, Phase: PointerPhaseDown}
	if ev.PointerCount() != 1 {
		t.Errorf("PointerCount() = %d, want 1", ev.PointerCount())
	}
	if !ev.Focus().Equal(ev.Position) {
		t.Error("single pointer focus should be its position")
	}
	if PointerPhaseDown.IsTerminal() || !PointerPhaseCancel.IsTerminal() {
		t.Error("IsTerminal mismatch")
	}
}
