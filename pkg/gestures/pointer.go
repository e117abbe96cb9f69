package gestures

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/graphics"
)

// PointerPhase describes what happened to the pointer that changed.
type PointerPhase int

const (
	// PointerPhaseDown is the first pointer touching down.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove is movement of one or more active pointers.
	PointerPhaseMove
	// PointerPhaseUp is the last pointer lifting.
	PointerPhaseUp
	// PointerPhaseCancel aborts the whole sequence.
	PointerPhaseCancel
	// PointerPhasePointerDown is an additional pointer touching down while
	// others are active.
	PointerPhasePointerDown
	// PointerPhasePointerUp is a non-last pointer lifting.
	PointerPhasePointerUp
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	case PointerPhasePointerDown:
		return "pointer_down"
	case PointerPhasePointerUp:
		return "pointer_up"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the phase ends the pointer sequence.
func (p PointerPhase) IsTerminal() bool {
	return p == PointerPhaseUp || p == PointerPhaseCancel
}

// Pointer is one active contact.
type Pointer struct {
	ID       int64
	Position graphics.Offset
}

// PointerEvent is a raw touch event in native pixel coordinates.
//
// PointerID, Position and Delta describe the pointer that changed. Pointers
// lists every contact currently down, including one that is lifting in a
// PointerUp/Up event. A single-pointer event may leave Pointers empty.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Delta     graphics.Offset
	Phase     PointerPhase
	Pointers  []Pointer
	Time      time.Time
}

// PointerCount returns the number of active contacts.
func (e PointerEvent) PointerCount() int {
	if len(e.Pointers) == 0 {
		return 1
	}
	return len(e.Pointers)
}

// Focus returns the centroid of the active pointers. A pointer lifting in
// this event is excluded so the focus does not jump when it leaves.
func (e PointerEvent) Focus() graphics.Offset {
	if len(e.Pointers) == 0 {
		return e.Position
	}
	lifting := e.Phase == PointerPhasePointerUp
	var sum graphics.Offset
	n := 0
	for _, p := range e.Pointers {
		if lifting && p.ID == e.PointerID {
			continue
		}
		sum = sum.Add(p.Position)
		n++
	}
	if n == 0 {
		return e.Position
	}
	return sum.Scale(1 / float64(n))
}

// Span returns the average distance of the active pointers from the focus.
// Single-pointer events have a span of zero.
func (e PointerEvent) Span() float64 {
	focus := e.Focus()
	lifting := e.Phase == PointerPhasePointerUp
	var total float64
	n := 0
	for _, p := range e.Pointers {
		if lifting && p.ID == e.PointerID {
			continue
		}
		total += p.Position.Sub(focus).Distance()
		n++
	}
	if n < 2 {
		return 0
	}
	return 2 * total / float64(n)
}
