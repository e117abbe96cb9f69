package gestures

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/graphics"
)

// Kind identifies the interaction a recognizer asks for.
type Kind uint8

const (
	KindTap Kind = iota + 1
	KindPan
	KindSwipe
	KindPinch
	KindDrag
	KindDrop
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindPan:
		return "pan"
	case KindSwipe:
		return "swipe"
	case KindPinch:
		return "pinch"
	case KindDrag:
		return "drag"
	case KindDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// IsDragDrop reports whether the kind is served by the drag-and-drop handler.
func (k Kind) IsDragDrop() bool {
	return k == KindDrag || k == KindDrop
}

// Recognizer is a declarative gesture descriptor attached to a view.
// Implementations are the *XxxGestureRecognizer types in this package; their
// pointer identity is stable and their fields may be reconfigured at runtime.
type Recognizer interface {
	Kind() Kind
}

// GestureStatus is the lifecycle stage reported by continuous gestures.
type GestureStatus int

const (
	GestureStarted GestureStatus = iota
	GestureRunning
	GestureCompleted
	GestureCanceled
)

func (s GestureStatus) String() string {
	switch s {
	case GestureStarted:
		return "started"
	case GestureRunning:
		return "running"
	case GestureCompleted:
		return "completed"
	case GestureCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// TapGestureRecognizer requests tap recognition.
type TapGestureRecognizer struct {
	// NumberOfTapsRequired is 1 for single tap, 2 for double tap. Zero means 1.
	NumberOfTapsRequired int
	OnTapped             func(TappedEvent)
}

func (*TapGestureRecognizer) Kind() Kind { return KindTap }

// TapsRequired returns NumberOfTapsRequired with the zero default applied.
func (r *TapGestureRecognizer) TapsRequired() int {
	if r.NumberOfTapsRequired <= 0 {
		return 1
	}
	return r.NumberOfTapsRequired
}

// TappedEvent is delivered when a tap matching the recognizer completes.
type TappedEvent struct {
	// Position is in logical units relative to the control.
	Position graphics.Offset
	Taps     int
}

// PanGestureRecognizer requests free-form drag tracking.
type PanGestureRecognizer struct {
	// TouchPoints is the number of pointers the pan requires. Zero means 1.
	TouchPoints  int
	OnPanUpdated func(PanUpdatedEvent)
}

func (*PanGestureRecognizer) Kind() Kind { return KindPan }

// RequiredTouchPoints returns TouchPoints with the zero default applied.
func (r *PanGestureRecognizer) RequiredTouchPoints() int {
	if r.TouchPoints <= 0 {
		return 1
	}
	return r.TouchPoints
}

// PanUpdatedEvent reports pan progress. Total is the accumulated translation
// in logical units since the pan started.
type PanUpdatedEvent struct {
	Status    GestureStatus
	Total     graphics.Offset
	GestureID int64
}

// SwipeDirection is a bit set of allowed swipe directions.
type SwipeDirection uint8

const (
	SwipeRight SwipeDirection = 1 << iota
	SwipeLeft
	SwipeUp
	SwipeDown

	SwipeAny = SwipeRight | SwipeLeft | SwipeUp | SwipeDown
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeRight:
		return "right"
	case SwipeLeft:
		return "left"
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	case 0:
		return "none"
	default:
		return "mixed"
	}
}

// SwipeGestureRecognizer requests swipe recognition.
type SwipeGestureRecognizer struct {
	// Direction restricts which directions fire. Zero means SwipeAny.
	Direction SwipeDirection
	// Threshold is the minimum travel in logical units. Zero uses the
	// configured default.
	Threshold float64
	OnSwiped  func(SwipedEvent)
}

func (*SwipeGestureRecognizer) Kind() Kind { return KindSwipe }

// AllowedDirections returns Direction with the zero default applied.
func (r *SwipeGestureRecognizer) AllowedDirections() SwipeDirection {
	if r.Direction == 0 {
		return SwipeAny
	}
	return r.Direction
}

// SwipedEvent reports a completed swipe.
type SwipedEvent struct {
	Direction SwipeDirection
	Distance  float64
}

// PinchGestureRecognizer requests two-finger scale tracking.
type PinchGestureRecognizer struct {
	OnPinchUpdated func(PinchUpdatedEvent)
}

func (*PinchGestureRecognizer) Kind() Kind { return KindPinch }

// PinchUpdatedEvent reports pinch progress. Scale is the incremental factor
// since the previous update. Origin is the focus normalized to the view size
// (0..1 on each axis) when the size is known, else in logical units.
type PinchUpdatedEvent struct {
	Status GestureStatus
	Scale  float64
	Origin graphics.Offset
}

// DragGestureRecognizer marks a view as a drag source. Drags start on long
// press.
type DragGestureRecognizer struct {
	CanDrag bool
	// LongPressDuration overrides the configured long-press timeout when > 0.
	LongPressDuration time.Duration
	OnDragStarting    func(*DragStartingEvent)
	OnDropCompleted   func(DropCompletedEvent)
}

func (*DragGestureRecognizer) Kind() Kind { return KindDrag }

// DragStartingEvent lets the source attach data or cancel the drag.
type DragStartingEvent struct {
	Position graphics.Offset
	Data     map[string]any
	Cancel   bool
}

// DropCompletedEvent is delivered to the source when its drag session ends.
type DropCompletedEvent struct {
	Accepted bool
}

// DropGestureRecognizer marks a view as a drop target.
type DropGestureRecognizer struct {
	AllowDrop   bool
	OnDragOver  func(*DragEvent)
	OnDragLeave func(*DragEvent)
	OnDrop      func(*DropEvent)
}

func (*DropGestureRecognizer) Kind() Kind { return KindDrop }

// DragEvent describes a drag passing over a drop target. Handlers set
// Accepted to signal the target would take the drop.
type DragEvent struct {
	Position graphics.Offset
	Data     map[string]any
	Accepted bool
}

// DropEvent describes a drop on a target. Handlers set Handled when they
// consume the data.
type DropEvent struct {
	Position graphics.Offset
	Data     map[string]any
	Handled  bool
}
