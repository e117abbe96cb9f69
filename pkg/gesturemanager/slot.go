package gesturemanager

import (
	"errors"

	"github.com/go-drift/driftgesture/pkg/detectors"
)

// ErrSlotDisposed is returned by Slot.Get after DisposeIfCreated.
var ErrSlotDisposed = errors.New("gesturemanager: detector slot disposed")

// SlotState is the lifecycle stage of a lazily constructed detector.
type SlotState int

const (
	SlotNotCreated SlotState = iota
	SlotCreated
	SlotDisposed
)

func (s SlotState) String() string {
	switch s {
	case SlotNotCreated:
		return "not_created"
	case SlotCreated:
		return "created"
	case SlotDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Slot holds one detector that is built on first use and never rebuilt.
// A failed build leaves the slot NotCreated so a later Get can retry once a
// control is bound.
type Slot[T detectors.Detector] struct {
	state SlotState
	value T
	build func() (T, error)
}

// NewSlot returns an empty slot that will call build on first Get.
func NewSlot[T detectors.Detector](build func() (T, error)) *Slot[T] {
	return &Slot[T]{build: build}
}

// State returns the slot's lifecycle stage.
func (s *Slot[T]) State() SlotState { return s.state }

// HasBeenCreated reports whether the detector exists and is not disposed.
func (s *Slot[T]) HasBeenCreated() bool { return s.state == SlotCreated }

// Get returns the detector, building it on first call.
func (s *Slot[T]) Get() (T, error) {
	switch s.state {
	case SlotCreated:
		return s.value, nil
	case SlotDisposed:
		var zero T
		return zero, ErrSlotDisposed
	}
	v, err := s.build()
	if err != nil {
		var zero T
		return zero, err
	}
	s.value = v
	s.state = SlotCreated
	return v, nil
}

// Peek returns the detector without building it.
func (s *Slot[T]) Peek() (T, bool) {
	if s.state != SlotCreated {
		var zero T
		return zero, false
	}
	return s.value, true
}

// DisposeIfCreated disposes the detector if it was built and closes the
// slot. Later calls are no-ops.
func (s *Slot[T]) DisposeIfCreated() {
	if s.state == SlotCreated {
		s.value.Dispose()
		var zero T
		s.value = zero
	}
	s.state = SlotDisposed
}
