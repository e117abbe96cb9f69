// Package view defines the logical view contract the gesture coordinator
// binds to, and Node, a minimal concrete view.
package view

import (
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// Property names published through OnPropertyChanged.
const (
	PropertyInputTransparent = "InputTransparent"
	PropertyIsEnabled        = "IsEnabled"
	PropertySize             = "Size"
	PropertyAttached         = "Attached"
)

// View is a logical UI element that declares gesture recognizers.
type View interface {
	// GestureRecognizers returns the ordered recognizer collection. The
	// collection publishes its own change notifications.
	GestureRecognizers() *gestures.Recognizers

	// InputTransparent reports whether input should pass through the view.
	InputTransparent() bool

	// IsEnabled reports whether the view accepts input.
	IsEnabled() bool

	// OnPropertyChanged registers fn to receive the name of each changed
	// property.
	OnPropertyChanged(fn func(name string)) *gestures.Subscription
}

// Sizer is implemented by views that know their logical size. Pinch origins
// are normalized against it.
type Sizer interface {
	Size() graphics.Size
}

// Attachable is implemented by views that track whether they are attached to
// a live window.
type Attachable interface {
	IsAttached() bool
}

// AccessibilityDelegateUpdater is implemented by views that keep
// accessibility bookkeeping in sync with their recognizer set.
type AccessibilityDelegateUpdater interface {
	UpdateAccessibilityDelegate()
}

// IsAttached reports whether v is attached. Views that do not implement
// Attachable are treated as attached.
func IsAttached(v View) bool {
	if a, ok := v.(Attachable); ok {
		return a.IsAttached()
	}
	return v != nil
}

// SizeOf returns the logical size of v, or the zero Size when unknown.
func SizeOf(v View) graphics.Size {
	if s, ok := v.(Sizer); ok {
		return s.Size()
	}
	return graphics.Size{}
}
