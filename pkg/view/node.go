package view

import (
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// Node is a concrete View. The zero value is not usable; call NewNode.
type Node struct {
	recognizers      *gestures.Recognizers
	inputTransparent bool
	enabled          bool
	attached         bool
	size             graphics.Size
	listeners        gestures.Listeners[string]

	// OnAccessibilityUpdate, if set, runs from UpdateAccessibilityDelegate.
	OnAccessibilityUpdate func()
}

// NewNode returns an enabled, attached node holding recognizers in order.
func NewNode(recognizers ...gestures.Recognizer) *Node {
	return &Node{
		recognizers: gestures.NewRecognizers(recognizers...),
		enabled:     true,
		attached:    true,
	}
}

func (n *Node) GestureRecognizers() *gestures.Recognizers { return n.recognizers }

func (n *Node) InputTransparent() bool { return n.inputTransparent }

func (n *Node) IsEnabled() bool { return n.enabled }

func (n *Node) IsAttached() bool { return n.attached }

func (n *Node) Size() graphics.Size { return n.size }

func (n *Node) OnPropertyChanged(fn func(name string)) *gestures.Subscription {
	return n.listeners.Add(fn)
}

// ListenerCount returns the number of property listeners.
func (n *Node) ListenerCount() int { return n.listeners.Len() }

// SetInputTransparent updates the flag and notifies listeners on change.
func (n *Node) SetInputTransparent(v bool) {
	if n.inputTransparent == v {
		return
	}
	n.inputTransparent = v
	n.listeners.Notify(PropertyInputTransparent)
}

// SetEnabled updates the flag and notifies listeners on change.
func (n *Node) SetEnabled(v bool) {
	if n.enabled == v {
		return
	}
	n.enabled = v
	n.listeners.Notify(PropertyIsEnabled)
}

// SetAttached updates the attachment state and notifies listeners on change.
func (n *Node) SetAttached(v bool) {
	if n.attached == v {
		return
	}
	n.attached = v
	n.listeners.Notify(PropertyAttached)
}

// SetSize updates the logical size and notifies listeners on change.
func (n *Node) SetSize(s graphics.Size) {
	if n.size == s {
		return
	}
	n.size = s
	n.listeners.Notify(PropertySize)
}

func (n *Node) UpdateAccessibilityDelegate() {
	if n.OnAccessibilityUpdate != nil {
		n.OnAccessibilityUpdate()
	}
}
