package view

import (
	"testing"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

func TestNodeDefaults(t *testing.T) {
	n := NewNode(&gestures.TapGestureRecognizer{})
	if !n.IsEnabled() || n.InputTransparent() || !n.IsAttached() {
		t.Error("new node should be enabled, opaque and attached")
	}
	if n.GestureRecognizers().Len() != 1 {
		t.Errorf("recognizers = %d, want 1", n.GestureRecognizers().Len())
	}
	if !IsAttached(n) {
		t.Error("IsAttached(node) = false")
	}
}

func TestNodePropertyNotifications(t *testing.T) {
	n := NewNode()
	var names []string
	sub := n.OnPropertyChanged(func(name string) { names = append(names, name) })

	n.SetEnabled(false)
	n.SetEnabled(false)
	n.SetInputTransparent(true)
	n.SetSize(graphics.Size{Width: 10, Height: 20})
	n.SetAttached(false)

	want := []string{PropertyIsEnabled, PropertyInputTransparent, PropertySize, PropertyAttached}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if SizeOf(n) != (graphics.Size{Width: 10, Height: 20}) {
		t.Errorf("SizeOf = %v", SizeOf(n))
	}

	sub.Cancel()
	if n.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after cancel", n.ListenerCount())
	}
}
