package gestures

import "testing"

func TestRecognizersPreserveOrder(t *testing.T) {
	tap := &TapGestureRecognizer{}
	pan := &PanGestureRecognizer{}
	pinch := &PinchGestureRecognizer{}
	r := NewRecognizers(tap, nil, pan)
	r.Insert(0, pinch)

	want := []Recognizer{pinch, tap, pan}
	if r.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(want))
	}
	for i, rec := range r.All() {
		if rec != want[i] {
			t.Errorf("At(%d) = %T, want %T", i, rec, want[i])
		}
	}
	if !r.HasKind(KindPinch) || r.HasKind(KindSwipe) {
		t.Error("HasKind mismatch")
	}
}

func TestRecognizersNotifications(t *testing.T) {
	r := NewRecognizers()
	var changes []CollectionChange
	sub := r.OnChanged(func(c CollectionChange) { changes = append(changes, c) })

	tap := &TapGestureRecognizer{}
	swipe := &SwipeGestureRecognizer{}
	r.Add(tap)
	r.Set(0, swipe)
	r.Remove(swipe)
	r.Add(tap)
	r.Clear()
	r.Clear()

	wantActions := []CollectionAction{CollectionAdd, CollectionReplace, CollectionRemove, CollectionAdd, CollectionReset}
	if len(changes) != len(wantActions) {
		t.Fatalf("got %d changes, want %d", len(changes), len(wantActions))
	}
	for i, a := range wantActions {
		if changes[i].Action != a {
			t.Errorf("change %d = %v, want %v", i, changes[i].Action, a)
		}
	}
	if changes[1].Old != tap || changes[1].New != swipe {
		t.Error("replace change should carry old and new")
	}

	sub.Cancel()
	sub.Cancel()
	r.Add(tap)
	if len(changes) != len(wantActions) {
		t.Error("canceled listener should not be notified")
	}
	if r.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", r.ListenerCount())
	}
}

func TestListenerRemovedDuringNotify(t *testing.T) {
	r := NewRecognizers()
	var second *Subscription
	calls := 0
	r.OnChanged(func(CollectionChange) { second.Cancel() })
	second = r.OnChanged(func(CollectionChange) { calls++ })

	r.Add(&TapGestureRecognizer{})
	if calls != 0 {
		t.Errorf("listener canceled mid-notify was called %d times", calls)
	}
}

func TestRecognizerDefaults(t *testing.T) {
	if got := (&TapGestureRecognizer{}).TapsRequired(); got != 1 {
		t.Errorf("TapsRequired() = %d, want 1", got)
	}
	if got := (&PanGestureRecognizer{}).RequiredTouchPoints(); got != 1 {
		t.Errorf("RequiredTouchPoints() = %d, want 1", got)
	}
	if got := (&SwipeGestureRecognizer{}).AllowedDirections(); got != SwipeAny {
		t.Errorf("AllowedDirections() = %v, want any", got)
	}
	if !KindDrag.IsDragDrop() || !KindDrop.IsDragDrop() || KindPan.IsDragDrop() {
		t.Error("IsDragDrop mismatch")
	}
}
