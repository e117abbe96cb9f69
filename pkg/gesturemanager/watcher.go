package gesturemanager

import (
	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/logging"
	"github.com/go-drift/driftgesture/pkg/view"
)

// RecognizerWatcher keeps the coordinator's wiring in step with the bound
// view. It holds the two subscriptions acquired on bind and releases them on
// every unbind path.
type RecognizerWatcher struct {
	c          *Coordinator
	collection *gestures.Subscription
	properties *gestures.Subscription
}

// Watching reports whether the watcher holds live subscriptions.
func (w *RecognizerWatcher) Watching() bool {
	return w.collection != nil || w.properties != nil
}

func (w *RecognizerWatcher) watch(v view.View) {
	w.stop()
	if v == nil {
		return
	}
	w.collection = v.GestureRecognizers().OnChanged(w.onCollectionChanged)
	w.properties = v.OnPropertyChanged(w.onPropertyChanged)
}

func (w *RecognizerWatcher) stop() {
	w.collection.Cancel()
	w.properties.Cancel()
	w.collection = nil
	w.properties = nil
}

func (w *RecognizerWatcher) onCollectionChanged(ch gestures.CollectionChange) {
	logging.Logger().Debug("recognizers changed", "action", ch.Action.String(), "view", w.c.viewID())
	w.sync()
	if v := w.c.view; v != nil && view.IsAttached(v) {
		if u, ok := v.(view.AccessibilityDelegateUpdater); ok {
			u.UpdateAccessibilityDelegate()
		}
	}
}

func (w *RecognizerWatcher) onPropertyChanged(name string) {
	switch name {
	case view.PropertyInputTransparent, view.PropertyIsEnabled:
		w.c.refreshFlags()
	}
}

// sync re-evaluates drag-and-drop, the touch listener and the long-press
// settings against the current recognizer set.
func (w *RecognizerWatcher) sync() {
	if err := w.updateDragAndDrop(); err != nil {
		errors.Report(&errors.GestureError{
			Op:     "gesturemanager.updateDragAndDrop",
			Kind:   kindOf(err),
			Err:    err,
			ViewID: w.c.viewID(),
		})
	}
	w.c.setupGestures()
	if tps, ok := w.c.registry.tps.Peek(); ok {
		tps.UpdateLongPressSettings()
	}
}

func (w *RecognizerWatcher) updateDragAndDrop() error {
	c := w.c
	if c.view == nil || c.control == nil || !c.control.IsAlive() {
		return nil
	}
	if dd, ok := c.registry.dragDrop.Peek(); ok {
		dd.SetupForDrop()
		return nil
	}
	if c.view.GestureRecognizers().Len() == 0 {
		return nil
	}
	dd, err := c.registry.dragDrop.Get()
	if err != nil {
		return err
	}
	dd.SetupForDrop()
	return nil
}

func kindOf(err error) errors.ErrorKind {
	if errors.IsPrecondition(err) {
		return errors.KindPrecondition
	}
	return errors.KindDetector
}
