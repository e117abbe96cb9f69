// Package gesturemanager routes a native control's touch stream to the
// gesture detectors a view needs.
//
// A [Coordinator] binds one view to one native control at a time. It builds
// detectors lazily, the first time an event needs them, and feeds each event
// through a fixed dispatch table: the scale detector first when the view has
// a pinch recognizer, then the tap/pan/swipe composite unless a scale is in
// progress. Detectors whose native handle was released by the platform are
// skipped, never rebuilt.
//
// All methods must be called on the UI thread.
package gesturemanager

import (
	"github.com/go-drift/driftgesture/pkg/config"
	"github.com/go-drift/driftgesture/pkg/detectors"
	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/logging"
	"github.com/go-drift/driftgesture/pkg/platform"
	"github.com/go-drift/driftgesture/pkg/view"
)

// Coordinator routes touch input from a native control to the detectors
// required by a view's gesture recognizers.
type Coordinator struct {
	view     view.View
	control  platform.Control
	settings config.Settings
	registry *DetectorRegistry
	watcher  RecognizerWatcher

	inputTransparent bool
	enabled          bool
	scaleActive      bool

	// last is the control most recently unbound, kept so a late touch after
	// Dispose can still unhook.
	last     platform.Control
	disposed bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSettings sets the gesture thresholds handed to every detector.
func WithSettings(s config.Settings) Option {
	return func(c *Coordinator) { c.settings = s }
}

// New returns an unbound coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{settings: config.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.watcher.c = c
	c.registry = newDetectorRegistry(detectors.Options{
		View:     func() view.View { return c.view },
		Control:  func() platform.Control { return c.control },
		Settings: c.settings,
	})
	return c
}

// View returns the bound view, or nil.
func (c *Coordinator) View() view.View { return c.view }

// Control returns the bound control, or nil.
func (c *Coordinator) Control() platform.Control { return c.control }

// Registry exposes the detector slots.
func (c *Coordinator) Registry() *DetectorRegistry { return c.registry }

// Settings returns the thresholds the coordinator was built with.
func (c *Coordinator) Settings() config.Settings { return c.settings }

// HookInstalled reports whether the coordinator is the bound control's touch
// listener.
func (c *Coordinator) HookInstalled() bool {
	return c.control != nil && c.control.TouchListener() == platform.TouchListener(c)
}

// Enabled returns the cached enabled flag of the bound view.
func (c *Coordinator) Enabled() bool { return c.enabled }

// InputTransparent returns the cached input-transparent flag of the bound
// view.
func (c *Coordinator) InputTransparent() bool { return c.inputTransparent }

// Watching reports whether view subscriptions are live.
func (c *Coordinator) Watching() bool { return c.watcher.Watching() }

// Disposed reports whether Dispose has run.
func (c *Coordinator) Disposed() bool { return c.disposed }

// Bind attaches the coordinator to v and ctl, replacing any previous pair.
// Binding the current pair again does nothing and Bind(nil, nil) unbinds.
// Both values are compared with ==, so their dynamic types must be
// comparable. Detectors built for an earlier control are kept and move onto
// the new control's input context, so its density and scheduler apply from
// the next event.
func (c *Coordinator) Bind(v view.View, ctl platform.Control) error {
	if c.disposed {
		return &errors.PreconditionError{Op: "gesturemanager.Bind", Reason: "coordinator disposed"}
	}
	if v == c.view && ctl == c.control {
		return nil
	}
	c.unbind()
	if v == nil && ctl == nil {
		return nil
	}

	c.view = v
	c.control = ctl
	c.last = nil
	if ctl != nil {
		c.registry.retarget(ctl.InputContext())
	}
	c.watcher.watch(v)
	c.refreshFlags()
	c.watcher.sync()
	logging.Logger().Info("gesture coordinator bound", "view", c.viewID(), "hook", c.HookInstalled())
	return nil
}

// unbind detaches from the current pair. Detectors survive; only their
// wiring to the old control is undone.
func (c *Coordinator) unbind() {
	if c.view == nil && c.control == nil {
		return
	}
	logging.Logger().Info("gesture coordinator unbound", "view", c.viewID())
	if c.HookInstalled() {
		c.control.SetTouchListener(nil)
	}
	c.watcher.stop()
	if dd, ok := c.registry.dragDrop.Peek(); ok {
		dd.Disarm()
	}
	c.interruptScale()
	c.interruptTapPanSwipe()
	c.scaleActive = false
	c.last = c.control
	c.view = nil
	c.control = nil
	c.inputTransparent = false
	c.enabled = false
}

// Dispatch feeds ev to the detectors the view needs and reports whether any
// of them consumed it. Construction failures and detector panics are
// returned; a detector whose native handle was released is skipped.
func (c *Coordinator) Dispatch(ev gestures.PointerEvent) (bool, error) {
	if c.disposed || c.view == nil || c.control == nil || !c.control.IsAlive() {
		return false, nil
	}
	if !c.enabled || c.inputTransparent {
		return false, nil
	}
	if c.view.GestureRecognizers().Len() == 0 {
		return false, nil
	}
	return c.route(ev)
}

// OnTouch implements platform.TouchListener.
func (c *Coordinator) OnTouch(ev gestures.PointerEvent) bool {
	if c.disposed {
		if c.last != nil && c.last.TouchListener() == platform.TouchListener(c) {
			c.last.SetTouchListener(nil)
		}
		return false
	}
	consumed, err := c.Dispatch(ev)
	if err != nil {
		ge, ok := err.(*errors.GestureError)
		if !ok {
			ge = &errors.GestureError{
				Op:     "gesturemanager.OnTouch",
				Kind:   kindOf(err),
				Err:    err,
				ViewID: c.viewID(),
			}
		}
		errors.Report(ge)
	}
	return consumed
}

// Dispose unbinds and releases every detector that was built. Later calls do
// nothing.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.unbind()
	c.registry.disposeAll()
	c.disposed = true
	logging.Logger().Info("gesture coordinator disposed")
}

func (c *Coordinator) refreshFlags() {
	if c.view == nil {
		c.inputTransparent = false
		c.enabled = false
		return
	}
	c.inputTransparent = c.view.InputTransparent()
	c.enabled = c.view.IsEnabled()
}

// setupGestures installs the touch listener when the view has recognizers
// and removes it when the set is empty.
func (c *Coordinator) setupGestures() {
	if c.control == nil {
		return
	}
	if c.view != nil && c.view.GestureRecognizers().Len() > 0 {
		if !c.HookInstalled() {
			c.control.SetTouchListener(c)
		}
		return
	}
	if c.HookInstalled() {
		c.control.SetTouchListener(nil)
	}
}

func (c *Coordinator) viewID() int64 {
	if c.control == nil {
		return 0
	}
	return c.control.ViewID()
}
