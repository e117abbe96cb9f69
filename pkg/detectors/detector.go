// Package detectors turns raw pointer events into recognized gestures.
//
// There are three detector kinds, one per native gesture primitive a control
// hosts: [Scale] for pinch, [TapPanSwipe] for tap, double tap, long press,
// pan and swipe, and [DragDrop] for drag sources and drop targets. Each wraps
// a native handle that the platform may release at any time; [Detector.Valid]
// reports whether it is still usable.
//
// Detectors never hold the view or control directly. They resolve both on
// demand through the functions in [Options], so the coordinator that owns
// them stays the only owner of the binding.
package detectors

import (
	"github.com/go-drift/driftgesture/pkg/config"
	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/logging"
	"github.com/go-drift/driftgesture/pkg/platform"
	"github.com/go-drift/driftgesture/pkg/view"
)

// Kind identifies a detector kind. The set is closed.
type Kind int

const (
	KindScale Kind = iota
	KindTapPanSwipe
	KindDragDrop

	kindCount
)

// Kinds lists every detector kind in dispatch priority order.
var Kinds = [kindCount]Kind{KindScale, KindTapPanSwipe, KindDragDrop}

func (k Kind) String() string {
	switch k {
	case KindScale:
		return "scale"
	case KindTapPanSwipe:
		return "tap_pan_swipe"
	case KindDragDrop:
		return "drag_drop"
	default:
		return "unknown"
	}
}

// Detector is the common surface of every detector kind.
type Detector interface {
	Kind() Kind

	// Feed processes one raw event and reports whether it was consumed.
	Feed(ev gestures.PointerEvent) bool

	// Valid reports whether the native handle is still live.
	Valid() bool

	// Dispose releases the native handle. Calling it twice is harmless.
	Dispose()
}

// Options carries what every detector is built from.
type Options struct {
	// View resolves the currently bound view. It may return nil.
	View func() view.View
	// Control resolves the currently bound native control. It may return nil.
	Control func() platform.Control
	// Settings holds gesture timing and thresholds; zero value means
	// config.Default().
	Settings config.Settings
}

func (o Options) settings() config.Settings {
	if o.Settings == (config.Settings{}) {
		return config.Default()
	}
	return o.Settings
}

func (o Options) view() view.View {
	if o.View == nil {
		return nil
	}
	return o.View()
}

func (o Options) recognizers() *gestures.Recognizers {
	if v := o.view(); v != nil {
		return v.GestureRecognizers()
	}
	return nil
}

// native holds the state shared by every detector: the input context it was
// created from and its native handle.
type native struct {
	kind     Kind
	ctx      *platform.InputContext
	handle   platform.Handle
	pixels   graphics.PixelTransform
	disposed bool
}

// newNative resolves the control's input context and allocates the native
// handle for a detector of kind k.
func newNative(op string, k Kind, opts Options) (native, error) {
	var c platform.Control
	if opts.Control != nil {
		c = opts.Control()
	}
	if c == nil {
		return native{}, &errors.PreconditionError{Op: op, Reason: "no native control bound"}
	}
	ctx := c.InputContext()
	if ctx == nil {
		return native{}, &errors.PreconditionError{Op: op, Reason: "control has no native input context"}
	}
	handles := ctx.Handles
	if handles == nil {
		handles = platform.DefaultHandles
	}
	n := native{
		kind:   k,
		ctx:    ctx,
		handle: handles.Allocate(k.String()),
		pixels: ctx.Pixels(),
	}
	logging.Logger().Debug("detector created", "kind", k.String(), "handle", int64(n.handle.ID()), "view", c.ViewID())
	return n, nil
}

func (n *native) Kind() Kind { return n.kind }

func (n *native) Valid() bool { return !n.disposed && n.handle.Valid() }

// Handle returns the native handle backing the detector.
func (n *native) Handle() platform.Handle { return n.handle }

// Retarget moves the detector onto ctx, the input context of a newly bound
// control. Later events use its density, scheduler and clock; the native
// handle is kept.
func (n *native) Retarget(ctx *platform.InputContext) {
	if ctx == nil || ctx == n.ctx {
		return
	}
	n.ctx = ctx
	n.pixels = ctx.Pixels()
}

func (n *native) release() bool {
	if n.disposed {
		return false
	}
	n.disposed = true
	n.handle.Release()
	platform.NotifyHandleDisposed(n.handle.ID())
	return true
}

func (n *native) scheduler() platform.Scheduler {
	if n.ctx.Scheduler != nil {
		return n.ctx.Scheduler
	}
	return platform.UIScheduler{}
}
