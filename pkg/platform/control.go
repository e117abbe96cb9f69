package platform

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// TouchListener receives raw touches from a control. OnTouch reports whether
// the event was consumed; unconsumed events propagate to the parent.
type TouchListener interface {
	OnTouch(ev gestures.PointerEvent) bool
}

// DragAction is the stage of a platform drag session seen by a drop target.
type DragAction int

const (
	DragActionStarted DragAction = iota
	DragActionEntered
	DragActionLocation
	DragActionDrop
	DragActionExited
	DragActionEnded
)

func (a DragAction) String() string {
	switch a {
	case DragActionStarted:
		return "started"
	case DragActionEntered:
		return "entered"
	case DragActionLocation:
		return "location"
	case DragActionDrop:
		return "drop"
	case DragActionExited:
		return "exited"
	case DragActionEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// DragEvent is a platform drag-and-drop event delivered to a drop target.
// Position is in native pixels. Result is set on DragActionEnded.
type DragEvent struct {
	Action   DragAction
	Position graphics.Offset
	Data     map[string]any
	Result   bool
}

// DropTarget receives drag events for a control. OnDrag reports whether the
// target accepts the drag (or, for DragActionDrop, consumed the drop).
type DropTarget interface {
	OnDrag(ev DragEvent) bool
}

// DragSource is notified when a drag it started ends.
type DragSource interface {
	OnDragEnded(accepted bool)
}

// InputContext is what a control offers to gesture detectors: display
// density, the timer scheduler, and the table native handles are allocated
// from.
type InputContext struct {
	Density   float64
	Scheduler Scheduler
	Handles   *HandleTable
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

// Pixels returns the pixel-to-logical transform for the context density.
func (c *InputContext) Pixels() graphics.PixelTransform {
	return graphics.NewPixelTransform(c.Density)
}

// Clock returns c.Now or time.Now.
func (c *InputContext) Clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

// Control is a native, platform-owned view that can receive input.
type Control interface {
	// ViewID returns the native view id.
	ViewID() int64

	// IsAlive reports whether the native view still exists.
	IsAlive() bool

	// InputContext returns the native input context, or nil if the control
	// has none (not yet attached or already destroyed).
	InputContext() *InputContext

	// SetTouchListener installs l as the sole touch listener. Nil removes it.
	SetTouchListener(l TouchListener)

	// TouchListener returns the installed listener, if any.
	TouchListener() TouchListener

	// SetDropTarget installs t as the drop target. Nil removes it.
	SetDropTarget(t DropTarget)

	// DropTarget returns the installed drop target, if any.
	DropTarget() DropTarget

	// StartDrag begins a platform drag session carrying data.
	StartDrag(data map[string]any, source DragSource) bool
}

// NativeControl is the Control implementation backed by a HandleTable entry.
type NativeControl struct {
	viewID   int64
	viewType string
	handle   Handle
	ctx      *InputContext

	listener   TouchListener
	dropTarget DropTarget
	dragSource DragSource
	dragData   map[string]any
}

// NewNativeControl creates a live control, allocates its handle from
// ctx.Handles (DefaultHandles when nil) and registers it for native touch
// delivery.
func NewNativeControl(viewType string, ctx *InputContext) *NativeControl {
	if ctx != nil && ctx.Handles == nil {
		ctx.Handles = DefaultHandles
	}
	handles := DefaultHandles
	if ctx != nil {
		handles = ctx.Handles
	}
	c := &NativeControl{
		viewID:   controls.nextID.Add(1),
		viewType: viewType,
		handle:   handles.Allocate(viewType),
		ctx:      ctx,
	}
	controls.add(c)
	return c
}

func (c *NativeControl) ViewID() int64 { return c.viewID }

// ViewType returns the native type name.
func (c *NativeControl) ViewType() string { return c.viewType }

// Handle returns the control's own native handle.
func (c *NativeControl) Handle() Handle { return c.handle }

func (c *NativeControl) IsAlive() bool { return c.handle.Valid() }

func (c *NativeControl) InputContext() *InputContext {
	if !c.IsAlive() {
		return nil
	}
	return c.ctx
}

func (c *NativeControl) SetTouchListener(l TouchListener) { c.listener = l }

func (c *NativeControl) TouchListener() TouchListener { return c.listener }

func (c *NativeControl) SetDropTarget(t DropTarget) { c.dropTarget = t }

func (c *NativeControl) DropTarget() DropTarget { return c.dropTarget }

func (c *NativeControl) StartDrag(data map[string]any, source DragSource) bool {
	if !c.IsAlive() {
		return false
	}
	c.dragData = data
	c.dragSource = source
	return true
}

// ActiveDrag returns the data of the drag session started on this control.
func (c *NativeControl) ActiveDrag() (map[string]any, bool) {
	return c.dragData, c.dragSource != nil
}

// EndDrag finishes the drag session started on this control.
func (c *NativeControl) EndDrag(accepted bool) {
	src := c.dragSource
	c.dragSource = nil
	c.dragData = nil
	if src != nil {
		src.OnDragEnded(accepted)
	}
}

// DeliverTouch hands ev to the installed listener, as the native input
// callback would. It returns false when no listener is installed or the
// control is dead.
func (c *NativeControl) DeliverTouch(ev gestures.PointerEvent) bool {
	if !c.IsAlive() || c.listener == nil {
		return false
	}
	return c.listener.OnTouch(ev)
}

// DeliverDrag hands ev to the installed drop target.
func (c *NativeControl) DeliverDrag(ev DragEvent) bool {
	if !c.IsAlive() || c.dropTarget == nil {
		return false
	}
	return c.dropTarget.OnDrag(ev)
}

// Destroy releases the native view, as the platform does when it tears the
// view down. Listeners are left in place; callers must tolerate a dead
// control.
func (c *NativeControl) Destroy() {
	c.handle.Release()
	controls.remove(c.viewID)
}

// controlRegistry maps view ids to live controls for native touch delivery.
type controlRegistry struct {
	mu     sync.RWMutex
	byID   map[int64]*NativeControl
	nextID atomic.Int64
}

var controls = &controlRegistry{byID: make(map[int64]*NativeControl)}

func (r *controlRegistry) add(c *NativeControl) {
	r.mu.Lock()
	r.byID[c.viewID] = c
	r.mu.Unlock()
}

func (r *controlRegistry) remove(id int64) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

// LookupControl returns the registered control for viewID.
func LookupControl(viewID int64) (*NativeControl, bool) {
	controls.mu.RLock()
	c, ok := controls.byID[viewID]
	controls.mu.RUnlock()
	return c, ok
}
