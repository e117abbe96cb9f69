package detectors

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// TapPanSwipe is the composite detector for single-pointer-driven gestures:
// single and double tap, long press (which starts drags), pan and swipe.
// Disambiguation between them is internal: movement beyond the touch slop
// turns a press into a scroll, which cancels pending taps and long press.
type TapPanSwipe struct {
	native
	opts  Options
	tap   tapHandler
	pan   panHandler
	swipe swipeHandler
	drag  *DragDrop

	longPressEnabled bool
	longPressTimeout time.Duration

	down       bool
	downPos    graphics.Offset
	downTime   time.Time
	pointers   int
	scrolling  bool
	longPress  bool
	secondDown bool

	lastUpTime time.Time
	lastUpPos  graphics.Offset

	cancelLongPress func() bool
	cancelTapTimer  func() bool
	pendingTap      *graphics.Offset
}

// NewTapPanSwipe builds the composite detector. drag may be nil when the
// view has no drag-and-drop handler; long press then never starts a drag.
func NewTapPanSwipe(opts Options, drag *DragDrop) (*TapPanSwipe, error) {
	n, err := newNative("detectors.NewTapPanSwipe", KindTapPanSwipe, opts)
	if err != nil {
		return nil, err
	}
	d := &TapPanSwipe{
		native: n,
		opts:   opts,
		tap:    tapHandler{opts: opts},
		pan:    panHandler{opts: opts},
		swipe:  swipeHandler{opts: opts},
		drag:   drag,
	}
	d.UpdateLongPressSettings()
	return d, nil
}

// UpdateLongPressSettings re-reads the recognizer set: long press is enabled
// only when a drag recognizer can start a drag, and its duration override
// (if any) replaces the configured timeout.
func (d *TapPanSwipe) UpdateLongPressSettings() {
	d.longPressEnabled = false
	d.longPressTimeout = d.opts.settings().LongPressTimeout
	for _, r := range d.opts.recognizers().All() {
		drag, ok := r.(*gestures.DragGestureRecognizer)
		if !ok || !drag.CanDrag {
			continue
		}
		d.longPressEnabled = true
		if drag.LongPressDuration > 0 {
			d.longPressTimeout = drag.LongPressDuration
		}
		break
	}
}

// LongPressEnabled reports whether a press-and-hold will be recognized.
func (d *TapPanSwipe) LongPressEnabled() bool { return d.longPressEnabled }

// LongPressTimeout returns the hold duration that triggers a long press.
func (d *TapPanSwipe) LongPressTimeout() time.Duration { return d.longPressTimeout }

// Scrolling reports whether the current press turned into a pan/swipe.
func (d *TapPanSwipe) Scrolling() bool { return d.scrolling }

func (d *TapPanSwipe) Feed(ev gestures.PointerEvent) bool {
	if d.disposed {
		return false
	}
	switch ev.Phase {
	case gestures.PointerPhaseDown:
		return d.onDown(ev)
	case gestures.PointerPhasePointerDown:
		d.pointers = ev.PointerCount()
		d.stopLongPress()
		return d.down
	case gestures.PointerPhaseMove:
		return d.onMove(ev)
	case gestures.PointerPhasePointerUp:
		d.pointers = ev.PointerCount() - 1
		return d.down
	case gestures.PointerPhaseUp:
		return d.onUp(ev)
	case gestures.PointerPhaseCancel:
		consumed := d.endScrolling(gestures.GestureCanceled)
		d.reset()
		return consumed
	}
	return false
}

func (d *TapPanSwipe) onDown(ev gestures.PointerEvent) bool {
	settings := d.opts.settings()
	pos := d.pixels.Point(ev.Position)
	at := d.eventTime(ev)

	d.stopLongPress()
	d.secondDown = false
	if d.pendingTap != nil && at.Sub(d.lastUpTime) <= settings.DoubleTapTimeout &&
		pos.Sub(d.lastUpPos).Distance() <= settings.TouchSlop*4 {
		d.stopTapTimer()
		d.pendingTap = nil
		d.secondDown = true
	}

	d.down = true
	d.downPos = pos
	d.downTime = at
	d.pointers = ev.PointerCount()
	d.scrolling = false
	d.longPress = false
	d.swipe.reset()

	if d.longPressEnabled && !d.secondDown {
		d.cancelLongPress = d.scheduler().AfterFunc(d.longPressTimeout, d.onLongPressTimer)
	}
	return d.opts.recognizers().Len() > 0
}

func (d *TapPanSwipe) onMove(ev gestures.PointerEvent) bool {
	if !d.down || d.longPress {
		return d.longPress
	}
	pos := d.pixels.Point(ev.Focus())
	total := pos.Sub(d.downPos)
	if ev.PointerCount() > d.pointers {
		d.pointers = ev.PointerCount()
	}
	if !d.scrolling {
		if total.Distance() <= d.opts.settings().TouchSlop {
			return true
		}
		d.scrolling = true
		d.secondDown = false
		d.stopLongPress()
		d.stopTapTimer()
		d.pendingTap = nil
	}
	panned := d.pan.onPan(total, d.pointers)
	swiped := d.swipe.onSwipe(total)
	return panned || swiped
}

func (d *TapPanSwipe) onUp(ev gestures.PointerEvent) bool {
	if !d.down {
		return false
	}
	settings := d.opts.settings()
	pos := d.pixels.Point(ev.Position)
	at := d.eventTime(ev)
	d.stopLongPress()

	consumed := false
	switch {
	case d.scrolling:
		consumed = d.endScrolling(gestures.GestureCompleted)
	case d.longPress:
		consumed = true
	case d.secondDown:
		consumed = d.tap.onTap(2, pos)
		if !consumed {
			// No double-tap recognizer: treat the second tap as a single.
			consumed = d.tap.onTap(1, pos)
		}
	case d.tap.wantsTaps(2):
		// Hold the single tap until the double-tap window closes.
		p := pos
		d.pendingTap = &p
		d.cancelTapTimer = d.scheduler().AfterFunc(settings.DoubleTapTimeout, d.onTapTimer)
		consumed = true
	default:
		consumed = d.tap.onTap(1, pos)
	}

	d.lastUpTime = at
	d.lastUpPos = pos
	d.down = false
	d.scrolling = false
	d.longPress = false
	d.secondDown = false
	return consumed
}

// endScrolling completes or cancels an in-progress pan and, on completion,
// evaluates swipes. Pointer up and cancel always end scrolling.
func (d *TapPanSwipe) endScrolling(status gestures.GestureStatus) bool {
	if !d.scrolling {
		return false
	}
	d.scrolling = false
	ended := d.pan.end(status)
	if status == gestures.GestureCompleted {
		if d.swipe.complete() {
			ended = true
		}
	} else {
		d.swipe.reset()
	}
	return ended
}

// Interrupt abandons the current press: pending timers stop and an active pan
// is canceled. The coordinator calls it when a scale gesture takes over the
// event stream.
func (d *TapPanSwipe) Interrupt() {
	d.endScrolling(gestures.GestureCanceled)
	d.reset()
}

func (d *TapPanSwipe) reset() {
	d.stopLongPress()
	d.stopTapTimer()
	d.pendingTap = nil
	d.down = false
	d.scrolling = false
	d.longPress = false
	d.secondDown = false
}

func (d *TapPanSwipe) onLongPressTimer() {
	defer errors.Recover("detectors.TapPanSwipe.onLongPressTimer")
	d.cancelLongPress = nil
	if d.disposed || !d.down || d.scrolling {
		return
	}
	d.longPress = true
	if d.drag != nil {
		d.drag.onLongPress(d.downPos)
	}
}

func (d *TapPanSwipe) onTapTimer() {
	defer errors.Recover("detectors.TapPanSwipe.onTapTimer")
	d.cancelTapTimer = nil
	if d.disposed || d.pendingTap == nil {
		return
	}
	pos := *d.pendingTap
	d.pendingTap = nil
	d.tap.onTap(1, pos)
}

func (d *TapPanSwipe) stopLongPress() {
	if d.cancelLongPress != nil {
		d.cancelLongPress()
		d.cancelLongPress = nil
	}
}

func (d *TapPanSwipe) stopTapTimer() {
	if d.cancelTapTimer != nil {
		d.cancelTapTimer()
		d.cancelTapTimer = nil
	}
}

func (d *TapPanSwipe) eventTime(ev gestures.PointerEvent) time.Time {
	if !ev.Time.IsZero() {
		return ev.Time
	}
	return d.ctx.Clock()()
}

// Dispose stops pending timers and releases the native handle. Recognizers
// are not notified.
func (d *TapPanSwipe) Dispose() {
	d.stopLongPress()
	d.stopTapTimer()
	d.pendingTap = nil
	d.release()
}
