package detectors

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// quickScaleSpan is the vertical travel, in logical units, that doubles or
// halves the scale during a quick scale.
const quickScaleSpan = 200.0

// Scale recognizes two-pointer pinch gestures and, when enabled, quick scale
// (double tap, then drag vertically).
type Scale struct {
	native
	opts  Options
	pinch pinchHandler

	inProgress bool
	prevSpan   float64
	focus      graphics.Offset

	// quick scale
	lastUpTime  time.Time
	lastUpPos   graphics.Offset
	quickAnchor *graphics.Offset
	quickPrevY  float64
}

// NewScale builds a Scale detector on the bound control's input context.
func NewScale(opts Options) (*Scale, error) {
	n, err := newNative("detectors.NewScale", KindScale, opts)
	if err != nil {
		return nil, err
	}
	return &Scale{
		native: n,
		opts:   opts,
		pinch:  pinchHandler{opts: opts},
	}, nil
}

// InProgress reports whether a scale gesture is under way. While it is, the
// coordinator withholds events from the tap/pan/swipe detector.
func (s *Scale) InProgress() bool { return s.inProgress }

func (s *Scale) Feed(ev gestures.PointerEvent) bool {
	if s.disposed {
		return false
	}
	settings := s.opts.settings()
	focus := s.pixels.Point(ev.Focus())
	span := s.pixels.FromPixels(ev.Span())

	switch ev.Phase {
	case gestures.PointerPhaseDown:
		// A new sequence ends a scale whose last pointer never came up here.
		s.endQuickScale(gestures.GestureCanceled)
		if s.inProgress {
			s.end(gestures.GestureCanceled)
		}
		at := s.eventTime(ev)
		if settings.QuickScaleEnabled && !s.lastUpTime.IsZero() &&
			at.Sub(s.lastUpTime) <= settings.DoubleTapTimeout &&
			focus.Sub(s.lastUpPos).Distance() <= settings.TouchSlop*4 {
			anchor := focus
			s.quickAnchor = &anchor
			s.quickPrevY = focus.Y
		}
		return false

	case gestures.PointerPhasePointerDown:
		s.endQuickScale(gestures.GestureCanceled)
		if s.inProgress {
			s.prevSpan = span
			s.focus = focus
			return true
		}
		if ev.PointerCount() >= 2 && span >= settings.MinScaleSpan {
			s.begin(span, focus)
		}
		return s.inProgress

	case gestures.PointerPhaseMove:
		if s.quickAnchor != nil {
			return s.moveQuickScale(focus, settings.TouchSlop)
		}
		if ev.PointerCount() < 2 {
			return s.inProgress
		}
		if !s.inProgress {
			if span >= settings.MinScaleSpan {
				s.begin(span, focus)
			}
			return s.inProgress
		}
		if s.prevSpan > 0 && span > 0 {
			s.pinch.onPinch(span/s.prevSpan, focus)
		}
		s.prevSpan = span
		s.focus = focus
		return true

	case gestures.PointerPhasePointerUp:
		if s.inProgress && ev.PointerCount()-1 < 2 {
			s.end(gestures.GestureCompleted)
			return true
		}
		if s.inProgress {
			// Rebase so the remaining pointers do not produce a jump.
			s.prevSpan = span
			s.focus = focus
		}
		return s.inProgress

	case gestures.PointerPhaseUp:
		s.lastUpTime = s.eventTime(ev)
		s.lastUpPos = focus
		if s.quickAnchor != nil {
			quick := s.inProgress
			s.endQuickScale(gestures.GestureCompleted)
			if quick {
				s.lastUpTime = time.Time{}
			}
			return quick
		}
		if s.inProgress {
			s.end(gestures.GestureCompleted)
			return true
		}
		return false

	case gestures.PointerPhaseCancel:
		s.endQuickScale(gestures.GestureCanceled)
		if s.inProgress {
			s.end(gestures.GestureCanceled)
			return true
		}
		return false
	}
	return false
}

func (s *Scale) begin(span float64, focus graphics.Offset) {
	s.inProgress = true
	s.prevSpan = span
	s.focus = focus
	s.pinch.onStarted(focus)
}

func (s *Scale) end(status gestures.GestureStatus) {
	s.inProgress = false
	s.prevSpan = 0
	s.pinch.onEnded(status, s.focus)
}

func (s *Scale) moveQuickScale(focus graphics.Offset, slop float64) bool {
	anchor := *s.quickAnchor
	if !s.inProgress {
		if focus.Sub(anchor).Distance() <= slop {
			return false
		}
		s.inProgress = true
		s.focus = anchor
		s.pinch.onStarted(anchor)
		s.quickPrevY = focus.Y
		return true
	}
	factor := 1 + (focus.Y-s.quickPrevY)/quickScaleSpan
	if factor < 0.01 {
		factor = 0.01
	}
	s.quickPrevY = focus.Y
	s.pinch.onPinch(factor, anchor)
	return true
}

func (s *Scale) endQuickScale(status gestures.GestureStatus) {
	if s.quickAnchor == nil {
		return
	}
	s.quickAnchor = nil
	if s.inProgress {
		s.end(status)
	}
}

func (s *Scale) eventTime(ev gestures.PointerEvent) time.Time {
	if !ev.Time.IsZero() {
		return ev.Time
	}
	return s.ctx.Clock()()
}

// Interrupt cancels a scale in progress and notifies pinch recognizers. The
// coordinator calls it when it stops receiving the control's events.
func (s *Scale) Interrupt() {
	s.endQuickScale(gestures.GestureCanceled)
	if s.inProgress {
		s.end(gestures.GestureCanceled)
	}
}

// Dispose ends any gesture in progress without notifying recognizers and
// releases the native handle.
func (s *Scale) Dispose() {
	s.inProgress = false
	s.quickAnchor = nil
	s.release()
}
