package detectors

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
	"github.com/go-drift/driftgesture/pkg/platform"
)

func TestNewDetectorRequiresControl(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no resolver", Options{}},
		{"nil control", Options{Control: func() platform.Control { return nil }}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScale(tt.opts); !errors.IsPrecondition(err) {
				t.Errorf("NewScale err = %v, want PreconditionError", err)
			}
			if _, err := NewTapPanSwipe(tt.opts, nil); !errors.IsPrecondition(err) {
				t.Errorf("NewTapPanSwipe err = %v, want PreconditionError", err)
			}
			if _, err := NewDragDrop(tt.opts); !errors.IsPrecondition(err) {
				t.Errorf("NewDragDrop err = %v, want PreconditionError", err)
			}
		})
	}
}

func TestNewDetectorRequiresInputContext(t *testing.T) {
	f := newFixture(t)
	f.control.Destroy()
	if _, err := NewScale(f.opts); !errors.IsPrecondition(err) {
		t.Errorf("err = %v, want PreconditionError for dead control", err)
	}
}

func TestDetectorValidity(t *testing.T) {
	f := newFixture(t, &gestures.PinchGestureRecognizer{})
	s, err := NewScale(f.opts)
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind() != KindScale || !s.Valid() {
		t.Fatal("new detector should be valid")
	}
	f.handles.Release(s.Handle().ID())
	if s.Valid() {
		t.Error("detector should be invalid after native release")
	}

	tps, _ := NewTapPanSwipe(f.opts, nil)
	tps.Dispose()
	tps.Dispose()
	if tps.Valid() {
		t.Error("disposed detector should be invalid")
	}
	if tps.Feed(down(0, 0)) {
		t.Error("disposed detector should not consume")
	}
}

func TestSingleTap(t *testing.T) {
	var taps []gestures.TappedEvent
	f := newFixture(t, &gestures.TapGestureRecognizer{OnTapped: func(e gestures.TappedEvent) { taps = append(taps, e) }})
	d, _ := NewTapPanSwipe(f.opts, nil)

	if !d.Feed(down(10, 10)) {
		t.Error("down should be consumed when recognizers exist")
	}
	if !d.Feed(up(11, 10)) {
		t.Error("up completing a tap should be consumed")
	}
	if len(taps) != 1 || taps[0].Taps != 1 {
		t.Fatalf("taps = %+v", taps)
	}
	if !taps[0].Position.Equal(at(11, 10)) {
		t.Errorf("Position = %v", taps[0].Position)
	}
}

func TestDoubleTapDefersSingle(t *testing.T) {
	var single, double int
	f := newFixture(t,
		&gestures.TapGestureRecognizer{OnTapped: func(gestures.TappedEvent) { single++ }},
		&gestures.TapGestureRecognizer{NumberOfTapsRequired: 2, OnTapped: func(gestures.TappedEvent) { double++ }},
	)
	d, _ := NewTapPanSwipe(f.opts, nil)

	d.Feed(down(10, 10))
	d.Feed(up(10, 10))
	if single != 0 {
		t.Fatal("single tap should wait for the double-tap window")
	}
	f.sched.Advance(100 * time.Millisecond)
	d.Feed(down(12, 10))
	d.Feed(up(12, 10))
	if double != 1 || single != 0 {
		t.Errorf("double = %d single = %d, want 1, 0", double, single)
	}

	f.sched.Advance(time.Second)
	d.Feed(down(10, 10))
	d.Feed(up(10, 10))
	f.sched.Advance(400 * time.Millisecond)
	if single != 1 {
		t.Errorf("single = %d after timeout, want 1", single)
	}
}

func TestPanAndSwipe(t *testing.T) {
	var pans []gestures.PanUpdatedEvent
	var swipes []gestures.SwipedEvent
	f := newFixture(t,
		&gestures.PanGestureRecognizer{OnPanUpdated: func(e gestures.PanUpdatedEvent) { pans = append(pans, e) }},
		&gestures.SwipeGestureRecognizer{Direction: gestures.SwipeLeft, OnSwiped: func(e gestures.SwipedEvent) { swipes = append(swipes, e) }},
		&gestures.TapGestureRecognizer{OnTapped: func(gestures.TappedEvent) { t.Error("tap must not fire after a pan") }},
	)
	d, _ := NewTapPanSwipe(f.opts, nil)

	d.Feed(down(200, 50))
	if !d.Feed(move(203, 50)) {
		t.Error("move within slop should be consumed")
	}
	if len(pans) != 0 {
		t.Fatal("pan must not start within slop")
	}
	d.Feed(move(150, 50))
	d.Feed(move(50, 52))
	if !d.Scrolling() {
		t.Fatal("should be scrolling")
	}
	d.Feed(up(50, 52))

	wantStatus := []gestures.GestureStatus{gestures.GestureStarted, gestures.GestureRunning, gestures.GestureRunning, gestures.GestureCompleted}
	if len(pans) != len(wantStatus) {
		t.Fatalf("pan events = %d, want %d", len(pans), len(wantStatus))
	}
	for i, s := range wantStatus {
		if pans[i].Status != s {
			t.Errorf("pan[%d].Status = %v, want %v", i, pans[i].Status, s)
		}
	}
	if !pans[2].Total.Equal(at(-150, 2)) {
		t.Errorf("pan total = %v", pans[2].Total)
	}
	if len(swipes) != 1 || swipes[0].Direction != gestures.SwipeLeft || swipes[0].Distance != 150 {
		t.Errorf("swipes = %+v", swipes)
	}
}

func TestSwipeBelowThreshold(t *testing.T) {
	fired := false
	f := newFixture(t, &gestures.SwipeGestureRecognizer{Threshold: 300, OnSwiped: func(gestures.SwipedEvent) { fired = true }})
	d, _ := NewTapPanSwipe(f.opts, nil)
	d.Feed(down(0, 0))
	d.Feed(move(0, 200))
	d.Feed(up(0, 200))
	if fired {
		t.Error("swipe shorter than threshold should not fire")
	}
}

func TestPanTouchPointsAndCancel(t *testing.T) {
	var statuses []gestures.GestureStatus
	f := newFixture(t, &gestures.PanGestureRecognizer{TouchPoints: 2, OnPanUpdated: func(e gestures.PanUpdatedEvent) { statuses = append(statuses, e.Status) }})
	d, _ := NewTapPanSwipe(f.opts, nil)

	d.Feed(down(0, 0))
	d.Feed(twoFinger(gestures.PointerPhasePointerDown, at(0, 0), at(20, 0)))
	d.Feed(twoFinger(gestures.PointerPhaseMove, at(0, 40), at(20, 40)))
	d.Feed(gestures.PointerEvent{Phase: gestures.PointerPhaseCancel})

	want := []gestures.GestureStatus{gestures.GestureStarted, gestures.GestureRunning, gestures.GestureCanceled}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status[%d] = %v, want %v", i, statuses[i], want[i])
		}
	}
}

func TestLongPressSettings(t *testing.T) {
	f := newFixture(t, &gestures.TapGestureRecognizer{})
	d, _ := NewTapPanSwipe(f.opts, nil)
	if d.LongPressEnabled() {
		t.Error("long press should be off without a drag recognizer")
	}
	f.node.GestureRecognizers().Add(&gestures.DragGestureRecognizer{CanDrag: true, LongPressDuration: 800 * time.Millisecond})
	d.UpdateLongPressSettings()
	if !d.LongPressEnabled() || d.LongPressTimeout() != 800*time.Millisecond {
		t.Errorf("enabled = %v timeout = %v", d.LongPressEnabled(), d.LongPressTimeout())
	}
}

func TestLongPressStartsDrag(t *testing.T) {
	var completed []bool
	drag := &gestures.DragGestureRecognizer{
		CanDrag: true,
		OnDragStarting: func(e *gestures.DragStartingEvent) {
			e.Data["text"] = "payload"
		},
		OnDropCompleted: func(e gestures.DropCompletedEvent) { completed = append(completed, e.Accepted) },
	}
	f := newFixture(t, drag, &gestures.TapGestureRecognizer{OnTapped: func(gestures.TappedEvent) { t.Error("tap after long press") }})
	dd, _ := NewDragDrop(f.opts)
	d, _ := NewTapPanSwipe(f.opts, dd)

	d.Feed(down(5, 5))
	f.sched.Advance(600 * time.Millisecond)
	data, active := f.control.ActiveDrag()
	if !active || data["text"] != "payload" {
		t.Fatalf("drag active = %v data = %v", active, data)
	}
	if !d.Feed(up(5, 5)) {
		t.Error("up after long press should be consumed")
	}
	f.control.EndDrag(true)
	if len(completed) != 1 || !completed[0] {
		t.Errorf("completed = %v", completed)
	}
}

func TestLongPressCanceledByMove(t *testing.T) {
	f := newFixture(t, &gestures.DragGestureRecognizer{CanDrag: true}, &gestures.PanGestureRecognizer{})
	dd, _ := NewDragDrop(f.opts)
	d, _ := NewTapPanSwipe(f.opts, dd)
	d.Feed(down(0, 0))
	d.Feed(move(50, 0))
	f.sched.Advance(time.Second)
	if _, active := f.control.ActiveDrag(); active {
		t.Error("scrolling should cancel the long press")
	}
	if f.sched.Pending() != 0 {
		t.Errorf("pending timers = %d", f.sched.Pending())
	}
}

func TestInterruptCancelsPan(t *testing.T) {
	var last gestures.GestureStatus
	f := newFixture(t, &gestures.PanGestureRecognizer{OnPanUpdated: func(e gestures.PanUpdatedEvent) { last = e.Status }})
	d, _ := NewTapPanSwipe(f.opts, nil)
	d.Feed(down(0, 0))
	d.Feed(move(40, 0))
	d.Interrupt()
	if last != gestures.GestureCanceled {
		t.Errorf("last status = %v, want canceled", last)
	}
	if d.Feed(move(80, 0)) {
		t.Error("moves after interrupt should be ignored until the next down")
	}
}

func TestScalePinch(t *testing.T) {
	var events []gestures.PinchUpdatedEvent
	f := newFixture(t, &gestures.PinchGestureRecognizer{OnPinchUpdated: func(e gestures.PinchUpdatedEvent) { events = append(events, e) }})
	f.node.SetSize(graphics.Size{Width: 200, Height: 200})
	s, _ := NewScale(f.opts)

	if s.Feed(down(50, 100)) {
		t.Error("single down should not be consumed by scale")
	}
	if !s.Feed(twoFinger(gestures.PointerPhasePointerDown, at(50, 100), at(150, 100))) {
		t.Error("second pointer should start the scale")
	}
	if !s.InProgress() {
		t.Fatal("scale should be in progress")
	}
	s.Feed(twoFinger(gestures.PointerPhaseMove, at(0, 100), at(200, 100)))
	if !s.Feed(twoFinger(gestures.PointerPhasePointerUp, at(0, 100), at(200, 100))) {
		t.Error("pointer up ending the scale should be consumed")
	}
	if s.InProgress() {
		t.Error("scale should end when fewer than two pointers remain")
	}

	if len(events) != 3 {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Status != gestures.GestureStarted || events[2].Status != gestures.GestureCompleted {
		t.Errorf("statuses = %v, %v", events[0].Status, events[2].Status)
	}
	if math.Abs(events[1].Scale-2) > 1e-9 {
		t.Errorf("scale = %v, want 2", events[1].Scale)
	}
	if !events[1].Origin.Equal(at(0.5, 0.5)) {
		t.Errorf("origin = %v, want normalized center", events[1].Origin)
	}
}

func TestScaleIgnoresSmallSpan(t *testing.T) {
	f := newFixture(t, &gestures.PinchGestureRecognizer{})
	s, _ := NewScale(f.opts)
	s.Feed(down(0, 0))
	s.Feed(twoFinger(gestures.PointerPhasePointerDown, at(0, 0), at(4, 0)))
	if s.InProgress() {
		t.Error("span below minimum should not start a scale")
	}
}

func TestQuickScale(t *testing.T) {
	var statuses []gestures.GestureStatus
	f := newFixture(t, &gestures.PinchGestureRecognizer{OnPinchUpdated: func(e gestures.PinchUpdatedEvent) { statuses = append(statuses, e.Status) }})
	s, _ := NewScale(f.opts)

	s.Feed(down(100, 100))
	s.Feed(up(100, 100))
	f.sched.Advance(100 * time.Millisecond)
	s.Feed(down(100, 100))
	s.Feed(move(100, 150))
	if !s.InProgress() {
		t.Fatal("double tap and drag should start a quick scale")
	}
	s.Feed(move(100, 200))
	if !s.Feed(up(100, 200)) {
		t.Error("up ending quick scale should be consumed")
	}
	want := []gestures.GestureStatus{gestures.GestureStarted, gestures.GestureRunning, gestures.GestureCompleted}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
}

func TestDragDropSetupForDrop(t *testing.T) {
	drop := &gestures.DropGestureRecognizer{AllowDrop: true}
	f := newFixture(t, drop)
	h, _ := NewDragDrop(f.opts)

	h.SetupForDrop()
	if !h.Armed() || !h.IsDropTarget() || f.control.DropTarget() != h {
		t.Fatal("handler should be the drop target")
	}
	drop.AllowDrop = false
	h.SetupForDrop()
	if h.IsDropTarget() || f.control.DropTarget() != nil {
		t.Error("handler should remove itself when no recognizer allows drop")
	}
	if h.SetupCount() != 2 {
		t.Errorf("SetupCount() = %d", h.SetupCount())
	}
	if h.Feed(down(0, 0)) {
		t.Error("drag-drop handler never consumes raw touches")
	}
}

func TestDragDropTargetEvents(t *testing.T) {
	var overs, leaves int
	var dropped map[string]any
	f := newFixture(t, &gestures.DropGestureRecognizer{
		AllowDrop:   true,
		OnDragOver:  func(e *gestures.DragEvent) { overs++; e.Accepted = true },
		OnDragLeave: func(*gestures.DragEvent) { leaves++ },
		OnDrop:      func(e *gestures.DropEvent) { dropped = e.Data; e.Handled = true },
	})
	h, _ := NewDragDrop(f.opts)
	h.SetupForDrop()

	data := map[string]any{"text": "hi"}
	if !f.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionStarted}) {
		t.Error("started should report accepting target")
	}
	if !f.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionEntered, Data: data}) {
		t.Error("entered should be accepted")
	}
	f.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionExited})
	if !f.control.DeliverDrag(platform.DragEvent{Action: platform.DragActionDrop, Data: data}) {
		t.Error("drop should be handled")
	}
	if overs != 1 || leaves != 1 || dropped["text"] != "hi" {
		t.Errorf("overs = %d leaves = %d dropped = %v", overs, leaves, dropped)
	}

	h.Dispose()
	if f.control.DropTarget() != nil {
		t.Error("dispose should remove the drop target")
	}
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(42).String() != "unknown" {
		t.Error("out-of-range kind should be unknown")
	}
}

type panicRecorder struct {
	panics []*errors.PanicError
}

func (r *panicRecorder) HandleError(*errors.GestureError)   {}
func (r *panicRecorder) HandlePanic(err *errors.PanicError) { r.panics = append(r.panics, err) }

func TestTimerCallbackPanicsAreReported(t *testing.T) {
	boom := func() { panic("boom") }
	tests := []struct {
		name string
		recs []gestures.Recognizer
		run  func(f *fixture, d *TapPanSwipe)
		op   string
	}{
		{
			name: "deferred single tap",
			recs: []gestures.Recognizer{
				&gestures.TapGestureRecognizer{OnTapped: func(gestures.TappedEvent) { boom() }},
				&gestures.TapGestureRecognizer{NumberOfTapsRequired: 2},
			},
			run: func(f *fixture, d *TapPanSwipe) {
				d.Feed(down(10, 10))
				d.Feed(up(10, 10))
				f.sched.Advance(time.Second)
			},
			op: "detectors.TapPanSwipe.onTapTimer",
		},
		{
			name: "long press drag start",
			recs: []gestures.Recognizer{
				&gestures.DragGestureRecognizer{CanDrag: true, OnDragStarting: func(*gestures.DragStartingEvent) { boom() }},
			},
			run: func(f *fixture, d *TapPanSwipe) {
				d.Feed(down(10, 10))
				f.sched.Advance(time.Second)
			},
			op: "detectors.TapPanSwipe.onLongPressTimer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &panicRecorder{}
			errors.SetHandler(rec)
			t.Cleanup(func() { errors.SetHandler(nil) })

			f := newFixture(t, tt.recs...)
			dd, _ := NewDragDrop(f.opts)
			d, _ := NewTapPanSwipe(f.opts, dd)
			tt.run(f, d)

			if len(rec.panics) != 1 {
				t.Fatalf("reported panics = %d, want 1", len(rec.panics))
			}
			if rec.panics[0].Op != tt.op || rec.panics[0].Value != "boom" {
				t.Errorf("panic = %s %v", rec.panics[0].Op, rec.panics[0].Value)
			}
		})
	}
}

func TestScaleDownCancelsUnfinishedPinch(t *testing.T) {
	var statuses []gestures.GestureStatus
	f := newFixture(t, &gestures.PinchGestureRecognizer{OnPinchUpdated: func(e gestures.PinchUpdatedEvent) { statuses = append(statuses, e.Status) }})
	s, _ := NewScale(f.opts)

	s.Feed(down(50, 100))
	s.Feed(twoFinger(gestures.PointerPhasePointerDown, at(50, 100), at(150, 100)))
	if !s.InProgress() {
		t.Fatal("scale should be in progress")
	}
	// The pointer ups never arrive; the next sequence starts.
	if s.Feed(down(10, 10)) {
		t.Error("single down should not be consumed by scale")
	}
	if s.InProgress() {
		t.Error("a new sequence should end the unfinished scale")
	}
	want := []gestures.GestureStatus{gestures.GestureStarted, gestures.GestureCanceled}
	if len(statuses) != len(want) || statuses[1] != want[1] {
		t.Errorf("statuses = %v, want %v", statuses, want)
	}
}

func TestScaleInterrupt(t *testing.T) {
	var statuses []gestures.GestureStatus
	f := newFixture(t, &gestures.PinchGestureRecognizer{OnPinchUpdated: func(e gestures.PinchUpdatedEvent) { statuses = append(statuses, e.Status) }})
	s, _ := NewScale(f.opts)

	s.Interrupt()
	if len(statuses) != 0 {
		t.Fatalf("interrupt without a scale notified %v", statuses)
	}
	s.Feed(down(50, 100))
	s.Feed(twoFinger(gestures.PointerPhasePointerDown, at(50, 100), at(150, 100)))
	s.Interrupt()
	if s.InProgress() {
		t.Error("interrupt should end the scale")
	}
	if n := len(statuses); n != 2 || statuses[n-1] != gestures.GestureCanceled {
		t.Errorf("statuses = %v, want started then canceled", statuses)
	}
}

func TestScaleRebasesOnExtraPointer(t *testing.T) {
	var events []gestures.PinchUpdatedEvent
	f := newFixture(t, &gestures.PinchGestureRecognizer{OnPinchUpdated: func(e gestures.PinchUpdatedEvent) { events = append(events, e) }})
	s, _ := NewScale(f.opts)

	s.Feed(down(0, 0))
	s.Feed(twoFinger(gestures.PointerPhasePointerDown, at(0, 0), at(100, 0)))
	three := []gestures.Pointer{{ID: 1, Position: at(0, 0)}, {ID: 2, Position: at(100, 0)}, {ID: 3, Position: at(50, 100)}}
	if !s.Feed(gestures.PointerEvent{PointerID: 3, Position: at(50, 100), Phase: gestures.PointerPhasePointerDown, Pointers: three}) {
		t.Error("extra pointer during a scale should be consumed")
	}
	s.Feed(gestures.PointerEvent{PointerID: 3, Position: at(50, 100), Phase: gestures.PointerPhaseMove, Pointers: three})

	last := events[len(events)-1]
	if last.Status != gestures.GestureRunning || math.Abs(last.Scale-1) > 1e-9 {
		t.Errorf("last event = %v scale %v, want running at 1", last.Status, last.Scale)
	}
}

func TestRetargetUsesNewDensity(t *testing.T) {
	var pans []gestures.PanUpdatedEvent
	f := newFixture(t, &gestures.PanGestureRecognizer{OnPanUpdated: func(e gestures.PanUpdatedEvent) { pans = append(pans, e) }})
	d, _ := NewTapPanSwipe(f.opts, nil)

	d.Retarget(&platform.InputContext{Density: 2, Scheduler: f.sched, Now: f.sched.Now})
	d.Feed(down(0, 0))
	d.Feed(move(100, 0))
	if len(pans) == 0 {
		t.Fatal("no pan events")
	}
	if got := pans[len(pans)-1].Total; !got.Equal(at(50, 0)) {
		t.Errorf("total = %v, want (50, 0) at density 2", got)
	}
	if !d.Valid() {
		t.Error("retarget should keep the native handle")
	}
}
