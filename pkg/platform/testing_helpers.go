package platform

import (
	"sort"
	"sync"
	"time"
)

// noopBridge is a NativeBridge that accepts all calls without side effects.
type noopBridge struct{}

func (noopBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return DefaultCodec.Encode(nil)
}

// SetupTestBridge installs a no-op native bridge and synchronous dispatch
// function for testing. The cleanup function should be testing.T.Cleanup or
// equivalent; it registers a teardown that calls ResetForTest.
//
//	platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) {
	SetNativeBridge(noopBridge{})
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

// ManualScheduler is a Scheduler driven by an explicit clock. Timers fire
// only from Advance, in deadline order, on the caller's goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	at       time.Time
	fn       func()
	canceled bool
	fired    bool
}

// NewManualScheduler returns a scheduler whose clock starts at a fixed epoch.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	t := &manualTimer{at: s.now.Add(d), fn: fn}
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.fired || t.canceled {
			return false
		}
		t.canceled = true
		return true
	}
}

// Pending returns the number of armed timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every timer that became due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range s.timers {
		switch {
		case t.canceled || t.fired:
		case !t.at.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		s.mu.Lock()
		skip := t.canceled
		t.fired = true
		s.mu.Unlock()
		if !skip {
			t.fn()
		}
	}
}
