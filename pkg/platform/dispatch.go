package platform

import (
	"sync"
	"time"

	"github.com/go-drift/driftgesture/pkg/logging"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function used to schedule callbacks on the UI
// thread. The host calls this once during initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns false if no dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Scheduler runs delayed callbacks on the UI thread. Detectors use it for
// long-press and double-tap timeouts.
type Scheduler interface {
	// AfterFunc runs fn after d. The returned function cancels the timer; it
	// reports whether the timer was stopped before firing.
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// UIScheduler is the default Scheduler. Timers fire on a runtime goroutine
// and hop to the UI thread through Dispatch; a timer canceled while its
// callback is queued does not run. Without a registered dispatch function a
// fired timer is dropped and logged at warn level.
type UIScheduler struct{}

func (UIScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	var mu sync.Mutex
	canceled := false
	t := time.AfterFunc(d, func() {
		ok := Dispatch(func() {
			mu.Lock()
			skip := canceled
			mu.Unlock()
			if !skip {
				fn()
			}
		})
		if !ok {
			logging.Logger().Warn("timer dropped: no UI dispatch registered", "delay", d)
		}
	})
	return func() bool {
		mu.Lock()
		canceled = true
		mu.Unlock()
		return t.Stop()
	}
}
