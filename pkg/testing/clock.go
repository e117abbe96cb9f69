package testing

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/platform"
)

// Now returns the tester clock. Simulated events are stamped with it.
func (t *GestureTester) Now() time.Time {
	return t.scheduler.Now()
}

// Advance moves the tester clock forward by d and fires every detector timer
// that became due, such as long press and the double-tap window.
func (t *GestureTester) Advance(d time.Duration) {
	t.scheduler.Advance(d)
}

// PendingTimers returns the number of armed detector timers.
func (t *GestureTester) PendingTimers() int {
	return t.scheduler.Pending()
}

// Scheduler returns the manual scheduler driving detector timers.
func (t *GestureTester) Scheduler() *platform.ManualScheduler {
	return t.scheduler
}
