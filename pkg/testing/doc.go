// Package testing provides a gesture testing harness for driftgesture.
//
// # Quick Start
//
// Create a tester with the recognizers under test and simulate input:
//
//	func TestDoubleTap(t *testing.T) {
//	    trace := &gesturetest.Trace{}
//	    tester := gesturetest.NewGestureTesterWithT(t, trace.Tap(2))
//
//	    tester.DoubleTapAt(graphics.Offset{X: 10, Y: 10})
//
//	    if got := trace.Count("tap"); got != 1 {
//	        t.Errorf("double taps = %d, want 1", got)
//	    }
//	}
//
// The tester binds a real [gesturemanager.Coordinator] to a native control
// backed by a private handle table, so tests see exactly what the platform
// would deliver.
//
// # Timers
//
// Long press and double-tap timeouts run on a manual scheduler. Advance the
// tester clock to fire them:
//
//	tester.Advance(600 * time.Millisecond)
//
// # Trace Files
//
// Compare recognized gestures against a golden file:
//
//	trace.MatchesFile(t, "testdata/pinch.trace.json")
//
// Update golden files with:
//
//	DRIFTGESTURE_UPDATE_TRACES=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import gesturetest "github.com/go-drift/driftgesture/pkg/testing"
package testing
