package platform

import (
	"fmt"

	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/logging"
)

// GestureChannelName is the method channel native code uses to deliver
// touches, drag events, view destruction and handle releases.
const GestureChannelName = "drift/gestures"

var gestureChannel = newGestureChannel()

func newGestureChannel() *MethodChannel {
	ch := NewMethodChannel(GestureChannelName)
	ch.SetHandler(handleGestureCall)
	return ch
}

// handleGestureCall processes calls from native code:
//
//	onTouch          {viewId, event...}   -> bool consumed
//	onDrag           {viewId, action...}  -> bool accepted
//	onViewDestroyed  {viewId}
//	onHandleReleased {handle}             -> true, or ErrHandleReleased
func handleGestureCall(method string, args any) (any, error) {
	m, ok := toMap(args)
	if !ok {
		return nil, ErrInvalidArguments
	}
	switch method {
	case "onTouch":
		c, err := controlFor(m)
		if err != nil {
			return false, err
		}
		ev, err := ParsePointerEvent(GestureChannelName, m)
		if err != nil {
			errors.Report(&errors.GestureError{
				Op:     "platform.onTouch",
				Kind:   errors.KindParsing,
				ViewID: c.ViewID(),
				Err:    err,
			})
			return false, err
		}
		return c.DeliverTouch(ev), nil

	case "onDrag":
		c, err := controlFor(m)
		if err != nil {
			return false, err
		}
		ev, err := ParseDragEvent(GestureChannelName, m)
		if err != nil {
			return false, err
		}
		return c.DeliverDrag(ev), nil

	case "onViewDestroyed":
		c, err := controlFor(m)
		if err != nil {
			return nil, err
		}
		c.Destroy()
		logging.Logger().Debug("native view destroyed", "view", c.ViewID())
		return nil, nil

	case "onHandleReleased":
		id, ok := toInt64(m["handle"])
		if !ok {
			return nil, ErrInvalidArguments
		}
		if !DefaultHandles.Release(HandleID(id)) {
			return false, fmt.Errorf("%w: %d", ErrHandleReleased, id)
		}
		logging.Logger().Debug("native handle released", "handle", id)
		return true, nil

	default:
		return nil, ErrMethodNotFound
	}
}

func controlFor(m map[string]any) (*NativeControl, error) {
	id, ok := toInt64(m["viewId"])
	if !ok {
		return nil, ErrInvalidArguments
	}
	c, ok := LookupControl(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrControlNotFound, id)
	}
	return c, nil
}

// NotifyHandleDisposed tells native code a Go-side detector released its
// handle. A missing bridge is not an error; there is nothing to notify.
func NotifyHandleDisposed(id HandleID) {
	if currentBridge() == nil {
		return
	}
	if _, err := gestureChannel.Invoke("disposeHandle", map[string]any{"handle": int64(id)}); err != nil {
		logging.Logger().Debug("disposeHandle notification failed", "handle", int64(id), "error", err)
	}
}
