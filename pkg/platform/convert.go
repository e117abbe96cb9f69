package platform

import (
	"time"

	"github.com/go-drift/driftgesture/pkg/errors"
	"github.com/go-drift/driftgesture/pkg/gestures"
	"github.com/go-drift/driftgesture/pkg/graphics"
)

// toInt64 converts the numeric types a codec may produce to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// toFloat64 converts the numeric types a codec may produce to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func parseOffset(m map[string]any) graphics.Offset {
	x, _ := toFloat64(m["x"])
	y, _ := toFloat64(m["y"])
	return graphics.Offset{X: x, Y: y}
}

var phaseNames = map[string]gestures.PointerPhase{
	"down":         gestures.PointerPhaseDown,
	"move":         gestures.PointerPhaseMove,
	"up":           gestures.PointerPhaseUp,
	"cancel":       gestures.PointerPhaseCancel,
	"pointer_down": gestures.PointerPhasePointerDown,
	"pointer_up":   gestures.PointerPhasePointerUp,
}

// ParsePointerEvent decodes the map form of a native touch event:
//
//	{"phase": "move", "pointerId": 1, "x": 10, "y": 20, "timeMs": 1200,
//	 "pointers": [{"id": 1, "x": 10, "y": 20}]}
func ParsePointerEvent(channel string, args any) (gestures.PointerEvent, error) {
	m, ok := toMap(args)
	if !ok {
		return gestures.PointerEvent{}, &errors.ParseError{Channel: channel, DataType: "PointerEvent", Got: args}
	}
	name, _ := m["phase"].(string)
	phase, ok := phaseNames[name]
	if !ok {
		return gestures.PointerEvent{}, &errors.ParseError{Channel: channel, DataType: "PointerPhase", Got: m["phase"]}
	}
	id, _ := toInt64(m["pointerId"])
	ev := gestures.PointerEvent{
		PointerID: id,
		Position:  parseOffset(m),
		Phase:     phase,
	}
	if ms, ok := toInt64(m["timeMs"]); ok {
		ev.Time = time.UnixMilli(ms)
	}
	if raw, ok := m["pointers"].([]any); ok {
		for _, item := range raw {
			pm, ok := toMap(item)
			if !ok {
				return gestures.PointerEvent{}, &errors.ParseError{Channel: channel, DataType: "Pointer", Got: item}
			}
			pid, _ := toInt64(pm["id"])
			ev.Pointers = append(ev.Pointers, gestures.Pointer{ID: pid, Position: parseOffset(pm)})
		}
	}
	return ev, nil
}

var dragActionNames = map[string]DragAction{
	"started":  DragActionStarted,
	"entered":  DragActionEntered,
	"location": DragActionLocation,
	"drop":     DragActionDrop,
	"exited":   DragActionExited,
	"ended":    DragActionEnded,
}

// ParseDragEvent decodes the map form of a native drag event.
func ParseDragEvent(channel string, args any) (DragEvent, error) {
	m, ok := toMap(args)
	if !ok {
		return DragEvent{}, &errors.ParseError{Channel: channel, DataType: "DragEvent", Got: args}
	}
	name, _ := m["action"].(string)
	action, ok := dragActionNames[name]
	if !ok {
		return DragEvent{}, &errors.ParseError{Channel: channel, DataType: "DragAction", Got: m["action"]}
	}
	ev := DragEvent{Action: action, Position: parseOffset(m)}
	ev.Data, _ = toMap(m["data"])
	ev.Result, _ = m["result"].(bool)
	return ev, nil
}
