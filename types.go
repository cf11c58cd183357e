package main

// PointerEvent carries screen coordinates in pixels.
type PointerEvent struct {
	X, Y   float64
	Button MouseButton
	Shift  bool
}

type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// KeyEvent uses DOM-style key names (see the Key* constants). Composing is
// set while an input method is assembling a character.
type KeyEvent struct {
	Key       string
	Shift     bool
	Composing bool
}

// Host owns the board. ApplyIntermediate receives in-gesture frames that
// must not become undo steps; Commit receives gesture-final or atomic edits,
// each worth exactly one undo step.
type Host interface {
	ApplyIntermediate(b Board)
	Commit(b Board)
	ResetToolMode()
}

// Labels is the display text lookup. Missing keys fall back to the key.
type Labels map[string]string

func (l Labels) Get(key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

var defaultLabels = Labels{
	"context.defaultName":  "Bounded Context",
	"domain.defaultName":   "Domain",
	"hotspot.defaultText":  "?",
	"slot.views":           "View",
	"slot.actors":          "Actor",
	"slot.commands":        "Command",
	"slot.aggregates":      "Aggregate",
	"slot.events":          "Event",
	"slot.externalSystems": "External",
	"slot.policies":        "Policy",
	"tool.select":          "SELECT",
	"tool.addFlow":         "FLOW",
	"tool.addContext":      "CONTEXT",
	"tool.addDomain":       "DOMAIN",
	"tool.addConnection":   "CONNECT",
	"tool.addHotspot":      "HOTSPOT",
	"hint.addConnection":   "click source flow, then target flow",
	"hint.pendingSource":   "select target flow (Esc cancels)",
	"hint.draw":            "drag to draw a region",
}

// mergeLabels overlays overrides on the defaults.
func mergeLabels(overrides map[string]string) Labels {
	out := make(Labels, len(defaultLabels)+len(overrides))
	for k, v := range defaultLabels {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
