package engine_test

import (
	"testing"

	"github.com/go-theft-auto/engine"
)

func TestKeyPressed(t *testing.T) {
	events := []engine.Event{
		engine.ResizeEvent{Width: 1, Height: 1},
		engine.KeyEvent{Key: engine.KeyW, Pressed: false},
		engine.KeyEvent{Key: engine.KeyF1, Pressed: true},
	}

	if !engine.KeyPressed(events, engine.KeyF1) {
		t.Error("expected F1 press")
	}
	if engine.KeyPressed(events, engine.KeyW) {
		t.Error("W release is not a press")
	}
	if engine.KeyPressed(nil, engine.KeyEscape) {
		t.Error("no events, no press")
	}
}

func TestKeyString(t *testing.T) {
	if got := engine.KeyEscape.String(); got != "escape" {
		t.Errorf("expected escape, got %q", got)
	}
	if got := engine.Key(99).String(); got != "Key(99)" {
		t.Errorf("expected Key(99), got %q", got)
	}
}
