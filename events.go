package engine

import "fmt"

// Event is a notification delivered from the window layer to the
// application once per frame.
type Event interface {
	event()
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) event() {}

func (e ResizeEvent) String() string {
	return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
}

// Key identifies a keyboard key known to the engine.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyW
	KeyA
	KeyS
	KeyD
	KeyF1
	KeyF12
	KeyCount
)

var keyNames = [KeyCount]string{
	KeyNone:   "none",
	KeyEscape: "escape",
	KeySpace:  "space",
	KeyEnter:  "enter",
	KeyW:      "w",
	KeyA:      "a",
	KeyS:      "s",
	KeyD:      "d",
	KeyF1:     "f1",
	KeyF12:    "f12",
}

func (k Key) String() string {
	if k >= 0 && k < KeyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

func (KeyEvent) event() {}

// KeyPressed reports whether events contains a press of k.
func KeyPressed(events []Event, k Key) bool {
	for _, e := range events {
		if ke, ok := e.(KeyEvent); ok && ke.Key == k && ke.Pressed {
			return true
		}
	}
	return false
}
