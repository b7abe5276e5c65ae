package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/engine"
)

// Input polls keyboard state from a Window.
type Input struct {
	window *Window
}

var _ engine.Input = (*Input)(nil)

// NewInput binds an input poller to window.
func NewInput(window *Window) *Input {
	return &Input{window: window}
}

// ProcessInput handles the built-in bindings: Escape requests close.
func (in *Input) ProcessInput() {
	if in.IsKeyPressed(engine.KeyEscape) {
		engine.Logger().Debug("escape pressed, closing window")
		in.window.SetShouldClose(true)
	}
}

// IsKeyPressed reports whether k is currently held down.
func (in *Input) IsKeyPressed(k engine.Key) bool {
	if in.window == nil || !in.window.valid() {
		return false
	}
	key, ok := keyToGLFW(k)
	if !ok {
		return false
	}
	return in.window.window.GetKey(key) == glfw.Press
}

// ShouldClose reports whether the window is gone or flagged for close.
func (in *Input) ShouldClose() bool {
	return in.window == nil || in.window.ShouldClose()
}

var glfwKeys = map[engine.Key]glfw.Key{
	engine.KeyEscape: glfw.KeyEscape,
	engine.KeySpace:  glfw.KeySpace,
	engine.KeyEnter:  glfw.KeyEnter,
	engine.KeyW:      glfw.KeyW,
	engine.KeyA:      glfw.KeyA,
	engine.KeyS:      glfw.KeyS,
	engine.KeyD:      glfw.KeyD,
	engine.KeyF1:     glfw.KeyF1,
	engine.KeyF12:    glfw.KeyF12,
}

func keyToGLFW(k engine.Key) (glfw.Key, bool) {
	key, ok := glfwKeys[k]
	return key, ok
}

// glfwKeyToKey maps GLFW keys to engine keys.
func glfwKeyToKey(key glfw.Key) engine.Key {
	switch key {
	case glfw.KeyEscape:
		return engine.KeyEscape
	case glfw.KeySpace:
		return engine.KeySpace
	case glfw.KeyEnter:
		return engine.KeyEnter
	case glfw.KeyW:
		return engine.KeyW
	case glfw.KeyA:
		return engine.KeyA
	case glfw.KeyS:
		return engine.KeyS
	case glfw.KeyD:
		return engine.KeyD
	case glfw.KeyF1:
		return engine.KeyF1
	case glfw.KeyF12:
		return engine.KeyF12
	default:
		return engine.KeyNone
	}
}
