package opengl

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/engine"
)

// WindowProps are the parameters used to create a Window.
type WindowProps struct {
	Title  string
	Width  int
	Height int
	VSync  bool
	// Hidden creates an invisible window, for offscreen capture.
	Hidden bool
}

// windowData is the state mutated by GLFW notifications.
type windowData struct {
	title         string
	width, height int
	vsync         bool
}

// Window wraps a GLFW window and its OpenGL 4.1 core context.
// It must be created and used on the main OS thread.
type Window struct {
	window *glfw.Window
	data   windowData
	events []engine.Event
	log    *slog.Logger
}

var _ engine.Window = (*Window)(nil)

// NewWindow initializes GLFW, creates the window, makes its context
// current and loads the OpenGL function pointers.
func NewWindow(props WindowProps) (*Window, error) {
	w := &Window{
		data: windowData{
			title:  props.Title,
			width:  props.Width,
			height: props.Height,
			vsync:  props.VSync,
		},
		log: engine.Logger(),
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if props.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	w.log.Info("creating window", "width", props.Width, "height", props.Height, "title", props.Title)
	window, err := glfw.CreateWindow(props.Width, props.Height, props.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.window = window
	window.MakeContextCurrent()

	w.log.Info("loading OpenGL functions")
	if err := gl.Init(); err != nil {
		w.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w.log.Debug("OpenGL context",
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	// The framebuffer can differ from the requested size on HiDPI displays.
	w.data.width, w.data.height = window.GetFramebufferSize()

	w.SetVSync(props.VSync)
	w.setupCallbacks()
	return w, nil
}

func (w *Window) setupCallbacks() {
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.data.width = width
		w.data.height = height
		w.log.Debug("framebuffer resized", "width", width, "height", height)
		w.events = append(w.events, engine.ResizeEvent{Width: width, Height: height})
	})
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := glfwKeyToKey(key)
		if k == engine.KeyNone {
			return
		}
		switch action {
		case glfw.Press:
			w.events = append(w.events, engine.KeyEvent{Key: k, Pressed: true})
		case glfw.Release:
			w.events = append(w.events, engine.KeyEvent{Key: k, Pressed: false})
		}
	})
}

// Events returns the events queued by GLFW callbacks since the last call.
func (w *Window) Events() []engine.Event {
	events := w.events
	w.events = nil
	return events
}

// PollEvents processes pending window system events.
func (w *Window) PollEvents() { glfw.PollEvents() }

// SwapBuffers presents the rendered frame.
func (w *Window) SwapBuffers() {
	if w.valid() {
		w.window.SwapBuffers()
	}
}

// ShouldClose reports whether the user or the program requested close.
// A destroyed window always reports true.
func (w *Window) ShouldClose() bool {
	return !w.valid() || w.window.ShouldClose()
}

// SetShouldClose sets or clears the close flag.
func (w *Window) SetShouldClose(close bool) {
	if w.valid() {
		w.window.SetShouldClose(close)
	}
}

// SetVSync toggles waiting for vertical blank on swap.
func (w *Window) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	w.data.vsync = enabled
	w.log.Debug("vsync", "enabled", enabled)
}

// VSync reports whether vsync is enabled.
func (w *Window) VSync() bool { return w.data.vsync }

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) { return w.data.width, w.data.height }

// Title returns the window title.
func (w *Window) Title() string { return w.data.title }

// Time returns the GLFW timer in seconds.
func (w *Window) Time() float64 { return glfw.GetTime() }

// Native returns the underlying GLFW window.
func (w *Window) Native() *glfw.Window { return w.window }

func (w *Window) valid() bool { return w.window != nil }

// Destroy closes the window and terminates GLFW. Safe to call twice.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	w.log.Info("window destroyed")
}
