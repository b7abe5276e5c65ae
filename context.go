package engine

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// Window is the platform window the App drives.
type Window interface {
	ShouldClose() bool
	SetShouldClose(close bool)
	SwapBuffers()
	PollEvents()
	// Events returns and clears the events queued since the last call.
	Events() []Event
	// Time returns seconds since the window system started.
	Time() float64
	Size() (width, height int)
	Destroy()
}

// Input is the per-frame keyboard poller.
type Input interface {
	ProcessInput()
	ShouldClose() bool
	IsKeyPressed(k Key) bool
}

// Renderer is the part of the graphics backend the App loop uses.
type Renderer interface {
	Initialize() error
	Shutdown()
	Clear(color mgl32.Vec4)
	SetViewport(width, height int)
}

// Context is handed to every Scene hook. It replaces global access to the
// application, renderer and resource cache.
// This is NOT context.Context.
type Context struct {
	Window    Window
	Input     Input
	Renderer  Renderer
	Resources *ResourceCache
	Log       *slog.Logger

	// Elapsed is the time in seconds since the loop started.
	Elapsed float32
	// Frame counts rendered frames, starting at 0.
	Frame uint64
}
