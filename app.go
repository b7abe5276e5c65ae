package engine

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// App owns a window, its input poller and a renderer, and drives a Scene
// through a fixed per-frame sequence:
//
//	delta time -> input -> events/update -> clear -> render -> present
//
// All calls happen on the goroutine that calls Run, which must be the
// thread that owns the GL context.
type App struct {
	window    Window
	input     Input
	renderer  Renderer
	scene     Scene
	resources *ResourceCache

	log        *slog.Logger
	clearColor mgl32.Vec4
	stats      *Throttle

	ctx         *Context
	running     bool
	sceneReady  bool
	closed      bool
	startTime   float64
	lastFrame   float64
	statsFrames int
	statsStart  float64
}

// NewApp creates an App. The App takes ownership of window and renderer:
// both are released when Run returns.
func NewApp(window Window, input Input, renderer Renderer, scene Scene, opts ...AppOption) *App {
	a := &App{
		window:     window,
		input:      input,
		renderer:   renderer,
		scene:      scene,
		log:        Logger(),
		clearColor: DefaultClearColor,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.stats == nil {
		a.stats = NewThrottle(DefaultThrottleInterval)
	}
	return a
}

// Context returns the context handed to the scene, or nil before Run.
func (a *App) Context() *Context { return a.ctx }

// Stop asks the loop to exit after the current frame.
func (a *App) Stop() { a.running = false }

// Run initializes the engine, runs the frame loop until the window or the
// input poller requests close, then tears everything down.
func (a *App) Run() error {
	defer a.Close()

	if err := a.initialize(); err != nil {
		a.log.Error("failed to initialize application", "err", err)
		return err
	}

	a.log.Info("running application")
	for a.running && !a.window.ShouldClose() {
		if !a.frame() {
			break
		}
	}
	a.log.Info("application exiting", "frames", a.ctx.Frame)
	return nil
}

func (a *App) initialize() error {
	if a.window == nil || a.renderer == nil || a.scene == nil {
		return fmt.Errorf("%w: window, renderer and scene are required", ErrInitFailed)
	}
	if err := a.renderer.Initialize(); err != nil {
		return fmt.Errorf("%w: renderer: %w", ErrInitFailed, err)
	}

	a.ctx = &Context{
		Window:    a.window,
		Input:     a.input,
		Renderer:  a.renderer,
		Resources: a.resources,
		Log:       a.log,
	}

	w, h := a.window.Size()
	a.renderer.SetViewport(w, h)

	if err := a.scene.Init(a.ctx); err != nil {
		return fmt.Errorf("%w: scene: %w", ErrInitFailed, err)
	}
	a.sceneReady = true

	a.startTime = a.window.Time()
	a.lastFrame = a.startTime
	a.statsStart = a.startTime
	a.running = true
	return nil
}

// frame runs one iteration of the loop. It returns false when input
// requested close.
func (a *App) frame() bool {
	now := a.window.Time()
	dt := float32(now - a.lastFrame)
	a.lastFrame = now
	a.ctx.Elapsed = float32(now - a.startTime)

	if a.input != nil {
		a.input.ProcessInput()
		if a.input.ShouldClose() {
			a.running = false
			return false
		}
	}

	events := a.window.Events()
	for _, e := range events {
		if r, ok := e.(ResizeEvent); ok {
			a.log.Info("window resized", "width", r.Width, "height", r.Height)
			a.renderer.SetViewport(r.Width, r.Height)
		}
	}

	a.scene.Update(a.ctx, dt, events)
	a.renderer.Clear(a.clearColor)
	a.scene.Render(a.ctx)

	a.window.SwapBuffers()
	a.window.PollEvents()

	a.ctx.Frame++
	a.statsFrames++
	a.stats.Do(func() {
		if span := now - a.statsStart; span > 0 {
			a.log.Info("frame stats", "fps", float64(a.statsFrames)/span, "dt", dt)
		}
		a.statsFrames = 0
		a.statsStart = now
	})
	return true
}

// Close tears down in reverse order of ownership: scene, resource cache,
// renderer, window. It is called by Run and is safe to call again.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.running = false

	if a.sceneReady {
		a.scene.Shutdown(a.ctx)
		a.sceneReady = false
	}
	if a.resources != nil {
		a.resources.Shutdown()
	}
	if a.renderer != nil {
		a.renderer.Shutdown()
	}
	if a.window != nil {
		a.window.Destroy()
	}
}
