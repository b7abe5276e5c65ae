// Command gen renders every demo scene offscreen, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-theft-auto/engine"
	"github.com/go-theft-auto/engine/backend/opengl"
	"github.com/go-theft-auto/engine/example/scenes"
)

const (
	shotWidth  = 640
	shotHeight = 480
	// Frames rendered before capture; Spinning needs a few to move.
	shotFrames = 3
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	window, err := opengl.NewWindow(opengl.WindowProps{
		Title:  "gen",
		Width:  shotWidth,
		Height: shotHeight,
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer := opengl.NewRenderer()
	if err := renderer.Initialize(); err != nil {
		return err
	}
	defer renderer.Shutdown()

	resources := engine.NewResourceCache(renderer)
	if err := resources.Initialize("assets"); err != nil {
		return err
	}
	defer resources.Shutdown()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	ctx := &engine.Context{
		Window:    window,
		Input:     opengl.NewInput(window),
		Renderer:  renderer,
		Resources: resources,
		Log:       engine.Logger(),
	}

	names := scenes.Names()
	for _, name := range names {
		if err := capture(ctx, renderer, name, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(names), outDir)
	return nil
}

func capture(ctx *engine.Context, renderer *opengl.Renderer, name, outDir string) error {
	newScene, err := scenes.Lookup(name)
	if err != nil {
		return err
	}
	scene := newScene(renderer)
	if err := scene.Init(ctx); err != nil {
		return err
	}
	defer scene.Shutdown(ctx)

	renderer.SetViewport(shotWidth, shotHeight)
	for i := 0; i < shotFrames; i++ {
		ctx.Elapsed = float32(i) / 60
		ctx.Frame = uint64(i)
		scene.Update(ctx, 1.0/60.0, nil)
		renderer.Clear(engine.DefaultClearColor)
		scene.Render(ctx)
	}

	img, err := renderer.Capture(shotWidth, shotHeight)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(outDir, name+".jpg"))
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
