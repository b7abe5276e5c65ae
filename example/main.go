// Example runs one demo scene in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run the default (triangle) scene
//	ENGINE_SCENE=spinning go run ./example/
//
// Window size, title, assets folder and scene can also be set in an
// engine.yaml file in the working directory.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/engine"
	"github.com/go-theft-auto/engine/backend/opengl"
	"github.com/go-theft-auto/engine/example/scenes"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	code := 0
	func() {
		defer func() {
			if r := recover(); r != nil {
				engine.Logger().Error("unhandled failure", "panic", r)
				code = 1
			}
		}()
		if err := run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			code = 1
		}
	}()
	os.Exit(code)
}

func run() error {
	cfg, err := engine.LoadConfig(engine.DefaultConfigFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	engine.SetVerbose(cfg.Verbose)
	log := engine.Logger()

	newScene, err := scenes.Lookup(cfg.Scene)
	if err != nil {
		return err
	}

	log.Info("starting engine", "scene", cfg.Scene)

	window, err := opengl.NewWindow(opengl.WindowProps{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrInitFailed, err)
	}

	renderer := opengl.NewRenderer()
	resources := engine.NewResourceCache(renderer)
	if err := resources.Initialize(cfg.Assets); err != nil {
		log.Warn("asset folders incomplete", "err", err)
	}

	app := engine.NewApp(window, opengl.NewInput(window), renderer, newScene(renderer),
		engine.WithResources(resources),
		engine.WithClearColor(cfg.Clear()),
	)
	if err := app.Run(); err != nil {
		return err
	}

	log.Info("application finished")
	return nil
}
