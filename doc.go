/*
Package engine is a small OpenGL demo engine: a frame loop, a resource
cache for shader programs and textures, and a few transform helpers.

The package itself is independent of any graphics API. The GLFW window,
keyboard poller and OpenGL renderer live in backend/opengl and plug into
the interfaces defined here.

# Quick Start

	window, _ := opengl.NewWindow(opengl.WindowProps{Title: "demo", Width: 800, Height: 600, VSync: true})
	renderer := opengl.NewRenderer()
	input := opengl.NewInput(window)

	resources := engine.NewResourceCache(renderer)
	resources.Initialize("assets")

	app := engine.NewApp(window, input, renderer, scene, engine.WithResources(resources))
	if err := app.Run(); err != nil {
	    // initialization failed
	}

# Frame Loop

Every frame the App:

 1. computes the delta time from Window.Time
 2. polls input; a close request ends the loop
 3. drains window events (resize events update the viewport)
 4. calls Scene.Update with the delta time and the events
 5. clears the framebuffer and calls Scene.Render
 6. swaps buffers and polls the window system

When the loop ends the scene, the resource cache, the renderer and the
window are released in that order.

# Resource Cache

ResourceCache.Initialize creates <root>/textures and <root>/shaders and
indexes every image (jpg, jpeg, png, bmp, tga) and shader stage (vert, frag,
geom, comp) below them by bare filename. Lookups try the exact name first
and then a case-insensitive match, so "foo.png" finds "foo.PNG".

Load failures never return errors: they are logged and reported as
InvalidHandle. Loading a name twice returns the cached handle.

# Logging

The engine logs through log/slog. SetVerbose(true) enables debug output;
SetLogger replaces the logger for the engine and its backends.
*/
package engine
