package engine

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultClearColor is the colour the App clears to before Render.
var DefaultClearColor = mgl32.Vec4{0.07, 0.13, 0.17, 1.0}

// AppOption configures an App.
type AppOption func(*App)

// WithClearColor sets the per-frame clear colour.
func WithClearColor(c mgl32.Vec4) AppOption {
	return func(a *App) { a.clearColor = c }
}

// WithLogger sets the logger used by the App and passed to scenes.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithResources attaches a resource cache. The App shuts it down during
// teardown, after the scene.
func WithResources(rc *ResourceCache) AppOption {
	return func(a *App) { a.resources = rc }
}

// WithStatsInterval sets how often frame statistics are logged.
func WithStatsInterval(d time.Duration) AppOption {
	return func(a *App) { a.stats = NewThrottle(d) }
}
