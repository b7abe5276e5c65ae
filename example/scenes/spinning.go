package scenes

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/engine"
)

var pulseColor = mgl32.Vec3{1.0, 0.8, 0.6}

// Spinning draws the textured quad rotating under an orbiting camera with
// a pulsing tint. W toggles wireframe rendering.
type Spinning struct {
	mesh      quadMesh
	program   engine.Handle
	aspect    float32
	wireframe bool
}

// NewSpinning creates the spinning quad scene.
func NewSpinning(gpu GPU) *Spinning {
	return &Spinning{mesh: quadMesh{gpu: gpu}, aspect: 1}
}

// Wireframe reports whether wireframe rendering is on.
func (s *Spinning) Wireframe() bool { return s.wireframe }

// Init builds the quad mesh and takes the aspect ratio from the window.
func (s *Spinning) Init(ctx *engine.Context) error {
	ctx.Log.Info("initializing spinning scene")
	s.program = loadProgram(ctx, "spinning")
	if !s.program.Valid() {
		return errors.New("spinning: failed to load shaders from any source")
	}
	if err := s.mesh.init(ctx); err != nil {
		return err
	}
	if w, h := ctx.Window.Size(); w > 0 && h > 0 {
		s.aspect = float32(w) / float32(h)
	}
	return nil
}

// Update tracks resizes and toggles wireframe on W.
func (s *Spinning) Update(ctx *engine.Context, _ float32, events []engine.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case engine.ResizeEvent:
			if e.Width > 0 && e.Height > 0 {
				s.aspect = float32(e.Width) / float32(e.Height)
			}
		case engine.KeyEvent:
			if e.Key == engine.KeyW && e.Pressed {
				s.wireframe = !s.wireframe
				s.mesh.gpu.SetWireframeMode(s.wireframe)
				ctx.Log.Debug("wireframe", "enabled", s.wireframe)
			}
		}
	}
}

// Render uploads the model, view and projection matrices and draws.
func (s *Spinning) Render(ctx *engine.Context) {
	if !s.program.Valid() || s.mesh.vao == 0 {
		return
	}
	gpu := s.mesh.gpu
	program := uint32(s.program)
	t := ctx.Elapsed

	gpu.UseProgram(program)
	gpu.SetUniformInt(program, "texture1", 0)
	gpu.SetUniformMat4(program, "model", engine.RotatingModel(t, 1, mgl32.Vec3{0, 1, 0}))
	gpu.SetUniformMat4(program, "view", engine.OrbitingCamera(t*0.5, 3, 0.5))
	gpu.SetUniformMat4(program, "projection", engine.ProjectionMatrix(45, s.aspect, 0.1, 100))
	gpu.AnimateColorPulse(program, pulseColor, 1.5)
	s.mesh.draw()
	gpu.UseProgram(0)
}

// Shutdown restores fill mode and releases the mesh.
func (s *Spinning) Shutdown(ctx *engine.Context) {
	ctx.Log.Info("shutting down spinning scene")
	if s.wireframe {
		s.mesh.gpu.SetWireframeMode(false)
		s.wireframe = false
	}
	s.mesh.release(ctx)
	if s.program.Valid() {
		ctx.Resources.UnloadShader("spinning")
		s.program = engine.InvalidHandle
	}
}
