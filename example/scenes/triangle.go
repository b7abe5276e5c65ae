package scenes

import (
	"errors"

	"github.com/go-theft-auto/engine"
)

var triangleVertices = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

// Triangle draws a single solid triangle.
type Triangle struct {
	gpu     GPU
	program engine.Handle
	vao     uint32
	vbo     uint32
}

// NewTriangle creates the triangle scene.
func NewTriangle(gpu GPU) *Triangle {
	return &Triangle{gpu: gpu}
}

// Init uploads the vertex buffer and loads the "triangle" program.
func (t *Triangle) Init(ctx *engine.Context) error {
	ctx.Log.Info("initializing triangle scene")

	t.program = loadProgram(ctx, "triangle")
	if !t.program.Valid() {
		return errors.New("triangle: failed to load shaders from any source")
	}

	t.vao = t.gpu.CreateVAO()
	t.vbo = t.gpu.CreateVBO(triangleVertices)
	t.gpu.SetVertexLayout(t.vao, t.vbo, 0, 3)
	return nil
}

// Update does nothing; the triangle is static.
func (t *Triangle) Update(*engine.Context, float32, []engine.Event) {}

// Render draws the three vertices.
func (t *Triangle) Render(*engine.Context) {
	if !t.program.Valid() || t.vao == 0 {
		return
	}
	t.gpu.UseProgram(uint32(t.program))
	t.gpu.BindVertexArray(t.vao)
	t.gpu.DrawTriangles(0, 3)
	t.gpu.BindVertexArray(0)
	t.gpu.UseProgram(0)
}

// Shutdown releases the buffers and unloads the program.
func (t *Triangle) Shutdown(ctx *engine.Context) {
	ctx.Log.Info("shutting down triangle scene")
	if t.vao != 0 {
		t.gpu.DeleteVAO(t.vao)
		t.vao = 0
	}
	if t.vbo != 0 {
		t.gpu.DeleteVBO(t.vbo)
		t.vbo = 0
	}
	if t.program.Valid() {
		ctx.Resources.UnloadShader("triangle")
		t.program = engine.InvalidHandle
	}
}
