package scenes

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-theft-auto/engine"
)

// QuadTexture is the texture the quad scenes sample.
const QuadTexture = "container.png"

// Interleaved position (3) + texture coordinate (2).
var quadVertices = []float32{
	0.5, 0.5, 0.0, 1.0, 1.0,
	0.5, -0.5, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.0, 0.0, 0.0,
	-0.5, 0.5, 0.0, 0.0, 1.0,
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// quadMesh is the geometry and texture shared by Quad and Spinning.
type quadMesh struct {
	gpu     GPU
	texture engine.Handle
	vao     uint32
	vbo     uint32
	ebo     uint32
}

func (m *quadMesh) init(ctx *engine.Context) error {
	m.texture = loadQuadTexture(ctx)
	if !m.texture.Valid() {
		return errors.New("quad: no texture")
	}
	m.vao = m.gpu.CreateVAO()
	m.vbo = m.gpu.CreateVBO(quadVertices)
	m.ebo = m.gpu.CreateEBO(quadIndices)
	m.gpu.SetVertexLayout(m.vao, m.vbo, m.ebo, 3, 2)
	return nil
}

func (m *quadMesh) draw() {
	m.gpu.BindTexture(0, m.texture)
	m.gpu.BindVertexArray(m.vao)
	m.gpu.DrawIndexedTriangles(int32(len(quadIndices)))
	m.gpu.BindVertexArray(0)
}

func (m *quadMesh) release(ctx *engine.Context) {
	if m.vao != 0 {
		m.gpu.DeleteVAO(m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		m.gpu.DeleteVBO(m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		m.gpu.DeleteEBO(m.ebo)
		m.ebo = 0
	}
	if m.texture.Valid() {
		ctx.Resources.UnloadTexture(QuadTexture)
		m.texture = engine.InvalidHandle
	}
}

// loadQuadTexture loads QuadTexture, writing a checkerboard into the
// textures folder first when the asset is missing.
func loadQuadTexture(ctx *engine.Context) engine.Handle {
	rc := ctx.Resources
	if _, ok := rc.ResolveTexture(QuadTexture); !ok {
		path := filepath.Join(rc.Root(), engine.TexturesDir, QuadTexture)
		if err := WriteChecker(path, 256, 32); err != nil {
			ctx.Log.Error("write placeholder texture", "path", path, "err", err)
			return engine.InvalidHandle
		}
		ctx.Log.Info("wrote placeholder texture", "path", path)
		rc.Rescan()
	}
	return rc.LoadTexture(QuadTexture)
}

// WriteChecker writes a size x size RGBA checkerboard PNG with cells of
// the given size.
func WriteChecker(path string, size, cell int) error {
	if size <= 0 || cell <= 0 {
		return fmt.Errorf("invalid checker %d/%d", size, cell)
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0xd8, G: 0xa0, B: 0x58, A: 0xff}
	dark := color.NRGBA{R: 0x6b, G: 0x42, B: 0x1c, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Quad draws a textured quad in clip space.
type Quad struct {
	mesh    quadMesh
	program engine.Handle
}

// NewQuad creates the textured quad scene.
func NewQuad(gpu GPU) *Quad {
	return &Quad{mesh: quadMesh{gpu: gpu}}
}

// Init builds the quad mesh and loads its texture, writing a placeholder
// checkerboard first if the texture is missing.
func (q *Quad) Init(ctx *engine.Context) error {
	ctx.Log.Info("initializing quad scene")
	q.program = loadProgram(ctx, "quad")
	if !q.program.Valid() {
		return errors.New("quad: failed to load shaders from any source")
	}
	if err := q.mesh.init(ctx); err != nil {
		return err
	}
	gpu := q.mesh.gpu
	gpu.UseProgram(uint32(q.program))
	gpu.SetUniformInt(uint32(q.program), "texture1", 0)
	gpu.UseProgram(0)
	return nil
}

// Update does nothing; the quad is static.
func (q *Quad) Update(*engine.Context, float32, []engine.Event) {}

// Render binds the texture to unit 0 and draws the quad.
func (q *Quad) Render(*engine.Context) {
	if !q.program.Valid() || q.mesh.vao == 0 {
		return
	}
	q.mesh.gpu.UseProgram(uint32(q.program))
	q.mesh.draw()
	q.mesh.gpu.UseProgram(0)
}

// Shutdown releases the mesh, program and texture.
func (q *Quad) Shutdown(ctx *engine.Context) {
	ctx.Log.Info("shutting down quad scene")
	q.mesh.release(ctx)
	if q.program.Valid() {
		ctx.Resources.UnloadShader("quad")
		q.program = engine.InvalidHandle
	}
}
