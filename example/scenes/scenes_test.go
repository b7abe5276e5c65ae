package scenes_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/engine"
	"github.com/go-theft-auto/engine/example/scenes"
)

// fakeGPU records draw calls and hands out sequential object names.
type fakeGPU struct {
	next      uint32
	live      map[uint32]bool
	draws     []int32
	uniforms  map[string]bool
	wireframe []bool
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{live: make(map[uint32]bool), uniforms: make(map[string]bool)}
}

func (g *fakeGPU) alloc() uint32 {
	g.next++
	g.live[g.next] = true
	return g.next
}

func (g *fakeGPU) CreateVAO() uint32                          { return g.alloc() }
func (g *fakeGPU) CreateVBO([]float32) uint32                 { return g.alloc() }
func (g *fakeGPU) CreateEBO([]uint32) uint32                  { return g.alloc() }
func (g *fakeGPU) SetVertexLayout(_, _, _ uint32, _ ...int32) {}
func (g *fakeGPU) DeleteVAO(vao uint32)                       { delete(g.live, vao) }
func (g *fakeGPU) DeleteVBO(vbo uint32)                       { delete(g.live, vbo) }
func (g *fakeGPU) DeleteEBO(ebo uint32)                       { delete(g.live, ebo) }
func (g *fakeGPU) UseProgram(uint32)                          {}
func (g *fakeGPU) BindVertexArray(uint32)                     {}
func (g *fakeGPU) BindTexture(uint32, engine.Handle)          {}
func (g *fakeGPU) SetWireframeMode(enabled bool)              { g.wireframe = append(g.wireframe, enabled) }
func (g *fakeGPU) DrawTriangles(_, count int32)               { g.draws = append(g.draws, count) }
func (g *fakeGPU) DrawIndexedTriangles(count int32)           { g.draws = append(g.draws, count) }

func (g *fakeGPU) SetUniformInt(_ uint32, name string, _ int32) {
	g.uniforms[name] = true
}

func (g *fakeGPU) SetUniformMat4(_ uint32, name string, _ mgl32.Mat4) {
	g.uniforms[name] = true
}

func (g *fakeGPU) AnimateColorPulse(uint32, mgl32.Vec3, float32) {
	g.uniforms["ourColor"] = true
}

// fakeDevice backs the resource cache.
type fakeDevice struct {
	next     engine.Handle
	failAll  bool
	programs int
	textures int
}

func (d *fakeDevice) CompileProgram(string, string) (engine.Handle, error) {
	if d.failAll {
		return engine.InvalidHandle, errors.New("compile failed")
	}
	d.next++
	d.programs++
	return d.next, nil
}

func (d *fakeDevice) DeleteProgram(engine.Handle) { d.programs-- }

func (d *fakeDevice) UploadTexture(engine.Pixels) (engine.Handle, error) {
	d.next++
	d.textures++
	return d.next, nil
}

func (d *fakeDevice) DeleteTexture(engine.Handle) { d.textures-- }

type fakeWindow struct{ engine.Window }

func (fakeWindow) Size() (int, int) { return 800, 600 }

func newContext(t *testing.T, dev *fakeDevice) *engine.Context {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rc := engine.NewResourceCache(dev, engine.WithCacheLogger(log))
	if err := rc.Initialize(filepath.Join(t.TempDir(), "assets")); err != nil {
		t.Fatal(err)
	}
	return &engine.Context{Window: fakeWindow{}, Resources: rc, Log: log}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"triangle", "quad", "spinning"} {
		if _, err := scenes.Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	if _, err := scenes.Lookup("cube"); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if names := scenes.Names(); len(names) != 3 || names[0] != "quad" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestTriangleLifecycle(t *testing.T) {
	gpu := newFakeGPU()
	dev := &fakeDevice{}
	ctx := newContext(t, dev)

	scene := scenes.NewTriangle(gpu)
	if err := scene.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	scene.Render(ctx)
	if len(gpu.draws) != 1 || gpu.draws[0] != 3 {
		t.Errorf("expected one 3-vertex draw, got %v", gpu.draws)
	}

	scene.Shutdown(ctx)
	if len(gpu.live) != 0 {
		t.Errorf("expected buffers released, live: %v", gpu.live)
	}
	if dev.programs != 0 {
		t.Errorf("expected program unloaded, %d alive", dev.programs)
	}
}

func TestTriangleInitFailsWithoutShaders(t *testing.T) {
	dev := &fakeDevice{failAll: true}
	ctx := newContext(t, dev)

	if err := scenes.NewTriangle(newFakeGPU()).Init(ctx); err == nil {
		t.Fatal("expected an error when no shader source compiles")
	}
}

func TestQuadWritesPlaceholderTexture(t *testing.T) {
	gpu := newFakeGPU()
	dev := &fakeDevice{}
	ctx := newContext(t, dev)

	scene := scenes.NewQuad(gpu)
	if err := scene.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	path := filepath.Join(ctx.Resources.Root(), engine.TexturesDir, scenes.QuadTexture)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected placeholder texture at %s: %v", path, err)
	}
	if dev.textures != 1 {
		t.Errorf("expected 1 texture, got %d", dev.textures)
	}

	scene.Render(ctx)
	if len(gpu.draws) != 1 || gpu.draws[0] != 6 {
		t.Errorf("expected one 6-index draw, got %v", gpu.draws)
	}

	scene.Shutdown(ctx)
	if dev.textures != 0 || dev.programs != 0 {
		t.Errorf("expected resources released, textures=%d programs=%d", dev.textures, dev.programs)
	}
	if len(gpu.live) != 0 {
		t.Errorf("expected buffers released, live: %v", gpu.live)
	}
}

func TestSpinningUpdateAndRender(t *testing.T) {
	gpu := newFakeGPU()
	ctx := newContext(t, &fakeDevice{})

	scene := scenes.NewSpinning(gpu)
	if err := scene.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	scene.Update(ctx, 0.016, []engine.Event{
		engine.ResizeEvent{Width: 1920, Height: 1080},
		engine.KeyEvent{Key: engine.KeyW, Pressed: true},
		engine.KeyEvent{Key: engine.KeyW, Pressed: false},
	})
	if !scene.Wireframe() {
		t.Error("expected wireframe after W press")
	}

	ctx.Elapsed = 1
	scene.Render(ctx)
	for _, name := range []string{"model", "view", "projection", "ourColor"} {
		if !gpu.uniforms[name] {
			t.Errorf("uniform %s not set", name)
		}
	}

	scene.Shutdown(ctx)
	if scene.Wireframe() {
		t.Error("wireframe should be reset on shutdown")
	}
	if last := gpu.wireframe[len(gpu.wireframe)-1]; last {
		t.Error("expected fill mode restored")
	}
}

func TestWriteChecker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	if err := scenes.WriteChecker(path, 16, 4); err != nil {
		t.Fatal(err)
	}
	px, err := engine.DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if px.Width != 16 || px.Height != 16 {
		t.Errorf("expected 16x16, got %dx%d", px.Width, px.Height)
	}
	if err := scenes.WriteChecker(path, 0, 4); err == nil {
		t.Error("expected an error for size 0")
	}
}
