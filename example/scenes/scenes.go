// Package scenes holds the demo scenes run by the example program.
package scenes

import (
	"embed"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/engine"
)

//go:embed shaders
var shaderFS embed.FS

// GPU is the subset of the OpenGL renderer the scenes draw with.
// *opengl.Renderer implements it.
type GPU interface {
	CreateVAO() uint32
	CreateVBO(data []float32) uint32
	CreateEBO(indices []uint32) uint32
	SetVertexLayout(vao, vbo, ebo uint32, sizes ...int32)
	DeleteVAO(vao uint32)
	DeleteVBO(vbo uint32)
	DeleteEBO(ebo uint32)

	UseProgram(program uint32)
	BindVertexArray(vao uint32)
	BindTexture(unit uint32, h engine.Handle)
	SetUniformMat4(program uint32, name string, m mgl32.Mat4)
	SetUniformInt(program uint32, name string, v int32)
	AnimateColorPulse(program uint32, base mgl32.Vec3, speed float32)
	SetWireframeMode(enabled bool)

	DrawTriangles(first, count int32)
	DrawIndexedTriangles(count int32)
}

// Factory creates a scene drawing through gpu.
type Factory func(gpu GPU) engine.Scene

var registry = map[string]Factory{
	"triangle": func(gpu GPU) engine.Scene { return NewTriangle(gpu) },
	"quad":     func(gpu GPU) engine.Scene { return NewQuad(gpu) },
	"spinning": func(gpu GPU) engine.Scene { return NewSpinning(gpu) },
}

// Names returns the registered scene names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v): %w", name, Names(), engine.ErrNotFound)
	}
	return f, nil
}

// embeddedShader returns the embedded source of a shader stage file.
func embeddedShader(file string) (string, error) {
	data, err := shaderFS.ReadFile("shaders/" + file)
	if err != nil {
		return "", fmt.Errorf("embedded shader %s: %w", file, err)
	}
	return string(data), nil
}

// loadProgram loads name from the embedded sources, falling back to the
// stage files found in the asset index.
func loadProgram(ctx *engine.Context, name string) engine.Handle {
	vertFile, fragFile := name+".vert", name+".frag"

	vs, verr := embeddedShader(vertFile)
	fs, ferr := embeddedShader(fragFile)
	if verr == nil && ferr == nil {
		if h := ctx.Resources.LoadShader(name, vs, fs); h.Valid() {
			ctx.Log.Info("loaded embedded shaders", "name", name)
			return h
		}
	}

	ctx.Log.Warn("embedded shaders unavailable, trying asset files", "name", name)
	h := ctx.Resources.LoadShaderFiles(name, vertFile, fragFile)
	if h.Valid() {
		ctx.Log.Info("loaded shaders from assets", "name", name)
	}
	return h
}
