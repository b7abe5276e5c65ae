// Package opengl provides the OpenGL 4.1 / GLFW backend for the engine
// package: a window, a keyboard poller and a renderer that also serves as
// the resource cache's GPU device.
package opengl

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/engine"
)

// Renderer is a thin wrapper over OpenGL calls. Every wrapped call polls
// glGetError afterwards and logs what it finds; errors are never fatal.
// It requires a current context (see NewWindow).
type Renderer struct {
	initialized bool
	log         *slog.Logger
}

var (
	_ engine.Renderer = (*Renderer)(nil)
	_ engine.Device   = (*Renderer)(nil)
)

// NewRenderer creates a renderer. Call Initialize before drawing.
func NewRenderer() *Renderer {
	return &Renderer{log: engine.Logger()}
}

// Initialize sets the default GL state (depth testing).
func (r *Renderer) Initialize() error {
	if r.initialized {
		r.log.Warn("renderer already initialized")
		return nil
	}
	gl.Enable(gl.DEPTH_TEST)
	if err := r.CheckGLError("renderer initialization"); err != nil {
		return err
	}
	r.initialized = true
	r.log.Info("renderer initialized")
	return nil
}

// Shutdown marks the renderer as stopped. GL objects are owned by the
// scenes and the resource cache, which release them first.
func (r *Renderer) Shutdown() {
	if !r.initialized {
		return
	}
	r.log.Info("shutting down renderer")
	r.initialized = false
}

// Clear clears the colour and depth buffers.
func (r *Renderer) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetViewport sets the drawable area.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.CheckGLError("SetViewport")
}

// SetWireframeMode switches between filled and line polygon rendering.
func (r *Renderer) SetWireframeMode(enabled bool) {
	mode := uint32(gl.FILL)
	if enabled {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	r.CheckGLError("SetWireframeMode")
}

// CreateShader compiles and links a program, returning 0 on failure.
func (r *Renderer) CreateShader(vertexSource, fragmentSource string) uint32 {
	program, err := createShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		r.log.Error("create shader", "err", err)
		return 0
	}
	return program
}

// DeleteShader deletes a program.
func (r *Renderer) DeleteShader(program uint32) {
	gl.DeleteProgram(program)
	r.CheckGLError("DeleteShader")
}

// LoadShaderFromFiles reads two stage files and links them, returning 0
// on failure.
func (r *Renderer) LoadShaderFromFiles(vertexPath, fragmentPath string) uint32 {
	r.log.Debug("loading shaders", "vertex", vertexPath, "fragment", fragmentPath)

	vertexSource, err := readShaderFile(vertexPath, "vertex")
	if err != nil {
		r.log.Error("load shader", "err", err)
		return 0
	}
	fragmentSource, err := readShaderFile(fragmentPath, "fragment")
	if err != nil {
		r.log.Error("load shader", "err", err)
		return 0
	}
	return r.CreateShader(vertexSource, fragmentSource)
}

func readShaderFile(path, stage string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s shader file: %w", stage, err)
	}
	src, err := engine.ReadFile(path)
	if err != nil {
		return "", err
	}
	if src == "" {
		return "", fmt.Errorf("%s shader file %s is empty", stage, path)
	}
	return src, nil
}

// AnimateColorPulse fades the "ourColor" uniform of program between base
// and black. The program must be in use.
func (r *Renderer) AnimateColorPulse(program uint32, base mgl32.Vec3, speed float32) {
	intensity := engine.PulseIntensity(float32(glfw.GetTime()), speed)
	c := base.Mul(intensity)
	loc := gl.GetUniformLocation(program, gl.Str("ourColor\x00"))
	gl.Uniform4f(loc, c[0], c[1], c[2], 1.0)
}

// SetUniformMat4 uploads a matrix uniform to the program in use.
func (r *Renderer) SetUniformMat4(program uint32, name string, m mgl32.Mat4) {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// SetUniformInt uploads an int (or sampler) uniform to the program in use.
func (r *Renderer) SetUniformInt(program uint32, name string, v int32) {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	gl.Uniform1i(loc, v)
}

// CreateVAO creates a vertex array object.
func (r *Renderer) CreateVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	r.CheckGLError("CreateVAO")
	return vao
}

// CreateVBO uploads vertex data to a new array buffer.
func (r *Renderer) CreateVBO(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.CheckGLError("CreateVBO")
	return vbo
}

// CreateEBO uploads indices to a new element buffer.
func (r *Renderer) CreateEBO(indices []uint32) uint32 {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*int(unsafe.Sizeof(uint32(0))), gl.Ptr(indices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	r.CheckGLError("CreateEBO")
	return ebo
}

// SetVertexLayout describes interleaved float attributes of vbo in vao.
// sizes[i] is the component count of attribute location i. A non-zero ebo
// is bound into the VAO.
func (r *Renderer) SetVertexLayout(vao, vbo, ebo uint32, sizes ...int32) {
	var stride int32
	for _, s := range sizes {
		stride += s * 4
	}

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	}

	var offset uintptr
	for i, s := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), s, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(s) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.CheckGLError("SetVertexLayout")
}

// DeleteVAO deletes a vertex array object.
func (r *Renderer) DeleteVAO(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
	r.CheckGLError("DeleteVAO")
}

// DeleteVBO deletes a vertex buffer.
func (r *Renderer) DeleteVBO(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
	r.CheckGLError("DeleteVBO")
}

// DeleteEBO deletes an element buffer.
func (r *Renderer) DeleteEBO(ebo uint32) {
	gl.DeleteBuffers(1, &ebo)
	r.CheckGLError("DeleteEBO")
}

// DrawArrays draws count vertices of the bound VAO.
func (r *Renderer) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
	r.CheckGLError("DrawArrays")
}

// DrawTriangles draws count vertices of the bound VAO as triangles.
func (r *Renderer) DrawTriangles(first, count int32) {
	r.DrawArrays(gl.TRIANGLES, first, count)
}

// DrawIndexedTriangles draws count indices of the bound VAO as triangles.
func (r *Renderer) DrawIndexedTriangles(count int32) {
	r.DrawElements(gl.TRIANGLES, count)
}

// UseProgram makes program current; 0 unbinds.
func (r *Renderer) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// BindVertexArray binds vao; 0 unbinds.
func (r *Renderer) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

// DrawElements draws count uint32 indices of the bound VAO's element buffer.
func (r *Renderer) DrawElements(mode uint32, count int32) {
	gl.DrawElementsWithOffset(mode, count, gl.UNSIGNED_INT, 0)
	r.CheckGLError("DrawElements")
}

// CheckGLError logs and returns the pending GL error, if any.
func (r *Renderer) CheckGLError(operation string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	err := fmt.Errorf("OpenGL error in %s: %s (0x%x)", operation, glErrorName(code), code)
	r.log.Error("OpenGL error", "op", operation, "error", glErrorName(code), "code", code)
	return err
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "unknown OpenGL error"
	}
}

// compileShader compiles one stage, deleting it on failure.
func compileShader(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader compilation failed: %s", stageName(stage), gl.GoStr(&log[0]))
	}
	return shader, nil
}

func stageName(stage uint32) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	default:
		return "unknown"
	}
}

// createShaderProgram compiles and links a shader program. Partial objects
// are deleted on every failure path.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// The program keeps the linked stages alive.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", gl.GoStr(&log[0]))
	}

	return program, nil
}

// glFormat maps an engine pixel format to the GL enum used for both the
// internal and the client format.
func glFormat(f engine.PixelFormat) (uint32, error) {
	switch f {
	case engine.FormatRed:
		return gl.RED, nil
	case engine.FormatRGB:
		return gl.RGB, nil
	case engine.FormatRGBA:
		return gl.RGBA, nil
	default:
		return 0, fmt.Errorf("%w: %v", engine.ErrUnsupportedFormat, f)
	}
}

// clampTo32 guards the int -> int32 conversions of image sizes.
func clampTo32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
