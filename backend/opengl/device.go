package opengl

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/engine"
)

// CompileProgram implements engine.Device.
func (r *Renderer) CompileProgram(vertexSource, fragmentSource string) (engine.Handle, error) {
	program, err := createShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		return engine.InvalidHandle, err
	}
	return engine.Handle(program), nil
}

// DeleteProgram implements engine.Device.
func (r *Renderer) DeleteProgram(h engine.Handle) {
	if h.Valid() {
		r.DeleteShader(uint32(h))
	}
}

// UploadTexture implements engine.Device: repeat wrapping, linear
// filtering and a generated mip chain.
func (r *Renderer) UploadTexture(px engine.Pixels) (engine.Handle, error) {
	format, err := glFormat(px.Format)
	if err != nil {
		return engine.InvalidHandle, err
	}
	if px.Width <= 0 || px.Height <= 0 || len(px.Data) < px.Width*px.Height*px.Format.Channels() {
		return engine.InvalidHandle, errors.New("texture data does not match its size")
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows of 1- and 3-channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), clampTo32(px.Width), clampTo32(px.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(px.Data))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := r.CheckGLError("UploadTexture"); err != nil {
		gl.DeleteTextures(1, &tex)
		return engine.InvalidHandle, err
	}
	return engine.Handle(tex), nil
}

// DeleteTexture implements engine.Device.
func (r *Renderer) DeleteTexture(h engine.Handle) {
	if !h.Valid() {
		return
	}
	tex := uint32(h)
	gl.DeleteTextures(1, &tex)
	r.CheckGLError("DeleteTexture")
}

// BindTexture binds a texture to the given texture unit.
func (r *Renderer) BindTexture(unit uint32, h engine.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

// Capture reads the lower-left width x height pixels of the framebuffer,
// flipped so that row 0 is the top row.
func (r *Renderer) Capture(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if err := r.CheckGLError("Capture"); err != nil {
		return nil, err
	}

	// OpenGL origin is bottom-left.
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	return &image.RGBA{
		Pix:    pixels,
		Stride: rowLen,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
