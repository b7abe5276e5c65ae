package engine

import (
	"errors"
	"fmt"
)

// Handle is an opaque identifier of a GPU resource (program, texture, buffer).
type Handle uint32

// InvalidHandle is returned on every failure path. No live resource uses it.
const InvalidHandle Handle = 0

// Valid reports whether h refers to a resource.
func (h Handle) Valid() bool { return h != InvalidHandle }

// PixelFormat is the channel layout of an uploaded texture.
type PixelFormat int

const (
	FormatRed PixelFormat = iota + 1
	FormatRGB
	FormatRGBA
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRed:
		return "red"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Channels returns the number of bytes per pixel for the format.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatRed:
		return 1
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

var (
	// ErrUnsupportedFormat is returned for images whose channel count has no
	// matching PixelFormat.
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	// ErrNotFound is returned when a name cannot be resolved.
	ErrNotFound = errors.New("not found")
	// ErrInitFailed is returned when the engine cannot start.
	ErrInitFailed = errors.New("initialization failed")
)

// FormatForChannels maps a decoded channel count to a PixelFormat.
func FormatForChannels(channels int) (PixelFormat, error) {
	switch channels {
	case 1:
		return FormatRed, nil
	case 3:
		return FormatRGB, nil
	case 4:
		return FormatRGBA, nil
	default:
		return 0, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}
}

// Pixels is decoded, tightly packed image data ready for upload.
// Row 0 is the bottom row of the image.
type Pixels struct {
	Width, Height int
	Format        PixelFormat
	Data          []byte
}

// Device is the GPU surface the resource cache needs.
// The OpenGL backend implements it; tests use a fake.
type Device interface {
	// CompileProgram compiles and links a vertex+fragment program. On failure
	// it releases any partial objects and returns the compiler diagnostic.
	CompileProgram(vertexSource, fragmentSource string) (Handle, error)
	DeleteProgram(h Handle)
	// UploadTexture creates a 2D texture with repeat wrapping, linear
	// filtering and a full mip chain.
	UploadTexture(px Pixels) (Handle, error)
	DeleteTexture(h Handle)
}
