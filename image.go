package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// imageFormat is a decoder selected by a leading magic string.
type imageFormat struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// TGA has no signature to sniff, so it is tried when nothing else matches.
var imageFormats = []imageFormat{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"bmp", "BM", bmp.Decode},
}

func decodeAny(data []byte) (image.Image, string, error) {
	for _, f := range imageFormats {
		if bytes.HasPrefix(data, []byte(f.magic)) {
			img, err := f.decode(bytes.NewReader(data))
			return img, f.name, err
		}
	}
	img, err := tga.Decode(bytes.NewReader(data))
	return img, "tga", err
}

// DecodeFile reads and decodes an image file. See DecodeImage.
func DecodeFile(path string) (Pixels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pixels{}, fmt.Errorf("read image: %w", err)
	}
	return DecodeImage(data)
}

// DecodeImage decodes PNG, JPEG, BMP or TGA data into tightly packed pixels,
// flipped so that row 0 is the bottom row as OpenGL expects.
// The layout follows the channel count stored in the file; counts other
// than 1, 3 or 4 fail with ErrUnsupportedFormat.
func DecodeImage(data []byte) (Pixels, error) {
	img, format, err := decodeAny(data)
	if err != nil {
		return Pixels{}, fmt.Errorf("decode image: %w", err)
	}

	channels := imageChannels(img)
	switch format {
	case "png":
		if n, ok := pngChannels(data, img); ok {
			channels = n
		}
	case "tga":
		if n, ok := tgaChannels(data); ok {
			channels = n
		}
	}

	pf, err := FormatForChannels(channels)
	if err != nil {
		return Pixels{}, err
	}
	return packPixels(img, pf), nil
}

// pngChannels reads the channel count from the IHDR color type, since
// image/png widens gray+alpha images to NRGBA.
func pngChannels(data []byte, img image.Image) (int, bool) {
	// signature(8) + length(4) + "IHDR"(4) + width(4) + height(4) + depth(1)
	const colorTypeOffset = 25
	if len(data) <= colorTypeOffset || string(data[12:16]) != "IHDR" {
		return 0, false
	}
	if binary.BigEndian.Uint32(data[8:12]) != 13 {
		return 0, false
	}
	switch data[colorTypeOffset] {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 3:
		return paletteChannels(img), true
	case 4:
		return 2, true
	case 6:
		return 4, true
	}
	return 0, false
}

// tgaChannels reads the channel count from the TGA header; the decoded
// image does not record the stored depth.
func tgaChannels(data []byte) (int, bool) {
	const (
		typeOffset       = 2
		mapDepthOffset   = 7
		pixelDepthOffset = 16
	)
	if len(data) < 18 {
		return 0, false
	}
	depth := data[pixelDepthOffset]
	switch data[typeOffset] {
	case 1, 9: // color-mapped
		depth = data[mapDepthOffset]
	case 3, 11: // grayscale
		switch depth {
		case 8:
			return 1, true
		case 16:
			return 2, true
		}
		return 0, false
	}
	switch depth {
	case 15, 16, 24:
		return 3, true
	case 32:
		return 4, true
	}
	return 0, false
}

func paletteChannels(img image.Image) int {
	p, ok := img.(*image.Paletted)
	if !ok {
		return 4
	}
	for _, c := range p.Palette {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return 4
		}
	}
	return 3
}

func imageChannels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.NRGBA, *image.NRGBA64:
		return 4
	case *image.Paletted:
		return paletteChannels(m)
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func packPixels(img image.Image, pf PixelFormat) Pixels {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := pf.Channels()
	data := make([]byte, w*h*n)

	for row := 0; row < h; row++ {
		y := b.Max.Y - 1 - row
		off := row * w * n
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			switch pf {
			case FormatRed:
				data[off] = color.GrayModel.Convert(c).(color.Gray).Y
			case FormatRGB:
				nc := color.NRGBAModel.Convert(c).(color.NRGBA)
				data[off], data[off+1], data[off+2] = nc.R, nc.G, nc.B
			case FormatRGBA:
				nc := color.NRGBAModel.Convert(c).(color.NRGBA)
				data[off], data[off+1], data[off+2], data[off+3] = nc.R, nc.G, nc.B, nc.A
			}
			off += n
		}
	}

	return Pixels{Width: w, Height: h, Format: pf, Data: data}
}
