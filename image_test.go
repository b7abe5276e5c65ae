package engine_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/go-theft-auto/engine"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImageChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))

	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, opaqueImage(8, 8), nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want engine.PixelFormat
	}{
		{"png gray", encodePNG(t, gray), engine.FormatRed},
		{"png rgb", encodePNG(t, opaqueImage(2, 2)), engine.FormatRGB},
		{"png rgba", encodePNG(t, translucent), engine.FormatRGBA},
		{"jpeg", jpg.Bytes(), engine.FormatRGB},
		{"tga rgb", tgaImage(2, 2, 24), engine.FormatRGB},
		{"tga rgba", tgaImage(2, 2, 32), engine.FormatRGBA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, err := engine.DecodeImage(tt.data)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if px.Format != tt.want {
				t.Errorf("expected %v, got %v", tt.want, px.Format)
			}
			if want := px.Width * px.Height * tt.want.Channels(); len(px.Data) != want {
				t.Errorf("expected %d bytes, got %d", want, len(px.Data))
			}
		})
	}
}

func TestDecodeImageGrayAlphaUnsupported(t *testing.T) {
	_, err := engine.DecodeImage(grayAlphaPNG(t, 2, 2))
	if !errors.Is(err, engine.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeImageFlipsRows(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})  // top
	img.SetGray(0, 1, color.Gray{Y: 200}) // bottom

	px, err := engine.DecodeImage(encodePNG(t, img))
	if err != nil {
		t.Fatal(err)
	}
	if px.Data[0] != 200 || px.Data[1] != 10 {
		t.Errorf("expected bottom row first, got %v", px.Data)
	}
}

func TestDecodeImageBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaqueImage(3, 5)); err != nil {
		t.Fatal(err)
	}
	px, err := engine.DecodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if px.Width != 3 || px.Height != 5 {
		t.Errorf("expected 3x5, got %dx%d", px.Width, px.Height)
	}
}

// tgaImage builds an uncompressed bottom-up truecolor TGA. Pixel (x, row)
// in file order is B=x, G=row, R=0x80, A=0xff.
func tgaImage(w, h int, depth byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = 2 // uncompressed truecolor
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(w))
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(h))
	hdr[16] = depth
	if depth == 32 {
		hdr[17] = 8 // alpha bits
	}
	buf := bytes.NewBuffer(hdr)
	for row := 0; row < h; row++ {
		for x := 0; x < w; x++ {
			buf.Write([]byte{byte(x), byte(row), 0x80})
			if depth == 32 {
				buf.WriteByte(0xff)
			}
		}
	}
	return buf.Bytes()
}

func TestDecodeTGAKeepsFileRowOrder(t *testing.T) {
	px, err := engine.DecodeImage(tgaImage(3, 2, 24))
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if px.Width != 3 || px.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", px.Width, px.Height)
	}
	// Bottom-up files land unchanged once flipped for OpenGL.
	last := px.Data[len(px.Data)-3:]
	if !bytes.Equal(px.Data[:3], []byte{0x80, 0, 0}) || !bytes.Equal(last, []byte{0x80, 1, 2}) {
		t.Errorf("unexpected pixels %v", px.Data)
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	if _, err := engine.DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected an error")
	}
}

func TestFormatForChannels(t *testing.T) {
	for channels, want := range map[int]engine.PixelFormat{1: engine.FormatRed, 3: engine.FormatRGB, 4: engine.FormatRGBA} {
		got, err := engine.FormatForChannels(channels)
		if err != nil || got != want {
			t.Errorf("FormatForChannels(%d) = %v, %v; want %v", channels, got, err, want)
		}
	}
	for _, channels := range []int{0, 2, 5} {
		if _, err := engine.FormatForChannels(channels); !errors.Is(err, engine.ErrUnsupportedFormat) {
			t.Errorf("FormatForChannels(%d): expected ErrUnsupportedFormat, got %v", channels, err)
		}
	}
}
