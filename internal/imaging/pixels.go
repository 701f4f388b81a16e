package imaging

import (
	"fmt"
	"image"
	"image/draw"
)

// PixelFormat is the byte order of a 4-byte pixel
type PixelFormat int

const (
	FormatRGBA PixelFormat = iota
	FormatBGRA
)

// Pixels is a flat, top-down, row-major pixel buffer with straight alpha.
type Pixels struct {
	Width  int
	Height int
	Format PixelFormat
	Data   []byte
}

// ToRGBA flattens img into a tightly packed RGBA buffer.
func ToRGBA(img image.Image) Pixels {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*b.Dx() || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return Pixels{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: FormatRGBA,
		Data:   nrgba.Pix,
	}
}

// Normalize returns p in RGBA order, converting from BGRA when needed.
func (p Pixels) Normalize() (Pixels, error) {
	if p.Format == FormatRGBA {
		if len(p.Data) != p.Width*p.Height*4 {
			return Pixels{}, fmt.Errorf("pixel buffer size mismatch: got %d bytes, want %d (%dx%d)",
				len(p.Data), p.Width*p.Height*4, p.Width, p.Height)
		}
		return p, nil
	}
	data, err := BGRAToRGBA(p.Width, p.Height, p.Data)
	if err != nil {
		return Pixels{}, err
	}
	return Pixels{Width: p.Width, Height: p.Height, Format: FormatRGBA, Data: data}, nil
}

// Image wraps an RGBA buffer as an image without copying.
func (p Pixels) Image() (*image.NRGBA, error) {
	n, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    n.Data,
		Stride: 4 * n.Width,
		Rect:   image.Rect(0, 0, n.Width, n.Height),
	}, nil
}

// BGRAToRGBA swaps the blue and red channels of every pixel. The input
// must hold exactly width*height pixels.
func BGRAToRGBA(width, height int, buf []byte) ([]byte, error) {
	if width < 0 || height < 0 || len(buf) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer size mismatch: got %d bytes, want %d (%dx%d)",
			len(buf), width*height*4, width, height)
	}
	out := make([]byte, len(buf))
	for i := 0; i < len(buf); i += 4 {
		out[i+0] = buf[i+2] // R
		out[i+1] = buf[i+1] // G
		out[i+2] = buf[i+0] // B
		out[i+3] = buf[i+3] // A
	}
	return out, nil
}
