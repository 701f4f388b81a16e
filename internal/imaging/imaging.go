// Package imaging decodes, crops and writes screenshot images.
package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/sim4gh/bettershot-go/internal/util"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PNGDataURIPrefix is the only accepted data URI header.
const PNGDataURIPrefix = "data:image/png;base64,"

var (
	ErrInvalidDataURI = errors.New("invalid image data format: expected data:image/png;base64, prefix")
	ErrInvalidRegion  = errors.New("invalid crop region")
)

// Open decodes the image at path
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Crop copies the region of img into a new image. The region must already
// be clamped to img's bounds.
func Crop(img image.Image, r CropRegion) *image.RGBA {
	b := img.Bounds()
	src := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)).Add(b.Min)
	dst := image.NewRGBA(image.Rect(0, 0, int(r.Width), int(r.Height)))
	xdraw.Copy(dst, image.Point{}, img, src, xdraw.Src, nil)
	return dst
}

// CropImage crops the image at sourcePath and saves the result in saveDir.
func CropImage(sourcePath string, region CropRegion, saveDir string) (string, error) {
	img, err := Open(sourcePath)
	if err != nil {
		return "", err
	}

	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy())
	clamped := region.Clamped(w, h)
	if !clamped.IsValid() {
		return "", fmt.Errorf("%w: x=%d, y=%d, w=%d, h=%d (requested x=%d, y=%d, w=%d, h=%d; image: %dx%d)",
			ErrInvalidRegion,
			clamped.X, clamped.Y, clamped.Width, clamped.Height,
			region.X, region.Y, region.Width, region.Height,
			w, h)
	}

	return SaveImage(Crop(img, clamped), saveDir, "region")
}

// SaveImage encodes img as PNG into saveDir under a generated name.
func SaveImage(img image.Image, saveDir, prefix string) (string, error) {
	if err := util.EnsureDir(saveDir); err != nil {
		return "", err
	}

	path := filepath.Join(saveDir, util.GenerateFilename(prefix, "png"))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// DecodePNGDataURI returns the bytes carried by a PNG data URI. No other
// MIME type is accepted.
func DecodePNGDataURI(data string) ([]byte, error) {
	payload, ok := strings.CutPrefix(data, PNGDataURIPrefix)
	if !ok {
		return nil, ErrInvalidDataURI
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return raw, nil
}

// SaveBase64Image writes the PNG carried by a data URI into saveDir as is.
func SaveBase64Image(data, saveDir, prefix string) (string, error) {
	raw, err := DecodePNGDataURI(data)
	if err != nil {
		return "", err
	}

	if err := util.EnsureDir(saveDir); err != nil {
		return "", err
	}

	path := filepath.Join(saveDir, util.GenerateFilename(prefix, "png"))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// CopyToDir copies an existing screenshot into saveDir under a new name.
func CopyToDir(sourcePath, saveDir, prefix string) (string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("screenshot file not found: %s", sourcePath)
		}
		return "", fmt.Errorf("failed to copy screenshot: %w", err)
	}
	defer src.Close()

	if err := util.EnsureDir(saveDir); err != nil {
		return "", err
	}

	path := filepath.Join(saveDir, util.GenerateFilename(prefix, "png"))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to copy screenshot: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to copy screenshot: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to copy screenshot: %w", err)
	}
	return path, nil
}
