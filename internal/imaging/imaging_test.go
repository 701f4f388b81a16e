package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	path := filepath.Join(dir, "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodePNGDataURI(t *testing.T) {
	raw, err := DecodePNGDataURI("data:image/png;base64,iVBORw0KGgo=")
	if err != nil {
		t.Fatalf("DecodePNGDataURI: %v", err)
	}
	want := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	if !bytes.Equal(raw, want) {
		t.Errorf("decoded = %x, want %x", raw, want)
	}
}

func TestDecodePNGDataURIRejectsOtherPrefixes(t *testing.T) {
	inputs := []string{
		"data:image/jpeg;base64,iVBORw0KGgo=",
		"data:image/PNG;base64,iVBORw0KGgo=",
		"iVBORw0KGgo=",
		"",
	}
	for _, in := range inputs {
		if _, err := DecodePNGDataURI(in); !errors.Is(err, ErrInvalidDataURI) {
			t.Errorf("DecodePNGDataURI(%q) err = %v, want ErrInvalidDataURI", in, err)
		}
	}
}

func TestDecodePNGDataURIBadBase64(t *testing.T) {
	_, err := DecodePNGDataURI(PNGDataURIPrefix + "!!!")
	if err == nil || errors.Is(err, ErrInvalidDataURI) {
		t.Errorf("expected base64 error, got %v", err)
	}
}

func TestSaveBase64Image(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := SaveBase64Image("data:image/png;base64,iVBORw0KGgo=", dir, "bettershot")
	if err != nil {
		t.Fatalf("SaveBase64Image: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "bettershot_") || filepath.Ext(path) != ".png" {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 8 {
		t.Errorf("wrote %d bytes, want 8", len(data))
	}
}

func TestSaveBase64ImageWritesNothingOnBadPrefix(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if _, err := SaveBase64Image("data:image/jpeg;base64,AAAA", dir, "bettershot"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("save dir should not be created, stat err = %v", err)
	}
}

func TestCropImage(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, 40, 30)

	path, err := CropImage(src, CropRegion{X: 10, Y: 5, Width: 100, Height: 10}, dir)
	if err != nil {
		t.Fatalf("CropImage: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "region_") {
		t.Errorf("unexpected name %q", path)
	}

	img, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 10 {
		t.Fatalf("cropped size = %dx%d, want 30x10", b.Dx(), b.Dy())
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 10 || uint8(g>>8) != 5 {
		t.Errorf("top-left pixel = (%d,%d), want (10,5)", r>>8, g>>8)
	}
}

func TestCropImageInvalidRegion(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, 40, 30)

	_, err := CropImage(src, CropRegion{X: 10, Y: 5, Width: 0, Height: 10}, dir)
	if !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("err = %v, want ErrInvalidRegion", err)
	}
	if !strings.Contains(err.Error(), "image: 40x30") {
		t.Errorf("error should mention image size: %v", err)
	}
}

func TestCropImageMissingSource(t *testing.T) {
	if _, err := CropImage(filepath.Join(t.TempDir(), "nope.png"), CropRegion{Width: 1, Height: 1}, t.TempDir()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCopyToDir(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, 4, 4)
	dest := filepath.Join(dir, "dest")

	path, err := CopyToDir(src, dest, "shot")
	if err != nil {
		t.Fatalf("CopyToDir: %v", err)
	}
	a, _ := os.ReadFile(src)
	b, _ := os.ReadFile(path)
	if !bytes.Equal(a, b) {
		t.Error("copied file differs from source")
	}

	if _, err := CopyToDir(filepath.Join(dir, "missing.png"), dest, "shot"); err == nil ||
		!strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
