// Package clipboard pushes images and text to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	textclip "github.com/atotto/clipboard"
	"golang.design/x/clipboard"

	"github.com/sim4gh/bettershot-go/internal/imaging"
)

// Writer accepts a flat RGBA image for the clipboard
type Writer interface {
	WriteImage(p imaging.Pixels) error
}

// System writes to the OS clipboard through golang.design/x/clipboard.
type System struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
}

// NewSystem returns a clipboard writer bound to the OS clipboard.
func NewSystem() *System {
	return &System{}
}

func (s *System) init() error {
	s.once.Do(func() {
		s.initErr = clipboard.Init()
	})
	if s.initErr != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", s.initErr)
	}
	return nil
}

// WriteImage places p on the clipboard. The library carries images as PNG,
// so the buffer is re-encoded after channel order is normalized.
func (s *System) WriteImage(p imaging.Pixels) error {
	if err := s.init(); err != nil {
		return err
	}

	img, err := p.Image()
	if err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// CopyImageFile decodes the image at path and hands it to w.
func CopyImageFile(w Writer, path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	return w.WriteImage(imaging.ToRGBA(img))
}

// WriteText copies plain text, e.g. a saved file path.
func WriteText(text string) error {
	if err := textclip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
