// Package logutil configures the structured debug log.
package logutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LogFileName  = "bettershot.log"
	maxSizeBytes = 5 * 1024 * 1024 // 5 MB
	maxArchives  = 3
)

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
)

// Setup sends log output to dir/bettershot.log with size-based rotation
// (5 MB, max 3 archives). An empty dir discards all logs.
func Setup(dir, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if dir == "" {
		setLogger(zerolog.Nop())
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	w, err := newRotatingWriter(filepath.Join(dir, LogFileName))
	if err != nil {
		return err
	}
	setLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger())
	return nil
}

// SetOutput logs to w at debug level. Used by tests and --verbose.
func SetOutput(w io.Writer) {
	setLogger(zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger())
}

// L returns the process logger
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func setLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

type rotatingWriter struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func newRotatingWriter(path string) (*rotatingWriter, error) {
	rotateIfNeeded(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &rotatingWriter{path: path, f: f}, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotate(w.path)
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func rotateIfNeeded(path string) {
	if st, err := os.Stat(path); err == nil && st.Size() > maxSizeBytes {
		rotate(path)
	}
}

// rotate shifts path -> path.1 -> path.2 -> path.3; the oldest is dropped.
func rotate(path string) {
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
