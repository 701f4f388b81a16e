package util

import (
	"fmt"
	"os"
	"time"
)

// now is replaced in tests to pin timestamps.
var now = time.Now

// Timestamp returns the current Unix time in milliseconds
func Timestamp() int64 {
	return now().UnixMilli()
}

// GenerateFilename builds "{prefix}_{unix_millis}.{ext}"
func GenerateFilename(prefix, ext string) string {
	return filenameAt(prefix, ext, Timestamp())
}

// GenerateFilenameWithID builds "{prefix}_{id}_{unix_millis}.{ext}"
func GenerateFilenameWithID(prefix string, id uint32, ext string) string {
	return fmt.Sprintf("%s_%d_%d.%s", prefix, id, Timestamp(), ext)
}

func filenameAt(prefix, ext string, millis int64) string {
	return fmt.Sprintf("%s_%d.%s", prefix, millis, ext)
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
