package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatBytes converts bytes to human-readable string (e.g., "1.5 MB")
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	k := float64(1024)
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))

	if i >= len(units) {
		i = len(units) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))

	if i > 0 {
		return fmt.Sprintf("%.1f %s", value, units[i])
	}
	return fmt.Sprintf("%.0f %s", value, units[i])
}

// Truncate shortens text to length, keeping the tail. Paths are more
// recognisable by their file name than by their root.
func Truncate(text string, length int) string {
	if len(text) <= length {
		return text
	}
	if length <= 3 {
		return text[len(text)-length:]
	}
	return "..." + text[len(text)-length+3:]
}

// FormatScale renders a display scale factor, e.g. "2x" or "1.5x"
func FormatScale(scale float32) string {
	s := fmt.Sprintf("%.2f", scale)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "x"
}
