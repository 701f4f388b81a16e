// Package pointer reads the mouse location.
package pointer

import "github.com/go-vgo/robotgo"

// Position returns the pointer location in screen coordinates.
func Position() (float64, float64) {
	x, y := robotgo.Location()
	return float64(x), float64(y)
}
