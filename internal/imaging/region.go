package imaging

// CropRegion is a rectangle in source-image pixel coordinates
type CropRegion struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Clamped fits the region inside an imgWidth x imgHeight image. An origin
// past the edge is pulled back to the last valid pixel; the size is then
// trimmed to what remains.
func (r CropRegion) Clamped(imgWidth, imgHeight uint32) CropRegion {
	x := min(r.X, saturatingSub(imgWidth, 1))
	y := min(r.Y, saturatingSub(imgHeight, 1))
	return CropRegion{
		X:      x,
		Y:      y,
		Width:  min(r.Width, saturatingSub(imgWidth, x)),
		Height: min(r.Height, saturatingSub(imgHeight, y)),
	}
}

// IsValid reports whether the region has a non-zero area
func (r CropRegion) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

func saturatingSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}
