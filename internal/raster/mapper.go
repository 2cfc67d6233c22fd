package raster

// Mapper converts between physical coordinates (meters, ground-relative,
// y up) and raster pixels (origin top-left, y down). The transform is
// affine and lossless.
type Mapper struct {
	Width        int
	Height       int
	GroundMargin int     // pixels between frame bottom and the ground line
	Scale        float64 // pixels per meter
	GroundHeight float64 // ground plane height in meters
}

func NewMapper(width, height, groundMargin int, scale, groundHeight float64) *Mapper {
	return &Mapper{
		Width:        width,
		Height:       height,
		GroundMargin: groundMargin,
		Scale:        scale,
		GroundHeight: groundHeight,
	}
}

// ToPixels maps physical (x, y) meters to pixel coordinates. x is
// centered on the frame; y is measured upward from the ground plane.
func (m *Mapper) ToPixels(xM, yM float64) (float64, float64) {
	px := float64(m.Width)/2 + xM*m.Scale
	py := float64(m.Height-m.GroundMargin) - (yM-m.GroundHeight)*m.Scale
	return px, py
}

// ToMeters inverts ToPixels.
func (m *Mapper) ToMeters(px, py float64) (float64, float64) {
	xM := (px - float64(m.Width)/2) / m.Scale
	yM := (float64(m.Height-m.GroundMargin)-py)/m.Scale + m.GroundHeight
	return xM, yM
}

// GroundY is the pixel row of the ground plane.
func (m *Mapper) GroundY() float64 {
	_, py := m.ToPixels(0, m.GroundHeight)
	return py
}
