package render3d

import "math"

// Oblique view parameters. The canvas offsets center the 1000px frame on the
// transformed [-5,5]² terrain footprint.
const (
	ViewScale     = 0.7
	ViewPitch     = math.Pi / 3 // about X
	ViewYaw       = math.Pi / 4 // about Z
	PixelsPerUnit = 100.0
	OffsetX       = 5.0
	OffsetY       = 6.0
)

// Projection maps a world sample (wx, wy, height) to a canvas pixel and a
// depth value used only for ordering.
type Projection struct {
	M Mat4
}

// NewProjection builds scale, then X rotation, then Z rotation, composed the
// way a GLM-style matrix stack would (M = S·Rx·Rz).
func NewProjection() *Projection {
	m := Mat4Identity()
	m = m.Mul(Mat4Scale(ViewScale, ViewScale, ViewScale))
	m = m.Mul(Mat4RotateX(ViewPitch))
	m = m.Mul(Mat4RotateZ(ViewYaw))
	return &Projection{M: m}
}

// Project transforms the homogeneous point (wx, wy, -height, 1).
func (p *Projection) Project(wx, wy, height float64) (px, py int, z float64) {
	v := p.M.TransformPoint(V3(wx, wy, -height))
	px = int(math.Round((v.X + OffsetX) * PixelsPerUnit))
	py = int(math.Round((v.Y + OffsetY) * PixelsPerUnit))
	return px, py, v.Z
}
