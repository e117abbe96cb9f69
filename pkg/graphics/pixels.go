package graphics

import "golang.org/x/image/math/f64"

// PixelTransform maps native pixel coordinates to logical coordinates.
// Native controls report touches in physical pixels; gesture callbacks are
// delivered in logical units.
type PixelTransform struct {
	m f64.Aff3
}

// NewPixelTransform returns the transform for a display density (physical
// pixels per logical unit). Densities <= 0 are treated as 1.
func NewPixelTransform(density float64) PixelTransform {
	if density <= 0 {
		density = 1
	}
	inv := 1 / density
	return PixelTransform{m: f64.Aff3{
		inv, 0, 0,
		0, inv, 0,
	}}
}

// Density returns physical pixels per logical unit.
func (t PixelTransform) Density() float64 {
	if t.m[0] == 0 {
		return 1
	}
	return 1 / t.m[0]
}

// FromPixels converts a scalar distance in pixels to logical units.
func (t PixelTransform) FromPixels(v float64) float64 {
	if t.m[0] == 0 {
		return v
	}
	return v * t.m[0]
}

// Point converts a pixel position to logical coordinates.
func (t PixelTransform) Point(p Offset) Offset {
	if t.m == (f64.Aff3{}) {
		return p
	}
	v := f64.Vec2{p.X, p.Y}
	return Offset{
		X: t.m[0]*v[0] + t.m[1]*v[1] + t.m[2],
		Y: t.m[3]*v[0] + t.m[4]*v[1] + t.m[5],
	}
}

// Vector converts a pixel delta to logical units, ignoring translation.
func (t PixelTransform) Vector(d Offset) Offset {
	if t.m == (f64.Aff3{}) {
		return d
	}
	return Offset{
		X: t.m[0]*d.X + t.m[1]*d.Y,
		Y: t.m[3]*d.X + t.m[4]*d.Y,
	}
}
