package wcs

import "math"

// Beam holds the synthesized beam in pixel units.
type Beam struct {
	A, B float64 // semi-axes, pixels
	PA   float64 // radians
}

// BeamFromHeader converts BMAJ/BMIN/BPA (all degrees) into pixel units
// given the pixel scales. Non-square pixels are handled by projecting
// each axis onto the pixel grid.
func BeamFromHeader(bmaj, bmin, bpa, cdelt1, cdelt2 float64) Beam {
	pa := bpa * deg
	a := math.Hypot(bmaj*math.Sin(pa)/cdelt1, bmaj*math.Cos(pa)/cdelt2)
	b := math.Hypot(bmin*math.Cos(pa)/cdelt1, bmin*math.Sin(pa)/cdelt2)
	return Beam{A: math.Abs(a), B: math.Abs(b), PA: pa}
}
