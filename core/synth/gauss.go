package synth

import "math"

// fwhm2cc converts a full-width-half-maximum to a Gaussian sigma.
var fwhm2cc = 1 / (2 * math.Sqrt(2*math.Ln2))

// gauss2d is an elliptical Gaussian surface with precomputed rotation.
type gauss2d struct {
	amp      float64
	x0, y0   float64
	sint     float64
	cost     float64
	sx2, sy2 float64
}

func newGauss(amp, x0, y0, sx, sy, thetaDeg float64) gauss2d {
	phi := thetaDeg * math.Pi / 180
	return gauss2d{
		amp: amp, x0: x0, y0: y0,
		sint: math.Sin(phi), cost: math.Cos(phi),
		sx2: sx * sx, sy2: sy * sy,
	}
}

func (g gauss2d) at(x, y float64) float64 {
	dx, dy := x-g.x0, y-g.y0
	u := dx*g.cost + dy*g.sint
	v := dx*g.sint - dy*g.cost
	return g.amp * math.Exp(-0.5*(u*u/g.sx2+v*v/g.sy2))
}
