// Package wcs maps between sky coordinates (RA/Dec, degrees) and the
// zero-based pixel frame of a raster, and projects sky-frame ellipses
// into pixel-frame parameters for the synthesizer.
package wcs

import (
	"fmt"
	"math"
	"strings"
)

const deg = math.Pi / 180

// PixelEllipse is a sky ellipse projected into the pixel frame.
type PixelEllipse struct {
	X0, Y0 float64 // center, zero-based pixel coordinates
	SX, SY float64 // semi-axes (FWHM), pixels
	Theta  float64 // rotation, degrees
}

// Projector converts a sky-frame ellipse (axes in arcsec, position
// angle in degrees east of north) into pixel-frame parameters.
type Projector interface {
	SkyEllipseToPixel(ra, dec, a, b, pa float64) (PixelEllipse, error)
}

// Geometry holds the celestial header keywords needed to build a WCS.
// CRPix values are 1-based as in FITS headers.
type Geometry struct {
	CType1, CType2 string
	CRPix1, CRPix2 float64
	CRVal1, CRVal2 float64 // degrees
	CDelt1, CDelt2 float64 // degrees per pixel
}

type projection int

const (
	projLinear projection = iota
	projSIN
	projTAN
)

// WCS is a minimal celestial transform supporting the SIN and TAN
// projections, with a linear fallback for headers that carry neither.
type WCS struct {
	geo  Geometry
	proj projection
}

func New(geo Geometry) (*WCS, error) {
	if geo.CDelt1 == 0 || geo.CDelt2 == 0 {
		return nil, fmt.Errorf("wcs: zero pixel scale (CDELT1=%g CDELT2=%g)", geo.CDelt1, geo.CDelt2)
	}
	w := &WCS{geo: geo}
	switch {
	case strings.HasSuffix(geo.CType1, "-SIN"):
		w.proj = projSIN
	case strings.HasSuffix(geo.CType1, "-TAN"):
		w.proj = projTAN
	}
	return w, nil
}

// Sky2Pix converts (ra, dec) in degrees to zero-based pixel coordinates.
func (w *WCS) Sky2Pix(ra, dec float64) (x, y float64, err error) {
	var xi, eta float64
	switch w.proj {
	case projLinear:
		xi = ra - w.geo.CRVal1
		eta = dec - w.geo.CRVal2
	default:
		ra0, dec0 := w.geo.CRVal1*deg, w.geo.CRVal2*deg
		r, d := ra*deg, dec*deg
		dra := r - ra0
		l := math.Cos(d) * math.Sin(dra)
		m := math.Sin(d)*math.Cos(dec0) - math.Cos(d)*math.Sin(dec0)*math.Cos(dra)
		if w.proj == projTAN {
			div := math.Sin(d)*math.Sin(dec0) + math.Cos(d)*math.Cos(dec0)*math.Cos(dra)
			if div <= 0 {
				return 0, 0, fmt.Errorf("wcs: position (%g, %g) is behind the tangent plane", ra, dec)
			}
			l /= div
			m /= div
		} else if l*l+m*m > 1 {
			return 0, 0, fmt.Errorf("wcs: position (%g, %g) outside the SIN projection", ra, dec)
		}
		xi = l / deg
		eta = m / deg
	}
	x = xi/w.geo.CDelt1 + w.geo.CRPix1 - 1
	y = eta/w.geo.CDelt2 + w.geo.CRPix2 - 1
	return x, y, nil
}

// Pix2Sky converts zero-based pixel coordinates to (ra, dec) in degrees.
func (w *WCS) Pix2Sky(x, y float64) (ra, dec float64, err error) {
	xi := (x - (w.geo.CRPix1 - 1)) * w.geo.CDelt1
	eta := (y - (w.geo.CRPix2 - 1)) * w.geo.CDelt2
	if w.proj == projLinear {
		return w.geo.CRVal1 + xi, w.geo.CRVal2 + eta, nil
	}

	ra0, dec0 := w.geo.CRVal1*deg, w.geo.CRVal2*deg
	l, m := xi*deg, eta*deg
	rho := math.Hypot(l, m)
	if rho == 0 {
		return w.geo.CRVal1, w.geo.CRVal2, nil
	}
	var c float64
	if w.proj == projSIN {
		if rho > 1 {
			return 0, 0, fmt.Errorf("wcs: pixel (%g, %g) outside the SIN projection", x, y)
		}
		c = math.Asin(rho)
	} else {
		c = math.Atan(rho)
	}
	dec = math.Asin(math.Cos(c)*math.Sin(dec0) + m*math.Sin(c)*math.Cos(dec0)/rho)
	ra = ra0 + math.Atan2(l*math.Sin(c), rho*math.Cos(dec0)*math.Cos(c)-m*math.Sin(dec0)*math.Sin(c))
	return ra / deg, dec / deg, nil
}
