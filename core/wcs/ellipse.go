package wcs

import "math"

// translate offsets (ra, dec) by r degrees along the given bearing
// (degrees east of north), following a great circle.
func translate(ra, dec, r, bearing float64) (raOut, decOut float64) {
	d, th, rr := dec*deg, bearing*deg, r*deg
	f := math.Sin(d)*math.Cos(rr) + math.Cos(d)*math.Sin(rr)*math.Cos(th)
	decOut = math.Asin(f) / deg
	yy := math.Sin(th) * math.Sin(rr) * math.Cos(d)
	xx := math.Cos(rr) - math.Sin(decOut*deg)*math.Sin(d)
	raOut = ra + math.Atan2(yy, xx)/deg
	return raOut, decOut
}

// SkyEllipseToPixel projects a sky ellipse onto the pixel frame by
// projecting the center plus one point along each axis. Axes a, b are
// in arcsec, pa in degrees east of north. The returned Theta is the
// pixel-frame angle of the major axis in degrees.
func (w *WCS) SkyEllipseToPixel(ra, dec, a, b, pa float64) (PixelEllipse, error) {
	x, y, err := w.Sky2Pix(ra, dec)
	if err != nil {
		return PixelEllipse{}, err
	}

	ra2, dec2 := translate(ra, dec, a/3600, pa)
	xa, ya, err := w.Sky2Pix(ra2, dec2)
	if err != nil {
		return PixelEllipse{}, err
	}
	sx := math.Hypot(xa-x, ya-y)
	theta := math.Atan2(ya-y, xa-x) / deg

	ra2, dec2 = translate(ra, dec, b/3600, pa+90)
	xb, yb, err := w.Sky2Pix(ra2, dec2)
	if err != nil {
		return PixelEllipse{}, err
	}
	sy := math.Hypot(xb-x, yb-y)

	return PixelEllipse{X0: x, Y0: y, SX: sx, SY: sy, Theta: theta}, nil
}
