// Package catalog defines the source records consumed by the model
// synthesizer and loads them from component tables.
package catalog

// Source is one cataloged astronomical object, described as an
// elliptical Gaussian in sky coordinates. Records are immutable once
// loaded; the island/source ids exist for diagnostics only.
type Source struct {
	Island int
	ID     int

	RA  float64 // degrees
	Dec float64 // degrees

	A  float64 // semi-major axis FWHM, arcsec
	B  float64 // semi-minor axis FWHM, arcsec
	PA float64 // position angle, degrees east of north

	PeakFlux float64 // linear flux units
	LocalRMS float64 // 1-sigma noise at the source position, same units
}
