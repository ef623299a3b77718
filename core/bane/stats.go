package bane

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// iqrToSigma converts an interquartile range to a Gaussian 1-sigma.
const iqrToSigma = 1.34896

// boxStats returns the median and the IQR-derived sigma of sorted,
// finite samples. Empty boxes yield NaN for both.
func boxStats(sorted []float64) (med, sigma float64) {
	if len(sorted) == 0 {
		return math.NaN(), math.NaN()
	}
	med = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	p25 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	p75 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return med, (p75 - p25) / iqrToSigma
}
