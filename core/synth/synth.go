// Package synth renders cataloged sources into a pixel-frame model
// grid: the 2-D elliptical Gaussian of every source is evaluated over a
// clipped bounding box and accumulated additively, with optional NaN
// masking of bright pixels.
package synth

import (
	"math"

	"github.com/rs/zerolog"

	"aeres-core/catalog"
	"aeres-core/grid"
	"aeres-core/wcs"
)

// extentFactor scales each source's bounding half-widths.
const extentFactor = 5

// Options controls synthesis. Log is the injected diagnostic sink; the
// zero value logs nothing.
type Options struct {
	Mask  bool    // write NaN instead of flux for pixels at/above the threshold
	Frac  float64 // threshold as a fraction of peak flux; < 0 means unset
	Sigma float64 // threshold in units of local RMS when Frac is unset; 0 means 4
	Log   zerolog.Logger
}

// Stats reports how the catalog was consumed.
type Stats struct {
	Modeled int
	Skipped int
}

// Synthesize renders each source into a fresh (nx, ny) model grid.
// Sources that fail to project, whose center falls outside the image,
// or whose bounding box is not finite are skipped with a debug trace;
// a skip never aborts the run. Overlapping footprints sum elementwise,
// and a NaN written by any contributor survives all later additions.
func Synthesize(sources []catalog.Source, nx, ny int, proj wcs.Projector, opt Options) (*grid.Grid, Stats) {
	if opt.Sigma <= 0 {
		opt.Sigma = 4
	}
	model := grid.New(nx, ny)
	var st Stats
	for _, src := range sources {
		if addSource(model, src, proj, opt) {
			st.Modeled++
		} else {
			st.Skipped++
		}
	}
	return model, st
}

func addSource(model *grid.Grid, src catalog.Source, proj wcs.Projector, opt Options) bool {
	log := opt.Log
	pe, err := proj.SkyEllipseToPixel(src.RA, src.Dec, src.A, src.B, src.PA)
	if err != nil {
		log.Debug().Int("island", src.Island).Int("source", src.ID).Err(err).
			Msg("ellipse projection failed")
		return false
	}

	w, h := float64(model.NX), float64(model.NY)
	if !(pe.X0 > 0 && pe.X0 < w && pe.Y0 > 0 && pe.Y0 < h) {
		log.Debug().Int("island", src.Island).Int("source", src.ID).
			Float64("x0", pe.X0).Float64("y0", pe.Y0).Msg("center off image")
		return false
	}

	phi := pe.Theta * math.Pi / 180
	xOff := extentFactor * (math.Abs(pe.SX*math.Cos(phi)) + math.Abs(pe.SY*math.Sin(phi)))
	yOff := extentFactor * (math.Abs(pe.SX*math.Sin(phi)) + math.Abs(pe.SY*math.Cos(phi)))

	xmin := math.Max(0, math.Floor(pe.X0-xOff))
	xmax := math.Min(w, math.Ceil(pe.X0+xOff))
	ymin := math.Max(0, math.Floor(pe.Y0-yOff))
	ymax := math.Min(h, math.Ceil(pe.Y0+yOff))
	if !finite(xmin) || !finite(xmax) || !finite(ymin) || !finite(ymax) {
		log.Debug().Int("island", src.Island).Int("source", src.ID).
			Msg("non-finite bounding box")
		return false
	}

	thr := math.Inf(1)
	if opt.Mask {
		if opt.Frac >= 0 {
			thr = opt.Frac * src.PeakFlux
		} else {
			if src.LocalRMS <= 0 {
				log.Warn().Int("island", src.Island).Int("source", src.ID).
					Float64("local_rms", src.LocalRMS).Msg("non-positive local rms in catalog")
			}
			thr = opt.Sigma * src.LocalRMS
		}
	}

	// The (x0-1, y0-1) center offset is an established index convention
	// of the output format; keep it exactly.
	g := newGauss(src.PeakFlux, pe.X0-1, pe.Y0-1, pe.SX*fwhm2cc, pe.SY*fwhm2cc, pe.Theta)
	for y := int(ymin); y < int(ymax); y++ {
		for x := int(xmin); x < int(xmax); x++ {
			v := g.at(float64(x), float64(y))
			if opt.Mask && v >= thr {
				v = math.NaN()
			}
			model.Add(x, y, v)
		}
	}
	return true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
