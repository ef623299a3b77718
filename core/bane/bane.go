// Package bane estimates per-pixel background and noise maps from
// local statistics over a mesh of boxes sized in beam units.
package bane

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"aeres-core/grid"
	"aeres-core/wcs"
)

// Config controls the estimation mesh.
type Config struct {
	MeshSize  int     // beams per mesh box; 0 means 20
	ForcedRMS float64 // > 0 skips estimation and fills a constant rms
	Workers   int     // bounded worker pool size; 0 means all CPUs
	Log       zerolog.Logger
}

// Estimate computes background and 1-sigma noise grids for img. Each
// mesh box gets the median of its finite pixels as background and an
// interquartile-range noise estimate; NaN pixels are ignored. Boxes are
// disjoint, so workers fill them without locks, and the result is
// independent of the worker count.
func Estimate(img *grid.Grid, beam wcs.Beam, cfg Config) (bkg, rms *grid.Grid, err error) {
	if cfg.MeshSize <= 0 {
		cfg.MeshSize = 20
	}
	bkg = grid.New(img.NX, img.NY)
	rms = grid.New(img.NX, img.NY)
	if cfg.ForcedRMS > 0 {
		for i := range rms.Data {
			rms.Data[i] = cfg.ForcedRMS
		}
		return bkg, rms, nil
	}

	widthX := cfg.MeshSize * int(math.Max(math.Abs(math.Cos(beam.PA)*beam.B), math.Abs(math.Sin(beam.PA)*beam.A)))
	widthY := cfg.MeshSize * int(math.Max(math.Abs(math.Sin(beam.PA)*beam.B), math.Abs(math.Cos(beam.PA)*beam.A)))
	if widthX < 1 || widthY < 1 {
		return nil, nil, fmt.Errorf("bane: degenerate mesh %dx%d (beam %gx%g px)", widthX, widthY, beam.A, beam.B)
	}
	cfg.Log.Debug().Int("nx", img.NX).Int("ny", img.NY).
		Int("width_x", widthX).Int("width_y", widthY).Msg("background mesh")

	xmins, xmaxs := meshEdges(img.NX, widthX)
	ymins, ymaxs := meshEdges(img.NY, widthY)

	type box struct{ x0, x1, y0, y1 int }
	jobs := make(chan box, len(xmins)*len(ymins))
	for i := range xmins {
		for j := range ymins {
			jobs <- box{xmins[i], xmaxs[i], ymins[j], ymaxs[j]}
		}
	}
	close(jobs)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			buf := make([]float64, 0, widthX*widthY)
			for b := range jobs {
				buf = gatherFinite(buf[:0], img, b.x0, b.x1, b.y0, b.y1)
				sort.Float64s(buf)
				med, sigma := boxStats(buf)
				fillBox(bkg, b.x0, b.x1, b.y0, b.y1, med)
				fillBox(rms, b.x0, b.x1, b.y0, b.y1, sigma)
			}
		}()
	}
	wg.Wait()
	return bkg, rms, nil
}

// meshEdges tiles [0, n) with width-sized boxes anchored so one box is
// centered on the image center, leaving partial boxes at both ends.
// Returned slices pair index-wise into half-open [min, max) ranges.
func meshEdges(n, width int) (mins, maxs []int) {
	if width >= n {
		return []int{0}, []int{n}
	}
	cen := n / 2
	start := mod(cen-width/2, width)
	end := n - mod(n-start, width)

	mins = append(mins, 0)
	for v := start; v < end; v += width {
		mins = append(mins, v)
	}
	mins = append(mins, end)

	maxs = append(maxs, start)
	for v := start + width; v <= end; v += width {
		maxs = append(maxs, v)
	}
	maxs = append(maxs, n)
	return mins, maxs
}

func mod(a, b int) int { return ((a % b) + b) % b }

func gatherFinite(dst []float64, g *grid.Grid, x0, x1, y0, y1 int) []float64 {
	for y := y0; y < y1; y++ {
		row := g.Data[y*g.NX+x0 : y*g.NX+x1]
		for _, v := range row {
			if !math.IsNaN(v) {
				dst = append(dst, v)
			}
		}
	}
	return dst
}

func fillBox(g *grid.Grid, x0, x1, y0, y1 int, v float64) {
	for y := y0; y < y1; y++ {
		row := g.Data[y*g.NX+x0 : y*g.NX+x1]
		for i := range row {
			row[i] = v
		}
	}
}
