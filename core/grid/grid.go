// Package grid provides the 2-D float64 raster shared by the synthesis
// and composition stages. NaN is the invalid-pixel sentinel; it
// propagates through accumulation unconditionally.
package grid

import "math"

// Grid is a real-valued raster stored row-major with x varying fastest,
// matching the FITS axis order (NAXIS1 = x, NAXIS2 = y).
type Grid struct {
	NX, NY int
	Data   []float64
}

// New returns an all-zero grid of the given shape.
func New(nx, ny int) *Grid {
	return &Grid{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
}

func (g *Grid) At(x, y int) float64 { return g.Data[y*g.NX+x] }

func (g *Grid) Set(x, y int, v float64) { g.Data[y*g.NX+x] = v }

// Add accumulates v into (x, y). A NaN on either side of the addition
// leaves the cell NaN, so a pixel marked invalid by any contributor
// stays invalid no matter how many others land on it.
func (g *Grid) Add(x, y int, v float64) { g.Data[y*g.NX+x] += v }

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{NX: g.NX, NY: g.NY, Data: make([]float64, len(g.Data))}
	copy(out.Data, g.Data)
	return out
}

// CountInvalid reports how many cells hold the NaN sentinel.
func (g *Grid) CountInvalid() int {
	n := 0
	for _, v := range g.Data {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
