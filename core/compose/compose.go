// Package compose combines a synthesized model grid with observed
// pixels to produce a residual.
package compose

import (
	"fmt"

	"aeres-core/grid"
)

// Mode is the run-level rule for combining model and observation.
type Mode int

const (
	Subtract Mode = iota
	Add
	Mask
)

func (m Mode) String() string {
	switch m {
	case Subtract:
		return "subtract"
	case Add:
		return "add"
	case Mask:
		return "mask"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps the CLI/config spellings onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "subtract", "sub":
		return Subtract, nil
	case "add":
		return Add, nil
	case "mask":
		return Mask, nil
	}
	return 0, fmt.Errorf("unknown composition mode %q", s)
}

// Compose returns a fresh residual grid; the observed buffer is never
// mutated. Mask uses the same additive arithmetic as Add:
// its effect is carried entirely by the NaN cells the synthesizer baked
// into the model, which contaminate the matching residual cells while
// every other pixel receives the full additive Gaussian contribution.
func Compose(observed, model *grid.Grid, mode Mode) (*grid.Grid, error) {
	if observed.NX != model.NX || observed.NY != model.NY {
		return nil, fmt.Errorf("compose: shape mismatch (%dx%d vs %dx%d)",
			observed.NX, observed.NY, model.NX, model.NY)
	}
	out := grid.New(observed.NX, observed.NY)
	switch mode {
	case Subtract:
		for i, v := range observed.Data {
			out.Data[i] = v - model.Data[i]
		}
	case Add, Mask:
		for i, v := range observed.Data {
			out.Data[i] = v + model.Data[i]
		}
	default:
		return nil, fmt.Errorf("compose: unknown mode %v", mode)
	}
	return out, nil
}
