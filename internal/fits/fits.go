// Package fits reads and writes the FITS rasters aeres operates on,
// keeping just enough header context to project catalog sources and to
// write compatible outputs.
package fits

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"aeres-core/grid"
	"aeres-core/wcs"
)

// Image is an observed raster plus its coordinate metadata.
type Image struct {
	Grid *grid.Grid
	Geo  wcs.Geometry
	Beam wcs.Beam

	cards []fitsio.Card // header cards carried over to outputs
}

// Load opens a FITS file and reads the primary HDU. Rasters with more
// than two axes are reduced to the two celestial ones by taking the
// first plane of every extra axis.
func Load(path string) (*Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	f, err := fitsio.Open(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hdu, ok := f.HDU(0).(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("%s: primary HDU is not an image", path)
	}
	hdr := hdu.Header()
	axes := hdr.Axes()
	if len(axes) < 2 {
		return nil, fmt.Errorf("%s: need at least 2 axes, got %d", path, len(axes))
	}
	nx, ny := axes[0], axes[1]

	g := grid.New(nx, ny)
	if err := readPixels(hdu, hdr.Bitpix(), g.Data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	img := &Image{Grid: g}
	img.Geo = geometryFrom(hdr)
	img.Beam = beamFrom(hdr, img.Geo)
	img.cards = carryCards(hdr)
	return img, nil
}

// Write saves g as a 32-bit float primary HDU at path, carrying the
// celestial and beam cards from src when given. An existing file is
// overwritten.
func Write(path string, g *grid.Grid, src *Image) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()

	f, err := fitsio.Create(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img := fitsio.NewImage(-32, []int{g.NX, g.NY})
	defer func() { _ = img.Close() }()
	if src != nil && len(src.cards) > 0 {
		if err := img.Header().Append(src.cards...); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	raw := make([]float32, len(g.Data))
	for i, v := range g.Data {
		raw[i] = float32(v)
	}
	if err := img.Write(&raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Write(img); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readPixels decodes the raw pixel slice for the given BITPIX into dst.
// Any data beyond the first nx*ny values belongs to degenerate or
// higher axes and is dropped.
func readPixels(hdu fitsio.Image, bitpix int, dst []float64) error {
	n := len(dst)
	// fitsio.Image.Read sets the slice length to the full element count
	// of all axes and panics if the capacity is short, so the buffer
	// must be allocated up front.
	nelmts := 1
	for _, dim := range hdu.Header().Axes() {
		nelmts *= dim
	}
	switch bitpix {
	case 8:
		raw := make([]int8, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		for i := 0; i < n; i++ {
			dst[i] = float64(raw[i])
		}
	case 16:
		raw := make([]int16, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		for i := 0; i < n; i++ {
			dst[i] = float64(raw[i])
		}
	case 32:
		raw := make([]int32, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		for i := 0; i < n; i++ {
			dst[i] = float64(raw[i])
		}
	case 64:
		raw := make([]int64, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		for i := 0; i < n; i++ {
			dst[i] = float64(raw[i])
		}
	case -32:
		raw := make([]float32, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		for i := 0; i < n; i++ {
			dst[i] = float64(raw[i])
		}
	case -64:
		raw := make([]float64, nelmts)
		if err := hdu.Read(&raw); err != nil {
			return err
		}
		if len(raw) < n {
			return fmt.Errorf("short pixel data (%d < %d)", len(raw), n)
		}
		copy(dst, raw[:n])
	default:
		return fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
	return nil
}
