package fits

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"

	"aeres-core/grid"
)

// makeFITS writes a float32 image with the given axes and cards.
func makeFITS(t *testing.T, path string, axes []int, cards []fitsio.Card, data []float32) {
	t.Helper()
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = fh.Close() }()
	f, err := fitsio.Create(fh)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	img := fitsio.NewImage(-32, axes)
	defer func() { _ = img.Close() }()
	if len(cards) > 0 {
		if err := img.Header().Append(cards...); err != nil {
			t.Fatal(err)
		}
	}
	if err := img.Write(&data); err != nil {
		t.Fatal(err)
	}
	if err := f.Write(img); err != nil {
		t.Fatal(err)
	}
}

func wcsCards() []fitsio.Card {
	return []fitsio.Card{
		{Name: "CTYPE1", Value: "RA---SIN"},
		{Name: "CTYPE2", Value: "DEC--SIN"},
		{Name: "CRPIX1", Value: 5.0},
		{Name: "CRPIX2", Value: 5.0},
		{Name: "CRVAL1", Value: 180.0},
		{Name: "CRVAL2", Value: 45.0},
		{Name: "CDELT1", Value: -1.0 / 3600},
		{Name: "CDELT2", Value: 1.0 / 3600},
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "obs.fits")

	g := grid.New(6, 4)
	for i := range g.Data {
		g.Data[i] = float64(i) / 3
	}
	g.Set(2, 1, math.NaN())

	if err := Write(p, g, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	img, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Grid.NX != 6 || img.Grid.NY != 4 {
		t.Fatalf("shape %dx%d, want 6x4", img.Grid.NX, img.Grid.NY)
	}
	if !math.IsNaN(img.Grid.At(2, 1)) {
		t.Fatalf("NaN lost in round trip: %v", img.Grid.At(2, 1))
	}
	for i, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		if math.Abs(img.Grid.Data[i]-v) > 1e-6 {
			t.Fatalf("cell %d: %v, want %v", i, img.Grid.Data[i], v)
		}
	}
}

func TestLoadGeometryAndCardCarry(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fits")
	out := filepath.Join(dir, "out.fits")
	makeFITS(t, in, []int{4, 4}, wcsCards(), make([]float32, 16))

	img, err := Load(in)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Geo.CType1 != "RA---SIN" || img.Geo.CRVal2 != 45 || img.Geo.CDelt2 != 1.0/3600 {
		t.Fatalf("bad geometry: %+v", img.Geo)
	}

	if err := Write(out, img.Grid, img); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Load(out)
	if err != nil {
		t.Fatalf("Load output: %v", err)
	}
	if back.Geo.CType1 != img.Geo.CType1 || back.Geo.CType2 != img.Geo.CType2 {
		t.Fatalf("axis types not carried: %+v", back.Geo)
	}
	if math.Abs(back.Geo.CRVal2-img.Geo.CRVal2) > 1e-9 ||
		math.Abs(back.Geo.CDelt1-img.Geo.CDelt1) > 1e-12 {
		t.Fatalf("geometry not carried: %+v vs %+v", back.Geo, img.Geo)
	}
}

func TestLoadReducesDegenerateAxes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cube.fits")
	data := make([]float32, 4*3)
	for i := range data {
		data[i] = float32(i)
	}
	makeFITS(t, p, []int{4, 3, 1, 1}, nil, data)

	img, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Grid.NX != 4 || img.Grid.NY != 3 {
		t.Fatalf("shape %dx%d, want 4x3", img.Grid.NX, img.Grid.NY)
	}
	if img.Grid.At(3, 2) != 11 {
		t.Fatalf("last pixel %v, want 11", img.Grid.At(3, 2))
	}
}

func TestBeamDefault(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nobeam.fits")
	makeFITS(t, p, []int{4, 4}, wcsCards(), make([]float32, 16))
	img, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if img.Beam.A != 3 || img.Beam.B != 3 {
		t.Fatalf("beam default %+v, want 3x3 px", img.Beam)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.fits")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
