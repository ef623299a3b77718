package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aeres.toml")
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := write(t, `
catalog = "comp.tsv"
image = "obs.fits"
residual = "resid.fits"
mode = "mask"

[mask]
enabled = true
frac = 0.9
sigma = 5.0
`)
	f, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := File{
		Catalog:  "comp.tsv",
		Image:    "obs.fits",
		Residual: "resid.fits",
		Mode:     "mask",
		Mask:     MaskConfig{Enabled: true, Frac: 0.9, Sigma: 5.0},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Fatalf("decoded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBadMode(t *testing.T) {
	p := write(t, `mode = "replace"`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadBadFrac(t *testing.T) {
	p := write(t, "[mask]\nfrac = 1.5\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for frac outside [0, 1]")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
