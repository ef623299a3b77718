package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "comp.tsv")
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadTSV(t *testing.T) {
	p := write(t, "# island source ra dec peak local_rms a b pa\n"+
		"1 0 350.85 58.815 10.0 0.5 20.0 15.0 45.0\n"+
		"\n"+
		"1 1 350.90 58.820 2.5 0.5 18.0 18.0 0.0\n")

	srcs, err := LoadTSV(p)
	if err != nil {
		t.Fatalf("LoadTSV: %v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("got %d sources, want 2", len(srcs))
	}
	s := srcs[0]
	if s.Island != 1 || s.ID != 0 || s.RA != 350.85 || s.PeakFlux != 10.0 || s.PA != 45.0 {
		t.Fatalf("bad first source: %+v", s)
	}
}

func TestLoadTSVBadFieldCount(t *testing.T) {
	p := write(t, "1 0 350.85 58.815 10.0\n")
	if _, err := LoadTSV(p); err == nil || !strings.Contains(err.Error(), "bad field count") {
		t.Fatalf("expected field-count error, got %v", err)
	}
}

func TestLoadTSVAxisOrder(t *testing.T) {
	p := write(t, "1 0 350.85 58.815 10.0 0.5 10.0 15.0 0.0\n")
	if _, err := LoadTSV(p); err == nil {
		t.Fatal("expected error for a < b")
	}
}

func TestLoadTSVMissingFile(t *testing.T) {
	if _, err := LoadTSV(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
