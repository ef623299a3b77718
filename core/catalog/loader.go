package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTSV reads a whitespace-separated component catalog with columns:
//
//	island source ra dec peak_flux local_rms a b pa
//
// Blank lines and '#' comments are skipped. Axes are in arcsec, angles
// in degrees.
func LoadTSV(path string) ([]Source, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var list []Source
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 9 {
			return nil, fmt.Errorf("%s:%d bad field count (want 9, got %d)", path, ln, len(f))
		}
		var s Source
		for i, dst := range []any{
			&s.Island, &s.ID, &s.RA, &s.Dec, &s.PeakFlux, &s.LocalRMS, &s.A, &s.B, &s.PA,
		} {
			if _, err := fmt.Sscan(f[i], dst); err != nil {
				return nil, fmt.Errorf("%s:%d bad field %d: %v", path, ln, i+1, err)
			}
		}
		if s.B < 0 || s.A < s.B {
			return nil, fmt.Errorf("%s:%d axes must satisfy a >= b >= 0 (got a=%g b=%g)", path, ln, s.A, s.B)
		}
		list = append(list, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
