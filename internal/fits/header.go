package fits

import (
	"github.com/astrogo/fitsio"

	"aeres-core/wcs"
)

// carriedCards are the header keywords copied from input to outputs so
// downstream tools keep their coordinate context.
var carriedCards = []string{
	"CTYPE1", "CTYPE2",
	"CRPIX1", "CRPIX2",
	"CRVAL1", "CRVAL2",
	"CDELT1", "CDELT2",
	"CUNIT1", "CUNIT2",
	"EQUINOX", "RADESYS",
	"BMAJ", "BMIN", "BPA",
	"BUNIT", "TELESCOP", "OBJECT",
}

func geometryFrom(hdr *fitsio.Header) wcs.Geometry {
	return wcs.Geometry{
		CType1: cardString(hdr, "CTYPE1"),
		CType2: cardString(hdr, "CTYPE2"),
		CRPix1: cardFloat(hdr, "CRPIX1", 1),
		CRPix2: cardFloat(hdr, "CRPIX2", 1),
		CRVal1: cardFloat(hdr, "CRVAL1", 0),
		CRVal2: cardFloat(hdr, "CRVAL2", 0),
		CDelt1: cardFloat(hdr, "CDELT1", 1),
		CDelt2: cardFloat(hdr, "CDELT2", 1),
	}
}

// beamFrom falls back to a 3-pixel circular beam when the header has no
// BMAJ/BMIN.
func beamFrom(hdr *fitsio.Header, geo wcs.Geometry) wcs.Beam {
	bmaj := cardFloat(hdr, "BMAJ", 0)
	bmin := cardFloat(hdr, "BMIN", 0)
	if bmaj == 0 || bmin == 0 {
		return wcs.Beam{A: 3, B: 3, PA: 0}
	}
	bpa := cardFloat(hdr, "BPA", 0)
	return wcs.BeamFromHeader(bmaj, bmin, bpa, geo.CDelt1, geo.CDelt2)
}

func carryCards(hdr *fitsio.Header) []fitsio.Card {
	var out []fitsio.Card
	for _, name := range carriedCards {
		if c := hdr.Get(name); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func cardFloat(hdr *fitsio.Header, name string, def float64) float64 {
	c := hdr.Get(name)
	if c == nil {
		return def
	}
	switch v := c.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func cardString(hdr *fitsio.Header, name string) string {
	if c := hdr.Get(name); c != nil {
		if s, ok := c.Value.(string); ok {
			return s
		}
	}
	return ""
}
