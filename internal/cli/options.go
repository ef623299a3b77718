// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"aeres/internal/version"
)

// Options holds all CLI flags for the aeres binary.
type Options struct {
	// Inputs / outputs
	Catalog  string
	Image    string
	Residual string
	Model    string

	ConfigFile string

	// Composition / masking
	Add   bool
	Mask  bool
	Frac  float64 // < 0 = unset; threshold comes from Sigma * local_rms
	Sigma float64

	// Logging
	Debug bool
	Quiet bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: subtract, add, or mask cataloged sources in a radio image

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Required paths are checked later by Validate so a --config file can
// still supply them.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Catalog, "catalog", "", "component catalog (TSV) [*]")
	fs.StringVar(&opt.Image, "image", "", "observed FITS image [*]")
	fs.StringVar(&opt.Residual, "residual", "", "output residual FITS [*]")
	fs.StringVar(&opt.Model, "model", "", "also write the raw model FITS here")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML file supplying defaults for the above")

	fs.BoolVar(&opt.Add, "add", false, "add the model to the image instead of subtracting [false]")
	fs.BoolVar(&opt.Mask, "mask", false, "blank bright model pixels instead of subtracting [false]")
	fs.Float64Var(&opt.Frac, "frac", -1, "mask pixels above frac*peak_flux (-1 = use --sigma) [-1]")
	fs.Float64Var(&opt.Sigma, "sigma", 4, "mask pixels above sigma*local_rms [4]")

	fs.BoolVar(&opt.Debug, "debug", false, "enable debug logging [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-error logging [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.Add && opt.Mask {
		return opt, errors.New("--add conflicts with --mask")
	}
	if opt.Frac != -1 && (opt.Frac < 0 || opt.Frac > 1) {
		return opt, errors.New("--frac must be within [0, 1]")
	}
	if opt.Sigma < 0 {
		return opt, errors.New("--sigma must be >= 0")
	}
	return opt, nil
}

// Validate checks the required paths after config merging. A missing
// input is a configuration error reported before any processing.
func (o Options) Validate() error {
	if o.Catalog == "" {
		return errors.New("--catalog is required")
	}
	if o.Image == "" {
		return errors.New("--image is required")
	}
	if o.Residual == "" {
		return errors.New("--residual is required")
	}
	return nil
}
