// internal/banecli/options.go
package banecli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"aeres/internal/version"
)

// Options holds all CLI flags for the aebane binary.
type Options struct {
	Image   string
	OutBase string

	Mesh      int
	ForcedRMS float64
	Threads   int

	Debug bool
	Quiet bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: grid-based background and noise estimation

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Image, "image", "", "input FITS image [*]")
	fs.StringVar(&opt.OutBase, "out-base", "", "output basename for _bkg/_rms files (default: image path sans .fits)")
	fs.IntVar(&opt.Mesh, "mesh", 20, "mesh box size in beams [20]")
	fs.Float64Var(&opt.ForcedRMS, "forced-rms", 0, "assume this constant rms and zero background (0 = estimate) [0]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

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
	if opt.Image == "" {
		return opt, errors.New("--image is required")
	}
	if opt.Mesh <= 0 {
		return opt, errors.New("--mesh must be > 0")
	}
	if opt.ForcedRMS < 0 {
		return opt, errors.New("--forced-rms must be >= 0")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be >= 0")
	}
	if opt.OutBase == "" {
		opt.OutBase = strings.TrimSuffix(opt.Image, ".fits")
	}
	return opt, nil
}
