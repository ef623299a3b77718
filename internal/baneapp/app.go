// internal/baneapp/app.go
package baneapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"aeres-core/bane"
	"aeres/internal/banecli"
	"aeres/internal/fits"
	"aeres/internal/logging"
	"aeres/internal/version"
)

// RunContext estimates background and noise maps for one image and
// writes them next to it as <base>_bkg.fits and <base>_rms.fits.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	_ = parent

	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := banecli.NewFlagSet("aebane")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return 0
	}

	opts, err := banecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "aebane version %s\n", version.Version)
		return 0
	}

	log := logging.New(stderr, opts.Debug, opts.Quiet)

	img, err := fits.Load(opts.Image)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info().Int("nx", img.Grid.NX).Int("ny", img.Grid.NY).Str("image", opts.Image).Msg("image loaded")

	bkg, rms, err := bane.Estimate(img.Grid, img.Beam, bane.Config{
		MeshSize:  opts.Mesh,
		ForcedRMS: opts.ForcedRMS,
		Workers:   opts.Threads,
		Log:       log,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	bkgPath := opts.OutBase + "_bkg.fits"
	rmsPath := opts.OutBase + "_rms.fits"
	if err := fits.Write(bkgPath, bkg, img); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := fits.Write(rmsPath, rms, img); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	log.Info().Str("bkg", bkgPath).Str("rms", rmsPath).Msg("background maps written")
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
