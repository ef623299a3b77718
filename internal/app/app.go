// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"aeres-core/catalog"
	"aeres-core/compose"
	"aeres-core/synth"
	"aeres-core/wcs"
	"aeres/internal/cli"
	"aeres/internal/config"
	"aeres/internal/fits"
	"aeres/internal/logging"
	"aeres/internal/version"
)

// RunContext drives the residual pipeline: catalog -> projector ->
// model synthesis -> composition -> FITS outputs. It is a linear
// sequence with no retries; per-source problems are handled inside the
// synthesizer by skipping.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	_ = parent

	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("aeres")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "aeres version %s\n", version.Version)
		return 0
	}

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		cli.Merge(&opts, cfg, set)
	}

	if err := opts.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logging.New(stderr, opts.Debug, opts.Quiet)

	sources, err := catalog.LoadTSV(opts.Catalog)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info().Int("sources", len(sources)).Str("catalog", opts.Catalog).Msg("catalog loaded")

	img, err := fits.Load(opts.Image)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info().Int("nx", img.Grid.NX).Int("ny", img.Grid.NY).Str("image", opts.Image).Msg("image loaded")

	proj, err := wcs.New(img.Geo)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	model, st := synth.Synthesize(sources, img.Grid.NX, img.Grid.NY, proj, synth.Options{
		Mask:  opts.Mask,
		Frac:  opts.Frac,
		Sigma: opts.Sigma,
		Log:   log,
	})
	log.Info().Int("modeled", st.Modeled).Int("skipped", st.Skipped).Msg("model synthesized")

	mode := compose.Subtract
	switch {
	case opts.Mask:
		mode = compose.Mask
	case opts.Add:
		mode = compose.Add
	}
	residual, err := compose.Compose(img.Grid, model, mode)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if err := fits.Write(opts.Residual, residual, img); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	log.Info().Str("path", opts.Residual).Stringer("mode", mode).Msg("residual written")

	if opts.Model != "" {
		if err := fits.Write(opts.Model, model, img); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		log.Info().Str("path", opts.Model).Msg("model written")
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
