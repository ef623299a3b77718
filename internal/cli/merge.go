package cli

import (
	"aeres/internal/config"
)

// Merge fills opt from a config file. set names the flags given
// explicitly on the command line; those always win over file values.
func Merge(opt *Options, cfg config.File, set map[string]bool) {
	if opt.Catalog == "" {
		opt.Catalog = cfg.Catalog
	}
	if opt.Image == "" {
		opt.Image = cfg.Image
	}
	if opt.Residual == "" {
		opt.Residual = cfg.Residual
	}
	if opt.Model == "" {
		opt.Model = cfg.Model
	}

	if !set["add"] && !set["mask"] {
		switch cfg.Mode {
		case "add":
			opt.Add = true
		case "mask":
			opt.Mask = true
		}
		if cfg.Mask.Enabled {
			opt.Mask = true
			opt.Add = false
		}
	}
	if !set["frac"] && cfg.Mask.Frac > 0 {
		opt.Frac = cfg.Mask.Frac
	}
	if !set["sigma"] && cfg.Mask.Sigma > 0 {
		opt.Sigma = cfg.Mask.Sigma
	}
}
