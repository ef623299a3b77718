// Package config reads optional TOML run-parameter files. Values act as
// defaults; flags given explicitly on the command line always win.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"aeres-core/compose"
)

// File mirrors the aeres TOML layout. Zero values mean "not set".
type File struct {
	Catalog  string `toml:"catalog"`
	Image    string `toml:"image"`
	Residual string `toml:"residual"`
	Model    string `toml:"model"`
	Mode     string `toml:"mode"` // subtract | add | mask

	Mask MaskConfig `toml:"mask"`
}

type MaskConfig struct {
	Enabled bool    `toml:"enabled"`
	Frac    float64 `toml:"frac"`
	Sigma   float64 `toml:"sigma"`
}

func Load(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

func (f File) Validate() error {
	if f.Mode != "" {
		if _, err := compose.ParseMode(f.Mode); err != nil {
			return err
		}
	}
	if f.Mask.Frac < 0 || f.Mask.Frac > 1 {
		return fmt.Errorf("mask frac %g outside [0, 1]", f.Mask.Frac)
	}
	if f.Mask.Sigma < 0 {
		return fmt.Errorf("mask sigma %g must be >= 0", f.Mask.Sigma)
	}
	return nil
}
