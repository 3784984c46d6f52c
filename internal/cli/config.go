// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/cartogram/cartogram"
	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/spectral"
)

// Parallelism and backend names accepted in Config.
const (
	ParallelSequential = "sequential"
	ParallelPooled     = "pooled"
	BackendFFT         = "fft"
	BackendDirect      = "direct"
	BackendQuarterWave = "quarterwave"
)

// Config mirrors the engine options. Zero workers means one per CPU.
//
//	max_area_error          = 0.01
//	use_perimeter_threshold = false
//	scale_to_original       = true
//	parallelism             = "pooled"
//	workers                 = 4
//	resolution              = 512
//	blur_width              = 5.0
//	max_passes              = 64
//	backend                 = "fft"
//	projection              = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=37.5 +lon_0=-96"
//	source_projection       = "+proj=longlat +datum=WGS84"
//
// An empty projection leaves input coordinates as they are.
type Config struct {
	MaxAreaError          float64 `toml:"max_area_error"`
	UsePerimeterThreshold bool    `toml:"use_perimeter_threshold"`
	ScaleToOriginal       bool    `toml:"scale_to_original"`
	Parallelism           string  `toml:"parallelism"`
	Workers               int     `toml:"workers"`
	Resolution            int     `toml:"resolution"`
	BlurWidth             float64 `toml:"blur_width"`
	MaxPasses             int     `toml:"max_passes"`
	Backend               string  `toml:"backend"`
	Projection            string  `toml:"projection"`
	SourceProjection      string  `toml:"source_projection"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxAreaError:          cartogram.DefaultMaxAreaError,
		UsePerimeterThreshold: cartogram.DefaultPerimeterThreshold,
		ScaleToOriginal:       cartogram.DefaultScaleToOriginal,
		Parallelism:           ParallelSequential,
		Resolution:            grid.DefaultResolution,
		BlurWidth:             grid.DefaultBlurWidth,
		MaxPasses:             cartogram.DefaultMaxPasses,
		Backend:               BackendFFT,
		SourceProjection:      DefaultSourceProjection,
	}
}

// LoadConfig decodes path over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q: %w", path, undec[0].String(), ErrBadConfig)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case !(c.MaxAreaError >= 0) || math.IsInf(c.MaxAreaError, 1):
		return fmt.Errorf("max_area_error %g: %w", c.MaxAreaError, ErrBadConfig)
	case c.Resolution < grid.MinResolution || c.Resolution&(c.Resolution-1) != 0:
		return fmt.Errorf("resolution %d: %w", c.Resolution, ErrBadConfig)
	case !(c.BlurWidth >= 0) || math.IsInf(c.BlurWidth, 1):
		return fmt.Errorf("blur_width %g: %w", c.BlurWidth, ErrBadConfig)
	case c.MaxPasses <= 0:
		return fmt.Errorf("max_passes %d: %w", c.MaxPasses, ErrBadConfig)
	case c.Workers < 0:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrBadConfig)
	case c.Parallelism != ParallelSequential && c.Parallelism != ParallelPooled:
		return fmt.Errorf("parallelism %q: %w", c.Parallelism, ErrBadConfig)
	case c.Backend != BackendFFT && c.Backend != BackendDirect && c.Backend != BackendQuarterWave:
		return fmt.Errorf("backend %q: %w", c.Backend, ErrBadConfig)
	}

	return nil
}

// policy returns the configured parallel policy.
func (c Config) policy() parallel.Policy {
	if c.Parallelism == ParallelPooled {
		return parallel.NewPooled(c.Workers)
	}
	return parallel.Sequential{}
}

// transformer returns the configured spectral backend.
func (c Config) transformer() spectral.Transformer {
	switch c.Backend {
	case BackendDirect:
		return spectral.Direct{Policy: c.policy()}
	case BackendQuarterWave:
		return spectral.QuarterWave{Policy: c.policy()}
	}
	return spectral.NewFFT(c.policy())
}

// Options converts a validated Config into engine options.
func (c Config) Options() ([]cartogram.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []cartogram.Option{
		cartogram.WithMaxAreaError(c.MaxAreaError),
		cartogram.WithPerimeterThreshold(c.UsePerimeterThreshold),
		cartogram.WithScaleToOriginal(c.ScaleToOriginal),
		cartogram.WithParallelism(c.policy()),
		cartogram.WithResolution(c.Resolution),
		cartogram.WithBlurWidth(c.BlurWidth),
		cartogram.WithMaxPasses(c.MaxPasses),
	}
	if c.Backend != BackendFFT {
		opts = append(opts, cartogram.WithTransformer(c.transformer()))
	}

	return opts, nil
}
