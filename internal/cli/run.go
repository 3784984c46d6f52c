package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cartogram/cartogram"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	input       string
	output      string
	targetField string
	configPath  string
	graticule   int

	maxAreaError float64
	resolution   int
	parallelism  string
	workers      int
	perimeter    bool
	lspace       bool
	projection   string
}

func newRunCmd() *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Deform a GeoJSON map so region areas follow a property",
		Long: `Run reads a FeatureCollection of Polygon/MultiPolygon features, takes each
feature's target value from --target-field (missing, null or "NA" means
unknown), and writes the cartogram as GeoJSON. Engine settings come from
--config and may be overridden by flags.`,
		Example: `  cartogram run -i states.geojson -t population -o out.geojson
  cartogram run -i states.geojson -t gdp --config cartogram.toml --graticule 16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			return runCartogram(cmd, o, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "input GeoJSON file (- for stdin)")
	f.StringVarP(&o.output, "output", "o", "-", "output GeoJSON file (- for stdout)")
	f.StringVarP(&o.targetField, "target-field", "t", "", "feature property holding the target value")
	f.StringVar(&o.configPath, "config", "", "TOML configuration file")
	f.IntVar(&o.graticule, "graticule", 0, "append lattice lines every N cells (0 disables)")
	f.Float64Var(&o.maxAreaError, "max-area-error", cartogram.DefaultMaxAreaError, "permitted maximum relative area error")
	f.IntVar(&o.resolution, "resolution", 0, "lattice cells along the longer side (power of two)")
	f.StringVar(&o.parallelism, "parallelism", "", "sequential or pooled")
	f.IntVar(&o.workers, "workers", 0, "pooled worker count (0 = one per CPU)")
	f.BoolVar(&o.perimeter, "perimeter-threshold", false, "enlarge regions that are tiny compared to their perimeter")
	f.BoolVar(&o.lspace, "lattice-coordinates", false, "write lattice coordinates instead of input coordinates")
	f.StringVar(&o.projection, "projection", "", "PROJ.4 string to project longitude/latitude input into")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("target-field")

	return cmd
}

// config loads the configuration file and applies explicitly set flags.
func (o runOptions) config(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("max-area-error") {
		cfg.MaxAreaError = o.maxAreaError
	}
	if f.Changed("resolution") {
		cfg.Resolution = o.resolution
	}
	if f.Changed("parallelism") {
		cfg.Parallelism = o.parallelism
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("perimeter-threshold") {
		cfg.UsePerimeterThreshold = o.perimeter
	}
	if f.Changed("lattice-coordinates") {
		cfg.ScaleToOriginal = !o.lspace
	}
	if f.Changed("projection") {
		cfg.Projection = o.projection
	}

	return cfg, cfg.Validate()
}

// runCartogram reads, computes and writes one map.
func runCartogram(cmd *cobra.Command, o runOptions, cfg Config) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, err := readInput(cmd, o.input)
	if err != nil {
		return err
	}
	c, err := readCollection(data, o.targetField)
	if err != nil {
		return err
	}
	if cfg.Projection != "" {
		if err = projectCollection(c, cfg.SourceProjection, cfg.Projection); err != nil {
			return err
		}
	}
	logger.Debug("input decoded", "features", len(c.regions), "bbox", c.bbox)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, cartogram.WithLogger(logger))

	prog := newProgress(logger)
	res, err := cartogram.Run(ctx, c.bbox, c.regions, opts...)
	if err != nil {
		return err
	}
	prog.done("cartogram ready", "passes", res.Passes, "error", res.MaxAreaError)

	out, err := writeCollection(c, res, o.graticule)
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}

	return writeOutput(cmd, o.output, out)
}

// readInput reads path, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or the command's stdout for "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
