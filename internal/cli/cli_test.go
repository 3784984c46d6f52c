package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/region"
	"github.com/katalvlaran/cartogram/spectral"
)

// writeFile writes data into a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

//----------------------------------------------------------------------------//
// Config
//----------------------------------------------------------------------------//

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Defaults", func(*Config) {}, true},
		{"Pooled", func(c *Config) { c.Parallelism = ParallelPooled; c.Workers = 2 }, true},
		{"NegativeError", func(c *Config) { c.MaxAreaError = -0.1 }, false},
		{"InfiniteError", func(c *Config) { c.MaxAreaError = math.Inf(1) }, false},
		{"Resolution", func(c *Config) { c.Resolution = 300 }, false},
		{"Blur", func(c *Config) { c.BlurWidth = math.NaN() }, false},
		{"Passes", func(c *Config) { c.MaxPasses = 0 }, false},
		{"Workers", func(c *Config) { c.Workers = -1 }, false},
		{"Parallelism", func(c *Config) { c.Parallelism = "threads" }, false},
		{"Backend", func(c *Config) { c.Backend = "fftw" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cartogram.toml", `
max_area_error = 0.05
parallelism = "pooled"
workers = 3
resolution = 256
backend = "direct"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.MaxAreaError)
	assert.Equal(t, 256, cfg.Resolution)
	assert.True(t, cfg.ScaleToOriginal, "unset keys keep defaults")
	assert.Equal(t, parallel.Pooled{Workers: 3, MinChunk: parallel.DefaultMinChunk}, cfg.policy())
	assert.IsType(t, spectral.Direct{}, cfg.transformer())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 8)

	_, err = LoadConfig(writeFile(t, "bad.toml", "resolutoin = 64\n"))
	require.ErrorIs(t, err, ErrBadConfig)

	_, err = LoadConfig(writeFile(t, "broken.toml", "resolution = [\n"))
	require.Error(t, err)
}

//----------------------------------------------------------------------------//
// GeoJSON
//----------------------------------------------------------------------------//

const mapJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "a", "properties": {"pop": 10, "name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [
       [[0,0],[0,2],[2,2],[2,0],[0,0]],
       [[0.5,0.5],[1.5,0.5],[1.5,1.5],[0.5,1.5],[0.5,0.5]]]}},
    {"type": "Feature", "id": "b", "properties": {"pop": "30"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[2,0],[2,2],[4,2],[4,0],[2,0]]],
       [[[4,0],[4,1],[5,1],[5,0],[4,0]]]]}},
    {"type": "Feature", "id": "c", "properties": {"pop": null},
     "geometry": {"type": "Polygon", "coordinates": [[[0,2],[0,3],[5,3],[5,2],[0,2]]]}}
  ]
}`

func TestReadCollection(t *testing.T) {
	c, err := readCollection([]byte(mapJSON), "pop")
	require.NoError(t, err)
	require.Len(t, c.regions, 3)

	a, b, u := c.regions[0], c.regions[1], c.regions[2]
	assert.Equal(t, 10.0, a.Target)
	assert.Equal(t, 30.0, b.Target)
	assert.True(t, math.IsNaN(u.Target))

	require.Len(t, a.Rings, 2)
	assert.Equal(t, region.Shell, a.Rings[0].Role)
	assert.Equal(t, region.Hole, a.Rings[1].Role)
	require.Len(t, b.Rings, 2)
	assert.Equal(t, region.Shell, b.Rings[1].Role)

	assert.Equal(t, 0.0, c.bbox.MinX)
	assert.Equal(t, 5.0, c.bbox.MaxX)
	assert.Equal(t, 3.0, c.bbox.MaxY)
}

func TestReadCollection_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
		err  error
	}{
		{"Empty", `{"type":"FeatureCollection","features":[]}`, ErrNoFeatures},
		{"Point", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
			"geometry":{"type":"Point","coordinates":[1,2]}}]}`, ErrBadGeometry},
		{"BoolTarget", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"pop":true},
			"geometry":{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[0,0]]]}}]}`, ErrBadTarget},
		{"TextTarget", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"pop":"many"},
			"geometry":{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[0,0]]]}}]}`, ErrBadTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readCollection([]byte(tc.data), "pop")
			require.ErrorIs(t, err, tc.err)
		})
	}
}

//----------------------------------------------------------------------------//
// Commands
//----------------------------------------------------------------------------//

const twoSquares = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 1, "properties": {"v": %s},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,2],[2,2],[2,0],[0,0]]]}},
    {"type": "Feature", "id": 2, "properties": {"v": %s},
     "geometry": {"type": "Polygon", "coordinates": [[[2,0],[2,2],[4,2],[4,0],[2,0]]]}}
  ]
}`

// squares fills twoSquares with the two target literals.
func squares(a, b string) string {
	return fmt.Sprintf(twoSquares, a, b)
}

func TestRunCommand_NoOp(t *testing.T) {
	in := writeFile(t, "in.geojson", squares("5", "5"))
	out, err := execute(t, "run", "-i", in, "-t", "v", "--resolution", "16", "--graticule", "4")
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	first := fc.Features[0]
	assert.Equal(t, false, first.Properties[PropTargetUnknown])
	assert.Equal(t, [][]float64{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}, first.Geometry.Polygon[0])
	assert.Equal(t, true, fc.Features[2].Properties[PropGraticule])
	assert.True(t, fc.Features[2].Geometry.IsMultiLineString())
}

func TestRunCommand_Deforms(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.geojson")
	outPath := filepath.Join(dir, "out.geojson")
	require.NoError(t, os.WriteFile(in, []byte(squares("1", "3")), 0o644))
	cfg := writeFile(t, "c.toml", "max_area_error = 0.05\nresolution = 128\nparallelism = \"pooled\"\n")

	_, err := execute(t, "run", "-i", in, "-t", "v", "-o", outPath, "--config", cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	c, err := readCollection(data, "v")
	require.NoError(t, err)

	area := func(r region.Region) float64 {
		tb, err := region.NewTable([]region.Region{r})
		require.NoError(t, err)
		return tb.RegionAreas()[0]
	}
	ratio := area(c.regions[1]) / area(c.regions[0])
	assert.InDelta(t, 3.0, ratio, 3*0.11)
}

func TestRunCommand_Errors(t *testing.T) {
	in := writeFile(t, "in.geojson", squares("-1", "5"))
	_, err := execute(t, "run", "-i", in, "-t", "v", "--resolution", "16")
	require.Error(t, err)

	_, err = execute(t, "run", "-i", in, "-t", "v", "--parallelism", "gpu")
	require.ErrorIs(t, err, ErrBadConfig)

	_, err = execute(t, "run", "-t", "v")
	require.Error(t, err, "input is required")
}

func TestVerifyCommand(t *testing.T) {
	for _, backend := range []string{BackendFFT, BackendQuarterWave, BackendDirect} {
		out, err := execute(t, "verify", "--backend", backend)
		require.NoError(t, err)
		assert.Equal(t, backend+": ok\n", out)
	}
	_, err := execute(t, "verify", "--backend", "fftw")
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestLoggerFromContext(t *testing.T) {
	assert.NotNil(t, loggerFromContext(context.Background()))

	l := newLogger(io.Discard, log.DebugLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestProjectCollection(t *testing.T) {
	c, err := readCollection([]byte(fmt.Sprintf(twoSquares, "1", "1")), "v")
	require.NoError(t, err)

	require.NoError(t, projectCollection(c, DefaultSourceProjection, "+proj=merc +datum=WGS84 +units=m"))
	p := c.regions[0].Rings[0].Ring[2] // (2,2) in degrees
	assert.InDelta(t, 2*111319.49, p.X, 1)
	assert.Greater(t, p.Y, 2*110000.0)
	assert.InDelta(t, p.X, c.bbox.MaxX/2, 1)

	require.Error(t, projectCollection(c, DefaultSourceProjection, "+proj=nonsense"))
}
