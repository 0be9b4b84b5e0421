package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/cavity"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, cavity.Constants{Radius: 3, Length: 7, Wall: 0.1}, cfg.Constants())
	require.Len(t, cfg.M, 31)
	require.Len(t, cfg.N, 31)
	require.Equal(t, 1.0, cfg.M[0])
	require.Equal(t, 0.9133333333333333, cfg.N[30])
	require.Equal(t, DefaultOutput, cfg.Output)

	// Callers may modify the returned lists freely.
	cfg.M[0] = 42
	require.Equal(t, 1.0, Default().M[0])
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
radius: 5
wall: 0.2
workers: 4
mesh_cells: 80
m: [1, 2]
n: [1, 0.9]
plot: volumes.png
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 5.0, cfg.Radius)
	require.Equal(t, 7.0, cfg.Length, "unset keys keep their default")
	require.Equal(t, 0.2, cfg.Wall)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 80, cfg.MeshCells)
	require.Equal(t, []float64{1, 2}, cfg.M)
	require.Equal(t, []float64{1, 0.9}, cfg.N)
	require.Equal(t, "volumes.png", cfg.Plot)
	require.Equal(t, DefaultOutput, cfg.Output)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("radius: [1, 2"))
	require.ErrorIs(t, err, cavity.ErrConfiguration)
	_, err = Parse([]byte("radius: wide"))
	require.ErrorIs(t, err, cavity.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"thick wall":     func(c *Config) { c.Wall = c.Radius },
		"zero length":    func(c *Config) { c.Length = 0 },
		"no samples":     func(c *Config) { c.Samples = 0 },
		"negative mesh":  func(c *Config) { c.MeshCells = -1 },
		"negative pool":  func(c *Config) { c.Workers = -1 },
		"no output":      func(c *Config) { c.Output = "" },
		"mismatched":     func(c *Config) { c.N = c.N[:3] },
		"empty lists":    func(c *Config) { c.M, c.N = nil, nil },
		"zero exponent":  func(c *Config) { c.M[2] = 0 },
		"negative expon": func(c *Config) { c.N[0] = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), cavity.ErrConfiguration)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cavity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 200\noutput: out.csv\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Samples)
	require.Equal(t, "out.csv", cfg.Output)
	require.Len(t, cfg.M, 31)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
