// Package config loads sweep settings from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/profile"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the name of the results table written by default.
const DefaultOutput = "volumes.csv"

// Config holds everything needed to run and export a sweep.
type Config struct {
	// Vessel dimensions, in centimetres.
	Radius float64 `yaml:"radius"`
	Length float64 `yaml:"length"`
	Wall   float64 `yaml:"wall"`

	// Segments per quarter meridian.
	Samples int `yaml:"samples"`
	// Concurrent shape evaluations, 0 for one per CPU.
	Workers int `yaml:"workers"`
	// Marching cubes resolution of the mesh cross-check, 0 to disable.
	MeshCells int `yaml:"mesh_cells"`

	// Shape exponent lists, paired by index.
	M []float64 `yaml:"m"`
	N []float64 `yaml:"n"`

	// Output CSV path and optional chart path (.png, .svg or .pdf).
	Output string `yaml:"output"`
	Plot   string `yaml:"plot"`
	// STL receives the mesh of the largest cavity when set.
	STL string `yaml:"stl"`
}

// Default returns the settings of the reference pressure vessel study:
// a 3cm radius, 7cm long vessel with 1mm walls over 31 shapes.
func Default() Config {
	return Config{
		Radius:  3.0,
		Length:  7.0,
		Wall:    0.1,
		Samples: profile.DefaultSamples,
		M:       append([]float64(nil), defaultM...),
		N:       append([]float64(nil), defaultN...),
		Output:  DefaultOutput,
	}
}

// Load reads a YAML file. Keys missing from the file keep their Default value.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", cavity.ErrConfiguration, err)
	}
	return cfg, nil
}

// Constants returns the vessel dimensions.
func (c Config) Constants() cavity.Constants {
	return cavity.Constants{Radius: c.Radius, Length: c.Length, Wall: c.Wall}
}

// Validate checks the configuration without running any computation.
func (c Config) Validate() error {
	if err := c.Constants().Validate(); err != nil {
		return err
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", cavity.ErrConfiguration, c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", cavity.ErrConfiguration, c.Workers)
	}
	if c.MeshCells < 0 {
		return fmt.Errorf("%w: negative mesh_cells %d", cavity.ErrConfiguration, c.MeshCells)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: empty output path", cavity.ErrConfiguration)
	}
	_, err := cavity.CheckPairs(c.M, c.N)
	return err
}

var defaultM = []float64{
	1.0,
	1.6166666666666667,
	1.1166666666666667,
	1.1833333333333333,
	1.05,
	1.15,
	1.3166666666666667,
	1.85,
	1.9166666666666667,
	1.9833333333333334,
	1.45,
	1.55,
	1.0833333333333333,
	1.35,
	1.7166666666666666,
	1.25,
	1.3833333333333333,
	1.65,
	1.75,
	1.2166666666666668,
	1.0166666666666666,
	1.8166666666666667,
	1.8833333333333333,
	1.2833333333333332,
	1.95,
	1.7833333333333332,
	1.6833333333333333,
	1.4833333333333334,
	1.5833333333333333,
	1.4166666666666667,
	1.5166666666666666,
}

var defaultN = []float64{
	1.0,
	0.94,
	1.1133333333333333,
	0.8466666666666667,
	1.0333333333333332,
	1.0466666666666666,
	0.9666666666666667,
	0.8733333333333334,
	1.1533333333333333,
	1.18,
	0.9266666666666666,
	0.98,
	1.0866666666666667,
	0.9933333333333334,
	1.0733333333333333,
	1.02,
	1.1,
	1.06,
	1.1400000000000001,
	1.1266666666666667,
	0.8333333333333334,
	0.86,
	1.0066666666666666,
	0.8066666666666668,
	0.8200000000000001,
	0.9533333333333334,
	0.9,
	1.1933333333333334,
	0.8866666666666667,
	1.1666666666666667,
	0.9133333333333333,
}
