package fluid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every parameter of a run. It is passed by value and never
// modified once a Stepper has been built from it.
type Config struct {
	// Physical domain
	Lx float64 `json:"lx"`
	Ly float64 `json:"ly"`

	// Grid points
	NX int `json:"nx"`
	NY int `json:"ny"`

	// Time stepping
	NT int     `json:"nt"`
	DT float64 `json:"dt"`

	// Fluid properties
	Rho float64 `json:"rho"`
	Nu  float64 `json:"nu"`

	// Fraction of nu used as artificial diffusion.
	DiffusionFactor float64 `json:"diffusionFactor"`

	// Fixed horizontal velocity imposed on the left column.
	InletVelocity float64 `json:"inletVelocity"`

	// Output
	CheckpointInterval int    `json:"checkpointInterval"`
	OutputDir          string `json:"outputDir"`
	FramesDir          string `json:"framesDir"`

	// Number of goroutines sharing the interior update. 1 keeps the update on
	// the calling goroutine.
	Workers int `json:"workers"`

	// Abort the run with a DivergenceError when u or v stops being finite.
	CheckFinite bool `json:"checkFinite"`

	// Steps between progress log lines. 0 disables progress logging.
	LogInterval int `json:"logInterval"`
}

// DefaultConfig returns the reference channel configuration.
func DefaultConfig() Config {
	return Config{
		Lx:                 10.0,
		Ly:                 0.5,
		NX:                 800,
		NY:                 50,
		NT:                 50000,
		DT:                 0.008,
		Rho:                1.0,
		Nu:                 0.1,
		DiffusionFactor:    0.01,
		InletVelocity:      0.5,
		CheckpointInterval: 50,
		OutputDir:          "data",
		FramesDir:          "frames",
		Workers:            1,
		CheckFinite:        false,
		LogInterval:        1000,
	}
}

// LoadConfig reads a JSON file and overlays it on DefaultConfig. Fields
// missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the parameters a run cannot start without.
func (c Config) Validate() error {
	if c.NX < 2 || c.NY < 2 {
		return configErrorf("grid needs at least 2x2 points, got nx=%d ny=%d", c.NX, c.NY)
	}
	if !validExtent(c.Lx) || !validExtent(c.Ly) {
		return configErrorf("domain extents must be positive and finite, got Lx=%v Ly=%v", c.Lx, c.Ly)
	}
	if !(c.Rho > 0) {
		return configErrorf("rho must be positive, got %v", c.Rho)
	}
	if !(c.Nu > 0) {
		return configErrorf("nu must be positive, got %v", c.Nu)
	}
	if !(c.DT > 0) {
		return configErrorf("dt must be positive, got %v", c.DT)
	}
	if c.NT < 0 {
		return configErrorf("nt must not be negative, got %d", c.NT)
	}
	if c.CheckpointInterval <= 0 {
		return configErrorf("checkpoint interval must be positive, got %d", c.CheckpointInterval)
	}
	if c.Workers < 0 {
		return configErrorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Grid builds the grid described by c.
func (c Config) Grid() (Grid, error) {
	return NewGrid(c.Lx, c.Ly, c.NX, c.NY)
}

// String prints the config the way it is logged at startup.
func (c Config) String() string {
	s := ""
	s += fmt.Sprintf(". domain: %g x %g\n", c.Lx, c.Ly)
	s += fmt.Sprintf(". grid: %d x %d\n", c.NX, c.NY)
	s += fmt.Sprintf(". nt: %d dt: %g\n", c.NT, c.DT)
	s += fmt.Sprintf(". rho: %g nu: %g\n", c.Rho, c.Nu)
	s += fmt.Sprintf(". inlet: %g checkpoint every %d -> %s\n", c.InletVelocity, c.CheckpointInterval, c.OutputDir)
	return s
}
