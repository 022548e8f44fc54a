// Package compare lines up a run's checkpoints with reference solutions of
// the same steps and measures how far the vertical u profiles differ.
package compare

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"github.com/LuisM78/fortran-python/pkg/checkpoint"
	"github.com/LuisM78/fortran-python/pkg/fluid"
	"github.com/LuisM78/fortran-python/pkg/render"
)

// DefaultFractions are the profile positions as fractions of Lx.
var DefaultFractions = []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.9}

// Options controls a comparison.
type Options struct {
	ReferenceDir string    // holds <step>.txt reference files
	ChartDir     string    // profile charts are written here; empty disables charts
	Fractions    []float64 // nil means DefaultFractions
	// Compare the first checkpoint too. By default it is skipped.
	IncludeFirst bool
}

// ProfileDiff is the difference between the reference and solver u
// profiles at one horizontal position.
type ProfileDiff struct {
	X      float64
	Column int
	MaxAbs float64
	L2     float64
}

// Result is the comparison of one checkpoint.
type Result struct {
	Step     int
	Profiles []ProfileDiff
	Chart    string // path of the chart, if one was written
}

// MaxAbs returns the largest MaxAbs over all profiles.
func (r Result) MaxAbs() float64 {
	m := 0.0
	for _, p := range r.Profiles {
		m = math.Max(m, p.MaxAbs)
	}
	return m
}

// Comparer compares checkpoints of runs on one grid.
type Comparer struct {
	grid   fluid.Grid
	opts   Options
	logger *log.Logger
}

func NewComparer(g fluid.Grid, opts Options, logger *log.Logger) (*Comparer, error) {
	if opts.Fractions == nil {
		opts.Fractions = DefaultFractions
	}
	if opts.ChartDir != "" {
		if err := os.MkdirAll(opts.ChartDir, 0o755); err != nil {
			return nil, fmt.Errorf("create chart directory: %w", err)
		}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Comparer{grid: g, opts: opts, logger: logger}, nil
}

// Run compares every checkpoint listed by cat. A checkpoint that cannot be
// compared is logged and skipped, and one whose chart fails keeps its
// result without a chart. All such errors are returned joined together
// after the remaining checkpoints have been processed.
func (c *Comparer) Run(cat checkpoint.Catalog) ([]Result, error) {
	entries, err := cat.Checkpoints()
	if err != nil {
		return nil, err
	}
	if !c.opts.IncludeFirst && len(entries) > 0 {
		entries = entries[1:]
	}

	var results []Result
	var errs []error
	for _, e := range entries {
		res, err := c.Compare(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", e.Step, err))
			if res.Profiles == nil {
				c.logger.Printf("Skipping step %d: %v", e.Step, err)
				continue
			}
			c.logger.Printf("Step %d: no chart: %v", e.Step, err)
		}
		c.logger.Printf("Step %d: max |du| = %.6f", res.Step, res.MaxAbs())
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// Compare compares a single checkpoint with its reference file. When only
// the chart cannot be produced, the profile differences are still returned
// along with the error.
func (c *Comparer) Compare(e checkpoint.Entry) (Result, error) {
	nx, ny := c.grid.NumX, c.grid.NumY
	u, gx, gy, err := checkpoint.ReadMatrixFile(e.UPath)
	if err != nil {
		return Result{}, err
	}
	if gx != nx || gy != ny {
		return Result{}, &checkpoint.FormatError{
			Path: e.UPath,
			Msg:  fmt.Sprintf("matrix is %dx%d, grid is %dx%d", gy, gx, ny, nx),
		}
	}
	refPath := filepath.Join(c.opts.ReferenceDir, checkpoint.ReferenceName(e.Step))
	ref, err := checkpoint.ReadReferenceFile(refPath, nx, ny)
	if err != nil {
		return Result{}, err
	}

	y := c.grid.Y()
	res := Result{Step: e.Step}
	var profiles []render.Profile
	for _, frac := range c.opts.Fractions {
		x := frac * c.grid.Lx
		col := c.grid.Column(x)
		refProfile := column(ref.U, nx, ny, col)
		runProfile := column(u, nx, ny, col)

		res.Profiles = append(res.Profiles, ProfileDiff{
			X:      x,
			Column: col,
			MaxAbs: floats.Distance(refProfile, runProfile, math.Inf(1)),
			L2:     floats.Distance(refProfile, runProfile, 2),
		})
		profiles = append(profiles,
			render.Profile{Label: fmt.Sprintf("reference iter %d x = %.1f m", e.Step, x), Values: refProfile, Y: y},
			render.Profile{Label: fmt.Sprintf("solver x = %.1f m", x), Values: runProfile, Y: y, Dashed: true},
		)
	}

	if c.opts.ChartDir != "" {
		var buf bytes.Buffer
		title := fmt.Sprintf("Velocity Profiles at Different Distances from Inlet %d", e.Step)
		if err := render.ProfileChart(&buf, title, profiles); err != nil {
			return res, fmt.Errorf("render chart: %w", err)
		}
		chartPath := filepath.Join(c.opts.ChartDir, render.FrameName(e.Step))
		if err := os.WriteFile(chartPath, buf.Bytes(), 0o644); err != nil {
			return res, fmt.Errorf("write chart: %w", err)
		}
		res.Chart = chartPath
	}
	return res, nil
}

// column copies column j of a row-major nx by ny matrix.
func column(vals []float64, nx, ny, j int) []float64 {
	col := make([]float64, ny)
	for i := range col {
		col[i] = vals[i*nx+j]
	}
	return col
}
