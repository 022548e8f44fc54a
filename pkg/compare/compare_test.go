package compare

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/LuisM78/fortran-python/pkg/checkpoint"
	"github.com/LuisM78/fortran-python/pkg/fluid"
	"github.com/LuisM78/fortran-python/pkg/render"
)

var quiet = log.New(io.Discard, "", 0)

func writeMatrix(t *testing.T, path string, vals []float64, nx, ny int) {
	t.Helper()
	var buf bytes.Buffer
	if err := checkpoint.WriteMatrix(&buf, vals, nx, ny); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// setupRun writes solver checkpoints with u = base and reference files
// with u = base + offset for the given steps.
func setupRun(t *testing.T, g fluid.Grid, steps []int, offset float64) (dataDir, refDir string) {
	t.Helper()
	root := t.TempDir()
	dataDir = filepath.Join(root, "data")
	refDir = filepath.Join(root, "results")
	for _, d := range []string{dataDir, refDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	nx, ny := g.NumX, g.NumY
	base := make([]float64, nx*ny)
	for k := range base {
		base[k] = float64(k%nx) * 0.01
	}
	zero := make([]float64, nx*ny)
	for _, step := range steps {
		writeMatrix(t, filepath.Join(dataDir, checkpoint.UName(step)), base, nx, ny)
		writeMatrix(t, filepath.Join(dataDir, checkpoint.VName(step)), zero, nx, ny)

		ref := make([]float64, 0, 3*nx*ny)
		for _, v := range base {
			ref = append(ref, v+offset)
		}
		ref = append(ref, zero...)
		ref = append(ref, zero...)
		writeMatrix(t, filepath.Join(refDir, checkpoint.ReferenceName(step)), ref, nx, 3*ny)
	}
	return dataDir, refDir
}

func TestComparerRun(t *testing.T) {
	g, err := fluid.NewGrid(10.0, 0.5, 40, 6)
	if err != nil {
		t.Fatal(err)
	}
	dataDir, refDir := setupRun(t, g, []int{50, 100, 150}, 0.125)
	chartDir := filepath.Join(t.TempDir(), "compareprofiles")

	c, err := NewComparer(g, Options{ReferenceDir: refDir, ChartDir: chartDir}, quiet)
	if err != nil {
		t.Fatalf("NewComparer: %v", err)
	}
	results, err := c.Run(checkpoint.DirCatalog{Dir: dataDir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// the first checkpoint is skipped
	if len(results) != 2 || results[0].Step != 100 || results[1].Step != 150 {
		t.Fatalf("results for steps %v, want [100 150]", steps(results))
	}
	for _, r := range results {
		if len(r.Profiles) != len(DefaultFractions) {
			t.Errorf("step %d has %d profiles", r.Step, len(r.Profiles))
		}
		for _, p := range r.Profiles {
			if math.Abs(p.MaxAbs-0.125) > 1e-6 {
				t.Errorf("step %d x=%.2f max diff %v, want 0.125", r.Step, p.X, p.MaxAbs)
			}
			if math.Abs(p.L2-0.125*math.Sqrt(6)) > 1e-5 {
				t.Errorf("step %d x=%.2f L2 %v, want %v", r.Step, p.X, p.L2, 0.125*math.Sqrt(6))
			}
			if p.Column != g.Column(p.X) {
				t.Errorf("column %d for x=%v", p.Column, p.X)
			}
		}
		if _, err := os.Stat(r.Chart); err != nil {
			t.Errorf("chart for step %d: %v", r.Step, err)
		}
	}
	if results[0].Profiles[2].Column != int(1.0/g.Dx()) {
		t.Errorf("profile at x=1.0 uses column %d", results[0].Profiles[2].Column)
	}
}

func steps(results []Result) []int {
	var s []int
	for _, r := range results {
		s = append(s, r.Step)
	}
	return s
}

func TestComparerSkipsBadReference(t *testing.T) {
	g, err := fluid.NewGrid(1.0, 1.0, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	dataDir, refDir := setupRun(t, g, []int{50, 100, 150}, 0)
	// truncate the reference for step 100
	if err := os.WriteFile(filepath.Join(refDir, "00100.txt"), []byte("0 0 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewComparer(g, Options{ReferenceDir: refDir, IncludeFirst: true}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	results, err := c.Run(checkpoint.DirCatalog{Dir: dataDir})
	var fe *checkpoint.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Run error = %v, want a *FormatError", err)
	}
	if got := steps(results); len(got) != 2 || got[0] != 50 || got[1] != 150 {
		t.Errorf("compared steps %v, want [50 150]", got)
	}
	for _, r := range results {
		if r.MaxAbs() != 0 || r.Chart != "" {
			t.Errorf("step %d: max %v chart %q", r.Step, r.MaxAbs(), r.Chart)
		}
	}
}

func TestComparerShapeMismatch(t *testing.T) {
	g, err := fluid.NewGrid(1.0, 1.0, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	dataDir, refDir := setupRun(t, g, []int{50}, 0)
	other, err := fluid.NewGrid(1.0, 1.0, 6, 4)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewComparer(other, Options{ReferenceDir: refDir}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Compare(checkpoint.Entry{Step: 50, UPath: filepath.Join(dataDir, checkpoint.UName(50))})
	var fe *checkpoint.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("Compare error = %v, want *FormatError", err)
	}
}

func TestReplay(t *testing.T) {
	g, err := fluid.NewGrid(1.0, 1.0, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	_, refDir := setupRun(t, g, []int{0, 100}, 0.5)
	framesDir := filepath.Join(t.TempDir(), "frames2")
	frames, err := render.NewFrameWriter(framesDir, 1, quiet)
	if err != nil {
		t.Fatal(err)
	}

	n, err := Replay(refDir, g, 150, 50, frames, quiet)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != 2 {
		t.Errorf("Replay wrote %d frames, want 2", n)
	}
	for _, name := range []string{"frame_00000.png", "frame_00100.png"} {
		if _, err := os.Stat(filepath.Join(framesDir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(framesDir, "frame_00050.png")); err == nil {
		t.Errorf("frame written for a missing reference file")
	}

	if _, err := Replay(refDir, g, 150, 0, frames, quiet); err == nil {
		t.Errorf("Replay accepted a zero interval")
	}
}

func TestComparerFlatFields(t *testing.T) {
	g, err := fluid.NewGrid(1.0, 1.0, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	refDir := filepath.Join(root, "results")
	for _, d := range []string{dataDir, refDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeMatrix(t, filepath.Join(dataDir, checkpoint.UName(50)), make([]float64, 15), 5, 3)
	writeMatrix(t, filepath.Join(dataDir, checkpoint.VName(50)), make([]float64, 15), 5, 3)
	writeMatrix(t, filepath.Join(refDir, checkpoint.ReferenceName(50)), make([]float64, 45), 5, 9)

	chartDir := filepath.Join(root, "compareprofiles")
	c, err := NewComparer(g, Options{ReferenceDir: refDir, ChartDir: chartDir, IncludeFirst: true}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	results, err := c.Run(checkpoint.DirCatalog{Dir: dataDir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Step != 50 {
		t.Fatalf("results for steps %v, want [50]", steps(results))
	}
	if results[0].MaxAbs() != 0 {
		t.Errorf("max diff %v, want 0", results[0].MaxAbs())
	}
	if _, err := os.Stat(results[0].Chart); err != nil {
		t.Errorf("chart: %v", err)
	}
}

func TestComparerKeepsProfilesWhenChartFails(t *testing.T) {
	g, err := fluid.NewGrid(1.0, 1.0, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	dataDir, refDir := setupRun(t, g, []int{50}, 0.25)
	chartDir := filepath.Join(t.TempDir(), "compareprofiles")
	c, err := NewComparer(g, Options{ReferenceDir: refDir, ChartDir: chartDir, IncludeFirst: true}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(chartDir); err != nil {
		t.Fatal(err)
	}

	results, err := c.Run(checkpoint.DirCatalog{Dir: dataDir})
	if err == nil {
		t.Fatalf("Run succeeded without a chart directory")
	}
	if len(results) != 1 {
		t.Fatalf("results for steps %v, want [50]", steps(results))
	}
	r := results[0]
	if len(r.Profiles) != len(DefaultFractions) || math.Abs(r.MaxAbs()-0.25) > 1e-6 {
		t.Errorf("step 50: %d profiles, max diff %v", len(r.Profiles), r.MaxAbs())
	}
	if r.Chart != "" {
		t.Errorf("chart path %q set for a chart that was not written", r.Chart)
	}
}
