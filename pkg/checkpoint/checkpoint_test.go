package checkpoint

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LuisM78/fortran-python/pkg/fluid"
)

func TestWriteMatrixFormat(t *testing.T) {
	var buf bytes.Buffer
	vals := []float64{0, 0.5, -1.25, 1.0 / 3, 2, 1e-7}
	if err := WriteMatrix(&buf, vals, 3, 2); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	want := "0.000000 0.500000 -1.250000\n0.333333 2.000000 0.000000\n"
	if buf.String() != want {
		t.Errorf("WriteMatrix wrote %q, want %q", buf.String(), want)
	}

	if err := WriteMatrix(&buf, vals, 4, 2); err == nil {
		t.Errorf("WriteMatrix accepted a shape mismatch")
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	nx, ny := 7, 4
	vals := make([]float64, nx*ny)
	for k := range vals {
		vals[k] = math.Sin(float64(k)*0.37) * 12.345678
	}

	var buf bytes.Buffer
	if err := WriteMatrix(&buf, vals, nx, ny); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	got, gx, gy, err := ReadMatrix(&buf)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if gx != nx || gy != ny {
		t.Fatalf("shape %dx%d, want %dx%d", gy, gx, ny, nx)
	}
	for k := range vals {
		if math.Abs(got[k]-vals[k]) > 1e-6 {
			t.Errorf("value %d = %v, want %v within 1e-6", k, got[k], vals[k])
		}
	}
}

func TestMatrixNonFinite(t *testing.T) {
	var buf bytes.Buffer
	vals := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1}
	if err := WriteMatrix(&buf, vals, 4, 1); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	if buf.String() != "nan inf -inf 1.000000\n" {
		t.Errorf("wrote %q", buf.String())
	}
	got, _, _, err := ReadMatrix(&buf)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if !math.IsNaN(got[0]) || !math.IsInf(got[1], 1) || !math.IsInf(got[2], -1) || got[3] != 1 {
		t.Errorf("read back %v", got)
	}
}

func TestReadMatrixRaggedRows(t *testing.T) {
	_, _, _, err := ReadMatrix(strings.NewReader("1 2 3\n\n4 5\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
	if fe.Line != 3 {
		t.Errorf("error line = %d, want 3", fe.Line)
	}
}

func TestWriterCheckpoint(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	w, err := NewWriter(dir, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	g, err := fluid.NewGrid(4.0, 1.0, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	f := fluid.NewFieldState(g)
	for i := 0; i < f.NumY; i++ {
		for j := 0; j < f.NumX; j++ {
			f.SetVelocity(i, j, float64(i*10+j), -float64(j))
		}
	}
	f.P[3] = 99

	// a stale file is replaced
	if err := os.WriteFile(filepath.Join(dir, UName(50)), []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Checkpoint(50, f); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	u, nx, ny, err := ReadMatrixFile(filepath.Join(dir, "u_00050.txt"))
	if err != nil {
		t.Fatalf("read u: %v", err)
	}
	if nx != 5 || ny != 3 {
		t.Fatalf("u shape %dx%d, want 3x5", ny, nx)
	}
	for k := range u {
		if u[k] != f.U[k] {
			t.Errorf("u[%d] = %v, want %v", k, u[k], f.U[k])
		}
	}
	v, _, _, err := ReadMatrixFile(filepath.Join(dir, "v_00050.txt"))
	if err != nil {
		t.Fatalf("read v: %v", err)
	}
	for k := range v {
		if v[k] != f.V[k] {
			t.Errorf("v[%d] = %v, want %v", k, v[k], f.V[k])
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("checkpoint wrote %d files, want 2 (no pressure file)", len(entries))
	}
}

func TestWriterWithStepper(t *testing.T) {
	dir := t.TempDir()
	quiet := log.New(io.Discard, "", 0)
	w, err := NewWriter(dir, quiet)
	if err != nil {
		t.Fatal(err)
	}
	cfg := fluid.DefaultConfig()
	cfg.Lx, cfg.Ly, cfg.NX, cfg.NY = 2.0, 0.5, 20, 6
	cfg.NT = 100
	cfg.LogInterval = 0
	s, err := fluid.NewStepper(cfg, w)
	if err != nil {
		t.Fatal(err)
	}
	s.SetLogger(quiet)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := DirCatalog{Dir: dir}.Checkpoints()
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	if len(entries) != 2 || entries[0].Step != 50 || entries[1].Step != 100 {
		t.Fatalf("entries = %+v, want steps 50 and 100", entries)
	}
	u, _, _, err := ReadMatrixFile(entries[1].UPath)
	if err != nil {
		t.Fatal(err)
	}
	for k := range u {
		if math.Abs(u[k]-s.Field().U[k]) > 1e-6 {
			t.Errorf("u[%d] = %v, field has %v", k, u[k], s.Field().U[k])
		}
	}
}
