// Package checkpoint reads and writes the text matrix formats a run
// produces and compares against.
package checkpoint

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/LuisM78/fortran-python/pkg/fluid"
)

// UName returns the file name of the u checkpoint for step.
func UName(step int) string { return fmt.Sprintf("u_%05d.txt", step) }

// VName returns the file name of the v checkpoint for step.
func VName(step int) string { return fmt.Sprintf("v_%05d.txt", step) }

// Writer writes u and v as two text matrices per checkpoint. Pressure is
// not written.
type Writer struct {
	dir    string
	logger *log.Logger
}

// NewWriter creates dir if it does not exist.
func NewWriter(dir string, logger *log.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint directory: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{dir: dir, logger: logger}, nil
}

// Dir returns the directory checkpoints are written to.
func (w *Writer) Dir() string { return w.dir }

// Checkpoint writes u_<step>.txt and v_<step>.txt, replacing any existing
// files of the same name.
func (w *Writer) Checkpoint(step int, f *fluid.FieldState) error {
	uPath := filepath.Join(w.dir, UName(step))
	if err := writeMatrixFile(uPath, f.U, f.NumX, f.NumY); err != nil {
		return err
	}
	vPath := filepath.Join(w.dir, VName(step))
	if err := writeMatrixFile(vPath, f.V, f.NumX, f.NumY); err != nil {
		return err
	}
	w.logger.Printf("Checkpoint %d saved to %s, %s", step, uPath, vPath)
	return nil
}

func writeMatrixFile(path string, vals []float64, nx, ny int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := WriteMatrix(f, vals, nx, ny); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadMatrixFile reads a matrix written by WriteMatrix or any other
// whitespace-delimited writer.
func ReadMatrixFile(path string) (vals []float64, nx, ny int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()
	vals, nx, ny, err = ReadMatrix(f)
	return vals, nx, ny, withPath(err, path)
}

func withPath(err error, path string) error {
	if fe, ok := err.(*FormatError); ok {
		fe.Path = path
	}
	return err
}
