package render

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/LuisM78/fortran-python/pkg/fluid"
)

// FrameName returns the file name of the frame image for step.
func FrameName(step int) string { return fmt.Sprintf("frame_%05d.png", step) }

// FrameWriter saves a speed heat map as a PNG every checkpoint and, when a
// movie is attached, appends it to the movie as well.
type FrameWriter struct {
	dir    string
	scale  int
	movie  *Movie
	logger *log.Logger
}

// NewFrameWriter creates dir if it does not exist.
func NewFrameWriter(dir string, scale int, logger *log.Logger) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FrameWriter{dir: dir, scale: max(scale, 1), logger: logger}, nil
}

// SetMovie attaches m. Frames must match the movie's size.
func (w *FrameWriter) SetMovie(m *Movie) { w.movie = m }

// Close finalizes the attached movie, if any, and detaches it.
func (w *FrameWriter) Close() error {
	if w.movie == nil {
		return nil
	}
	m := w.movie
	w.movie = nil
	if err := m.Close(); err != nil {
		return fmt.Errorf("close movie: %w", err)
	}
	w.logger.Printf("Movie finished with %d frames", m.Frames())
	return nil
}

// Scale returns the pixel size of one grid point.
func (w *FrameWriter) Scale() int { return w.scale }

// Checkpoint renders the speed of f.
func (w *FrameWriter) Checkpoint(step int, f *fluid.FieldState) error {
	return w.WriteFrame(step, SpeedHeatmap(f, w.scale))
}

// WriteFrame saves img as the frame for step.
func (w *FrameWriter) WriteFrame(step int, img image.Image) error {
	path := filepath.Join(w.dir, FrameName(step))
	if err := savePNG(path, img); err != nil {
		return err
	}
	if w.movie != nil {
		if err := w.movie.Add(img); err != nil {
			return fmt.Errorf("movie frame %d: %w", step, err)
		}
	}
	return nil
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
