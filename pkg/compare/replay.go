package compare

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/LuisM78/fortran-python/pkg/checkpoint"
	"github.com/LuisM78/fortran-python/pkg/fluid"
	"github.com/LuisM78/fortran-python/pkg/render"
)

// Replay renders a speed frame for every reference file <n>.txt with
// n = 0, interval, 2*interval, ... up to nt. Missing steps are skipped.
// It returns the number of frames written.
func Replay(refDir string, g fluid.Grid, nt, interval int, frames *render.FrameWriter, logger *log.Logger) (int, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("replay interval must be positive, got %d", interval)
	}
	if logger == nil {
		logger = log.Default()
	}
	written := 0
	for n := 0; n <= nt; n += interval {
		path := filepath.Join(refDir, checkpoint.ReferenceName(n))
		ref, err := checkpoint.ReadReferenceFile(path, g.NumX, g.NumY)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return written, err
		}
		speed := fluid.Speed(ref.U, ref.V, ref.NumX, ref.NumY)
		if err := frames.WriteFrame(n, render.Heatmap(speed, frames.Scale())); err != nil {
			return written, err
		}
		written++
	}
	logger.Printf("Replayed %d reference frames from %s", written, refDir)
	return written, nil
}
