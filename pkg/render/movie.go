package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// Movie collects frames into an MJPEG AVI file.
type Movie struct {
	w             mjpeg.AviWriter
	width, height int
	buf           bytes.Buffer
	opts          jpeg.Options
	frames        int
}

// NewMovie creates the AVI file at path. Every frame must be width x height.
func NewMovie(path string, width, height, fps int) (*Movie, error) {
	w, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create movie %s: %w", path, err)
	}
	return &Movie{
		w:      w,
		width:  width,
		height: height,
		opts:   jpeg.Options{Quality: 90},
	}, nil
}

// Add encodes img as JPEG and appends it.
func (m *Movie) Add(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != m.width || b.Dy() != m.height {
		return fmt.Errorf("frame is %dx%d, movie is %dx%d", b.Dx(), b.Dy(), m.width, m.height)
	}
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &m.opts); err != nil {
		return err
	}
	if err := m.w.AddFrame(m.buf.Bytes()); err != nil {
		return err
	}
	m.frames++
	return nil
}

// Frames returns the number of frames added so far.
func (m *Movie) Frames() int { return m.frames }

// Close finalizes the AVI index. The movie is unusable afterwards.
func (m *Movie) Close() error {
	return m.w.Close()
}
