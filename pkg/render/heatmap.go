// Package render draws fields and profiles for inspection. Nothing in the
// solver depends on it.
package render

import (
	"image"

	"github.com/LuisM78/fortran-python/pkg/fluid"
)

// Heatmap draws s with SciColor scaled to the field's own range. Each grid
// point becomes a scale x scale block, and row 0 is drawn at the bottom so
// the image has y pointing up.
func Heatmap(s fluid.ScalarField, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, s.NumX*scale, s.NumY*scale))
	vals := s.Values()
	for i := 0; i < s.NumY; i++ {
		py := (s.NumY - 1 - i) * scale
		for j := 0; j < s.NumX; j++ {
			c := SciColor(vals[i*s.NumX+j], s.MinValue, s.MaxValue)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(j*scale+dx, py+dy, c)
				}
			}
		}
	}
	return img
}

// SpeedHeatmap draws sqrt(u^2+v^2) of f.
func SpeedHeatmap(f *fluid.FieldState, scale int) *image.RGBA {
	return Heatmap(f.VelocityMagnitude(), scale)
}
