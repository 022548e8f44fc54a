package render

import (
	"image/color"
	"math"
)

var nanColor = color.RGBA{A: 0xff}

// SciColor maps val in [minVal, maxVal] onto a blue-cyan-green-yellow-red
// scale. NaN maps to black.
func SciColor(val, minVal, maxVal float64) color.RGBA {
	if math.IsNaN(val) {
		return nanColor
	}
	var d = maxVal - minVal
	if d <= 0 || math.IsInf(d, 0) || math.IsNaN(d) {
		val = 0.5
	} else {
		val = min(max((val-minVal)/d, 0), 0.9999)
	}
	var m = 0.25
	var num = math.Floor(val / m)
	var s = (val - num*m) / m
	var r, g, b float64

	switch num {
	case 0:
		r = 0.0
		g = s
		b = 1.0
	case 1:
		r = 0.0
		g = 1.0
		b = 1.0 - s
	case 2:
		r = s
		g = 1.0
		b = 0.0
	case 3:
		r = 1.0
		g = 1.0 - s
		b = 0.0
	}

	return color.RGBA{
		R: uint8(255 * r),
		G: uint8(255 * g),
		B: uint8(255 * b),
		A: 0xff,
	}
}
