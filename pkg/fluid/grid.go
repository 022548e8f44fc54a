package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a uniform rectangular grid of NumX x NumY points spanning
// [0, Lx] x [0, Ly], end points included.
type Grid struct {
	Lx, Ly     float64
	NumX, NumY int
	dx, dy     float64
	x, y       []float64
}

// NewGrid derives spacing and coordinate axes from the domain extents and
// point counts.
func NewGrid(lx, ly float64, nx, ny int) (Grid, error) {
	if nx < 2 || ny < 2 {
		return Grid{}, configErrorf("grid needs at least 2x2 points, got nx=%d ny=%d", nx, ny)
	}
	if !validExtent(lx) || !validExtent(ly) {
		return Grid{}, configErrorf("domain extents must be positive and finite, got Lx=%v Ly=%v", lx, ly)
	}

	x := make([]float64, nx)
	y := make([]float64, ny)
	floats.Span(x, 0, lx)
	floats.Span(y, 0, ly)

	return Grid{
		Lx:   lx,
		Ly:   ly,
		NumX: nx,
		NumY: ny,
		dx:   lx / float64(nx-1),
		dy:   ly / float64(ny-1),
		x:    x,
		y:    y,
	}, nil
}

func validExtent(l float64) bool {
	return l > 0 && !math.IsInf(l, 1)
}

// Dx returns the horizontal spacing.
func (g Grid) Dx() float64 { return g.dx }

// Dy returns the vertical spacing.
func (g Grid) Dy() float64 { return g.dy }

// X returns a copy of the horizontal axis.
func (g Grid) X() []float64 {
	x := make([]float64, len(g.x))
	copy(x, g.x)
	return x
}

// Y returns a copy of the vertical axis.
func (g Grid) Y() []float64 {
	y := make([]float64, len(g.y))
	copy(y, g.y)
	return y
}

// NumCells is the number of points in one field buffer.
func (g Grid) NumCells() int { return g.NumX * g.NumY }

// Column returns the column index closest below x, the way profile
// positions are mapped onto the grid.
func (g Grid) Column(x float64) int {
	j := int(x / g.dx)
	return max(0, min(j, g.NumX-1))
}
