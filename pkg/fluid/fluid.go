package fluid

import (
	"fmt"
	"math"
)

// FieldState owns the velocity and pressure buffers of a run. Each buffer
// holds NumY rows of NumX values; row i is the vertical position y[i] and
// the value at (i, j) lives at index i*NumX+j.
type FieldState struct {
	NumX, NumY int
	numCells   int

	U, V []float64 // velocities
	P    []float64 // pressure, never written by the solver
}

// NewFieldState allocates an all-zero state over g.
func NewFieldState(g Grid) *FieldState {
	numCells := g.NumCells()
	return &FieldState{
		NumX:     g.NumX,
		NumY:     g.NumY,
		numCells: numCells,
		U:        make([]float64, numCells),
		V:        make([]float64, numCells),
		P:        make([]float64, numCells),
	}
}

func fill[T any](slice []T, val T) {
	for i := range slice {
		slice[i] = val
	}
}

func (f *FieldState) index(i, j int) int {
	if i < 0 || i >= f.NumY {
		panic(fmt.Sprintf("invalid row index: %d", i))
	}
	if j < 0 || j >= f.NumX {
		panic(fmt.Sprintf("invalid column index: %d", j))
	}
	return i*f.NumX + j
}

// SetVelocity sets both velocity components at row i, column j.
func (f *FieldState) SetVelocity(i, j int, u, v float64) {
	cell := f.index(i, j)
	f.U[cell] = u
	f.V[cell] = v
}

// VelocityAt returns both velocity components at row i, column j.
func (f *FieldState) VelocityAt(i, j int) (float64, float64) {
	cell := f.index(i, j)
	return f.U[cell], f.V[cell]
}

// URow returns row i of u. The slice aliases the live buffer.
func (f *FieldState) URow(i int) []float64 {
	start := f.index(i, 0)
	return f.U[start : start+f.NumX]
}

// VRow returns row i of v. The slice aliases the live buffer.
func (f *FieldState) VRow(i int) []float64 {
	start := f.index(i, 0)
	return f.V[start : start+f.NumX]
}

// UColumn copies column j of u, bottom row first.
func (f *FieldState) UColumn(j int) []float64 {
	f.index(0, j)
	col := make([]float64, f.NumY)
	for i := range col {
		col[i] = f.U[i*f.NumX+j]
	}
	return col
}

// Reset zeroes every buffer.
func (f *FieldState) Reset() {
	fill(f.U, 0.0)
	fill(f.V, 0.0)
	fill(f.P, 0.0)
}

// checkFinite returns the first non-finite velocity, scanning u then v.
func (f *FieldState) checkFinite(step int) error {
	buffers := []struct {
		name string
		vals []float64
	}{{"u", f.U}, {"v", f.V}}
	for _, b := range buffers {
		for k, val := range b.vals {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return &DivergenceError{
					Step:  step,
					Field: b.name,
					Row:   k / f.NumX,
					Col:   k % f.NumX,
					Value: val,
				}
			}
		}
	}
	return nil
}
