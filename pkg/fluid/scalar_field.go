package fluid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ScalarField is a read-only row-major view of one value per grid point.
type ScalarField struct {
	NumX, NumY         int
	MinValue, MaxValue float64
	values             []float64
}

// NewScalarField wraps row-major values of an nx by ny grid. The slice is
// not copied.
func NewScalarField(nx, ny int, values []float64) ScalarField {
	return ScalarField{
		NumX:     nx,
		NumY:     ny,
		MinValue: floats.Min(values),
		MaxValue: floats.Max(values),
		values:   values,
	}
}

// Value returns the value at row i, column j.
func (s ScalarField) Value(i, j int) (float64, error) {
	if i < 0 || i >= s.NumY {
		return 0.0, fmt.Errorf("row index out of range, must be between 0 and %d", s.NumY-1)
	}
	if j < 0 || j >= s.NumX {
		return 0.0, fmt.Errorf("column index out of range, must be between 0 and %d", s.NumX-1)
	}

	return s.values[i*s.NumX+j], nil
}

// Values returns a copy of the underlying row-major data.
func (s ScalarField) Values() []float64 {
	vals := make([]float64, len(s.values))
	copy(vals, s.values)
	return vals
}
