package fluid

import "fmt"

type VectorField struct {
	NumX, NumY       int
	valuesU, valuesV []float64
}

func (v VectorField) Value(i, j int) (float64, float64, error) {
	if i < 0 || i >= v.NumY {
		return 0.0, 0.0, fmt.Errorf("row index out of range, must be between 0 and %d", v.NumY-1)
	}
	if j < 0 || j >= v.NumX {
		return 0.0, 0.0, fmt.Errorf("column index out of range, must be between 0 and %d", v.NumX-1)
	}

	return v.valuesU[i*v.NumX+j], v.valuesV[i*v.NumX+j], nil
}
