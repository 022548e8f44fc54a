package fluid

import "math"

// Velocity returns a snapshot of both velocity components.
func (f *FieldState) Velocity() VectorField {
	uCopy := make([]float64, f.numCells)
	copy(uCopy, f.U)
	vCopy := make([]float64, f.numCells)
	copy(vCopy, f.V)
	return VectorField{
		NumX:    f.NumX,
		NumY:    f.NumY,
		valuesU: uCopy,
		valuesV: vCopy,
	}
}

// VelocityMagnitude computes sqrt(u^2+v^2) at every grid point.
func (f *FieldState) VelocityMagnitude() ScalarField {
	return Speed(f.U, f.V, f.NumX, f.NumY)
}

// Speed computes sqrt(u^2+v^2) for row-major u and v buffers of an nx by ny
// grid, such as the blocks of a reference file.
func Speed(u, v []float64, nx, ny int) ScalarField {
	vals := make([]float64, nx*ny)
	for k := range vals {
		vals[k] = math.Hypot(u[k], v[k])
	}
	return NewScalarField(nx, ny, vals)
}

// Vorticity computes dv/dx - du/dy with central differences at interior
// points. Edge points are left at zero.
func (f *FieldState) Vorticity(g Grid) ScalarField {
	n := f.NumX
	vals := make([]float64, f.numCells)
	for i := 1; i < f.NumY-1; i++ {
		for j := 1; j < f.NumX-1; j++ {
			dvdx := (f.V[i*n+j+1] - f.V[i*n+j-1]) * 0.5 / g.dx
			dudy := (f.U[(i+1)*n+j] - f.U[(i-1)*n+j]) * 0.5 / g.dy
			vals[i*n+j] = dvdx - dudy
		}
	}
	return NewScalarField(f.NumX, f.NumY, vals)
}

// MaxDivergence returns the largest |du/dx + dv/dy| over interior points.
// Without a pressure step the field is not driven towards zero divergence,
// so this only serves as a diagnostic.
func (f *FieldState) MaxDivergence(g Grid) float64 {
	n := f.NumX
	maxDiv := 0.0
	for i := 1; i < f.NumY-1; i++ {
		for j := 1; j < f.NumX-1; j++ {
			div := (f.U[i*n+j+1]-f.U[i*n+j-1])*0.5/g.dx +
				(f.V[(i+1)*n+j]-f.V[(i-1)*n+j])*0.5/g.dy
			if a := math.Abs(div); a > maxDiv {
				maxDiv = a
			}
		}
	}
	return maxDiv
}

// MaxSpeed returns max |u| and max |v|.
func (f *FieldState) MaxSpeed() (float64, float64) {
	maxU, maxV := 0.0, 0.0
	for k := range f.U {
		maxU = math.Max(maxU, math.Abs(f.U[k]))
		maxV = math.Max(maxV, math.Abs(f.V[k]))
	}
	return maxU, maxV
}
