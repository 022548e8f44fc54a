package fluid

// Pressure returns a view of the pressure buffer. The buffer stays all zero
// for the whole run: nothing in the solver writes it.
func (f *FieldState) Pressure() ScalarField {
	return NewScalarField(f.NumX, f.NumY, f.P)
}
