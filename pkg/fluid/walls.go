package fluid

import "fmt"

// BoundaryKind selects how one edge of the domain is overwritten after every
// interior update.
type BoundaryKind int

const (
	// NoSlipWall sets both velocity components to zero.
	NoSlipWall BoundaryKind = iota
	// VelocityInlet fixes the velocity component normal to the edge to the
	// inlet velocity and the tangential component to zero.
	VelocityInlet
	// ZeroGradientOutflow copies the normal component from the adjacent
	// interior line and sets the tangential component to zero.
	ZeroGradientOutflow
)

func (k BoundaryKind) String() string {
	switch k {
	case NoSlipWall:
		return "wall"
	case VelocityInlet:
		return "inlet"
	case ZeroGradientOutflow:
		return "outflow"
	}
	return fmt.Sprintf("BoundaryKind(%d)", int(k))
}

// Boundaries is the boundary policy of a run. Bottom is row 0, Top is row
// NumY-1, Left is column 0 and Right is column NumX-1.
//
// Rows are written before columns, so the corner points take the value of
// the left and right edges.
type Boundaries struct {
	Bottom, Top   BoundaryKind
	Left, Right   BoundaryKind
	InletVelocity float64
}

// ChannelBoundaries returns the channel policy: walls at top and bottom, a
// fixed inlet on the left and a zero-gradient outflow on the right.
func ChannelBoundaries(inlet float64) Boundaries {
	return Boundaries{
		Bottom:        NoSlipWall,
		Top:           NoSlipWall,
		Left:          VelocityInlet,
		Right:         ZeroGradientOutflow,
		InletVelocity: inlet,
	}
}

// Apply overwrites the four edges of u and v. Applying it twice gives the
// same field as applying it once.
func (b Boundaries) Apply(f *FieldState) {
	n := f.NumX
	last := f.NumY - 1

	// rows: v is normal, u is tangential
	b.applyRow(f, 0, 1, b.Bottom)
	b.applyRow(f, last, last-1, b.Top)

	// columns: u is normal, v is tangential
	for i := 0; i < f.NumY; i++ {
		b.applyCell(f.U, f.V, i*n, i*n+1, b.Left)
		b.applyCell(f.U, f.V, i*n+n-1, i*n+n-2, b.Right)
	}
}

func (b Boundaries) applyRow(f *FieldState, row, inner int, kind BoundaryKind) {
	n := f.NumX
	for j := 0; j < n; j++ {
		b.applyCell(f.V, f.U, row*n+j, inner*n+j, kind)
	}
}

// applyCell writes one edge point. normal and tangential are the velocity
// buffers perpendicular and parallel to the edge.
func (b Boundaries) applyCell(normal, tangential []float64, cell, inner int, kind BoundaryKind) {
	switch kind {
	case NoSlipWall:
		normal[cell] = 0
	case VelocityInlet:
		normal[cell] = b.InletVelocity
	case ZeroGradientOutflow:
		normal[cell] = normal[inner]
	default:
		panic(fmt.Sprintf("unknown boundary kind: %d", int(kind)))
	}
	tangential[cell] = 0
}
