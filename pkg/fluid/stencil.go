package fluid

// Updater advances interior velocities with first-order upwind advection,
// second-order central diffusion scaled down to an artificial diffusion
// coefficient, and a central pressure gradient.
//
// Every interior point reads only from un and vn, the snapshot of the
// previous step taken at the start of Apply, so the update never sees a
// value written earlier in the same step.
type Updater struct {
	rho, dt   float64
	dx, dy    float64
	diffusion float64
	workers   int
	un, vn    []float64
}

// NewUpdater builds an updater for cfg over g. The snapshot buffers are
// allocated once and reused every step.
func NewUpdater(cfg Config, g Grid) *Updater {
	workers := cfg.Workers
	if workers < 0 {
		workers = 1
	}
	return &Updater{
		rho:       cfg.Rho,
		dt:        cfg.DT,
		dx:        g.dx,
		dy:        g.dy,
		diffusion: cfg.DiffusionFactor * cfg.Nu,
		workers:   workers,
		un:        make([]float64, g.NumCells()),
		vn:        make([]float64, g.NumCells()),
	}
}

// Apply writes new u and v values at rows 1..NumY-2, columns 1..NumX-2.
// Edge rows and columns are left as they are.
func (up *Updater) Apply(f *FieldState) {
	copy(up.un, f.U)
	copy(up.vn, f.V)

	n := f.NumX
	un, vn, p := up.un, up.vn, f.P
	dt, dx, dy, rho := up.dt, up.dx, up.dy, up.rho
	diffusion := up.diffusion

	parallelRange(1, f.NumY-1, up.workers, func(i int) {
		for j := 1; j < n-1; j++ {
			c := i*n + j
			l, r := c-1, c+1
			d, t := c-n, c+n

			f.U[c] = un[c] -
				un[c]*dt/dx*(un[c]-un[l]) -
				vn[c]*dt/dy*(un[c]-un[d]) -
				dt/(2*rho*dx)*(p[r]-p[l]) +
				diffusion*(dt/(dx*dx)*(un[r]-2*un[c]+un[l])+
					dt/(dy*dy)*(un[t]-2*un[c]+un[d]))

			f.V[c] = vn[c] -
				un[c]*dt/dx*(vn[c]-vn[l]) -
				vn[c]*dt/dy*(vn[c]-vn[d]) -
				dt/(2*rho*dy)*(p[t]-p[d]) +
				diffusion*(dt/(dx*dx)*(vn[r]-2*vn[c]+vn[l])+
					dt/(dy*dy)*(vn[t]-2*vn[c]+vn[d]))
		}
	})
}
