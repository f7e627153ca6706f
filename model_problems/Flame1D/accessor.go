package Flame1D

import (
	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

func (f *Flow) index(n, j int) int { return f.nv*j + n }

func (f *Flow) U(x []float64, j int) float64      { return x[f.nv*j+types.C_Velocity] }
func (f *Flow) V(x []float64, j int) float64      { return x[f.nv*j+types.C_SpreadRate] }
func (f *Flow) T(x []float64, j int) float64      { return x[f.nv*j+types.C_Temperature] }
func (f *Flow) Lambda(x []float64, j int) float64 { return x[f.nv*j+types.C_Lambda] }
func (f *Flow) Y(x []float64, k, j int) float64   { return x[f.nv*j+types.C_Species+k] }

// Ys is the mass fraction block of point j, aliasing x.
func (f *Flow) Ys(x []float64, j int) []float64 {
	off := f.nv*j + types.C_Species
	return x[off : off+f.nsp]
}

// X is the mole fraction, using the cached mean molecular weight.
func (f *Flow) X(x []float64, k, j int) float64 {
	return f.wtm[j] * f.Y(x, k, j) / f.wt[k]
}

func (f *Flow) RhoU(x []float64, j int) float64 { return f.rho[j] * f.U(x, j) }

func (f *Flow) Density(j int) float64 { return f.rho[j] }

func (f *Flow) state(x []float64, j int) thermo.PointState {
	return thermo.PointState{T: f.T(x, j), P: f.press, Y: f.Ys(x, j)}
}

// midState averages T and Y of points j and j+1 into ybar.
func (f *Flow) midState(x []float64, j int, ybar []float64) thermo.PointState {
	var (
		yj  = f.Ys(x, j)
		yjp = f.Ys(x, j+1)
	)
	for k := range ybar {
		ybar[k] = 0.5 * (yj[k] + yjp[k])
	}
	return thermo.PointState{T: 0.5 * (f.T(x, j) + f.T(x, j+1)), P: f.press, Y: ybar}
}

// prev is component n at point j on the previous time level.
func (f *Flow) prev(x []float64, n, j int) float64 {
	if f.xPrev == nil {
		return x[f.index(n, j)]
	}
	return f.xPrev[f.index(n, j)]
}

// upwind differences component n at j using the sign of the local velocity:
// against j+1 when u > 0, against j-1 otherwise.
func (f *Flow) upwind(x []float64, n, j int) float64 {
	var (
		dz = f.grid.Dz
	)
	if f.U(x, j) > 0 {
		return (x[f.index(n, j+1)] - x[f.index(n, j)]) / dz[j]
	}
	return (x[f.index(n, j)] - x[f.index(n, j-1)]) / dz[j-1]
}

func (f *Flow) dVdz(x []float64, j int) float64 { return f.upwind(x, types.C_SpreadRate, j) }
func (f *Flow) dTdz(x []float64, j int) float64 { return f.upwind(x, types.C_Temperature, j) }

func (f *Flow) dYdz(x []float64, k, j int) float64 {
	return f.upwind(x, types.C_Species+k, j)
}

// shear is d(mu dV/dz)/dz by centered differences of the face viscosities.
func (f *Flow) shear(x []float64, j int) float64 {
	var (
		z  = f.grid.Z
		c1 = f.visc[j-1] * (f.V(x, j) - f.V(x, j-1))
		c2 = f.visc[j] * (f.V(x, j+1) - f.V(x, j))
	)
	return 2 * (c2/(z[j+1]-z[j]) - c1/(z[j]-z[j-1])) / f.grid.CenteredWidth(j)
}

// divHeatFlux is the divergence of the conductive heat flux -lambda dT/dz.
func (f *Flow) divHeatFlux(x []float64, j int) float64 {
	var (
		z  = f.grid.Z
		c1 = f.tcon[j-1] * (f.T(x, j) - f.T(x, j-1))
		c2 = f.tcon[j] * (f.T(x, j+1) - f.T(x, j))
	)
	return -2 * (c2/(z[j+1]-z[j]) - c1/(z[j]-z[j-1])) / f.grid.CenteredWidth(j)
}
