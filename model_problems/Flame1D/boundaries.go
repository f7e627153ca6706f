package Flame1D

import (
	"github.com/notargets/flame1d/types"
)

// flowVariant holds the rows that differ between flow types.
type flowVariant interface {
	continuity(f *Flow, x, rsd []float64, diag []int, j int)
	rightBoundary(f *Flow, x, rsd []float64, diag []int)
}

// axiContinuity carries the mass flux from j+1 to j.
func (f *Flow) axiContinuity(x []float64, j int) float64 {
	return -(f.RhoU(x, j+1)-f.RhoU(x, j))/f.grid.Dz[j] -
		(f.rho[j+1]*f.V(x, j+1) + f.rho[j]*f.V(x, j))
}

// evalRightBoundaryCommon writes zero spread rate, a uniform eigenvalue and
// zero diffusive flux with the excess species closing the mass fractions.
func (f *Flow) evalRightBoundaryCommon(x, rsd []float64, diag []int) {
	var (
		j   = f.points - 1
		sum float64
	)
	rsd[f.index(types.C_SpreadRate, j)] = f.V(x, j)
	rsd[f.index(types.C_Lambda, j)] = f.Lambda(x, j) - f.Lambda(x, j-1)
	for k := 0; k < f.nsp; k++ {
		sum += f.Y(x, k, j)
		rsd[f.index(types.C_Species+k, j)] = f.flux[k+f.nsp*(j-1)] + f.RhoU(x, j)*f.Y(x, k, j)
	}
	rsd[f.index(types.C_Species+f.kExcessRight, j)] = 1 - sum
	for n := 0; n < f.nv; n++ {
		diag[f.index(n, j)] = 0
	}
}

type stagnationFlow struct{}

func (stagnationFlow) continuity(f *Flow, x, rsd []float64, diag []int, j int) {
	rsd[f.index(types.C_Velocity, j)] = f.axiContinuity(x, j)
	diag[f.index(types.C_Velocity, j)] = 0
}

// rightBoundary pins the mass flux and the temperature.
func (stagnationFlow) rightBoundary(f *Flow, x, rsd []float64, diag []int) {
	j := f.points - 1
	f.evalRightBoundaryCommon(x, rsd, diag)
	rsd[f.index(types.C_Velocity, j)] = f.RhoU(x, j)
	if f.energyEnabled[j] {
		rsd[f.index(types.C_Temperature, j)] = f.T(x, j)
	} else {
		rsd[f.index(types.C_Temperature, j)] = f.T(x, j) - f.fixedTemp[j]
	}
}

type freeFlow struct{}

// continuity switches direction at the fixed point. Without a fixed point
// the mass flux is carried left to right everywhere.
func (freeFlow) continuity(f *Flow, x, rsd []float64, diag []int, j int) {
	var (
		n  = f.index(types.C_Velocity, j)
		zj = f.grid.Z[j]
	)
	diag[n] = 0
	switch {
	case !f.hasFixedPoint || zj > f.zfixed:
		rsd[n] = -(f.RhoU(x, j)-f.RhoU(x, j-1))/f.grid.Dz[j-1] -
			(f.rho[j-1]*f.V(x, j-1) + f.rho[j]*f.V(x, j))
	case zj == f.zfixed:
		if f.energyEnabled[j] {
			rsd[n] = f.T(x, j) - f.tfixed
		} else {
			rsd[n] = f.RhoU(x, j) - f.rho[0]*FixedPointMassFluxFraction
		}
	default:
		rsd[n] = f.axiContinuity(x, j)
	}
}

// rightBoundary extrapolates the mass flux and temperature with zero gradient.
func (freeFlow) rightBoundary(f *Flow, x, rsd []float64, diag []int) {
	j := f.points - 1
	f.evalRightBoundaryCommon(x, rsd, diag)
	rsd[f.index(types.C_Velocity, j)] = f.RhoU(x, j) - f.RhoU(x, j-1)
	rsd[f.index(types.C_Temperature, j)] = f.T(x, j) - f.T(x, j-1)
}

// porousFlow weights the convective mass flux by the local porosity.
type porousFlow struct {
	stagnationFlow
}

func (porousFlow) continuity(f *Flow, x, rsd []float64, diag []int, j int) {
	var (
		pore = f.porous.props.Porosity
	)
	rsd[f.index(types.C_Velocity, j)] = -(f.RhoU(x, j+1)*pore[j+1]-f.RhoU(x, j)*pore[j])/f.grid.Dz[j] -
		(f.rho[j+1]*f.V(x, j+1) + f.rho[j]*f.V(x, j))
	diag[f.index(types.C_Velocity, j)] = 0
}
