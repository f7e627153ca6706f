package Flame1D

import (
	"fmt"

	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

// EvalFull evaluates the residual at every point of the domain. x, rsd and
// diag are the global buffers; diag marks differential rows with 1 and
// algebraic rows with 0.
func (f *Flow) EvalFull(xg, rg []float64, diagg []int, rdt float64) (err error) {
	if err = f.checkEval(); err != nil {
		return
	}
	var (
		x, rsd, diag = f.local(xg), f.local(rg), diagg[f.loc : f.loc+f.Size()]
		jmin, jmax   = 0, f.points - 1
	)
	f.updateProperties(true, x, jmin, jmax)
	if f.porous != nil {
		f.updateSolid(x, jmin, jmax, true, rdt)
	}
	f.evalResidual(x, rsd, diag, rdt, jmin, jmax)
	return
}

// EvalWindow evaluates only the rows coupled to global point jg, as needed to
// build one column block of a numerical Jacobian. Nothing is written when jg
// lies outside [FirstPoint()-1, LastPoint()+1]. Transport properties are
// reused from the last full evaluation unless SetTransportUpdate(true) was
// called, and the steady residual is returned whatever rdt is.
func (f *Flow) EvalWindow(jg int, xg, rg []float64, diagg []int, rdt float64) (err error) {
	if jg+1 < f.firstPoint || jg > f.LastPoint()+1 {
		return
	}
	if err = f.checkEval(); err != nil {
		return
	}
	var (
		x, rsd, diag = f.local(xg), f.local(rg), diagg[f.loc : f.loc+f.Size()]
		jpt          = jg - f.firstPoint
		jmin         = max(jpt-1, 0)
		jmax         = min(jpt+1, f.points-1)
	)
	if jg == 0 {
		jmin, jmax = 0, min(1, f.points-1)
	}
	f.updateProperties(false, x, jmin, jmax)
	if f.porous != nil {
		f.updateSolid(x, jmin, jmax, false, 0)
	}
	f.evalResidual(x, rsd, diag, 0, jmin, jmax)
	return
}

func (f *Flow) checkEval() error {
	if f.kin == nil || f.trans == nil {
		return fmt.Errorf("flow domain: %w", types.ErrMissingCollaborator)
	}
	return f.checkSoret()
}

func (f *Flow) evalResidual(x, rsd []float64, diag []int, rdt float64, jmin, jmax int) {
	if f.radiation {
		f.updateRadiation(x, jmin, jmax)
	}
	for j := jmin; j <= jmax; j++ {
		switch j {
		case 0:
			f.evalLeftBoundary(x, rsd, diag)
		case f.points - 1:
			f.variant.rightBoundary(f, x, rsd, diag)
		default:
			f.variant.continuity(f, x, rsd, diag, j)
			f.evalMomentum(x, rsd, diag, rdt, j)
			f.evalSpecies(x, rsd, diag, rdt, j)
			f.evalEnergy(x, rsd, diag, rdt, j)
			rsd[f.index(types.C_Lambda, j)] = f.Lambda(x, j) - f.Lambda(x, j-1)
			diag[f.index(types.C_Lambda, j)] = 0
		}
		// the potential slot is held at zero
		rsd[f.index(types.C_EField, j)] = x[f.index(types.C_EField, j)]
		diag[f.index(types.C_EField, j)] = 0
	}
}

// evalLeftBoundary writes the default left boundary rows. A connected inlet
// replaces or offsets these.
func (f *Flow) evalLeftBoundary(x, rsd []float64, diag []int) {
	var (
		sum float64
	)
	// continuity propagates right to left from point 1
	rsd[f.index(types.C_Velocity, 0)] = -(f.RhoU(x, 1)-f.RhoU(x, 0))/f.grid.Dz[0] -
		(f.rho[1]*f.V(x, 1) + f.rho[0]*f.V(x, 0))
	rsd[f.index(types.C_SpreadRate, 0)] = f.V(x, 0)
	if f.energyEnabled[0] {
		rsd[f.index(types.C_Temperature, 0)] = f.T(x, 0)
	} else {
		rsd[f.index(types.C_Temperature, 0)] = f.T(x, 0) - f.fixedTemp[0]
	}
	rsd[f.index(types.C_Lambda, 0)] = -f.RhoU(x, 0)
	for k := 0; k < f.nsp; k++ {
		sum += f.Y(x, k, 0)
		rsd[f.index(types.C_Species+k, 0)] = -(f.flux[k] + f.RhoU(x, 0)*f.Y(x, k, 0))
	}
	rsd[f.index(types.C_Species+f.kExcessLeft, 0)] = 1 - sum
	for n := 0; n < f.nv; n++ {
		diag[f.index(n, 0)] = 0
	}
}

func (f *Flow) evalMomentum(x, rsd []float64, diag []int, rdt float64, j int) {
	var (
		v = f.V(x, j)
	)
	rsd[f.index(types.C_SpreadRate, j)] = (f.shear(x, j) - f.Lambda(x, j) - f.RhoU(x, j)*f.dVdz(x, j) -
		f.rho[j]*v*v) / f.rho[j]
	rsd[f.index(types.C_SpreadRate, j)] -= rdt * (v - f.prev(x, types.C_SpreadRate, j))
	diag[f.index(types.C_SpreadRate, j)] = 1
}

func (f *Flow) evalSpecies(x, rsd []float64, diag []int, rdt float64, j int) {
	var (
		nsp   = f.nsp
		dz    = f.grid.CenteredWidth(j)
		wdot  = f.getWdot(x, j)
		pore  = f.porosity(j)
		poreM = f.porosity(j - 1)
		rhoU  = f.RhoU(x, j)
	)
	for k := 0; k < nsp; k++ {
		var (
			n      = types.C_Species + k
			convec = rhoU * f.dYdz(x, k, j) * pore
			diffus = 2 * (f.flux[k+nsp*j]*pore - f.flux[k+nsp*(j-1)]*poreM) / dz
		)
		rsd[f.index(n, j)] = (f.wt[k]*wdot[k]*pore-convec-diffus)/(f.rho[j]*pore) -
			rdt*(f.Y(x, k, j)-f.prev(x, n, j))
		diag[f.index(n, j)] = 1
	}
}

func (f *Flow) evalEnergy(x, rsd []float64, diag []int, rdt float64, j int) {
	var (
		n         = f.index(types.C_Temperature, j)
		nsp       = f.nsp
		wdot      = f.wdot[j*nsp : (j+1)*nsp]
		t         = f.T(x, j)
		sum, sum2 float64
	)
	if !f.energyEnabled[j] {
		rsd[n] = t - f.fixedTemp[j]
		diag[n] = 0
		return
	}
	f.phase.EnthalpyRTRef(t, f.hRT)
	f.phase.CpRRef(t, f.cpR)
	for k := 0; k < nsp; k++ {
		flxk := 0.5 * (f.flux[k+nsp*(j-1)] + f.flux[k+nsp*j])
		sum += wdot[k] * f.hRT[k]
		sum2 += flxk * f.cpR[k] / f.wt[k]
	}
	sum *= thermo.GasConstant * t
	dtdzj := f.dTdz(x, j)
	sum2 *= thermo.GasConstant * dtdzj
	rsd[n] = -f.cp[j]*f.RhoU(x, j)*dtdzj - f.divHeatFlux(x, j) - sum - sum2
	if f.porous != nil {
		rsd[n] -= f.porous.Hconv[j] * (t - f.porous.Tsolid[j]) / f.porous.props.Porosity[j]
	}
	rsd[n] /= f.rho[j] * f.cp[j]
	rsd[n] -= rdt * (t - f.prev(x, types.C_Temperature, j))
	if f.radiation {
		rsd[n] -= f.qdotRadiation[j] / (f.rho[j] * f.cp[j])
	}
	diag[n] = 1
}
