package Flame1D

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/utils"
)

// updateProperties refreshes the caches needed to assemble rows jmin..jmax.
// Thermo properties cover points j0..j1, transport and fluxes the faces
// j0..j1-1. Transport is only refreshed on full evaluations unless forced.
func (f *Flow) updateProperties(full bool, x []float64, jmin, jmax int) {
	var (
		j0 = max(jmin, 1) - 1
		j1 = min(jmax+1, f.points-1)
	)
	f.updateThermo(x, j0, j1)
	if full || f.forceTransport {
		f.updateTransport(x, j0, j1)
	}
	if full {
		f.kExcessLeft = floats.MaxIdx(f.Ys(x, jmin))
		f.kExcessRight = floats.MaxIdx(f.Ys(x, jmax))
	}
	f.updateDiffFluxes(x, j0, j1)
}

// forRange runs fn over [jBeg, jEnd) split across the configured goroutines.
// The collaborators are stateless, so each partition only needs its own scratch.
func (f *Flow) forRange(jBeg, jEnd int, fn func(jBeg, jEnd int, ybar []float64)) {
	var (
		n = jEnd - jBeg
	)
	if n <= 0 {
		return
	}
	np := f.parallelDegree
	if np > n {
		np = n
	}
	utils.NewPartitionMap(np, n).Run(jBeg, func(_, kMin, kMax int) {
		fn(kMin, kMax, make([]float64, f.nsp))
	})
}

func (f *Flow) updateThermo(x []float64, j0, j1 int) {
	f.forRange(j0, j1+1, func(jBeg, jEnd int, _ []float64) {
		for j := jBeg; j < jEnd; j++ {
			s := f.state(x, j)
			f.rho[j] = f.phase.Density(s)
			f.wtm[j] = f.phase.MeanMolecularWeight(s)
			f.cp[j] = f.phase.CpMass(s)
		}
	})
}

func (f *Flow) updateTransport(x []float64, j0, j1 int) {
	var (
		nsp = f.nsp
	)
	f.forRange(j0, j1, func(jBeg, jEnd int, ybar []float64) {
		for j := jBeg; j < jEnd; j++ {
			s := f.midState(x, j, ybar)
			if f.viscous {
				f.visc[j] = f.trans.Viscosity(s)
			} else {
				f.visc[j] = 0
			}
			f.tcon[j] = f.trans.ThermalConductivity(s)
			if f.closure == thermo.Multicomponent {
				var (
					wtm = f.phase.MeanMolecularWeight(s)
					rho = f.phase.Density(s)
				)
				f.trans.MultiDiffCoeffs(s, f.multidiff[j*nsp*nsp:(j+1)*nsp*nsp])
				// diff holds the factor outside the sum over m
				for k := 0; k < nsp; k++ {
					f.diff[k+j*nsp] = f.wt[k] * rho / (wtm * wtm)
				}
				if f.soret {
					f.trans.ThermalDiffCoeffs(s, f.dthermal[j*nsp:(j+1)*nsp])
				}
			} else {
				f.trans.MixDiffCoeffs(s, f.diff[j*nsp:(j+1)*nsp])
			}
		}
	})
}

// getWdot caches the net production rates at point j.
func (f *Flow) getWdot(x []float64, j int) []float64 {
	w := f.wdot[j*f.nsp : (j+1)*f.nsp]
	f.kin.NetProductionRates(f.state(x, j), w)
	return w
}
