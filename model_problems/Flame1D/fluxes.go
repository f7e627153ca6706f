package Flame1D

import (
	"github.com/notargets/flame1d/thermo"
)

func (f *Flow) Flux(k, j int) float64 { return f.flux[k+f.nsp*j] }

// updateDiffFluxes computes the diffusive mass flux of every species across
// faces j0..j1-1. Both closures give fluxes summing to zero at each face.
func (f *Flow) updateDiffFluxes(x []float64, j0, j1 int) {
	var (
		nsp = f.nsp
		z   = f.grid.Z
	)
	f.forRange(j0, j1, func(jBeg, jEnd int, _ []float64) {
		for j := jBeg; j < jEnd; j++ {
			dz := z[j+1] - z[j]
			if f.closure == thermo.Multicomponent {
				for k := 0; k < nsp; k++ {
					var (
						d   = f.multidiff[j*nsp*nsp+k*nsp : j*nsp*nsp+(k+1)*nsp]
						sum float64
					)
					for m := 0; m < nsp; m++ {
						sum += f.wt[m] * d[m] * (f.X(x, m, j+1) - f.X(x, m, j))
					}
					f.flux[k+nsp*j] = sum * f.diff[k+nsp*j] / dz
				}
			} else {
				var (
					wtm       = f.wtm[j]
					rho       = f.rho[j]
					sum, sumY float64
					yj        = f.Ys(x, j)
				)
				for k := 0; k < nsp; k++ {
					fl := f.wt[k] * rho * f.diff[k+nsp*j] / wtm * (f.X(x, k, j) - f.X(x, k, j+1)) / dz
					f.flux[k+nsp*j] = fl
					sum -= fl
					sumY += yj[k]
				}
				// correction flux so that sum_k flux_k = 0
				if sumY != 0 {
					for k := 0; k < nsp; k++ {
						f.flux[k+nsp*j] += sum * yj[k] / sumY
					}
				}
			}
			if f.soret {
				gradlogT := 2 * (f.T(x, j+1) - f.T(x, j)) / ((f.T(x, j+1) + f.T(x, j)) * dz)
				for k := 0; k < nsp; k++ {
					f.flux[k+nsp*j] -= f.dthermal[k+nsp*j] * gradlogT
				}
			}
		}
	})
}
