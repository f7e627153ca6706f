package thermo

import (
	"math"
)

// TransportParameters describes a power-law gas with fixed Lewis numbers.
type TransportParameters struct {
	Model            string  `json:"model"`
	Viscosity        float64 `json:"viscosity"`    // Pa s at TRef
	Conductivity     float64 `json:"conductivity"` // W/m/K at TRef
	Exponent         float64 `json:"exponent"`
	ThermalDiffusion float64 `json:"thermal-diffusion"`
}

func DefaultTransportParameters() TransportParameters {
	return TransportParameters{
		Model:        MixtureAveraged.String(),
		Viscosity:    1.8e-5,
		Conductivity: 0.026,
		Exponent:     0.7,
	}
}

// ConstantLewis gives D_k = lambda/(rho cp Le_k). With the multicomponent
// closure the matrix is built so that sum_k Mw_k D_km = 0 for every m, which
// makes the fluxes sum to zero without a correction. Thermal diffusion
// coefficients are eps*mu*(Y_k/sum(Y) - X_k), which also sum to zero.
type ConstantLewis struct {
	phase   *IdealGasMixture
	params  TransportParameters
	closure Closure
	lewis   []float64
}

func NewConstantLewis(phase *IdealGasMixture, params TransportParameters) (tr *ConstantLewis) {
	tr = &ConstantLewis{
		phase:  phase,
		params: params,
		lewis:  make([]float64, phase.NSpecies()),
	}
	if params.Model == Multicomponent.String() {
		tr.closure = Multicomponent
	}
	for k := range tr.lewis {
		tr.lewis[k] = phase.Species(k).Lewis
		if tr.lewis[k] <= 0 {
			tr.lewis[k] = 1
		}
	}
	return
}

func (tr *ConstantLewis) Closure() Closure { return tr.closure }

func (tr *ConstantLewis) SetClosure(c Closure) { tr.closure = c }

func (tr *ConstantLewis) scale(T float64) float64 {
	return math.Pow(T/TRef, tr.params.Exponent)
}

func (tr *ConstantLewis) Viscosity(s PointState) float64 {
	return tr.params.Viscosity * tr.scale(s.T)
}

func (tr *ConstantLewis) ThermalConductivity(s PointState) float64 {
	return tr.params.Conductivity * tr.scale(s.T)
}

func (tr *ConstantLewis) MixDiffCoeffs(s PointState, d []float64) {
	var (
		alpha = tr.ThermalConductivity(s) / (tr.phase.Density(s) * tr.phase.CpMass(s))
	)
	for k := range d {
		d[k] = alpha / tr.lewis[k]
	}
}

func (tr *ConstantLewis) MultiDiffCoeffs(s PointState, d []float64) {
	var (
		nsp   = tr.phase.NSpecies()
		wt    = tr.phase.MolecularWeights()
		wtm   = tr.phase.MeanMolecularWeight(s)
		dmix  = make([]float64, nsp)
		sumWt float64
	)
	tr.MixDiffCoeffs(s, dmix)
	for _, w := range wt {
		sumWt += w
	}
	for m := 0; m < nsp; m++ {
		// column correction c_m = sum_i Mw_i B_im / sum(Mw), B_mm = -D_m wtm/Mw_m
		c := -wtm * dmix[m] / sumWt
		for k := 0; k < nsp; k++ {
			var b float64
			if k == m {
				b = -dmix[m] * wtm / wt[m]
			}
			d[k*nsp+m] = b - c
		}
	}
}

func (tr *ConstantLewis) ThermalDiffCoeffs(s PointState, dt []float64) {
	var (
		eps  = tr.params.ThermalDiffusion * tr.Viscosity(s)
		sumY float64
	)
	for _, y := range s.Y {
		sumY += y
	}
	// dt holds the mole fractions until it is overwritten
	tr.phase.MoleFractions(s, dt)
	for k, y := range s.Y {
		dt[k] = eps * (y/sumY - dt[k])
	}
}
