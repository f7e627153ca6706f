package Flame1D

import (
	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/utils"
)

// RadiationParameters define the optically thin gray gas loss. The Planck
// mean absorption coefficients of CO2 and H2O are fifth order polynomials in
// 1000/T fitted to RADCAL (TNF workshop), in 1/m at ReferencePressure.
type RadiationParameters struct {
	CO2, H2O          [6]float64
	CO2Name, H2OName  string
	ReferencePressure float64
	StefanBoltzmann   float64
}

func DefaultRadiationParameters() RadiationParameters {
	return RadiationParameters{
		H2O:               [6]float64{-0.23093, -1.12390, 9.41530, -2.99880, 0.51382, -1.86840e-5},
		CO2:               [6]float64{18.741, -121.310, 273.500, -194.050, 56.310, -5.8169},
		CO2Name:           "CO2",
		H2OName:           "H2O",
		ReferencePressure: thermo.OneAtm,
		StefanBoltzmann:   5.670374419e-8,
	}
}

// PlanckMean returns the mean absorption coefficient at point j. Species
// missing from the phase contribute nothing.
func (f *Flow) PlanckMean(x []float64, j int) (kP float64) {
	var (
		rp   = f.Radiation
		invT = 1000 / f.T(x, j)
	)
	if k := f.phase.SpeciesIndex(rp.H2OName); k >= 0 {
		kP += f.press * f.X(x, k, j) * utils.PolyEval(rp.H2O[:], invT) / rp.ReferencePressure
	}
	if k := f.phase.SpeciesIndex(rp.CO2Name); k >= 0 {
		kP += f.press * f.X(x, k, j) * utils.PolyEval(rp.CO2[:], invT) / rp.ReferencePressure
	}
	return
}

// updateRadiation fills the radiative loss at the interior points of
// jmin..jmax, exchanging with black boundaries of the given emissivities at
// the end point temperatures.
func (f *Flow) updateRadiation(x []float64, jmin, jmax int) {
	var (
		sigma  = f.Radiation.StefanBoltzmann
		n      = f.points
		bLeft  = f.epsLeft * sigma * utils.POW(f.T(x, 0), 4)
		bRight = f.epsRight * sigma * utils.POW(f.T(x, n-1), 4)
	)
	for j := max(jmin, 1); j <= min(jmax, n-2); j++ {
		kP := f.PlanckMean(x, j)
		f.qdotRadiation[j] = 2 * kP * (2*sigma*utils.POW(f.T(x, j), 4) - bLeft - bRight)
	}
}
