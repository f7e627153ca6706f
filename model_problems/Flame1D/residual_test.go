package Flame1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

func evalFull(t *testing.T, f *Flow, x []float64) (rsd []float64, diag []int) {
	rsd = make([]float64, len(x))
	diag = make([]int, len(x))
	require.NoError(t, f.EvalFull(x, rsd, diag, 0))
	return
}

func TestDiffusiveFluxSum(t *testing.T) {
	z := floats.Span(make([]float64, 8), 0, 0.02)
	for _, closure := range []thermo.Closure{thermo.MixtureAveraged, thermo.Multicomponent} {
		g := newGas(t, productsMechanism)
		g.Transport.SetClosure(closure)
		f, x := newFlow(t, g, types.AxisymmetricStagnation, z)
		fillProducts(f, x)
		if closure == thermo.Multicomponent {
			f.EnableSoret(true)
		}
		evalFull(t, f, x)
		for j := 0; j < f.NPoints()-1; j++ {
			var sum, scale float64
			for k := 0; k < f.NSpecies(); k++ {
				sum += f.Flux(k, j)
				scale = math.Max(scale, math.Abs(f.Flux(k, j)))
			}
			assert.Greater(t, scale, 0., "%s face %d", closure, j)
			assert.InDelta(t, 0, sum/scale, 1.e-12, "%s face %d", closure, j)
		}
	}
}

func TestUpwind(t *testing.T) {
	var (
		g    = newGas(t, binaryMechanism)
		z    = []float64{0, 0.1, 0.3, 0.6}
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
	)
	for j, T := range []float64{300, 400, 700, 1000} {
		x[f.index(types.C_Temperature, j)] = T
	}
	x[f.index(types.C_Velocity, 1)] = 1
	x[f.index(types.C_Velocity, 2)] = -1
	assert.InDelta(t, (700.-400.)/0.2, f.dTdz(x, 1), 1.e-9)
	assert.InDelta(t, (700.-400.)/0.2, f.dTdz(x, 2), 1.e-9)
	x[f.index(types.C_Velocity, 2)] = 0
	assert.InDelta(t, (700.-400.)/0.2, f.dTdz(x, 2), 1.e-9)
	x[f.index(types.C_Velocity, 2)] = 2
	assert.InDelta(t, (1000.-700.)/0.3, f.dTdz(x, 2), 1.e-9)
}

func TestAxiContinuity(t *testing.T) {
	var (
		g    = newGas(t, binaryMechanism)
		z    = []float64{0, 0.004, 0.01, 0.012, 0.02}
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
		c    = 3.
	)
	f.InitialSolution(x, thermo.PointState{T: 400, Y: []float64{0.9, 0.1}})
	for j := range z {
		x[f.index(types.C_SpreadRate, j)] = c
		x[f.index(types.C_Velocity, j)] = 0.2 - 2*c*z[j]
	}
	rsd, diag := evalFull(t, f, x)
	for j := 1; j < len(z)-1; j++ {
		n := f.index(types.C_Velocity, j)
		assert.InDelta(t, 0, rsd[n], 1.e-12)
		assert.Equal(t, 0, diag[n])
	}
	assert.InDelta(t, 0, rsd[f.index(types.C_Velocity, 0)], 1.e-12)
}

func TestRadiativeLoss(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = floats.Span(make([]float64, 6), 0, 0.05)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
	)
	fillProducts(f, x)
	f.EnableRadiation(true)
	require.NoError(t, f.SetBoundaryEmissivities(0, 0))
	f.SolveEnergyEqn(types.AllPoints)
	rsd, _ := evalFull(t, f, x)
	q := f.RadiativeHeatLoss()
	assert.Equal(t, 0., q[0])
	assert.Equal(t, 0., q[5])
	for j := 1; j < 5; j++ {
		var (
			T  = f.T(x, j)
			kP = f.PlanckMean(x, j)
		)
		assert.Greater(t, kP, 0.)
		assert.InEpsilon(t, 4*kP*f.Radiation.StefanBoltzmann*math.Pow(T, 4), q[j], 1.e-12)
	}
	{ // The loss cools the gas
		f.EnableRadiation(false)
		rsd0, _ := evalFull(t, f, x)
		n := f.index(types.C_Temperature, 2)
		assert.InEpsilon(t, q[2]/(f.Density(2)*f.cp[2]), rsd0[n]-rsd[n], 1.e-9)
	}
	{ // Hot walls reduce the loss
		f.EnableRadiation(true)
		require.NoError(t, f.SetBoundaryEmissivities(1, 1))
		q2 := append([]float64{}, q...)
		evalFull(t, f, x)
		assert.Less(t, f.RadiativeHeatLoss()[2], q2[2])
	}
	{ // Non radiating species contribute nothing
		g2 := newGas(t, binaryMechanism)
		f2, x2 := newFlow(t, g2, types.AxisymmetricStagnation, z)
		f2.InitialSolution(x2, thermo.PointState{T: 1500, Y: []float64{0.5, 0.5}})
		f2.EnableRadiation(true)
		evalFull(t, f2, x2)
		assert.Equal(t, 0., f2.PlanckMean(x2, 2))
		assert.Equal(t, 0., f2.RadiativeHeatLoss()[2])
	}
}

func TestInertContinuity(t *testing.T) {
	var (
		g    = newGas(t, binaryMechanism)
		z    = floats.Span(make([]float64, 5), 0, 0.02)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
		ps   = thermo.PointState{T: 300, P: thermo.OneAtm, Y: []float64{0.8, 0.2}}
		rho  = g.Phase.Density(ps)
		mdot = func(z float64) float64 { return 0.4*z + 50*z*z }
	)
	require.NoError(t, f.SetFixedTempProfile([]float64{0}, []float64{300}))
	f.InitialSolution(x, ps)
	for j := range z {
		x[f.index(types.C_Velocity, j)] = mdot(z[j]) / rho
	}
	rsd, diag := evalFull(t, f, x)
	for j := 0; j < len(z)-1; j++ {
		// continuity is carried from j+1 to j
		expected := -(mdot(z[j+1]) - mdot(z[j])) / (z[j+1] - z[j])
		assert.InEpsilon(t, expected, rsd[f.index(types.C_Velocity, j)], 1.e-10)
	}
	assert.InEpsilon(t, mdot(z[4]), rsd[f.index(types.C_Velocity, 4)], 1.e-10)
	for j := range z {
		assert.InDelta(t, 0, rsd[f.index(types.C_Temperature, j)], 1.e-12)
		assert.InDelta(t, 0, rsd[f.index(types.C_SpreadRate, j)], 1.e-12)
		assert.Equal(t, 0., rsd[f.index(types.C_EField, j)])
		assert.Equal(t, 0, diag[f.index(types.C_Temperature, j)])
	}
	for j := 1; j < len(z)-1; j++ {
		assert.InDelta(t, 0, rsd[f.index(types.C_Lambda, j)], 1.e-12)
		for k := 0; k < 2; k++ {
			assert.InDelta(t, 0, rsd[f.index(types.C_Species+k, j)], 1.e-12)
			assert.Equal(t, 1, diag[f.index(types.C_Species+k, j)])
		}
	}
}

func TestEvalWindow(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = floats.Span(make([]float64, 7), 0, 0.03)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
		nv   = f.NComponents()
	)
	fillProducts(f, x)
	f.SolveEnergyEqn(types.AllPoints)
	full, fullDiag := evalFull(t, f, x)
	sentinel := func() (rsd []float64, diag []int) {
		rsd = make([]float64, len(x))
		diag = make([]int, len(x))
		for i := range rsd {
			rsd[i], diag[i] = 7, 7
		}
		return
	}
	{ // Rows of the neighbors of jg match the full evaluation, others are untouched
		rsd, diag := sentinel()
		require.NoError(t, f.EvalWindow(3, x, rsd, diag, 100))
		for j := 0; j < f.NPoints(); j++ {
			for n := 0; n < nv; n++ {
				i := f.index(n, j)
				if j >= 2 && j <= 4 {
					assert.Equal(t, full[i], rsd[i], "point %d component %d", j, n)
					assert.Equal(t, fullDiag[i], diag[i])
				} else {
					assert.Equal(t, 7., rsd[i])
				}
			}
		}
	}
	{
		rsd, _ := sentinel()
		require.NoError(t, f.EvalWindow(0, x, rsd, make([]int, len(x)), 0))
		assert.Equal(t, full[f.index(types.C_Temperature, 1)], rsd[f.index(types.C_Temperature, 1)])
		assert.Equal(t, 7., rsd[f.index(types.C_Temperature, 2)])
	}
	{ // A domain placed further along the global buffer
		var (
			loc = 2 * nv
			xg  = append(make([]float64, loc), x...)
		)
		f.SetLocation(10, loc)
		assert.Equal(t, 16, f.LastPoint())
		rsd := make([]float64, len(xg))
		for i := range rsd {
			rsd[i] = 7
		}
		diag := make([]int, len(xg))
		require.NoError(t, f.EvalWindow(8, xg, rsd, diag, 0))
		require.NoError(t, f.EvalWindow(18, xg, rsd, diag, 0))
		for i := range rsd {
			assert.Equal(t, 7., rsd[i])
		}
		require.NoError(t, f.EvalWindow(9, xg, rsd, diag, 0))
		assert.Equal(t, 7., rsd[0])
		assert.Equal(t, full[f.index(types.C_Temperature, 0)], rsd[loc+f.index(types.C_Temperature, 0)])
		assert.Equal(t, 7., rsd[loc+f.index(types.C_Temperature, 1)])
		require.NoError(t, f.EvalWindow(17, xg, rsd, diag, 0))
		assert.Equal(t, full[f.index(types.C_Temperature, 6)], rsd[loc+f.index(types.C_Temperature, 6)])
	}
}

func TestTransientTerms(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = floats.Span(make([]float64, 5), 0, 0.02)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
	)
	fillProducts(f, x)
	f.SolveEnergyEqn(types.AllPoints)
	f.StorePrevious(x)
	steady, _ := evalFull(t, f, x)
	n := f.index(types.C_Temperature, 2)
	x[n] += 10
	rsd := make([]float64, len(x))
	require.NoError(t, f.EvalFull(x, rsd, make([]int, len(x)), 0))
	rsdT := make([]float64, len(x))
	require.NoError(t, f.EvalFull(x, rsdT, make([]int, len(x)), 50))
	assert.InDelta(t, rsd[n]-50*10, rsdT[n], 1.e-9)
	assert.NotEqual(t, steady[n], rsd[n])
}

func TestParallelEval(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = floats.Span(make([]float64, 41), 0, 0.05)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
	)
	g.Transport.SetClosure(thermo.Multicomponent)
	f.SetTransport(g.Transport)
	f.EnableSoret(true)
	fillProducts(f, x)
	f.SolveEnergyEqn(types.AllPoints)
	serial, _ := evalFull(t, f, x)
	f.SetParallelDegree(4)
	parallel, _ := evalFull(t, f, x)
	assert.Equal(t, serial, parallel)
}
