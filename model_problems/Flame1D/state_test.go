package Flame1D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

// roundTrip saves f through YAML and restores it into a fresh domain of the
// same type, returning the new domain and its solution.
func roundTrip(t *testing.T, g *thermo.Gas, f *Flow, x []float64) (f2 *Flow, x2 []float64) {
	data, err := f.Export(x).Marshal()
	require.NoError(t, err)
	st, err := ParseFlowState(data)
	require.NoError(t, err)
	f2, _ = newFlow(t, g, f.Type, []float64{0, 1, 2})
	x2 = make([]float64, len(x))
	require.NoError(t, f2.Import(st, x2))
	return
}

func TestStateRoundTrip(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = []float64{0, 0.002, 0.005, 0.01, 0.016, 0.02}
		f, x = newFlow(t, g, types.AxisymmetricStagnation, z)
	)
	fillProducts(f, x)
	require.NoError(t, f.SetFixedTempProfile([]float64{0, 0.5, 1}, []float64{300, 1500, 900}))
	f.SolveEnergyEqn(types.AllPoints)
	f.FixTemperature(0)
	f.FixTemperature(5)
	f.SetSpeciesEnabled(1, false)
	f.EnableRadiation(true)
	f.SetPressure(2 * thermo.OneAtm)
	require.NoError(t, f.SetBoundaryEmissivities(0.2, 0.7))
	require.NoError(t, f.Finalize(x))
	r1, d1 := evalFull(t, f, x)

	f2, x2 := roundTrip(t, g, f, x)
	assert.Equal(t, x, x2)
	assert.Equal(t, f.Grid().Z, f2.Grid().Z)
	assert.Equal(t, 2*thermo.OneAtm, f2.Pressure())
	assert.False(t, f2.EnergyEnabled(0))
	assert.True(t, f2.EnergyEnabled(3))
	assert.False(t, f2.SpeciesEnabled(1))
	assert.True(t, f2.SpeciesEnabled(2))
	l, r := f2.BoundaryEmissivities()
	assert.Equal(t, 0.2, l)
	assert.Equal(t, 0.7, r)
	r2, d2 := evalFull(t, f2, x2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, d1, d2)
}

func TestFreeFlameRoundTrip(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		z    = []float64{0, 0.005, 0.01, 0.015, 0.02, 0.025, 0.03}
		f, x = newFlow(t, g, types.FreeFlow, z)
	)
	fillProducts(f, x)
	for j := range z {
		x[f.index(types.C_SpreadRate, j)] = 0
		x[f.index(types.C_Lambda, j)] = 0
	}
	f.SolveEnergyEqn(types.AllPoints)
	f.SetFixedPoint(0.01, 1000)
	require.NoError(t, f.Finalize(x))
	r1, _ := evalFull(t, f, x)

	st := f.Export(x)
	assert.NotContains(t, st.Solution, "spread_rate")
	assert.NotContains(t, st.Solution, "lambda")
	f2, x2 := roundTrip(t, g, f, x)
	zf, tf, ok := f2.FixedPoint()
	require.True(t, ok)
	assert.Equal(t, 0.01, zf)
	assert.Equal(t, 1000., tf)
	assert.Equal(t, x, x2)
	r2, _ := evalFull(t, f2, x2)
	assert.Equal(t, r1, r2)
}

func TestStateFlags(t *testing.T) {
	var (
		g    = newGas(t, productsMechanism)
		f, x = newFlow(t, g, types.AxisymmetricStagnation, []float64{0, 0.01, 0.02})
	)
	fillProducts(f, x)
	{ // Uniform flags are saved as scalars
		data, err := f.Export(x).Marshal()
		require.NoError(t, err)
		assert.Contains(t, string(data), "energy-enabled: false")
		assert.Contains(t, string(data), "species-enabled: true")
		st, err := ParseFlowState(data)
		require.NoError(t, err)
		assert.Equal(t, []bool{false}, st.EnergyEnabled.Values)
		require.NotNil(t, st.SpeciesEnabled.All)
		assert.True(t, *st.SpeciesEnabled.All)
	}
	{
		f.SolveEnergyEqn(1)
		st, err := ParseFlowState([]byte(mustMarshal(t, f.Export(x))))
		require.NoError(t, err)
		assert.Equal(t, []bool{false, true, false}, st.EnergyEnabled.Values)
	}
	{ // Energy flags must match the grid
		st := f.Export(x)
		st.EnergyEnabled = &PointFlags{Values: []bool{true, false}}
		assert.ErrorIs(t, f.Import(st, x), types.ErrStateMismatch)
	}
	{ // Missing species flags enable every species
		f.SetSpeciesEnabled(0, false)
		st := f.Export(x)
		st.SpeciesEnabled = nil
		require.NoError(t, f.Import(st, x))
		assert.True(t, f.SpeciesEnabled(0))
	}
	{ // Missing components leave the buffer alone
		st := f.Export(x)
		delete(st.Solution, "T")
		x2 := make([]float64, len(x))
		require.NoError(t, f.Import(st, x2))
		assert.Equal(t, 0., f.T(x2, 1))
		assert.Equal(t, f.U(x, 1), f.U(x2, 1))
	}
	{
		st := f.Export(x)
		ff, _ := newFlow(t, g, types.FreeFlow, []float64{0, 1})
		assert.ErrorIs(t, ff.Import(st, make([]float64, len(x))), types.ErrStateMismatch)
		assert.ErrorIs(t, f.Import(st, make([]float64, 4)), types.ErrStateMismatch)
		st.Type = "plasma"
		assert.ErrorIs(t, f.Import(st, x), types.ErrUnknownFlowType)
	}
}

func mustMarshal(t *testing.T, st *FlowState) string {
	data, err := st.Marshal()
	require.NoError(t, err)
	return string(data)
}

func TestImportClearsFixedSettings(t *testing.T) {
	var (
		g         = newGas(t, productsMechanism)
		z         = []float64{0, 0.01, 0.02, 0.03}
		f, x      = newFlow(t, g, types.FreeFlow, z)
		plain, xp = newFlow(t, g, types.FreeFlow, z)
	)
	fillProducts(f, x)
	fillProducts(plain, xp)
	f.SetFixedPoint(0.01, 1000)
	require.NoError(t, f.SetFixedTempProfile([]float64{0, 1}, []float64{300, 900}))
	require.NotNil(t, f.Export(x).FixedProfile)

	require.NoError(t, f.Import(plain.Export(xp), x))
	_, _, ok := f.FixedPoint()
	assert.False(t, ok)
	st := f.Export(x)
	assert.Nil(t, st.FixedProfile)
	assert.Nil(t, st.FixedPoint)
}
