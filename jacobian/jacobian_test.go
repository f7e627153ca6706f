package jacobian

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/flame1d/model_problems/Flame1D"
	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

// linearDomain has residual A x with a three point stencil.
type linearDomain struct {
	A      *mat.Dense
	nv, np int
}

func newLinearDomain(nv, np int) (ld *linearDomain) {
	var (
		n = nv * np
		r = rand.New(rand.NewSource(1))
	)
	ld = &linearDomain{A: mat.NewDense(n, n, nil), nv: nv, np: np}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if d := i/nv - j/nv; d >= -1 && d <= 1 {
				ld.A.Set(i, j, r.NormFloat64())
			}
		}
	}
	return
}

func (ld *linearDomain) Size() int        { return ld.nv * ld.np }
func (ld *linearDomain) NComponents() int { return ld.nv }
func (ld *linearDomain) NPoints() int     { return ld.np }
func (ld *linearDomain) FirstPoint() int  { return 0 }
func (ld *linearDomain) Loc() int         { return 0 }

func (ld *linearDomain) rows(x, rsd []float64, diag []int, jmin, jmax int) {
	for i := ld.nv * jmin; i < ld.nv*(jmax+1); i++ {
		rsd[i] = mat.Dot(ld.A.RowView(i), mat.NewVecDense(len(x), x))
		diag[i] = 1
	}
}

func (ld *linearDomain) EvalFull(x, rsd []float64, diag []int, _ float64) error {
	ld.rows(x, rsd, diag, 0, ld.np-1)
	return nil
}

func (ld *linearDomain) EvalWindow(jg int, x, rsd []float64, diag []int, _ float64) error {
	ld.rows(x, rsd, diag, max(jg-1, 0), min(jg+1, ld.np-1))
	return nil
}

func TestLinearDomain(t *testing.T) {
	var (
		ld  = newLinearDomain(3, 5)
		n   = ld.Size()
		x   = make([]float64, n)
		jac = New(ld, DefaultConfig())
	)
	for i := range x {
		x[i] = float64(i) - 3.5
	}
	require.NoError(t, jac.Eval(x, 2))
	assert.Equal(t, 5*3, jac.NEvals)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			expected := ld.A.At(i, j)
			if i == j {
				expected -= 2
			}
			assert.InDelta(t, expected, jac.J.At(i, j), 1.e-6, "(%d,%d)", i, j)
		}
	}
	C := jac.CSR()
	kl, ku := C.Bandwidth()
	assert.Equal(t, 5, kl)
	assert.Equal(t, 5, ku)
	assert.Equal(t, 3*3*(3*5-2), C.NNZ())
	assert.Panics(t, func() { jac.J.Set(0, 0, 1) })
	// the perturbations leave the solution as it was
	assert.Equal(t, -3.5, x[0])
	assert.Equal(t, 10.5, x[n-1])
}

func TestJacobianCheck(t *testing.T) {
	var (
		ld  = newLinearDomain(2, 6)
		x   = make([]float64, ld.Size())
		jac = New(ld, DefaultConfig())
	)
	for i := range x {
		x[i] = 1 + 0.25*float64(i)
	}
	_, err := jac.Check(x, 0)
	assert.Error(t, err)
	require.NoError(t, jac.Eval(x, 0))
	relErr, err := jac.Check(x, 0)
	require.NoError(t, err)
	assert.Less(t, relErr, 1.e-6)
	assert.Equal(t, 1.25, x[1])

	// a corrupted entry shows up in the check
	jac.J.Set(3, 3, jac.J.At(3, 3)+10)
	relErr, err = jac.Check(x, 0)
	require.NoError(t, err)
	assert.Greater(t, relErr, 1.e-3)
}

func TestFlowJacobian(t *testing.T) {
	const mech = `
name: binary
species:
  - {name: A, molecular-weight: 28.0, cp-over-R: 3.5, lewis: 1.0}
  - {name: B, molecular-weight: 4.0, cp-over-R: 2.5, lewis: 0.3}
`
	m := &thermo.Mechanism{}
	require.NoError(t, m.Parse([]byte(mech)))
	g, err := m.Build()
	require.NoError(t, err)
	f, err := Flame1D.NewFlow(g.Phase, 6, types.AxisymmetricStagnation)
	require.NoError(t, err)
	require.NoError(t, f.SetupGrid(floats.Span(make([]float64, 6), 0, 0.02)))
	f.SetKinetics(g.Kinetics)
	f.SetTransport(g.Transport)
	f.SolveEnergyEqn(types.AllPoints)
	x := make([]float64, f.Size())
	f.InitialSolution(x, thermo.PointState{T: 300, Y: []float64{0.9, 0.1}})
	for j, z := range f.Grid().Z {
		x[j*f.NComponents()+types.C_Velocity] = 0.3 - 10*z
		x[j*f.NComponents()+types.C_SpreadRate] = 5
		x[j*f.NComponents()+types.C_Temperature] = 300 + 50000*z
	}

	jac := New(f, DefaultConfig())
	require.NoError(t, jac.Eval(x, 0))
	var (
		nv     = f.NComponents()
		C      = jac.CSR()
		kl, ku = C.Bandwidth()
	)
	assert.LessOrEqual(t, kl, 2*nv-1)
	assert.LessOrEqual(t, ku, 2*nv-1)
	assert.Greater(t, C.NNZ(), f.Size())
	for j := 0; j < f.NPoints(); j++ {
		e := j*nv + types.C_EField
		assert.InDelta(t, 1, C.At(e, e), 1.e-6)
		assert.Equal(t, 0, jac.Diag[e])
	}
	// left boundary temperature row is T itself
	assert.InDelta(t, 1, C.At(types.C_Temperature, types.C_Temperature), 1.e-6)
	assert.Equal(t, 1, jac.Diag[nv+types.C_Temperature])
}
