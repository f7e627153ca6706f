package Flame1D

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/flame1d/Grid1D"
	"github.com/notargets/flame1d/porous"
	"github.com/notargets/flame1d/utils"
)

// InitialSolidTemperature seeds the solid field of a new porous domain.
const InitialSolidTemperature = 300.

// PorousState is the solid matrix co-located with a porous gas domain. Its
// fields persist across evaluations and are only changed by a solid solve
// or a grid change.
type PorousState struct {
	Material porous.Material
	Fit      porous.NusseltFit
	Solver   *porous.Solver

	Tsolid    []float64
	Radiation []float64 // radiative source in the solid energy balance
	Hconv     []float64

	props      *porous.Properties
	pending    bool
	LastResult porous.Result
}

func NewPorousState() *PorousState {
	return &PorousState{
		Material: porous.DefaultMaterial(),
		Fit:      porous.DefaultNusseltFit(),
		Solver:   porous.NewSolver(porous.DefaultConfig()),
	}
}

func (ps *PorousState) Properties() *porous.Properties { return ps.props }

// regrid carries the solid temperature and radiative source onto the new
// grid by linear interpolation in z and re-lays the material.
func (ps *PorousState) regrid(old, g *Grid1D.Grid) {
	var (
		n = g.N()
	)
	if old == nil || len(ps.Tsolid) != old.N() {
		ps.Tsolid = utils.ConstArray(n, InitialSolidTemperature)
		ps.Radiation = utils.ConstArray(n, 0)
	} else {
		ps.Tsolid = g.Remap(old, ps.Tsolid)
		ps.Radiation = g.Remap(old, ps.Radiation)
	}
	ps.Hconv = make([]float64, n)
	ps.props = ps.Material.Evaluate(g.Z, ps.Fit)
}

// Porous returns the solid state, or nil for a non porous domain.
func (f *Flow) Porous() *PorousState { return f.porous }

func (f *Flow) SetPorousMaterial(m porous.Material) (err error) {
	if f.porous == nil {
		return fmt.Errorf("%s domain has no solid phase", f.Type.Print())
	}
	if err = m.Validate(); err != nil {
		return
	}
	f.porous.Material = m
	f.porous.props = m.Evaluate(f.grid.Z, f.porous.Fit)
	return
}

// RequestSolidSolve asks for the solid field to be recomputed on the next
// full evaluation. The request is cleared once that solve has run.
func (f *Flow) RequestSolidSolve() {
	if f.porous != nil {
		f.porous.pending = true
	}
}

func (f *Flow) SolidSolvePending() bool {
	return f.porous != nil && f.porous.pending
}

func (f *Flow) porosity(j int) float64 {
	if f.porous == nil {
		return 1
	}
	return f.porous.props.Porosity[j]
}

// updateSolid refreshes the convective coefficients for points jmin..jmax
// and runs a pending solid solve on full evaluations. The last point uses the
// transport properties of the last face.
func (f *Flow) updateSolid(x []float64, jmin, jmax int, full bool, rdt float64) {
	var (
		ps = f.porous
	)
	for j := jmin; j <= jmax; j++ {
		face := min(j, f.points-2)
		ps.Hconv[j] = ps.props.Hconv(j, f.RhoU(x, j), f.visc[face], f.tcon[face])
	}
	if !full || !ps.pending {
		return
	}
	ps.pending = false
	tgas := make([]float64, f.points)
	for j := range tgas {
		tgas[j] = f.T(x, j)
	}
	res, err := ps.Solver.Solve(porous.Problem{
		Z:     f.grid.Z,
		TGas:  tgas,
		Hconv: ps.Hconv,
		Props: ps.props,
		RhoCp: ps.Material.Density * ps.Material.HeatCapacity,
		Rdt:   rdt,
	}, ps.Tsolid, ps.Radiation)
	ps.LastResult = res
	if err != nil {
		log.WithError(err).Warn("porous solid solve skipped")
	}
}
