package Flame1D

import (
	"fmt"

	"github.com/notargets/flame1d/Grid1D"
	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
	"github.com/notargets/flame1d/utils"
)

// FixedPointMassFluxFraction sets the mass flux at a free flame fixed point
// whose energy equation is disabled, as a fraction of the density at point 0.
const FixedPointMassFluxFraction = 0.3

// Flow is a one dimensional reacting flow domain. The solution buffer holds
// NComponents() values per point, point after point.
type Flow struct {
	Type    types.FlowType
	nsp, nv int
	points  int
	grid    *Grid1D.Grid
	press   float64
	variant flowVariant

	phase   thermo.Phase
	kin     thermo.Kinetics
	trans   thermo.Transport
	closure thermo.Closure
	wt      []float64

	// property caches, per point or per face (j, j+1)
	rho, wtm, cp  []float64
	visc, tcon    []float64
	diff          []float64 // nsp per face
	multidiff     []float64 // nsp*nsp per face
	dthermal      []float64 // nsp per face
	flux          []float64 // nsp per face
	wdot          []float64 // nsp per point
	qdotRadiation []float64
	hRT, cpR      []float64

	energyEnabled  []bool
	speciesEnabled []bool
	soret          bool
	radiation      bool
	viscous        bool
	forceTransport bool
	epsLeft        float64
	epsRight       float64
	Radiation      RadiationParameters

	fixedTemp     []float64
	profile       *Grid1D.Profile
	hasFixedPoint bool
	zfixed        float64
	tfixed        float64

	kExcessLeft, kExcessRight int

	firstPoint, loc int
	xPrev           []float64
	parallelDegree  int

	porous *PorousState
}

func NewFlow(phase thermo.Phase, nPoints int, ft types.FlowType) (f *Flow, err error) {
	var (
		g *Grid1D.Grid
	)
	if phase == nil || phase.Type() != thermo.IdealGasTag {
		err = fmt.Errorf("phase %v: %w", phaseType(phase), types.ErrPhaseTypeUnsupported)
		return
	}
	if _, err = ft.Name(); err != nil {
		return
	}
	if g, err = Grid1D.UniformGrid(nPoints, 0, 1); err != nil {
		return
	}
	f = &Flow{
		Type:           ft,
		nsp:            phase.NSpecies(),
		nv:             types.C_Species + phase.NSpecies(),
		press:          thermo.OneAtm,
		phase:          phase,
		wt:             phase.MolecularWeights(),
		viscous:        ft != types.FreeFlow,
		speciesEnabled: make([]bool, phase.NSpecies()),
		Radiation:      DefaultRadiationParameters(),
		parallelDegree: 1,
	}
	for k := range f.speciesEnabled {
		f.speciesEnabled[k] = true
	}
	f.hRT = make([]float64, f.nsp)
	f.cpR = make([]float64, f.nsp)
	switch ft {
	case types.FreeFlow:
		f.variant = freeFlow{}
	case types.AxisymmetricStagnation:
		f.variant = stagnationFlow{}
	case types.PorousMedia:
		f.variant = porousFlow{}
		f.porous = NewPorousState()
	}
	f.resize(g)
	return
}

func phaseType(phase thermo.Phase) string {
	if phase == nil {
		return "<nil>"
	}
	return phase.Type()
}

// resize installs a new grid, reallocating every per-point cache when the
// point count changes.
func (f *Flow) resize(g *Grid1D.Grid) {
	var (
		old = f.grid
		n   = g.N()
		nsp = f.nsp
	)
	f.grid = g
	if f.porous != nil {
		f.porous.regrid(old, g)
	}
	if old != nil && old.N() == n {
		return
	}
	f.points = n
	f.rho = make([]float64, n)
	f.wtm = make([]float64, n)
	f.cp = make([]float64, n)
	f.visc = make([]float64, n)
	f.tcon = make([]float64, n)
	f.diff = make([]float64, nsp*n)
	if f.closure == thermo.Multicomponent {
		f.multidiff = make([]float64, nsp*nsp*n)
	}
	f.dthermal = make([]float64, nsp*n)
	f.flux = make([]float64, nsp*n)
	f.wdot = make([]float64, nsp*n)
	f.qdotRadiation = make([]float64, n)
	f.xPrev = nil

	energy := make([]bool, n)
	for j := range energy {
		switch {
		case j < len(f.energyEnabled):
			energy[j] = f.energyEnabled[j]
		case len(f.energyEnabled) > 0:
			energy[j] = f.energyEnabled[len(f.energyEnabled)-1]
		}
	}
	f.energyEnabled = energy
	if old != nil && len(f.fixedTemp) == old.N() {
		f.fixedTemp = g.Remap(old, f.fixedTemp)
	} else {
		f.fixedTemp = make([]float64, n)
	}
}

// SetupGrid replaces the grid coordinates.
func (f *Flow) SetupGrid(z []float64) (err error) {
	var (
		g *Grid1D.Grid
	)
	if g, err = Grid1D.NewGrid(z); err != nil {
		return
	}
	f.resize(g)
	return
}

func (f *Flow) Grid() *Grid1D.Grid { return f.grid }
func (f *Flow) NPoints() int       { return f.points }
func (f *Flow) NSpecies() int      { return f.nsp }
func (f *Flow) NComponents() int   { return f.nv }
func (f *Flow) Size() int          { return f.nv * f.points }
func (f *Flow) Pressure() float64  { return f.press }
func (f *Flow) FirstPoint() int    { return f.firstPoint }
func (f *Flow) LastPoint() int     { return f.firstPoint + f.points - 1 }
func (f *Flow) Loc() int           { return f.loc }

func (f *Flow) SetPressure(p float64) { f.press = p }

// SetLocation places the domain inside a larger solution buffer: its first
// grid point has global index firstPoint and its data starts at offset loc.
func (f *Flow) SetLocation(firstPoint, loc int) {
	f.firstPoint, f.loc = firstPoint, loc
}

// SetParallelDegree splits the property and flux loops over np goroutines.
func (f *Flow) SetParallelDegree(np int) {
	f.parallelDegree = utils.ParallelDegree(np, f.points)
}

func (f *Flow) SetKinetics(kin thermo.Kinetics) { f.kin = kin }

func (f *Flow) SetTransport(trans thermo.Transport) {
	f.trans = trans
	f.closure = trans.Closure()
	if f.closure == thermo.Multicomponent {
		f.multidiff = make([]float64, f.nsp*f.nsp*f.points)
	} else {
		f.multidiff = nil
	}
}

func (f *Flow) TransportClosure() thermo.Closure { return f.closure }

// EnableSoret toggles thermal diffusion. The closure is checked when the
// domain is finalized or evaluated.
func (f *Flow) EnableSoret(on bool)     { f.soret = on }
func (f *Flow) SoretEnabled() bool      { return f.soret }
func (f *Flow) EnableRadiation(on bool) { f.radiation = on }
func (f *Flow) RadiationEnabled() bool  { return f.radiation }

// SetViscosityFlag toggles the viscous term. A porous domain always keeps
// viscosity, since the solid convective coefficient is built from it.
func (f *Flow) SetViscosityFlag(on bool) { f.viscous = on || f.porous != nil }

// SetTransportUpdate forces transport properties to be refreshed on
// windowed evaluations too.
func (f *Flow) SetTransportUpdate(force bool) { f.forceTransport = force }

func (f *Flow) SetBoundaryEmissivities(left, right float64) (err error) {
	switch {
	case left < 0 || left > 1:
		err = fmt.Errorf("left boundary emissivity %g: %w", left, types.ErrEmissivityOutOfRange)
	case right < 0 || right > 1:
		err = fmt.Errorf("right boundary emissivity %g: %w", right, types.ErrEmissivityOutOfRange)
	default:
		f.epsLeft, f.epsRight = left, right
	}
	return
}

func (f *Flow) BoundaryEmissivities() (left, right float64) { return f.epsLeft, f.epsRight }

func (f *Flow) RadiativeHeatLoss() []float64 { return f.qdotRadiation }

// SolveEnergyEqn enables the energy equation at j, or everywhere for
// types.AllPoints, and reports whether any flag changed.
func (f *Flow) SolveEnergyEqn(j int) (changed bool) {
	return f.setEnergy(j, true)
}

// FixTemperature disables the energy equation at j, or everywhere for
// types.AllPoints, and reports whether any flag changed.
func (f *Flow) FixTemperature(j int) (changed bool) {
	return f.setEnergy(j, false)
}

func (f *Flow) setEnergy(j int, on bool) (changed bool) {
	if j == types.AllPoints {
		for i := range f.energyEnabled {
			changed = changed || f.energyEnabled[i] != on
			f.energyEnabled[i] = on
		}
		return
	}
	changed = f.energyEnabled[j] != on
	f.energyEnabled[j] = on
	return
}

func (f *Flow) EnergyEnabled(j int) bool { return f.energyEnabled[j] }

// SetTemperature fixes the temperature at point j.
func (f *Flow) SetTemperature(j int, t float64) {
	f.fixedTemp[j] = t
	f.energyEnabled[j] = false
}

func (f *Flow) FixedTemperature(j int) float64 { return f.fixedTemp[j] }

func (f *Flow) SetSpeciesEnabled(k int, on bool) { f.speciesEnabled[k] = on }
func (f *Flow) SpeciesEnabled(k int) bool        { return f.speciesEnabled[k] }

// SetFixedTempProfile sets the temperature used where the energy equation is
// disabled, as a function of normalized position in [0,1].
func (f *Flow) SetFixedTempProfile(pos, temp []float64) (err error) {
	var (
		p *Grid1D.Profile
	)
	if p, err = Grid1D.NewProfile(pos, temp); err != nil {
		return
	}
	f.profile = p
	for j := range f.fixedTemp {
		f.fixedTemp[j] = p.At(f.grid.NormalizedPosition(j))
	}
	return
}

// SetFixedPoint sets the location and temperature anchoring a free flame.
func (f *Flow) SetFixedPoint(z, t float64) {
	f.hasFixedPoint = true
	f.zfixed, f.tfixed = z, t
}

func (f *Flow) FixedPoint() (z, t float64, ok bool) {
	return f.zfixed, f.tfixed, f.hasFixedPoint
}

// StorePrevious keeps a copy of the previous time level for the transient terms.
func (f *Flow) StorePrevious(xg []float64) {
	f.xPrev = append(f.xPrev[:0], f.local(xg)...)
}

func (f *Flow) local(xg []float64) []float64 {
	return xg[f.loc : f.loc+f.Size()]
}

// Finalize prepares the domain for a solve from solution x. It rejects
// thermal diffusion without a multicomponent closure, fills the fixed
// temperature and, for a free flame, moves the fixed point onto the grid.
func (f *Flow) Finalize(xg []float64) (err error) {
	var (
		x = f.local(xg)
	)
	if err = f.checkSoret(); err != nil {
		return
	}
	e := f.energyEnabled[0]
	for j := 0; j < f.points; j++ {
		if e || f.profile == nil {
			f.fixedTemp[j] = f.T(x, j)
		} else {
			f.fixedTemp[j] = f.profile.At(f.grid.NormalizedPosition(j))
		}
	}
	if e {
		f.SolveEnergyEqn(types.AllPoints)
	}
	if f.Type == types.FreeFlow && f.hasFixedPoint {
		if f.grid.IndexOf(f.zfixed) >= 0 {
			return
		}
		for j := 0; j < f.points-1; j++ {
			if (f.T(x, j)-f.tfixed)*(f.T(x, j+1)-f.tfixed) <= 0 {
				f.tfixed = f.T(x, j+1)
				f.zfixed = f.grid.Z[j+1]
				return
			}
		}
	}
	return
}

func (f *Flow) checkSoret() error {
	if f.soret && f.closure != thermo.Multicomponent {
		return fmt.Errorf("%s closure: %w", f.closure, types.ErrIncompatibleTransportClosure)
	}
	return nil
}

// InitialSolution fills T and the mass fractions at every point.
func (f *Flow) InitialSolution(xg []float64, s thermo.PointState) {
	var (
		x = f.local(xg)
	)
	for j := 0; j < f.points; j++ {
		x[f.index(types.C_Temperature, j)] = s.T
		copy(f.Ys(x, j), s.Y)
	}
}

// ResetBadValues clips negative mass fractions and renormalizes each point.
func (f *Flow) ResetBadValues(xg []float64) {
	var (
		x = f.local(xg)
	)
	for j := 0; j < f.points; j++ {
		var (
			y   = f.Ys(x, j)
			sum float64
		)
		for k := range y {
			if y[k] < 0 {
				y[k] = 0
			}
			sum += y[k]
		}
		if sum == 0 {
			continue
		}
		for k := range y {
			y[k] /= sum
		}
	}
}

// Bounds gives the solver limits for component n.
func (f *Flow) Bounds(n int) (lower, upper float64) {
	switch {
	case n == types.C_Temperature:
		return 200, 2 * f.phase.MaxTemp()
	case n >= types.C_Species && n < f.nv:
		return -1.e-7, 1.e5
	}
	return -1.e20, 1.e20
}
