package thermo

import (
	"fmt"
)

type Species struct {
	Name            string  `json:"name"`
	MolecularWeight float64 `json:"molecular-weight"`
	CpOverR         float64 `json:"cp-over-R"`
	Enthalpy        float64 `json:"enthalpy"` // J/kmol at TRef
	Lewis           float64 `json:"lewis"`
}

// IdealGasMixture is a calorically perfect ideal gas mixture: each species has
// a constant heat capacity and a formation enthalpy at TRef.
type IdealGasMixture struct {
	species []Species
	wt      []float64
	index   map[string]int
	tMax    float64
}

func NewIdealGasMixture(species []Species, tMax float64) (g *IdealGasMixture, err error) {
	if len(species) == 0 {
		err = fmt.Errorf("ideal gas mixture needs at least one species")
		return
	}
	g = &IdealGasMixture{
		species: species,
		wt:      make([]float64, len(species)),
		index:   make(map[string]int),
		tMax:    tMax,
	}
	for k, sp := range species {
		if sp.MolecularWeight <= 0 {
			err = fmt.Errorf("species %s: molecular weight %g", sp.Name, sp.MolecularWeight)
			return nil, err
		}
		if _, dup := g.index[sp.Name]; dup {
			err = fmt.Errorf("duplicate species %s", sp.Name)
			return nil, err
		}
		g.wt[k] = sp.MolecularWeight
		g.index[sp.Name] = k
	}
	if g.tMax == 0 {
		g.tMax = 5000
	}
	return
}

func (g *IdealGasMixture) Type() string                { return IdealGasTag }
func (g *IdealGasMixture) NSpecies() int               { return len(g.species) }
func (g *IdealGasMixture) SpeciesName(k int) string    { return g.species[k].Name }
func (g *IdealGasMixture) MolecularWeights() []float64 { return g.wt }
func (g *IdealGasMixture) MaxTemp() float64            { return g.tMax }
func (g *IdealGasMixture) Species(k int) Species       { return g.species[k] }

func (g *IdealGasMixture) SpeciesIndex(name string) int {
	if k, ok := g.index[name]; ok {
		return k
	}
	return -1
}

func (g *IdealGasMixture) MeanMolecularWeight(s PointState) float64 {
	var sum float64
	for k, y := range s.Y {
		sum += y / g.wt[k]
	}
	return 1. / sum
}

func (g *IdealGasMixture) Density(s PointState) float64 {
	return s.P * g.MeanMolecularWeight(s) / (GasConstant * s.T)
}

func (g *IdealGasMixture) CpMass(s PointState) float64 {
	var (
		wtm   = g.MeanMolecularWeight(s)
		cpMol float64
	)
	for k, y := range s.Y {
		cpMol += wtm * y / g.wt[k] * g.species[k].CpOverR
	}
	return GasConstant * cpMol / wtm
}

func (g *IdealGasMixture) EnthalpyRTRef(T float64, hRT []float64) {
	for k, sp := range g.species {
		hRT[k] = (sp.Enthalpy + GasConstant*sp.CpOverR*(T-TRef)) / (GasConstant * T)
	}
}

func (g *IdealGasMixture) CpRRef(_ float64, cpR []float64) {
	for k, sp := range g.species {
		cpR[k] = sp.CpOverR
	}
}

// MoleFractions fills x from possibly unnormalized mass fractions.
func (g *IdealGasMixture) MoleFractions(s PointState, x []float64) {
	wtm := g.MeanMolecularWeight(s)
	for k, y := range s.Y {
		x[k] = wtm * y / g.wt[k]
	}
}

// MassFractionsFromMoles converts (possibly unnormalized) mole fractions.
func (g *IdealGasMixture) MassFractionsFromMoles(x []float64) (y []float64) {
	var sum float64
	y = make([]float64, len(x))
	for k, xk := range x {
		y[k] = xk * g.wt[k]
		sum += y[k]
	}
	for k := range y {
		y[k] /= sum
	}
	return
}
