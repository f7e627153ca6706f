package thermo

import (
	"fmt"
	"math"
)

type NoReactions struct{}

func (NoReactions) NetProductionRates(_ PointState, wdot []float64) {
	for k := range wdot {
		wdot[k] = 0
	}
}

// Reaction is an irreversible global step, rate = A T^b exp(-Ea/RT) prod C_k^order_k.
type Reaction struct {
	Equation  string             `json:"equation"`
	Reactants map[string]float64 `json:"reactants"`
	Products  map[string]float64 `json:"products"`
	Orders    map[string]float64 `json:"orders"`
	A         float64            `json:"A"`
	B         float64            `json:"b"`
	Ea        float64            `json:"Ea"` // J/kmol
}

type reactionIndex struct {
	nu     []float64 // net stoichiometry, products minus reactants
	order  []float64
	orderK []int
	r      Reaction
}

type GlobalKinetics struct {
	phase     Phase
	reactions []reactionIndex
}

func NewGlobalKinetics(phase Phase, reactions []Reaction) (gk *GlobalKinetics, err error) {
	var (
		nsp = phase.NSpecies()
	)
	gk = &GlobalKinetics{phase: phase}
	for _, r := range reactions {
		ri := reactionIndex{
			nu:    make([]float64, nsp),
			order: make([]float64, nsp),
			r:     r,
		}
		lookup := func(name string) (k int, err error) {
			if k = phase.SpeciesIndex(name); k < 0 {
				err = fmt.Errorf("reaction %q: unknown species %s", r.Equation, name)
			}
			return
		}
		for name, nu := range r.Reactants {
			k, err := lookup(name)
			if err != nil {
				return nil, err
			}
			ri.nu[k] -= nu
			ri.order[k] = nu
		}
		for name, nu := range r.Products {
			k, err := lookup(name)
			if err != nil {
				return nil, err
			}
			ri.nu[k] += nu
		}
		for name, o := range r.Orders {
			k, err := lookup(name)
			if err != nil {
				return nil, err
			}
			ri.order[k] = o
		}
		for k, o := range ri.order {
			if o != 0 {
				ri.orderK = append(ri.orderK, k)
			}
		}
		gk.reactions = append(gk.reactions, ri)
	}
	return
}

func (gk *GlobalKinetics) NetProductionRates(s PointState, wdot []float64) {
	var (
		wt  = gk.phase.MolecularWeights()
		rho = gk.phase.Density(s)
	)
	for k := range wdot {
		wdot[k] = 0
	}
	for _, ri := range gk.reactions {
		q := ri.r.A * math.Pow(s.T, ri.r.B) * math.Exp(-ri.r.Ea/(GasConstant*s.T))
		for _, k := range ri.orderK {
			c := math.Max(rho*s.Y[k]/wt[k], 0)
			q *= math.Pow(c, ri.order[k])
		}
		for k, nu := range ri.nu {
			wdot[k] += nu * q
		}
	}
}
