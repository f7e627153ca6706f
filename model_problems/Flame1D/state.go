package Flame1D

import (
	"encoding/json"
	"fmt"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/flame1d/Grid1D"
	"github.com/notargets/flame1d/porous"
	"github.com/notargets/flame1d/types"
)

// FlowState is the saved form of a domain and its solution.
type FlowState struct {
	Type              string               `json:"type"`
	Pressure          float64              `json:"pressure"`
	Grid              []float64            `json:"grid"`
	Solution          map[string][]float64 `json:"solution,omitempty"`
	EnergyEnabled     *PointFlags          `json:"energy-enabled,omitempty"`
	SpeciesEnabled    *SpeciesFlags        `json:"species-enabled,omitempty"`
	SoretEnabled      bool                 `json:"Soret-enabled"`
	ViscosityEnabled  bool                 `json:"viscosity-enabled"`
	RadiationEnabled  bool                 `json:"radiation-enabled"`
	RadiativeHeatLoss []float64            `json:"radiative-heat-loss,omitempty"`
	EmissivityLeft    float64              `json:"emissivity-left"`
	EmissivityRight   float64              `json:"emissivity-right"`
	FixedTemperature  []float64            `json:"fixed-temperature,omitempty"`
	FixedProfile      *ProfileState        `json:"fixed-temperature-profile,omitempty"`
	FixedPoint        *FixedPointState     `json:"fixed-point,omitempty"`
	Solid             *SolidState          `json:"solid,omitempty"`
}

type ProfileState struct {
	Position    []float64 `json:"position"`
	Temperature []float64 `json:"temperature"`
}

type FixedPointState struct {
	Location    float64 `json:"location"`
	Temperature float64 `json:"temperature"`
}

type SolidState struct {
	Material          porous.Material `json:"material"`
	Tsolid            []float64       `json:"Tsolid"`
	Radiation         []float64       `json:"Radiation"`
	Porosity          []float64       `json:"Porosity,omitempty"`
	Diameter          []float64       `json:"Diameter,omitempty"`
	SolidConductivity []float64       `json:"SolidConductivity,omitempty"`
	Hconv             []float64       `json:"Hconv,omitempty"`
}

// PointFlags is a per point flag saved as a scalar when uniform.
type PointFlags struct {
	Values []bool
}

func (pf PointFlags) MarshalJSON() ([]byte, error) {
	if uniform(pf.Values) {
		return json.Marshal(pf.Values[0])
	}
	return json.Marshal(pf.Values)
}

func (pf *PointFlags) UnmarshalJSON(data []byte) (err error) {
	var b bool
	if err = json.Unmarshal(data, &b); err == nil {
		pf.Values = []bool{b}
		return
	}
	return json.Unmarshal(data, &pf.Values)
}

// expand returns n flags, spreading a scalar.
func (pf *PointFlags) expand(n int) (flags []bool, err error) {
	switch len(pf.Values) {
	case 1:
		flags = make([]bool, n)
		for i := range flags {
			flags[i] = pf.Values[0]
		}
	case n:
		flags = append([]bool{}, pf.Values...)
	default:
		err = fmt.Errorf("%d flags for %d points: %w", len(pf.Values), n, types.ErrStateMismatch)
	}
	return
}

// SpeciesFlags is a per species flag saved as a scalar when uniform, else by name.
type SpeciesFlags struct {
	All    *bool
	ByName map[string]bool
}

func (sf SpeciesFlags) MarshalJSON() ([]byte, error) {
	if sf.All != nil {
		return json.Marshal(*sf.All)
	}
	return json.Marshal(sf.ByName)
}

func (sf *SpeciesFlags) UnmarshalJSON(data []byte) (err error) {
	var b bool
	if err = json.Unmarshal(data, &b); err == nil {
		sf.All = &b
		return
	}
	return json.Unmarshal(data, &sf.ByName)
}

func uniform(v []bool) bool {
	for _, b := range v {
		if b != v[0] {
			return false
		}
	}
	return len(v) > 0
}

// Export captures the domain configuration and the active components of the
// solution xg.
func (f *Flow) Export(xg []float64) (st *FlowState) {
	var (
		x = f.local(xg)
	)
	st = &FlowState{
		Type:             f.Type.Print(),
		Pressure:         f.press,
		Grid:             append([]float64{}, f.grid.Z...),
		Solution:         make(map[string][]float64),
		EnergyEnabled:    &PointFlags{Values: append([]bool{}, f.energyEnabled...)},
		SoretEnabled:     f.soret,
		ViscosityEnabled: f.viscous,
		RadiationEnabled: f.radiation,
		EmissivityLeft:   f.epsLeft,
		EmissivityRight:  f.epsRight,
		FixedTemperature: append([]float64{}, f.fixedTemp...),
	}
	for n := 0; n < f.nv; n++ {
		if !f.ComponentActive(n) {
			continue
		}
		data := make([]float64, f.points)
		for j := range data {
			data[j] = x[f.index(n, j)]
		}
		st.Solution[f.ComponentName(n)] = data
	}
	flags := &SpeciesFlags{}
	if uniform(f.speciesEnabled) {
		all := f.speciesEnabled[0]
		flags.All = &all
	} else {
		flags.ByName = make(map[string]bool)
		for k, on := range f.speciesEnabled {
			flags.ByName[f.phase.SpeciesName(k)] = on
		}
	}
	st.SpeciesEnabled = flags
	if f.radiation {
		st.RadiativeHeatLoss = append([]float64{}, f.qdotRadiation...)
	}
	if f.profile != nil {
		st.FixedProfile = &ProfileState{
			Position:    append([]float64{}, f.profile.Pos...),
			Temperature: append([]float64{}, f.profile.Value...),
		}
	}
	if f.hasFixedPoint {
		st.FixedPoint = &FixedPointState{Location: f.zfixed, Temperature: f.tfixed}
	}
	if ps := f.porous; ps != nil {
		st.Solid = &SolidState{
			Material:          ps.Material,
			Tsolid:            append([]float64{}, ps.Tsolid...),
			Radiation:         append([]float64{}, ps.Radiation...),
			Porosity:          append([]float64{}, ps.props.Porosity...),
			Diameter:          append([]float64{}, ps.props.Diameter...),
			SolidConductivity: append([]float64{}, ps.props.Conductivity...),
			Hconv:             append([]float64{}, ps.Hconv...),
		}
	}
	return
}

// Import restores a saved state into the domain and the solution xg, which
// must be large enough for the saved grid. Missing solution components and
// species flags are tolerated with a warning.
func (f *Flow) Import(st *FlowState, xg []float64) (err error) {
	var (
		ft types.FlowType
	)
	if ft, err = types.NewFlowType(st.Type); err != nil {
		return
	}
	if ft != f.Type {
		return fmt.Errorf("state of type %q into %s domain: %w", st.Type, f.Type.Print(), types.ErrStateMismatch)
	}
	n := len(st.Grid)
	if f.loc+f.nv*n > len(xg) {
		return fmt.Errorf("solution buffer too small for %d points: %w", n, types.ErrStateMismatch)
	}
	var energy []bool
	if st.EnergyEnabled != nil {
		if energy, err = st.EnergyEnabled.expand(n); err != nil {
			return
		}
	}
	if st.Solid != nil {
		if f.porous == nil {
			return fmt.Errorf("solid data for a %s domain: %w", f.Type.Print(), types.ErrStateMismatch)
		}
		if len(st.Solid.Tsolid) != n || len(st.Solid.Radiation) != n {
			return fmt.Errorf("solid fields do not match %d points: %w", n, types.ErrStateMismatch)
		}
		if err = st.Solid.Material.Validate(); err != nil {
			return
		}
	}
	if err = f.SetBoundaryEmissivities(st.EmissivityLeft, st.EmissivityRight); err != nil {
		return
	}
	if f.porous != nil && st.Solid != nil {
		f.porous.Material = st.Solid.Material
	}
	if err = f.SetupGrid(st.Grid); err != nil {
		return
	}
	if st.Pressure > 0 {
		f.press = st.Pressure
	}
	x := f.local(xg)
	for c := 0; c < f.nv; c++ {
		if !f.ComponentActive(c) {
			continue
		}
		name := f.ComponentName(c)
		data, ok := st.Solution[name]
		if !ok || len(data) != n {
			log.WithFields(log.Fields{"component": name}).Warn("saved state has no values for component")
			continue
		}
		for j, v := range data {
			x[f.index(c, j)] = v
		}
	}
	if energy != nil {
		f.energyEnabled = energy
	}
	f.soret = st.SoretEnabled
	f.SetViscosityFlag(st.ViscosityEnabled)
	f.radiation = st.RadiationEnabled
	f.importSpecies(st.SpeciesEnabled)
	if len(st.FixedTemperature) == n {
		copy(f.fixedTemp, st.FixedTemperature)
	}
	// a restored domain carries only the profile and fixed point of the state
	f.profile, f.hasFixedPoint = nil, false
	if st.FixedProfile != nil {
		if f.profile, err = Grid1D.NewProfile(st.FixedProfile.Position, st.FixedProfile.Temperature); err != nil {
			return
		}
	}
	if st.FixedPoint != nil {
		f.SetFixedPoint(st.FixedPoint.Location, st.FixedPoint.Temperature)
	}
	if f.porous != nil && st.Solid != nil {
		copy(f.porous.Tsolid, st.Solid.Tsolid)
		copy(f.porous.Radiation, st.Solid.Radiation)
		if len(st.Solid.Hconv) == n {
			copy(f.porous.Hconv, st.Solid.Hconv)
		}
	}
	return
}

func (f *Flow) importSpecies(sf *SpeciesFlags) {
	for k := range f.speciesEnabled {
		f.speciesEnabled[k] = true
	}
	switch {
	case sf == nil:
		log.Warn("saved state has no species flags, enabling all species")
	case sf.All != nil:
		for k := range f.speciesEnabled {
			f.speciesEnabled[k] = *sf.All
		}
	default:
		for k := range f.speciesEnabled {
			name := f.phase.SpeciesName(k)
			if on, ok := sf.ByName[name]; ok {
				f.speciesEnabled[k] = on
			} else {
				log.WithFields(log.Fields{"species": name}).Warn("saved state has no flag for species, enabling")
			}
		}
	}
}

func (st *FlowState) Marshal() ([]byte, error) {
	return yaml.Marshal(st)
}

func ParseFlowState(data []byte) (st *FlowState, err error) {
	st = &FlowState{}
	if err = yaml.Unmarshal(data, st); err != nil {
		return nil, err
	}
	return
}
