package InputParameters

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/flame1d/Grid1D"
	"github.com/notargets/flame1d/model_problems/Flame1D"
	"github.com/notargets/flame1d/porous"
	"github.com/notargets/flame1d/thermo"
	"github.com/notargets/flame1d/types"
)

// Parameters obtained from the YAML case file
type InputParameters1D struct {
	Title            string                   `json:"Title"`
	Mechanism        string                   `json:"Mechanism"` // relative to the case file
	FlowType         string                   `json:"FlowType"`
	Pressure         float64                  `json:"Pressure"`
	Grid             GridParameters           `json:"Grid"`
	Inlet            StreamParameters         `json:"Inlet"`
	Outlet           StreamParameters         `json:"Outlet"`
	MassFlux         float64                  `json:"MassFlux"` // kg/m^2/s at the inlet
	Energy           bool                     `json:"Energy"`
	Transport        string                   `json:"Transport"`
	Soret            bool                     `json:"Soret"`
	Radiation        bool                     `json:"Radiation"`
	Emissivity       [2]float64               `json:"Emissivity"`
	FixedTempProfile *ProfileParameters       `json:"FixedTempProfile"`
	FixedPoint       *Flame1D.FixedPointState `json:"FixedPoint"`
	Burner           *porous.Material         `json:"Burner"`
	BurnerFile       string                   `json:"BurnerFile"` // INI with a [solid] section
	StateFile        string                   `json:"StateFile"`
	ParallelDegree   int                      `json:"ParallelDegree"`
}

type GridParameters struct {
	Points int       `json:"Points"`
	Length float64   `json:"Length"`
	Z      []float64 `json:"Z"` // overrides Points and Length
}

// StreamParameters give a composition by mass (Y) or by mole (X), not both.
type StreamParameters struct {
	T float64            `json:"T"`
	Y map[string]float64 `json:"Y"`
	X map[string]float64 `json:"X"`
}

type ProfileParameters struct {
	Position    []float64 `json:"Position"`
	Temperature []float64 `json:"Temperature"`
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ReadInputParameters parses a case file, keeping the directory so that the
// files it names can be found.
func ReadInputParameters(fileName string) (ip *InputParameters1D, err error) {
	var (
		data []byte
	)
	if data, err = ioutil.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("case %s: %w", fileName, err)
	}
	dir := filepath.Dir(fileName)
	for _, name := range []*string{&ip.Mechanism, &ip.BurnerFile, &ip.StateFile} {
		if len(*name) != 0 && !filepath.IsAbs(*name) {
			*name = filepath.Join(dir, *name)
		}
	}
	return
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Flow Type\n", ip.FlowType)
	fmt.Printf("[%s]\t= Mechanism\n", ip.Mechanism)
	fmt.Printf("%8.1f\t\t= Pressure\n", ip.Pressure)
	fmt.Printf("%8.5f\t\t= Mass Flux\n", ip.MassFlux)
	fmt.Printf("[%d]\t\t\t\t= Grid Points\n", ip.Grid.Points)
	fmt.Printf("[%v]\t\t\t= Energy\n", ip.Energy)
	for _, s := range []struct {
		name string
		sp   StreamParameters
	}{{"Inlet", ip.Inlet}, {"Outlet", ip.Outlet}} {
		comp, label := s.sp.Y, "Y"
		if len(s.sp.X) != 0 {
			comp, label = s.sp.X, "X"
		}
		keys := make([]string, 0, len(comp))
		for k := range comp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Printf("%s: T = %8.2f\n", s.name, s.sp.T)
		for _, key := range keys {
			fmt.Printf("\t%s[%s] = %v\n", label, key, comp[key])
		}
	}
}

// Case is a flow domain built from a case file with its starting solution.
type Case struct {
	Gas  *thermo.Gas
	Flow *Flame1D.Flow
	X    []float64
}

// NewCase builds the gas, the domain and a linear initial profile between the
// inlet and outlet streams, or restores a saved state if one is named.
func (ip *InputParameters1D) NewCase() (c *Case, err error) {
	var (
		m  *thermo.Mechanism
		ft types.FlowType
		g  *Grid1D.Grid
	)
	if m, err = thermo.ReadMechanism(ip.Mechanism); err != nil {
		return
	}
	c = &Case{}
	if c.Gas, err = m.Build(); err != nil {
		return nil, err
	}
	if ft, err = types.NewFlowType(ip.FlowType); err != nil {
		return nil, err
	}
	if g, err = ip.grid(); err != nil {
		return nil, err
	}
	switch ip.Transport {
	case "":
	case thermo.Multicomponent.String():
		c.Gas.Transport.SetClosure(thermo.Multicomponent)
	case thermo.MixtureAveraged.String():
		c.Gas.Transport.SetClosure(thermo.MixtureAveraged)
	default:
		return nil, fmt.Errorf("unknown transport closure %q", ip.Transport)
	}
	f, err := Flame1D.NewFlow(c.Gas.Phase, g.N(), ft)
	if err != nil {
		return nil, err
	}
	c.Flow = f
	if err = f.SetupGrid(g.Z); err != nil {
		return nil, err
	}
	f.SetKinetics(c.Gas.Kinetics)
	f.SetTransport(c.Gas.Transport)
	f.SetParallelDegree(ip.ParallelDegree)
	if ip.Pressure > 0 {
		f.SetPressure(ip.Pressure)
	}
	if err = ip.setupPorous(f); err != nil {
		return nil, err
	}
	if len(ip.StateFile) != 0 {
		err = c.restore(ip.StateFile)
		return
	}
	f.EnableSoret(ip.Soret)
	f.EnableRadiation(ip.Radiation)
	if err = f.SetBoundaryEmissivities(ip.Emissivity[0], ip.Emissivity[1]); err != nil {
		return nil, err
	}
	if p := ip.FixedTempProfile; p != nil {
		if err = f.SetFixedTempProfile(p.Position, p.Temperature); err != nil {
			return nil, err
		}
	}
	if ip.FixedPoint != nil {
		f.SetFixedPoint(ip.FixedPoint.Location, ip.FixedPoint.Temperature)
	}
	if ip.Energy {
		f.SolveEnergyEqn(types.AllPoints)
	}
	if c.X, err = ip.initialProfile(c.Gas.Phase, f); err != nil {
		return nil, err
	}
	if err = f.Finalize(c.X); err != nil {
		return nil, err
	}
	return
}

func (ip *InputParameters1D) grid() (*Grid1D.Grid, error) {
	if len(ip.Grid.Z) != 0 {
		return Grid1D.NewGrid(ip.Grid.Z)
	}
	return Grid1D.UniformGrid(ip.Grid.Points, 0, ip.Grid.Length)
}

func (ip *InputParameters1D) setupPorous(f *Flame1D.Flow) (err error) {
	var (
		mat porous.Material
	)
	switch {
	case f.Porous() == nil:
		if ip.Burner != nil || len(ip.BurnerFile) != 0 {
			log.WithFields(log.Fields{"flow": f.Type.Print()}).Warn("burner ignored for a non porous flow")
		}
		return
	case len(ip.BurnerFile) != 0:
		if mat, err = porous.LoadMaterialINI(ip.BurnerFile); err != nil {
			return
		}
	case ip.Burner != nil:
		mat = *ip.Burner
	default:
		return
	}
	return f.SetPorousMaterial(mat)
}

func (c *Case) restore(fileName string) (err error) {
	var (
		data []byte
		st   *Flame1D.FlowState
	)
	if data, err = ioutil.ReadFile(fileName); err != nil {
		return
	}
	if st, err = Flame1D.ParseFlowState(data); err != nil {
		return fmt.Errorf("state %s: %w", fileName, err)
	}
	c.X = make([]float64, c.Flow.NComponents()*len(st.Grid))
	if err = c.Flow.Import(st, c.X); err != nil {
		return
	}
	return c.Flow.Finalize(c.X)
}

// massFractions orders a named stream composition by species index and
// normalizes it, converting from mole fractions when the stream gives X.
func massFractions(phase *thermo.IdealGasMixture, sp StreamParameters) (y []float64, err error) {
	var (
		comp = sp.Y
		sum  float64
	)
	switch {
	case len(sp.X) != 0 && len(sp.Y) != 0:
		return nil, fmt.Errorf("stream gives both mass and mole fractions")
	case len(sp.X) != 0:
		comp = sp.X
	}
	y = make([]float64, phase.NSpecies())
	for name, v := range comp {
		k := phase.SpeciesIndex(name)
		if k < 0 {
			return nil, fmt.Errorf("composition names unknown species %s", name)
		}
		y[k] = v
		sum += v
	}
	if sum <= 0 {
		return nil, fmt.Errorf("composition %v has no mass", comp)
	}
	if len(sp.X) != 0 {
		return phase.MassFractionsFromMoles(y), nil
	}
	for k := range y {
		y[k] /= sum
	}
	return
}

// initialProfile fills every point with the inlet stream, ramps T and Y
// linearly to the outlet stream when one is given and sets a uniform mass flux.
func (ip *InputParameters1D) initialProfile(phase *thermo.IdealGasMixture, f *Flame1D.Flow) (x []float64, err error) {
	var (
		yin, yout []float64
		nv        = f.NComponents()
		grid      = f.Grid()
		tout      = ip.Outlet.T
	)
	if yin, err = massFractions(phase, ip.Inlet); err != nil {
		return
	}
	yout = yin
	if len(ip.Outlet.Y) != 0 || len(ip.Outlet.X) != 0 {
		if yout, err = massFractions(phase, ip.Outlet); err != nil {
			return
		}
	}
	if tout == 0 {
		tout = ip.Inlet.T
	}
	x = make([]float64, f.Size())
	f.InitialSolution(x, thermo.PointState{T: ip.Inlet.T, P: f.Pressure(), Y: yin})
	for j := 0; j < f.NPoints(); j++ {
		var (
			s  = grid.NormalizedPosition(j)
			ps = thermo.PointState{T: (1-s)*ip.Inlet.T + s*tout, P: f.Pressure(), Y: f.Ys(x, j)}
		)
		for k := range ps.Y {
			ps.Y[k] = (1-s)*yin[k] + s*yout[k]
		}
		x[nv*j+types.C_Temperature] = ps.T
		x[nv*j+types.C_Velocity] = ip.MassFlux / phase.Density(ps)
	}
	return
}
