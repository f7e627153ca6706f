package thermo

import (
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
)

// Mechanism is the YAML description of a gas: species, global reactions and
// transport parameters.
type Mechanism struct {
	Name           string               `json:"name"`
	MaxTemperature float64              `json:"max-temperature"`
	Species        []Species            `json:"species"`
	Reactions      []Reaction           `json:"reactions"`
	Transport      *TransportParameters `json:"transport"`
}

func (m *Mechanism) Parse(data []byte) error {
	return yaml.Unmarshal(data, m)
}

func ReadMechanism(fileName string) (m *Mechanism, err error) {
	var (
		data []byte
	)
	if data, err = ioutil.ReadFile(fileName); err != nil {
		return
	}
	m = &Mechanism{}
	if err = m.Parse(data); err != nil {
		err = fmt.Errorf("mechanism %s: %w", fileName, err)
		return nil, err
	}
	return
}

// Gas bundles the three collaborators built from a mechanism.
type Gas struct {
	Phase     *IdealGasMixture
	Kinetics  Kinetics
	Transport *ConstantLewis
}

func (m *Mechanism) Build() (g *Gas, err error) {
	g = &Gas{}
	if g.Phase, err = NewIdealGasMixture(m.Species, m.MaxTemperature); err != nil {
		return nil, err
	}
	if len(m.Reactions) == 0 {
		g.Kinetics = NoReactions{}
	} else if g.Kinetics, err = NewGlobalKinetics(g.Phase, m.Reactions); err != nil {
		return nil, err
	}
	params := DefaultTransportParameters()
	if m.Transport != nil {
		params = *m.Transport
	}
	g.Transport = NewConstantLewis(g.Phase, params)
	return
}
