package porous

import (
	"fmt"
	"math"

	"gopkg.in/ini.v1"

	"github.com/notargets/flame1d/utils"
)

// Material describes a two-layer burner. Index 0 is the upstream layer, index 1
// the downstream layer; porosity and pore diameter ramp linearly across
// [ZMid-DZMid, ZMid+DZMid], conductivity and albedo switch at ZMid.
type Material struct {
	Porosity     [2]float64 `json:"porosity"`
	Diameter     [2]float64 `json:"diameter"`     // m
	Conductivity [2]float64 `json:"conductivity"` // W/m/K
	Albedo       [2]float64 `json:"albedo"`       // scattering albedo
	Density      float64    `json:"density"`      // kg/m^3
	HeatCapacity float64    `json:"heat-capacity"`
	ZMid         float64    `json:"zmid"`
	DZMid        float64    `json:"dzmid"`
}

// DefaultMaterial is a PSZ foam burner, fine upstream section, coarse downstream.
func DefaultMaterial() Material {
	return Material{
		Porosity:     [2]float64{0.835, 0.87},
		Diameter:     [2]float64{0.00029, 0.00152},
		Conductivity: [2]float64{1.3, 1.771},
		Albedo:       [2]float64{0.8, 0.8},
		Density:      510,
		HeatCapacity: 824,
		ZMid:         0.035,
		DZMid:        0.002,
	}
}

func (m Material) Validate() (err error) {
	for i := 0; i < 2; i++ {
		switch {
		case m.Porosity[i] <= 0 || m.Porosity[i] > 1:
			err = fmt.Errorf("layer %d porosity %g out of (0,1]", i+1, m.Porosity[i])
		case m.Diameter[i] <= 0:
			err = fmt.Errorf("layer %d pore diameter %g must be positive", i+1, m.Diameter[i])
		case m.Albedo[i] < 0 || m.Albedo[i] > 1:
			err = fmt.Errorf("layer %d albedo %g out of [0,1]", i+1, m.Albedo[i])
		}
		if err != nil {
			return
		}
	}
	if m.DZMid < 0 {
		err = fmt.Errorf("transition half width %g is negative", m.DZMid)
	}
	return
}

// LoadMaterialINI reads a [solid] section; absent keys keep the defaults.
func LoadMaterialINI(fileName string) (m Material, err error) {
	var (
		cfg *ini.File
	)
	m = DefaultMaterial()
	if cfg, err = ini.Load(fileName); err != nil {
		err = fmt.Errorf("porous material %s: %w", fileName, err)
		return
	}
	sec := cfg.Section("solid")
	m.Porosity[0] = sec.Key("pore1").MustFloat64(m.Porosity[0])
	m.Porosity[1] = sec.Key("pore2").MustFloat64(m.Porosity[1])
	m.Diameter[0] = sec.Key("diam1").MustFloat64(m.Diameter[0])
	m.Diameter[1] = sec.Key("diam2").MustFloat64(m.Diameter[1])
	m.Conductivity[0] = sec.Key("scond1").MustFloat64(m.Conductivity[0])
	m.Conductivity[1] = sec.Key("scond2").MustFloat64(m.Conductivity[1])
	m.Albedo[0] = sec.Key("Omega1").MustFloat64(m.Albedo[0])
	m.Albedo[1] = sec.Key("Omega2").MustFloat64(m.Albedo[1])
	m.Density = sec.Key("srho").MustFloat64(m.Density)
	m.HeatCapacity = sec.Key("sCp").MustFloat64(m.HeatCapacity)
	m.ZMid = sec.Key("zmid").MustFloat64(m.ZMid)
	m.DZMid = sec.Key("dzmid").MustFloat64(m.DZMid)
	err = m.Validate()
	return
}

// NusseltFit gives Nu = Cmult Re^Mpow with Cmult = CA*d + CB, Mpow = MA*d + MB
// for pore diameter d in m.
type NusseltFit struct {
	CA, CB, MA, MB float64
}

func DefaultNusseltFit() NusseltFit {
	return NusseltFit{CA: -400, CB: 0.687, MA: 443.7, MB: 0.361}
}

// Properties are the per-point solid properties on a particular grid.
type Properties struct {
	Porosity, Diameter, Conductivity, Albedo []float64
	Extinction                               []float64
	Cmult, Mpow                              []float64
}

// Evaluate lays the material out on grid z. The extinction coefficient follows
// Hsu & Howell (1992) for PSZ foams, 3(1-porosity)/d.
func (m Material) Evaluate(z []float64, fit NusseltFit) (p *Properties) {
	var (
		n = len(z)
	)
	p = &Properties{
		Porosity:     make([]float64, n),
		Diameter:     make([]float64, n),
		Conductivity: make([]float64, n),
		Albedo:       make([]float64, n),
		Extinction:   make([]float64, n),
		Cmult:        make([]float64, n),
		Mpow:         make([]float64, n),
	}
	for i, zi := range z {
		p.Porosity[i] = utils.Blend(zi, m.ZMid, m.DZMid, m.Porosity[0], m.Porosity[1])
		p.Diameter[i] = utils.Blend(zi, m.ZMid, m.DZMid, m.Diameter[0], m.Diameter[1])
		p.Extinction[i] = 3 * (1 - p.Porosity[i]) / p.Diameter[i]
		p.Cmult[i] = fit.CA*p.Diameter[i] + fit.CB
		p.Mpow[i] = fit.MA*p.Diameter[i] + fit.MB
		p.Albedo[i] = utils.Step(zi, m.ZMid, m.Albedo[0], m.Albedo[1])
		p.Conductivity[i] = utils.Step(zi, m.ZMid, m.Conductivity[0], m.Conductivity[1])
	}
	return
}

// Hconv is the volumetric gas/solid heat transfer coefficient at point j,
// lambda*Nu/d^2 with Re based on the pore velocity and diameter.
func (p *Properties) Hconv(j int, rhou, visc, lambda float64) float64 {
	var (
		d  = p.Diameter[j]
		re = rhou * p.Porosity[j] * d / visc
	)
	if visc <= 0 || re <= 0 {
		return 0
	}
	nu := p.Cmult[j] * math.Pow(re, p.Mpow[j])
	return lambda * nu / (d * d)
}
