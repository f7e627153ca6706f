package thermo

const (
	GasConstant = 8314.46261815324 // J/kmol/K
	OneAtm      = 101325.          // Pa
	TRef        = 298.15
	IdealGasTag = "IdealGas"
)

// PointState is the full thermodynamic state of one grid point or face. Mass
// fractions are not required to sum to one.
type PointState struct {
	T, P float64
	Y    []float64
}

// Phase evaluates equation-of-state properties. Every method takes the state
// it is evaluated at, so implementations hold no current-point cursor.
type Phase interface {
	Type() string
	NSpecies() int
	SpeciesName(k int) string
	SpeciesIndex(name string) int // -1 if absent
	MolecularWeights() []float64
	MaxTemp() float64
	MeanMolecularWeight(s PointState) float64
	Density(s PointState) float64
	CpMass(s PointState) float64
	EnthalpyRTRef(T float64, hRT []float64)
	CpRRef(T float64, cpR []float64)
}

type Kinetics interface {
	NetProductionRates(s PointState, wdot []float64) // kmol/m^3/s
}

type Closure uint8

const (
	MixtureAveraged Closure = iota
	Multicomponent
)

func (c Closure) String() string {
	switch c {
	case Multicomponent:
		return "multicomponent"
	default:
		return "mixture-averaged"
	}
}

type Transport interface {
	Closure() Closure
	Viscosity(s PointState) float64
	ThermalConductivity(s PointState) float64
	MixDiffCoeffs(s PointState, d []float64)
	// MultiDiffCoeffs fills d[k*nsp+m] = D_km.
	MultiDiffCoeffs(s PointState, d []float64)
	ThermalDiffCoeffs(s PointState, dt []float64)
}
