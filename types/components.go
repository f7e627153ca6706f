package types

// Offsets of the fixed components within one point's block of the solution
// buffer. Species mass fractions follow, one slot per species.
const (
	C_Velocity = iota
	C_SpreadRate
	C_Temperature
	C_Lambda
	C_EField
	C_Species
)

var ComponentNames = []string{
	"velocity",
	"spread_rate",
	"T",
	"lambda",
	"eField",
}

// AllPoints selects every grid point in the per-point setters.
const AllPoints = -1
