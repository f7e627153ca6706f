package Flame1D

import (
	"fmt"

	"github.com/notargets/flame1d/types"
)

func (f *Flow) ComponentName(n int) string {
	switch {
	case n >= 0 && n < types.C_Species:
		return types.ComponentNames[n]
	case n >= types.C_Species && n < f.nv:
		return f.phase.SpeciesName(n - types.C_Species)
	}
	return "<unknown>"
}

func (f *Flow) ComponentIndex(name string) (n int, err error) {
	for n = 0; n < f.nv; n++ {
		if f.ComponentName(n) == name {
			return
		}
	}
	return -1, fmt.Errorf("%q: %w", name, types.ErrUnknownComponent)
}

// ComponentActive is false for slots that carry no physics in this flow type.
func (f *Flow) ComponentActive(n int) bool {
	switch n {
	case types.C_SpreadRate, types.C_Lambda:
		return f.Type != types.FreeFlow
	case types.C_EField:
		return false
	}
	return true
}
