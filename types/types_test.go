package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowType(t *testing.T) {
	{ // Round trip through labels
		for _, label := range []string{"Free", "free flame", "Stagnation", "Porous Flow"} {
			ft, err := NewFlowType(label)
			require.NoError(t, err)
			name, err := ft.Name()
			require.NoError(t, err)
			back, err := NewFlowType(name)
			require.NoError(t, err)
			assert.Equal(t, ft, back)
		}
		name, _ := AxisymmetricStagnation.Name()
		assert.Equal(t, "Axisymmetric Stagnation", name)
	}
	{ // Unknown tags are rejected
		_, err := NewFlowType("burner")
		assert.True(t, errors.Is(err, ErrUnknownFlowType))
		_, err = FlowType(7).Name()
		assert.True(t, errors.Is(err, ErrUnknownFlowType))
		assert.Equal(t, "Unknown(7)", FlowType(7).Print())
	}
	{ // Go identifiers for logs and %v
		assert.Equal(t, "PorousMedia", PorousMedia.String())
		assert.Equal(t, "FreeFlow", fmt.Sprint(FreeFlow))
		assert.Equal(t, "FlowType(7)", FlowType(7).String())
	}
	{ // Structural components come first
		assert.Equal(t, C_Species, len(ComponentNames))
		assert.Equal(t, "T", ComponentNames[C_Temperature])
	}
}
