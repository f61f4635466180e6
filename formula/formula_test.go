package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forceSpec = Spec{
	Default: "Fx = ",
	Required: []Symbol{
		{"Fx", "Force applied to the structure along X"},
		{"Fy", "Force applied to the structure along Y"},
		{"Fz", "Force applied to the structure along Z"},
	},
	Symbols: []Symbol{
		{"dt", "time step"},
		{"t", "current time"},
		{"Fluid_Fx", "Force of flow along X"},
		{"Fluid_Fy", "Force of flow along Y"},
		{"Fluid_Fz", "Force of flow along Z"},
	},
}

func TestParse(t *testing.T) {
	stmts, err := Parse("a = 1;\n b = 2*a + sin(t);;")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "b", stmts[1].Name)
	assert.ElementsMatch(t, []string{"a", "t"}, stmts[1].Vars)

	_, err = Parse("a 1; 2b = 3; c = ;")
	require.Error(t, err)
	fe, ok := err.(*Error)
	require.True(t, ok)
	assert.Len(t, fe.Problems, 3)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("Fx = Fluid_Fx;\nFy = Fluid_Fy;\nFz = Fluid_Fz;", forceSpec))
	assert.NoError(t, Check("Fx = 0.5*Fluid_Fx; Fy = Fx; Fz = max(Fluid_Fz, 0);", forceSpec))
	{ // Default text is incomplete
		err := Check(forceSpec.Default, forceSpec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing expression for Fx")
		assert.Contains(t, err.Error(), "Fy")
	}
	{
		err := Check("Fx = Fluid_Fx; Fy = pressure; Fz = 0;", forceSpec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown symbol pressure")
	}
	{ // Names are only readable after assignment
		err := Check("Fy = Fx; Fx = 0; Fz = 0;", forceSpec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown symbol Fx")
	}
}
