package fsi

import (
	"strings"

	"github.com/notargets/casemodel/formula"
)

var timeSymbols = []formula.Symbol{
	{Name: "dt", Description: "time step"},
	{Name: "t", Description: "current time"},
	{Name: "nbIter", Description: "number of iteration"},
}

const matrixExamples = "m11 = 100;\nm22 = 100;\nm33 = 100;\n" +
	"m12 = 0;\nm13 = 0;\nm23 = 0;\nm21 = 0;\nm31 = 0;\nm32 = 0;"

func matrixSpec(kind string) formula.Spec {
	var required []formula.Symbol
	for _, ij := range []string{"11", "22", "33", "12", "13", "23", "21", "31", "32"} {
		required = append(required, formula.Symbol{
			Name:        "m" + ij,
			Description: kind + " matrix of the structure (" + ij[:1] + "," + ij[1:] + ")",
		})
	}
	return formula.Spec{
		Default:  "m11 = ;",
		Required: required,
		Symbols:  timeSymbols,
		Examples: matrixExamples,
	}
}

var (
	MassMatrixSpec      = matrixSpec("mass")
	StiffnessMatrixSpec = matrixSpec("stiffness")
	DampingMatrixSpec   = matrixSpec("damping")

	FluidForceSpec = formula.Spec{
		Default: "Fx = ",
		Required: []formula.Symbol{
			{Name: "Fx", Description: "Force applied to the structure along X"},
			{Name: "Fy", Description: "Force applied to the structure along Y"},
			{Name: "Fz", Description: "Force applied to the structure along Z"},
		},
		Symbols: append(append([]formula.Symbol{}, timeSymbols...),
			formula.Symbol{Name: "Fluid_Fx", Description: "Force of flow along X"},
			formula.Symbol{Name: "Fluid_Fy", Description: "Force of flow along Y"},
			formula.Symbol{Name: "Fluid_Fz", Description: "Force of flow along Z"},
		),
		Examples: "Fx = Fluid_Fx;\nFy = Fluid_Fy;\nFz = Fluid_Fz;",
	}
)

// DiagonalMatrix writes a formula for a diagonal matrix with constant terms.
func DiagonalMatrix(m11, m22, m33 string) string {
	var b strings.Builder
	for _, st := range [][2]string{
		{"m11", m11}, {"m22", m22}, {"m33", m33},
		{"m12", "0"}, {"m13", "0"}, {"m23", "0"},
		{"m21", "0"}, {"m31", "0"}, {"m32", "0"},
	} {
		b.WriteString(st[0] + " = " + st[1] + ";\n")
	}
	return b.String()
}
