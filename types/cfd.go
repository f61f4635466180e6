package types

import "strings"

// BCFLAG is the nature of a boundary zone, written as the nature attribute
// of the zone in the case file.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Inlet
	BC_Outlet
	BC_Wall
	BC_Symmetry
)

var bcNatures = [...]string{
	BC_None:     "",
	BC_Inlet:    "inlet",
	BC_Outlet:   "outlet",
	BC_Wall:     "wall",
	BC_Symmetry: "symmetry",
}

var BCNameMap = map[string]BCFLAG{
	"inflow":   BC_Inlet,
	"in":       BC_Inlet,
	"inlet":    BC_Inlet,
	"out":      BC_Outlet,
	"outflow":  BC_Outlet,
	"outlet":   BC_Outlet,
	"wall":     BC_Wall,
	"symmetry": BC_Symmetry,
	"slip":     BC_Symmetry,
}

// NewBCFLAG accepts the nature names and the solver-style aliases, in any case.
func NewBCFLAG(name string) BCFLAG {
	return BCNameMap[strings.ToLower(strings.TrimSpace(name))]
}

func (bf BCFLAG) String() string {
	if int(bf) >= len(bcNatures) {
		return ""
	}
	return bcNatures[bf]
}
