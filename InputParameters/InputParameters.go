package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/notargets/casemodel/averages"
	"github.com/notargets/casemodel/fsi"
	"github.com/notargets/casemodel/schema"
	"github.com/notargets/casemodel/types"
	"github.com/notargets/casemodel/xmlcase"
)

// Parameters obtained from the YAML case setup file
type CaseParameters struct {
	Title           string                        `json:"Title"`
	Study           string                        `json:"Study"`
	TurbulenceModel string                        `json:"TurbulenceModel"`
	Averages        []AverageParameters           `json:"Averages"`
	ALE             ALEParameters                 `json:"ALE"`
	BCs             map[string]BoundaryParameters `json:"BCs"` // Key is the boundary zone label
}

type AverageParameters struct {
	Label     string   `json:"Label"`
	Start     int      `json:"Start"`
	Restart   int      `json:"Restart"`
	Variables []string `json:"Variables"`
}

type ALEParameters struct {
	Enabled                             bool     `json:"Enabled"`
	MaxIterations                       int      `json:"MaxIterations"`
	Precision                           float64  `json:"Precision"`
	DisplacementPredictionAlpha         *float64 `json:"DisplacementPredictionAlpha"`
	DisplacementPredictionBeta          *float64 `json:"DisplacementPredictionBeta"`
	StressPredictionAlpha               *float64 `json:"StressPredictionAlpha"`
	MonitorPointSynchronisation         bool     `json:"MonitorPointSynchronisation"`
	ExternalCouplingPostSynchronization bool     `json:"ExternalCouplingPostSynchronization"`
}

type BoundaryParameters struct {
	Nature                  string    `json:"Nature"`
	ALE                     string    `json:"ALE"`
	InitialDisplacement     []float64 `json:"InitialDisplacement"`
	EquilibriumDisplacement []float64 `json:"EquilibriumDisplacement"`
	InitialVelocity         []float64 `json:"InitialVelocity"`
	MassMatrix              string    `json:"MassMatrix"`
	StiffnessMatrix         string    `json:"StiffnessMatrix"`
	DampingMatrix           string    `json:"DampingMatrix"`
	FluidForce              string    `json:"FluidForce"`
	DDL                     []string  `json:"DDL"` // Free axes of an external coupling: X, Y, Z
}

func (ip *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *CaseParameters) sortedBCs() (keys []string) {
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (ip *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("\"%s\"\t\t= Study\n", ip.Study)
	fmt.Printf("[%s]\t\t= Turbulence Model\n", ip.TurbulenceModel)
	for _, a := range ip.Averages {
		fmt.Printf("Average[%s] = <%s> from step %d\n", a.Label, strings.Join(a.Variables, "*"), a.Start)
	}
	if ip.ALE.Enabled {
		fmt.Printf("[%d]\t\t\t\t= ALE Max Iterations\n", ip.ALE.MaxIterations)
		fmt.Printf("%8.5g\t\t= ALE Precision\n", ip.ALE.Precision)
	}
	for _, key := range ip.sortedBCs() {
		bc := ip.BCs[key]
		fmt.Printf("BCs[%s] = %s, ALE: %s\n", key, bc.Nature, bc.ALE)
	}
}

// NewCase builds a case document from the parameters.
func (ip *CaseParameters) NewCase() (c *xmlcase.Case, err error) {
	c = xmlcase.New(ip.Study, ip.Title)
	if err = ip.Apply(c); err != nil {
		return nil, err
	}
	return
}

// Apply writes the parameters into c, initialising the base structure first.
func (ip *CaseParameters) Apply(c *xmlcase.Case) (err error) {
	schema.Init(c)
	if ip.Study != "" {
		c.Root().Set("study", ip.Study)
	}
	if ip.Title != "" {
		c.Root().Set("case", ip.Title)
	}
	sm := schema.NewModel(c)
	if ip.TurbulenceModel != "" {
		tm := schema.ParseTurbulenceModel(ip.TurbulenceModel)
		if !tm.Selectable() {
			return errors.Errorf("unrecognized turbulence model %q", ip.TurbulenceModel)
		}
		if err = sm.SetTurbulenceModel(tm); err != nil {
			return
		}
	} else if _, err = sm.TurbulenceNodes(); err != nil {
		return
	}
	if err = ip.applyALE(fsi.New(c)); err != nil {
		return
	}
	return ip.applyAverages(averages.New(c))
}

func (ip *CaseParameters) applyAverages(am *averages.Model) error {
	available := make(map[string]bool)
	for _, name := range am.Available() {
		available[name] = true
	}
	for _, a := range ip.Averages {
		for _, v := range a.Variables {
			if !available[v] {
				return errors.Errorf("average %q: field %q is not defined in the case", a.Label, v)
			}
		}
		if _, err := am.Add(averages.Average{
			Label:     a.Label,
			Start:     a.Start,
			Restart:   a.Restart,
			Variables: a.Variables,
		}); err != nil {
			return errors.Wrapf(err, "average %q", a.Label)
		}
	}
	return nil
}

func (ip *CaseParameters) applyALE(fm *fsi.Model) (err error) {
	ale := ip.ALE
	fm.SetEnabled(ale.Enabled)
	if ale.MaxIterations != 0 {
		if err = fm.SetMaxIterations(ale.MaxIterations); err != nil {
			return
		}
	}
	if ale.Precision != 0 {
		if err = fm.SetPrecision(ale.Precision); err != nil {
			return
		}
	}
	for _, p := range []struct {
		v   *float64
		set func(float64) error
	}{
		{ale.DisplacementPredictionAlpha, fm.SetDisplacementPredictionAlpha},
		{ale.DisplacementPredictionBeta, fm.SetDisplacementPredictionBeta},
		{ale.StressPredictionAlpha, fm.SetStressPredictionAlpha},
	} {
		if p.v == nil {
			continue
		}
		if err = p.set(*p.v); err != nil {
			return
		}
	}
	fm.SetMonitorPointSynchronisation(ale.MonitorPointSynchronisation)
	fm.SetExternalCouplingPostSynchronization(ale.ExternalCouplingPostSynchronization)
	for _, label := range ip.sortedBCs() {
		if err = applyBoundary(fm, label, ip.BCs[label]); err != nil {
			return errors.Wrapf(err, "boundary %q", label)
		}
	}
	return
}

func vector(v []float64) (fsi.Vector, error) {
	if len(v) != 3 {
		return fsi.Vector{}, errors.Errorf("vector %v must have 3 components", v)
	}
	return fsi.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

func applyBoundary(fm *fsi.Model, label string, bp BoundaryParameters) (err error) {
	nature := types.NewBCFLAG(bp.Nature)
	if _, err = fm.AddZone(label, nature); err != nil {
		return
	}
	if bp.ALE == "" {
		return
	}
	choice := fsi.ParseALEChoice(bp.ALE)
	if choice == fsi.ALEUnrecognized {
		return errors.Errorf("unrecognized ALE choice %q", bp.ALE)
	}
	b, err := fm.Boundary(label)
	if err != nil {
		return
	}
	if err = b.SetChoice(choice); err != nil {
		return
	}
	for _, vp := range []struct {
		v   []float64
		set func(fsi.Vector) error
	}{
		{bp.InitialDisplacement, b.SetInitialDisplacement},
		{bp.EquilibriumDisplacement, b.SetEquilibriumDisplacement},
		{bp.InitialVelocity, b.SetInitialVelocity},
	} {
		if vp.v == nil {
			continue
		}
		var v fsi.Vector
		if v, err = vector(vp.v); err != nil {
			return
		}
		if err = vp.set(v); err != nil {
			return
		}
	}
	for _, fp := range []struct {
		text string
		set  func(string) error
	}{
		{bp.MassMatrix, b.SetMassMatrix},
		{bp.StiffnessMatrix, b.SetStiffnessMatrix},
		{bp.DampingMatrix, b.SetDampingMatrix},
		{bp.FluidForce, b.SetFluidForce},
	} {
		if fp.text == "" {
			continue
		}
		if err = fp.set(fp.text); err != nil {
			return
		}
	}
	for _, axis := range bp.DDL {
		var a fsi.Axis
		switch strings.ToUpper(axis) {
		case "X":
			a = fsi.X
		case "Y":
			a = fsi.Y
		case "Z":
			a = fsi.Z
		default:
			return errors.Errorf("unknown axis %q", axis)
		}
		if err = b.SetDDL(a, true); err != nil {
			return
		}
	}
	return
}
