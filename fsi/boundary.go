package fsi

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/notargets/casemodel/formula"
	"github.com/notargets/casemodel/schema"
	"github.com/notargets/casemodel/types"
	"github.com/notargets/casemodel/xmlcase"
)

// ALEChoice is the mesh-motion treatment of one boundary zone.
type ALEChoice uint8

const (
	ALEFixedBoundary ALEChoice = iota
	ALESlidingBoundary
	ALEInternalCoupling
	ALEExternalCoupling
	ALEFixedVelocity
	ALEFixedDisplacement
	ALEUnrecognized
)

var aleChoices = [...]string{
	ALEFixedBoundary:     "fixed_boundary",
	ALESlidingBoundary:   "sliding_boundary",
	ALEInternalCoupling:  "internal_coupling",
	ALEExternalCoupling:  "external_coupling",
	ALEFixedVelocity:     "fixed_velocity",
	ALEFixedDisplacement: "fixed_displacement",
	ALEUnrecognized:      "unrecognized",
}

func (a ALEChoice) String() string {
	if int(a) >= len(aleChoices) {
		return aleChoices[ALEUnrecognized]
	}
	return aleChoices[a]
}

func ParseALEChoice(value string) ALEChoice {
	for a := ALEFixedBoundary; a < ALEUnrecognized; a++ {
		if aleChoices[a] == value {
			return a
		}
	}
	return ALEUnrecognized
}

const (
	initialDisplacementTag     = "initial_displacement"
	equilibriumDisplacementTag = "equilibrium_displacement"
	initialVelocityTag         = "initial_velocity"
	massMatrixTag              = "mass_matrix"
	stiffnessMatrixTag         = "stiffness_matrix"
	dampingMatrixTag           = "damping_matrix"
	fluidForceTag              = "fluid_force"
)

// Axis selects a structure degree of freedom.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	if a > Z {
		return "?"
	}
	return [...]string{"X", "Y", "Z"}[a]
}

func (a Axis) check() error {
	if a > Z {
		return errors.Errorf("unknown axis %d", a)
	}
	return nil
}

func (a Axis) ddlTag() string { return "DDL" + a.String() }

// aleGate lists the nodes each coupling choice requires under the ale node.
var aleGate = schema.NewGate("choice",
	[]string{
		ALEFixedBoundary.String(), ALESlidingBoundary.String(), ALEInternalCoupling.String(),
		ALEExternalCoupling.String(), ALEFixedVelocity.String(), ALEFixedDisplacement.String(),
	},
	map[string][]schema.Dependent{
		ALEInternalCoupling.String(): {
			{Tag: initialDisplacementTag},
			{Tag: equilibriumDisplacementTag},
			{Tag: initialVelocityTag},
			{Tag: massMatrixTag},
			{Tag: stiffnessMatrixTag},
			{Tag: dampingMatrixTag},
			{Tag: fluidForceTag},
		},
		ALEExternalCoupling.String(): {
			{Tag: X.ddlTag()},
			{Tag: Y.ddlTag()},
			{Tag: Z.ddlTag()},
		},
	})

var (
	ErrNoZone        = errors.New("boundary zone not found")
	ErrWrongCoupling = errors.New("boundary does not use this coupling")
)

// Zone is one boundary region of the mesh.
type Zone struct {
	Label  string
	Nature types.BCFLAG
}

// AddZone declares a boundary zone, or returns the existing one with that label.
func (m *Model) AddZone(label string, nature types.BCFLAG) (Zone, error) {
	if nature == types.BC_None {
		return Zone{}, errors.Errorf("zone %q has no boundary nature", label)
	}
	if n := m.bc.Find("boundary", xmlcase.Label(label)); n != nil {
		return Zone{Label: label, Nature: types.NewBCFLAG(n.Get("nature"))}, nil
	}
	n := m.bc.Create("boundary", xmlcase.Label(label), xmlcase.With("nature", nature.String()))
	n.Set("name", cast.ToString(len(m.bc.FindAll("boundary"))))
	return Zone{Label: label, Nature: nature}, nil
}

func (m *Model) Zones() (zones []Zone) {
	for _, n := range m.bc.FindAll("boundary") {
		zones = append(zones, Zone{Label: n.Get("label"), Nature: types.NewBCFLAG(n.Get("nature"))})
	}
	return
}

// Boundaries lists the labels of the zones using choice, in zone order.
func (m *Model) Boundaries(choice ALEChoice) (labels []string) {
	for _, z := range m.Zones() {
		if m.choiceOf(z) == choice {
			labels = append(labels, z.Label)
		}
	}
	return
}

// choiceOf reads the choice of a zone without creating anything; zones
// never edited are fixed boundaries.
func (m *Model) choiceOf(z Zone) ALEChoice {
	cond := m.nodes.Find(m.bc, z.Nature.String(), xmlcase.Label(z.Label))
	if cond == nil {
		return ALEFixedBoundary
	}
	ale := m.nodes.Find(cond, "ale")
	if ale == nil || !ale.Has("choice") {
		return ALEFixedBoundary
	}
	return ParseALEChoice(ale.Get("choice"))
}

// Boundary returns the coupling editor of a declared zone.
func (m *Model) Boundary(label string) (*Boundary, error) {
	zone := m.bc.Find("boundary", xmlcase.Label(label))
	if zone == nil {
		return nil, errors.Wrapf(ErrNoZone, "label %q", label)
	}
	nature := types.NewBCFLAG(zone.Get("nature"))
	if nature == types.BC_None {
		return nil, errors.Errorf("zone %q has unknown nature %q", label, zone.Get("nature"))
	}
	return &Boundary{
		Label:  label,
		Nature: nature,
		m:      m,
		node:   m.nodes.Ensure(m.bc, nature.String(), xmlcase.Label(label)),
	}, nil
}

// Boundary edits the structure coupling of one zone.
type Boundary struct {
	Label  string
	Nature types.BCFLAG
	m      *Model
	node   *xmlcase.Node
}

func (b *Boundary) ale() *xmlcase.Node {
	n := b.m.nodes.Ensure(b.node, "ale")
	if !n.Has("choice") {
		n.Set("choice", ALEFixedBoundary.String())
	}
	return n
}

// Choice returns the coupling choice, ALEUnrecognized for unknown values.
func (b *Boundary) Choice() ALEChoice {
	return ParseALEChoice(b.ale().Get("choice"))
}

// SetChoice selects the coupling, pruning the nodes of the previous one.
func (b *Boundary) SetChoice(choice ALEChoice) error {
	if choice >= ALEUnrecognized {
		return errors.Errorf("unrecognized ALE choice %d", choice)
	}
	ale := b.ale()
	ale.Set("choice", choice.String())
	for _, n := range aleGate.Prune(b.m.nodes, ale, choice.String()) {
		b.m.Log.WithFields(logrus.Fields{
			"boundary": b.Label,
			"tag":      n.Tag(),
			"choice":   choice.String(),
		}).Debug("pruned coupling node")
	}
	aleGate.Ensure(b.m.nodes, ale, choice.String())
	return nil
}

func (b *Boundary) coupling(choice ALEChoice, tag string) (*xmlcase.Node, error) {
	ale := b.ale()
	if got := ParseALEChoice(ale.Get("choice")); got != choice {
		return nil, errors.Wrapf(ErrWrongCoupling, "boundary %q uses %s, not %s", b.Label, got, choice)
	}
	return b.m.nodes.Ensure(ale, tag), nil
}

// Vector is a structure displacement or velocity.
type Vector struct {
	X, Y, Z float64
}

func (b *Boundary) vector(tag string) (v Vector, err error) {
	n, err := b.coupling(ALEInternalCoupling, tag)
	if err != nil {
		return
	}
	get := func(axis Axis) float64 {
		c := b.m.nodes.Ensure(n, axis.String())
		if c.Text() == "" {
			c.SetFloat(0)
		}
		return c.Float(0)
	}
	return Vector{X: get(X), Y: get(Y), Z: get(Z)}, nil
}

func (b *Boundary) setVector(tag string, v Vector) error {
	n, err := b.coupling(ALEInternalCoupling, tag)
	if err != nil {
		return err
	}
	b.m.nodes.Ensure(n, X.String()).SetFloat(v.X)
	b.m.nodes.Ensure(n, Y.String()).SetFloat(v.Y)
	b.m.nodes.Ensure(n, Z.String()).SetFloat(v.Z)
	return nil
}

func (b *Boundary) InitialDisplacement() (Vector, error) { return b.vector(initialDisplacementTag) }

func (b *Boundary) SetInitialDisplacement(v Vector) error {
	return b.setVector(initialDisplacementTag, v)
}

func (b *Boundary) EquilibriumDisplacement() (Vector, error) {
	return b.vector(equilibriumDisplacementTag)
}

func (b *Boundary) SetEquilibriumDisplacement(v Vector) error {
	return b.setVector(equilibriumDisplacementTag, v)
}

func (b *Boundary) InitialVelocity() (Vector, error) { return b.vector(initialVelocityTag) }

func (b *Boundary) SetInitialVelocity(v Vector) error {
	return b.setVector(initialVelocityTag, v)
}

// The formula getters return "" until a formula is set.
func (b *Boundary) formula(tag string) (string, error) {
	n, err := b.coupling(ALEInternalCoupling, tag)
	if err != nil {
		return "", err
	}
	return n.Text(), nil
}

func (b *Boundary) setFormula(tag, text string, spec formula.Spec) error {
	if err := formula.Check(text, spec); err != nil {
		return errors.Wrapf(err, "boundary %q %s", b.Label, tag)
	}
	n, err := b.coupling(ALEInternalCoupling, tag)
	if err != nil {
		return err
	}
	n.SetText(text)
	return nil
}

func (b *Boundary) MassMatrix() (string, error) { return b.formula(massMatrixTag) }

func (b *Boundary) SetMassMatrix(text string) error {
	return b.setFormula(massMatrixTag, text, MassMatrixSpec)
}

func (b *Boundary) StiffnessMatrix() (string, error) { return b.formula(stiffnessMatrixTag) }

func (b *Boundary) SetStiffnessMatrix(text string) error {
	return b.setFormula(stiffnessMatrixTag, text, StiffnessMatrixSpec)
}

func (b *Boundary) DampingMatrix() (string, error) { return b.formula(dampingMatrixTag) }

func (b *Boundary) SetDampingMatrix(text string) error {
	return b.setFormula(dampingMatrixTag, text, DampingMatrixSpec)
}

func (b *Boundary) FluidForce() (string, error) { return b.formula(fluidForceTag) }

func (b *Boundary) SetFluidForce(text string) error {
	return b.setFormula(fluidForceTag, text, FluidForceSpec)
}

// DDL reports whether the external structure code may move along axis.
func (b *Boundary) DDL(axis Axis) (bool, error) {
	if err := axis.check(); err != nil {
		return false, err
	}
	n, err := b.coupling(ALEExternalCoupling, axis.ddlTag())
	if err != nil {
		return false, err
	}
	if !n.Has("status") {
		n.SetStatus(false)
	}
	return n.Status(), nil
}

func (b *Boundary) SetDDL(axis Axis, on bool) error {
	if err := axis.check(); err != nil {
		return err
	}
	n, err := b.coupling(ALEExternalCoupling, axis.ddlTag())
	if err != nil {
		return err
	}
	n.SetStatus(on)
	return nil
}

func formatFloat(v float64) string { return cast.ToString(v) }

// Check reports unknown coupling choices, nodes left by a previous choice,
// stored formulas that no longer pass their check and couplings declared
// while the ALE method is off.
func Check(c *xmlcase.Case) (warnings []schema.Warning) {
	bc := c.Find("boundary_conditions")
	if bc == nil {
		return nil
	}
	aleOn := false
	if ale := c.Models().Find(aleTag); ale != nil {
		aleOn = ale.Status()
	}
	specs := []struct {
		tag  string
		spec formula.Spec
	}{
		{massMatrixTag, MassMatrixSpec},
		{stiffnessMatrixTag, StiffnessMatrixSpec},
		{dampingMatrixTag, DampingMatrixSpec},
		{fluidForceTag, FluidForceSpec},
	}
	for _, zone := range bc.FindAll("boundary") {
		label := zone.Get("label")
		nature := types.NewBCFLAG(zone.Get("nature"))
		if nature == types.BC_None {
			warnings = append(warnings, schema.Warning{
				Path:    zone.Path(),
				Message: fmt.Sprintf("unknown boundary nature %q", zone.Get("nature")),
			})
			continue
		}
		cond := bc.Find(nature.String(), xmlcase.Label(label))
		if cond == nil {
			continue
		}
		ale := cond.Find("ale")
		if ale == nil {
			continue
		}
		// A missing choice reads as a fixed boundary
		value := ALEFixedBoundary.String()
		if ale.Has("choice") {
			value = ale.Get("choice")
		}
		choice := ParseALEChoice(value)
		if choice == ALEUnrecognized {
			warnings = append(warnings, schema.Warning{
				Path:    ale.Path(),
				Message: fmt.Sprintf("unrecognized ALE choice %q", value),
			})
			continue
		}
		if !aleOn && (choice == ALEInternalCoupling || choice == ALEExternalCoupling) {
			warnings = append(warnings, schema.Warning{
				Path:    ale.Path(),
				Message: fmt.Sprintf("%s declared while the ALE method is off", choice),
			})
		}
		for _, n := range aleGate.Stale(ale, value) {
			warnings = append(warnings, schema.Warning{
				Path:    n.Path(),
				Message: fmt.Sprintf("<%s> is not used by ALE choice %q", n.Tag(), value),
			})
		}
		if choice != ALEInternalCoupling {
			continue
		}
		for _, f := range specs {
			n := ale.Find(f.tag)
			if n == nil || n.Text() == "" {
				continue
			}
			if err := formula.Check(n.Text(), f.spec); err != nil {
				warnings = append(warnings, schema.Warning{Path: n.Path(), Message: err.Error()})
			}
		}
	}
	return
}
