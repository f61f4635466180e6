package averages

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/notargets/casemodel/schema"
	"github.com/notargets/casemodel/xmlcase"
)

const (
	averageTag = "time_average"
	varTag     = "var_prop"
	startTag   = "time_step_start"
	restartTag = "restart_from_time_average"

	RestartMin = -2
	RestartMax = 50
)

var (
	ErrNotFound = errors.New("time average not found")
	ErrInvalid  = errors.New("invalid time average")

	labelRx = regexp.MustCompile(fmt.Sprintf(`^[\-_A-Za-z0-9]{1,%d}$`, xmlcase.LabelLengthMax))
)

// Average is one time-averaged output field: the product of Variables
// accumulated from time step Start on.
type Average struct {
	ID        int
	Label     string
	Start     int
	Restart   int // average of the restart file to continue from, 0 when not restarting
	Variables []string
}

func (a Average) validate() error {
	if !labelRx.MatchString(a.Label) {
		return errors.Wrapf(ErrInvalid, "label %q must match %s", a.Label, labelRx)
	}
	if a.Start < 1 {
		return errors.Wrapf(ErrInvalid, "start time step %d must be at least 1", a.Start)
	}
	if a.Restart < RestartMin || a.Restart > RestartMax {
		return errors.Wrapf(ErrInvalid, "restart average %d outside [%d, %d]", a.Restart, RestartMin, RestartMax)
	}
	if len(a.Variables) == 0 {
		return errors.Wrap(ErrInvalid, "at least one variable or property must be selected")
	}
	return nil
}

// Model edits the time averages of a case.
type Model struct {
	c    *xmlcase.Case
	node *xmlcase.Node
	Log  logrus.FieldLogger
}

// New returns the model, creating the time averages container when needed.
func New(c *xmlcase.Case) *Model {
	return &Model{
		c:    c,
		node: c.Ensure("analysis_control").Ensure("time_averages"),
		Log:  logrus.StandardLogger(),
	}
}

func (m *Model) entries() []*xmlcase.Node {
	return m.node.FindAll(averageTag)
}

func (m *Model) entry(id int) *xmlcase.Node {
	return m.node.Find(averageTag, xmlcase.With("id", strconv.Itoa(id)))
}

// List returns the average ids in document order.
func (m *Model) List() (ids []int) {
	for _, n := range m.entries() {
		ids = append(ids, n.AttrInt("id", 0))
	}
	return
}

func (m *Model) Labels() (labels []string) {
	for _, n := range m.entries() {
		labels = append(labels, n.Get("label"))
	}
	return
}

func (m *Model) labelTaken(label string) bool {
	for _, l := range m.Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// Available lists the names of every variable and property of the case,
// the fields an average can be built from.
func (m *Model) Available() (names []string) {
	seen := make(map[string]bool)
	for _, tag := range []string{schema.VariableTag, schema.PropertyTag} {
		for _, n := range m.c.Root().FindAllDescendants(tag) {
			name := n.Get("name")
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return
}

func read(n *xmlcase.Node) Average {
	a := Average{
		ID:    n.AttrInt("id", 0),
		Label: n.Get("label"),
		Start: 1,
	}
	if s := n.Find(startTag); s != nil {
		a.Start = s.Int(1)
	}
	if r := n.Find(restartTag); r != nil {
		a.Restart = r.Int(0)
	}
	for _, v := range n.FindAll(varTag) {
		a.Variables = append(a.Variables, v.Get("name"))
	}
	return a
}

func write(n *xmlcase.Node, a Average) {
	for _, child := range n.Children() {
		n.Remove(child)
	}
	n.Set("id", strconv.Itoa(a.ID))
	n.Set("label", a.Label)
	for _, v := range a.Variables {
		n.Create(varTag, xmlcase.Name(v))
	}
	n.Create(startTag).SetInt(a.Start)
	if a.Restart != 0 {
		n.Create(restartTag).SetInt(a.Restart)
	}
}

func (m *Model) Get(id int) (Average, error) {
	n := m.entry(id)
	if n == nil {
		return Average{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return read(n), nil
}

// Add appends a new average numbered after the highest existing id. An
// empty label becomes "Average<id>" and a zero start becomes 1.
func (m *Model) Add(a Average) (Average, error) {
	a.ID = 1
	for _, id := range m.List() {
		a.ID = max(a.ID, id+1)
	}
	if a.Label == "" {
		a.Label = "Average" + strconv.Itoa(a.ID)
	}
	if a.Start == 0 {
		a.Start = 1
	}
	if m.labelTaken(a.Label) {
		return Average{}, errors.Wrapf(ErrInvalid, "label %q already exists", a.Label)
	}
	if err := a.validate(); err != nil {
		return Average{}, err
	}
	write(m.node.Create(averageTag), a)
	m.Log.WithFields(logrus.Fields{"id": a.ID, "label": a.Label}).Debug("added time average")
	return a, nil
}

// Replace rewrites average id. The previous label is kept when the new
// one is empty or belongs to another average.
func (m *Model) Replace(id int, a Average) (Average, error) {
	n := m.entry(id)
	if n == nil {
		return Average{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	old := read(n)
	a.ID = id
	if a.Label == "" {
		a.Label = old.Label
	} else if a.Label != old.Label && m.labelTaken(a.Label) {
		m.Log.WithFields(logrus.Fields{"id": id, "label": a.Label}).Warn("label already exists, keeping the old one")
		a.Label = old.Label
	}
	if a.Start == 0 {
		a.Start = old.Start
	}
	if err := a.validate(); err != nil {
		return Average{}, err
	}
	write(n, a)
	return a, nil
}

// Delete removes average id and renumbers the following ones so ids stay contiguous.
func (m *Model) Delete(id int) error {
	n := m.entry(id)
	if n == nil {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	m.node.Remove(n)
	for _, e := range m.entries() {
		if other := e.AttrInt("id", 0); other > id {
			e.Set("id", strconv.Itoa(other-1))
		}
	}
	m.Log.WithFields(logrus.Fields{"id": id}).Debug("deleted time average")
	return nil
}

// Check reports averages built on fields the case no longer defines, for
// instance after a turbulence model change, and broken numbering.
func Check(c *xmlcase.Case) (warnings []schema.Warning) {
	container := c.Find("time_averages")
	if container == nil {
		return nil
	}
	m := &Model{c: c, node: container}
	available := make(map[string]bool)
	for _, name := range m.Available() {
		available[name] = true
	}
	seen := make(map[string]bool)
	for i, n := range m.entries() {
		a := read(n)
		if a.ID != i+1 {
			warnings = append(warnings, schema.Warning{
				Path:    n.Path(),
				Message: fmt.Sprintf("average id %d found at position %d", a.ID, i+1),
			})
		}
		if seen[a.Label] {
			warnings = append(warnings, schema.Warning{Path: n.Path(), Message: fmt.Sprintf("duplicate label %q", a.Label)})
		}
		seen[a.Label] = true
		for _, v := range a.Variables {
			if !available[v] {
				warnings = append(warnings, schema.Warning{
					Path:    n.Path(),
					Message: fmt.Sprintf("averaged field %q is not defined in the case", v),
				})
			}
		}
	}
	return
}
