package schema

import (
	"github.com/sirupsen/logrus"

	"github.com/notargets/casemodel/xmlcase"
)

/*
Model answers schema queries over a case. It holds no state of its own
besides the cached models node: every query reads the document, so a change
made through one Model is visible to every other Model over the same case.

The Turbulence* accessors are not read-only. They create any node the
current model requires but the document lacks, and never delete anything.
*/
type Model struct {
	models *xmlcase.Node
	nodes  NodeAccessor
	log    logrus.FieldLogger
	strict bool
}

type Option func(*Model)

// WithAccessor replaces the tree accessor, for instance with one that records changes.
func WithAccessor(acc NodeAccessor) Option {
	return func(m *Model) { m.nodes = acc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Model) { m.log = log }
}

// Strict makes unrecognized enumeration values errors instead of empty results.
func Strict(strict bool) Option {
	return func(m *Model) { m.strict = strict }
}

func NewModel(c *xmlcase.Case, opts ...Option) *Model {
	m := &Model{
		models: c.Models(),
		nodes:  xmlcase.Tree{},
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init creates the structure every accessor relies on: the turbulence
// node with the default model, the time averages container, the ALE
// method node and the boundary conditions container. Existing nodes are kept.
func Init(c *xmlcase.Case) {
	turb := c.Models().Ensure(TurbulenceTag)
	if !turb.Has("model") {
		turb.Set("model", TurbKEpsilon.String())
	}
	c.Ensure("analysis_control").Ensure("time_averages")
	ale := c.Models().Ensure("ale_method")
	if !ale.Has("status") {
		ale.SetStatus(false)
	}
	c.Ensure("boundary_conditions")
}

// TurbulenceModel returns the turbulence node and its raw model value. No
// default is applied: an unset model comes back as "".
func (m *Model) TurbulenceModel() (node *xmlcase.Node, value string, err error) {
	if node = m.nodes.Find(m.models, TurbulenceTag); node == nil {
		return nil, "", &SchemaError{Parent: m.models.Path(), Tag: TurbulenceTag}
	}
	return node, node.Get("model"), nil
}

// Turbulence returns the typed model. In strict mode an unknown value is an error.
func (m *Model) Turbulence() (TurbulenceModel, error) {
	_, value, err := m.TurbulenceModel()
	if err != nil {
		return TurbUnset, err
	}
	tm := ParseTurbulenceModel(value)
	if tm == TurbUnrecognized && m.strict {
		return tm, unrecognized("turbulence model", value)
	}
	return tm, nil
}

func (m *Model) turbulenceNodes(tag string) (nodes []*xmlcase.Node, err error) {
	node, value, err := m.TurbulenceModel()
	if err != nil {
		return nil, err
	}
	if !turbulenceGate.Recognized(value) {
		if m.strict && value != "" {
			return nil, unrecognized("turbulence model", value)
		}
		return []*xmlcase.Node{}, nil
	}
	nodes = []*xmlcase.Node{}
	for _, d := range turbulenceGate.Dependents(value) {
		if tag != "" && d.Tag != tag {
			continue
		}
		existing := m.nodes.Find(node, d.Tag, xmlcase.Name(d.Name))
		n := ensureDependent(m.nodes, node, d)
		if existing == nil {
			m.log.WithFields(logrus.Fields{
				"tag":   d.Tag,
				"name":  d.Name,
				"model": value,
			}).Debug("created turbulence node")
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// TurbulenceVariables fetches or creates the variable nodes of the current model.
func (m *Model) TurbulenceVariables() ([]*xmlcase.Node, error) {
	return m.turbulenceNodes(VariableTag)
}

// TurbulenceProperties fetches or creates the property nodes of the current model.
func (m *Model) TurbulenceProperties() ([]*xmlcase.Node, error) {
	return m.turbulenceNodes(PropertyTag)
}

// TurbulenceNodes is the variables followed by the properties.
func (m *Model) TurbulenceNodes() ([]*xmlcase.Node, error) {
	return m.turbulenceNodes("")
}

// FindTurbulenceNode looks a variable or property up without creating it.
func (m *Model) FindTurbulenceNode(tag, name string) (*xmlcase.Node, error) {
	node, _, err := m.TurbulenceModel()
	if err != nil {
		return nil, err
	}
	return m.nodes.Find(node, tag, xmlcase.Name(name)), nil
}

/*
SetTurbulenceModel selects tm, removes the variable and property nodes
left over from the previous model and creates those tm needs. Nodes that
both models share keep their content.
*/
func (m *Model) SetTurbulenceModel(tm TurbulenceModel) (err error) {
	if !tm.Selectable() {
		return unrecognized("turbulence model", tm.String())
	}
	node, previous, err := m.TurbulenceModel()
	if err != nil {
		return err
	}
	node.Set("model", tm.String())
	for _, n := range turbulenceGate.Prune(m.nodes, node, tm.String()) {
		m.log.WithFields(logrus.Fields{
			"tag":      n.Tag(),
			"name":     n.Get("name"),
			"model":    tm.String(),
			"previous": previous,
		}).Debug("pruned turbulence node")
	}
	_, err = m.TurbulenceNodes()
	return err
}
