package schema

import (
	"github.com/notargets/casemodel/xmlcase"
)

// NodeAccessor is the tree capability the schema model is composed with.
type NodeAccessor interface {
	Find(parent *xmlcase.Node, tag string, attrs ...xmlcase.Attr) *xmlcase.Node
	Ensure(parent *xmlcase.Node, tag string, attrs ...xmlcase.Attr) *xmlcase.Node
	Remove(parent, child *xmlcase.Node) bool
}

// Dependent is a node whose existence is governed by a discrete choice.
type Dependent struct {
	Tag   string
	Name  string
	Label string // default label written on creation, may be empty
}

// Dependents without a name are identified by their tag alone.
func (d Dependent) selector() []xmlcase.Attr {
	if d.Name == "" {
		return nil
	}
	return []xmlcase.Attr{xmlcase.Name(d.Name)}
}

type depKey struct{ tag, name string }

/*
Gate maps the values of one enumerated attribute to the ordered set of
child nodes each value requires. Values absent from the table govern no
nodes. Every operation is deterministic and returns nodes in table order,
whatever order they hold in the document.
*/
type Gate struct {
	Attr     string
	values   []string
	sets     map[string][]Dependent
	governed map[depKey]bool
}

// NewGate builds a gate. values fixes the order used when listing choices.
func NewGate(attr string, values []string, sets map[string][]Dependent) *Gate {
	g := &Gate{
		Attr:     attr,
		values:   values,
		sets:     sets,
		governed: make(map[depKey]bool),
	}
	for _, deps := range sets {
		for _, d := range deps {
			g.governed[depKey{d.Tag, d.Name}] = true
		}
	}
	return g
}

// Values lists every recognized choice.
func (g *Gate) Values() []string { return g.values }

func (g *Gate) Recognized(value string) bool {
	for _, v := range g.values {
		if v == value {
			return true
		}
	}
	return false
}

// Dependents returns the table row for value; nil for unknown values.
func (g *Gate) Dependents(value string) []Dependent {
	return g.sets[value]
}

// Governs reports whether some choice of the gate owns a tag/name pair.
func (g *Gate) Governs(tag, name string) bool {
	return g.governed[depKey{tag, name}]
}

// Ensure fetches or creates every dependent of value under parent.
func (g *Gate) Ensure(acc NodeAccessor, parent *xmlcase.Node, value string) []*xmlcase.Node {
	deps := g.Dependents(value)
	nodes := make([]*xmlcase.Node, 0, len(deps))
	for _, d := range deps {
		nodes = append(nodes, ensureDependent(acc, parent, d))
	}
	return nodes
}

func ensureDependent(acc NodeAccessor, parent *xmlcase.Node, d Dependent) *xmlcase.Node {
	if n := acc.Find(parent, d.Tag, d.selector()...); n != nil {
		return n
	}
	attrs := d.selector()
	if d.Label != "" {
		attrs = append(attrs, xmlcase.Label(d.Label))
	}
	return acc.Ensure(parent, d.Tag, attrs...)
}

// Find returns the dependents of value without creating anything; missing
// nodes are nil entries.
func (g *Gate) Find(acc NodeAccessor, parent *xmlcase.Node, value string) []*xmlcase.Node {
	deps := g.Dependents(value)
	nodes := make([]*xmlcase.Node, len(deps))
	for i, d := range deps {
		nodes[i] = acc.Find(parent, d.Tag, d.selector()...)
	}
	return nodes
}

// Stale lists governed children of parent that value does not require.
func (g *Gate) Stale(parent *xmlcase.Node, value string) (stale []*xmlcase.Node) {
	keep := make(map[depKey]bool)
	for _, d := range g.Dependents(value) {
		keep[depKey{d.Tag, d.Name}] = true
	}
	for _, child := range parent.Children() {
		k := depKey{child.Tag(), child.Get("name")}
		if g.governed[k] && !keep[k] {
			stale = append(stale, child)
		}
	}
	return
}

// Prune removes the stale children of parent and returns them.
func (g *Gate) Prune(acc NodeAccessor, parent *xmlcase.Node, value string) []*xmlcase.Node {
	stale := g.Stale(parent, value)
	for _, n := range stale {
		acc.Remove(parent, n)
	}
	return stale
}
