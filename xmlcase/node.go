package xmlcase

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Attr selects or initialises an attribute when looking up a child node.
// A selector built with Has only requires the attribute to be present.
type Attr struct {
	Key   string
	Value string
	any   bool
}

// With matches children whose attribute key equals value.
func With(key, value string) Attr { return Attr{Key: key, Value: value} }

// Name is shorthand for With("name", value), the usual disambiguator.
func Name(value string) Attr { return With("name", value) }

// Label is shorthand for With("label", value).
func Label(value string) Attr { return With("label", value) }

// Has matches children carrying the attribute, whatever its value.
func Has(key string) Attr { return Attr{Key: key, any: true} }

func (a Attr) String() string {
	if a.any {
		return "@" + a.Key
	}
	return fmt.Sprintf("@%s='%s'", a.Key, a.Value)
}

/*
Node is one element of the case document. It is a thin handle over the
underlying tree element: two handles obtained by separate lookups refer to
the same element when Same reports true.
*/
type Node struct {
	el *etree.Element
}

func wrap(el *etree.Element) *Node {
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// Element exposes the underlying tree element.
func (n *Node) Element() *etree.Element { return n.el }

// Same reports whether both handles refer to the same tree element.
func (n *Node) Same(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.el == o.el
}

func (n *Node) Tag() string { return n.el.Tag }

// Get returns the attribute value, or "" when absent.
func (n *Node) Get(key string) string { return n.el.SelectAttrValue(key, "") }

func (n *Node) Has(key string) bool { return n.el.SelectAttr(key) != nil }

func (n *Node) Set(key, value string) { n.el.CreateAttr(key, value) }

func (n *Node) Del(key string) { n.el.RemoveAttr(key) }

func (n *Node) Text() string { return strings.TrimSpace(n.el.Text()) }

func (n *Node) SetText(text string) { n.el.SetText(text) }

/*
ToInt reads a base-10 integer as the solver writes it. Leading zeros are
ignored rather than read as octal, and prefixed forms like 0x10 or digit
separators are rejected.
*/
func ToInt(s string) (int, error) {
	digits := strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if digits == "" || strings.ContainsAny(digits, "_xXoObB") {
		return 0, errors.Errorf("%q is not a decimal integer", s)
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		digits = "0"
	}
	v, err := cast.ToIntE(sign + digits)
	if err != nil {
		return 0, errors.Errorf("%q is not a decimal integer", s)
	}
	return v, nil
}

// Int parses the node text, falling back to dflt when empty or malformed.
func (n *Node) Int(dflt int) int {
	v, err := ToInt(n.Text())
	if err != nil {
		return dflt
	}
	return v
}

// AttrInt parses an integer attribute, falling back to dflt when absent or malformed.
func (n *Node) AttrInt(key string, dflt int) int {
	v, err := ToInt(n.Get(key))
	if err != nil {
		return dflt
	}
	return v
}

// Float parses the node text, falling back to dflt when empty or malformed.
func (n *Node) Float(dflt float64) float64 {
	v, err := cast.ToFloat64E(n.Text())
	if err != nil || n.Text() == "" {
		return dflt
	}
	return v
}

func (n *Node) SetInt(v int) { n.SetText(cast.ToString(v)) }

func (n *Node) SetFloat(v float64) { n.SetText(cast.ToString(v)) }

// Status reads an on/off status attribute.
func (n *Node) Status() bool { return n.Get("status") == "on" }

func (n *Node) SetStatus(on bool) {
	if on {
		n.Set("status", "on")
		return
	}
	n.Set("status", "off")
}

func (n *Node) Parent() *Node { return wrap(n.el.Parent()) }

// Children returns the child elements in document order.
func (n *Node) Children() []*Node {
	els := n.el.ChildElements()
	nodes := make([]*Node, len(els))
	for i, el := range els {
		nodes[i] = wrap(el)
	}
	return nodes
}

// Path is an XPath-like locator used in logs and warnings.
func (n *Node) Path() string {
	var parts []string
	for el := n.el; el != nil && el.Tag != ""; el = el.Parent() {
		part := el.Tag
		for _, key := range []string{"name", "label", "id"} {
			if v := el.SelectAttrValue(key, ""); v != "" {
				part += fmt.Sprintf("[@%s='%s']", key, v)
				break
			}
		}
		parts = append([]string{part}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}

func matches(el *etree.Element, tag string, attrs []Attr) bool {
	if el.Tag != tag {
		return false
	}
	for _, a := range attrs {
		at := el.SelectAttr(a.Key)
		if at == nil {
			return false
		}
		if !a.any && at.Value != a.Value {
			return false
		}
	}
	return true
}

// Find returns the first direct child matching tag and attrs, or nil.
// It never modifies the tree.
func (n *Node) Find(tag string, attrs ...Attr) *Node {
	for _, el := range n.el.ChildElements() {
		if matches(el, tag, attrs) {
			return wrap(el)
		}
	}
	return nil
}

// FindAll returns every direct child matching tag and attrs.
func (n *Node) FindAll(tag string, attrs ...Attr) (nodes []*Node) {
	for _, el := range n.el.ChildElements() {
		if matches(el, tag, attrs) {
			nodes = append(nodes, wrap(el))
		}
	}
	return
}

// FindDescendant searches the subtree depth first, in document order.
func (n *Node) FindDescendant(tag string, attrs ...Attr) *Node {
	for _, el := range n.el.ChildElements() {
		if matches(el, tag, attrs) {
			return wrap(el)
		}
		if found := wrap(el).FindDescendant(tag, attrs...); found != nil {
			return found
		}
	}
	return nil
}

// FindAllDescendants collects every matching node of the subtree in document order.
func (n *Node) FindAllDescendants(tag string, attrs ...Attr) (nodes []*Node) {
	for _, el := range n.el.ChildElements() {
		if matches(el, tag, attrs) {
			nodes = append(nodes, wrap(el))
		}
		nodes = append(nodes, wrap(el).FindAllDescendants(tag, attrs...)...)
	}
	return
}

/*
Ensure returns the first direct child matching tag and attrs, creating it
when absent. A created node carries every selector attribute; selectors
built with Has are created with an empty value. Ensure is not read-only:
callers that must not modify the tree use Find.
*/
func (n *Node) Ensure(tag string, attrs ...Attr) *Node {
	if found := n.Find(tag, attrs...); found != nil {
		return found
	}
	return n.Create(tag, attrs...)
}

// Create appends a new child unconditionally.
func (n *Node) Create(tag string, attrs ...Attr) *Node {
	el := n.el.CreateElement(tag)
	for _, a := range attrs {
		el.CreateAttr(a.Key, a.Value)
	}
	return wrap(el)
}

// Remove detaches child from n. It reports false when child is not a direct child.
func (n *Node) Remove(child *Node) bool {
	if child == nil || child.el.Parent() != n.el {
		return false
	}
	return n.el.RemoveChild(child.el) != nil
}

// Tree is the default node accessor, operating directly on the document.
type Tree struct{}

func (Tree) Find(parent *Node, tag string, attrs ...Attr) *Node {
	return parent.Find(tag, attrs...)
}

func (Tree) Ensure(parent *Node, tag string, attrs ...Attr) *Node {
	return parent.Ensure(tag, attrs...)
}

func (Tree) Remove(parent, child *Node) bool {
	return parent.Remove(child)
}
