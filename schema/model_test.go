package schema

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/casemodel/xmlcase"
)

func newCase(model string) (*xmlcase.Case, *xmlcase.Node) {
	c := xmlcase.New("study", "case")
	turb := c.Models().Create(TurbulenceTag, xmlcase.With("model", model))
	return c, turb
}

func names(nodes []*xmlcase.Node) (out []string) {
	out = []string{}
	for _, n := range nodes {
		out = append(out, n.Get("name"))
	}
	return
}

func TestTurbulenceTables(t *testing.T) {
	expectedVars := map[string][]string{
		"k-epsilon":       {"turb_k", "turb_eps"},
		"k-epsilon-PL":    {"turb_k", "turb_eps"},
		"Rij-epsilon":     {"component_R11", "component_R22", "component_R33", "component_R12", "component_R13", "component_R23", "turb_eps"},
		"Rij-SSG":         {"component_R11", "component_R22", "component_R33", "component_R12", "component_R13", "component_R23", "turb_eps"},
		"v2f-phi":         {"turb_k", "turb_eps", "turb_phi", "turb_fb"},
		"k-omega-SST":     {"turb_k", "turb_omega"},
		"mixing_length":   {},
		"LES_Smagorinsky": {},
		"LES_dynamique":   {},
	}
	expectedProps := map[string][]string{
		"k-epsilon":       {"turb_viscosity"},
		"k-epsilon-PL":    {"turb_viscosity"},
		"Rij-epsilon":     {"turb_viscosity"},
		"Rij-SSG":         {"turb_viscosity"},
		"v2f-phi":         {"turb_viscosity"},
		"k-omega-SST":     {"turb_viscosity"},
		"mixing_length":   {"turb_viscosity"},
		"LES_Smagorinsky": {"smagorinsky_constant"},
		"LES_dynamique":   {"smagorinsky_constant"},
	}
	for _, tm := range TurbulenceModels() {
		value := tm.String()
		assert.Equal(t, tm, ParseTurbulenceModel(value))
		c, _ := newCase(value)
		m := NewModel(c)
		vars, err := m.TurbulenceVariables()
		require.NoError(t, err)
		assert.Equal(t, expectedVars[value], names(vars), value)
		props, err := m.TurbulenceProperties()
		require.NoError(t, err)
		assert.Equal(t, expectedProps[value], names(props), value)
		all, err := m.TurbulenceNodes()
		require.NoError(t, err)
		assert.Equal(t, append(append([]string{}, expectedVars[value]...), expectedProps[value]...), names(all), value)
	}
	assert.Len(t, TurbulenceModels(), 9)
}

func TestUnrecognizedAndUnsetModels(t *testing.T) {
	for _, value := range []string{"", "k-eps", "LES", "K-EPSILON"} {
		c, turb := newCase(value)
		m := NewModel(c)
		node, got, err := m.TurbulenceModel()
		require.NoError(t, err)
		assert.True(t, turb.Same(node))
		assert.Equal(t, value, got)
		vars, err := m.TurbulenceVariables()
		require.NoError(t, err)
		assert.Empty(t, vars)
		props, err := m.TurbulenceProperties()
		require.NoError(t, err)
		assert.Empty(t, props)
		assert.Len(t, turb.Children(), 0)
	}
	{ // Missing model attribute reads as unset
		c := xmlcase.New("s", "c")
		c.Models().Create(TurbulenceTag)
		_, got, err := NewModel(c).TurbulenceModel()
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
	{ // Strict mode surfaces typos
		c, _ := newCase("k-epsilonn")
		m := NewModel(c, Strict(true))
		_, err := m.TurbulenceVariables()
		assert.True(t, errors.Is(err, ErrUnrecognized))
		tm, err := m.Turbulence()
		assert.Equal(t, TurbUnrecognized, tm)
		assert.True(t, errors.Is(err, ErrUnrecognized))
	}
	{ // Strict mode still accepts the unset state
		c, _ := newCase("")
		vars, err := NewModel(c, Strict(true)).TurbulenceVariables()
		require.NoError(t, err)
		assert.Empty(t, vars)
	}
}

func TestMissingTurbulenceNode(t *testing.T) {
	c := xmlcase.New("s", "c")
	m := NewModel(c)
	_, _, err := m.TurbulenceModel()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, TurbulenceTag, se.Tag)
	_, err = m.TurbulenceNodes()
	assert.True(t, errors.Is(err, ErrSchema))
	assert.True(t, errors.Is(m.SetTurbulenceModel(TurbKOmegaSST), ErrSchema))
	// The accessor must not have created the node
	assert.Nil(t, c.Models().Find(TurbulenceTag))
}

func TestIdempotentLazyCreation(t *testing.T) {
	c, turb := newCase("k-epsilon")
	m := NewModel(c)
	assert.Nil(t, turb.Find(VariableTag, xmlcase.Name("turb_k")))
	first, err := m.TurbulenceVariables()
	require.NoError(t, err)
	second, err := m.TurbulenceVariables()
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Same(second[i]))
	}
	assert.Len(t, turb.FindAll(VariableTag, xmlcase.Name("turb_k")), 1)
	assert.Equal(t, "TurbEner", turb.Find(VariableTag, xmlcase.Name("turb_k")).Get("label"))
	// The pure lookup finds what the accessor created
	k, err := m.FindTurbulenceNode(VariableTag, "turb_k")
	require.NoError(t, err)
	assert.True(t, k.Same(first[0]))
	omega, err := m.FindTurbulenceNode(VariableTag, "turb_omega")
	require.NoError(t, err)
	assert.Nil(t, omega)
}

func TestOrderFollowsTableNotDocument(t *testing.T) {
	c, turb := newCase("v2f-phi")
	// Pre-existing nodes in an unusual order
	turb.Create(VariableTag, xmlcase.Name("turb_fb"), xmlcase.Label("custom_fb"))
	turb.Create(PropertyTag, xmlcase.Name("turb_viscosity"))
	turb.Create(VariableTag, xmlcase.Name("turb_eps"))
	nodes, err := NewModel(c).TurbulenceNodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"turb_k", "turb_eps", "turb_phi", "turb_fb", "turb_viscosity"}, names(nodes))
	assert.Equal(t, "custom_fb", nodes[3].Get("label"))
	assert.Len(t, turb.Children(), 5)
}

func TestScenarios(t *testing.T) {
	{ // k-omega-SST with no children
		c, _ := newCase("k-omega-SST")
		nodes, err := NewModel(c).TurbulenceNodes()
		require.NoError(t, err)
		assert.Equal(t, []string{"turb_k", "turb_omega", "turb_viscosity"}, names(nodes))
		assert.Equal(t, []string{VariableTag, VariableTag, PropertyTag},
			[]string{nodes[0].Tag(), nodes[1].Tag(), nodes[2].Tag()})
	}
	{ // Rij-SSG
		c, _ := newCase("Rij-SSG")
		m := NewModel(c)
		vars, err := m.TurbulenceVariables()
		require.NoError(t, err)
		assert.Equal(t, []string{"component_R11", "component_R22", "component_R33",
			"component_R12", "component_R13", "component_R23", "turb_eps"}, names(vars))
		props, err := m.TurbulenceProperties()
		require.NoError(t, err)
		assert.Equal(t, []string{"turb_viscosity"}, names(props))
	}
	{ // LES_dynamique
		c, _ := newCase("LES_dynamique")
		m := NewModel(c)
		vars, err := m.TurbulenceVariables()
		require.NoError(t, err)
		assert.Empty(t, vars)
		props, err := m.TurbulenceProperties()
		require.NoError(t, err)
		assert.Equal(t, []string{"smagorinsky_constant"}, names(props))
	}
	{ // unset
		c, _ := newCase("")
		m := NewModel(c)
		_, value, err := m.TurbulenceModel()
		require.NoError(t, err)
		assert.Equal(t, "", value)
		vars, _ := m.TurbulenceVariables()
		props, _ := m.TurbulenceProperties()
		assert.Empty(t, vars)
		assert.Empty(t, props)
	}
}

func TestSetTurbulenceModelPrunes(t *testing.T) {
	c, turb := newCase("k-epsilon")
	m := NewModel(c)
	_, err := m.TurbulenceNodes()
	require.NoError(t, err)
	k := turb.Find(VariableTag, xmlcase.Name("turb_k"))
	k.Set("label", "Kinetic")
	turb.Create("wall_function", xmlcase.With("choice", "2scales"))

	require.NoError(t, m.SetTurbulenceModel(TurbKOmegaSST))
	assert.Equal(t, "k-omega-SST", turb.Get("model"))
	assert.Nil(t, turb.Find(VariableTag, xmlcase.Name("turb_eps")))
	assert.Equal(t, "Kinetic", turb.Find(VariableTag, xmlcase.Name("turb_k")).Get("label"))
	assert.NotNil(t, turb.Find(VariableTag, xmlcase.Name("turb_omega")))
	// Ungoverned children are left alone
	assert.NotNil(t, turb.Find("wall_function"))

	require.NoError(t, m.SetTurbulenceModel(TurbLESSmagorinsky))
	assert.Empty(t, turb.FindAll(VariableTag))
	assert.Equal(t, []string{"smagorinsky_constant"}, names(turb.FindAll(PropertyTag)))
	assert.Empty(t, CheckTurbulence(c))

	assert.True(t, errors.Is(m.SetTurbulenceModel(TurbUnset), ErrUnrecognized))
	assert.True(t, errors.Is(m.SetTurbulenceModel(TurbUnrecognized), ErrUnrecognized))
}

func TestCheckTurbulence(t *testing.T) {
	{
		c := xmlcase.New("s", "c")
		assert.Len(t, Validate(c), 1)
	}
	{
		c, _ := newCase("k-eps")
		w := CheckTurbulence(c)
		require.Len(t, w, 1)
		assert.Contains(t, w[0].Message, "unrecognized")
	}
	{
		c, turb := newCase("k-omega-SST")
		turb.Create(VariableTag, xmlcase.Name("turb_eps"))
		turb.Create(PropertyTag, xmlcase.Name("smagorinsky_constant"))
		w := CheckTurbulence(c)
		require.Len(t, w, 2)
		assert.Contains(t, w[0].String(), "turb_eps")
		assert.Contains(t, w[1].String(), "smagorinsky_constant")
	}
	{
		c := xmlcase.New("s", "c")
		Init(c)
		assert.Empty(t, Validate(c))
		_, value, err := NewModel(c).TurbulenceModel()
		require.NoError(t, err)
		assert.Equal(t, "k-epsilon", value)
		extra := func(*xmlcase.Case) []Warning { return []Warning{{Path: "/", Message: "extra"}} }
		assert.Len(t, Validate(c, extra), 1)
	}
}

func TestGate(t *testing.T) {
	g := NewGate("choice", []string{"a", "b"}, map[string][]Dependent{
		"a": {{Tag: "x"}, {Tag: "item", Name: "one", Label: "One"}},
		"b": {{Tag: "item", Name: "two"}},
	})
	c := xmlcase.New("s", "c")
	parent := c.Root().Create("holder")
	acc := xmlcase.Tree{}
	assert.True(t, g.Recognized("a"))
	assert.False(t, g.Recognized("c"))
	assert.True(t, g.Governs("x", ""))
	assert.False(t, g.Governs("item", "three"))

	found := g.Find(acc, parent, "a")
	assert.Equal(t, []*xmlcase.Node{nil, nil}, found)
	created := g.Ensure(acc, parent, "a")
	require.Len(t, created, 2)
	assert.Equal(t, "x", created[0].Tag())
	assert.Equal(t, "One", created[1].Get("label"))
	assert.True(t, created[1].Same(g.Ensure(acc, parent, "a")[1]))

	parent.Create("unrelated")
	pruned := g.Prune(acc, parent, "b")
	assert.Len(t, pruned, 2)
	assert.Len(t, parent.Children(), 1)
	assert.Empty(t, g.Ensure(acc, parent, "c"))
}
