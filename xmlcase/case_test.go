package xmlcase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeLookup(t *testing.T) {
	c := New("study", "case1")
	models := c.Models()
	{ // Find never creates
		assert.Nil(t, models.Find("turbulence"))
		assert.Len(t, models.Children(), 0)
	}
	{ // Ensure creates once, then returns the same element
		turb := models.Ensure("turbulence", Has("model"))
		assert.Equal(t, "turbulence", turb.Tag())
		assert.True(t, turb.Has("model"))
		assert.Equal(t, "", turb.Get("model"))
		again := models.Ensure("turbulence", Has("model"))
		assert.True(t, turb.Same(again))
		assert.Len(t, models.Children(), 1)
	}
	{ // Attribute selectors disambiguate siblings
		turb := models.Find("turbulence")
		k := turb.Ensure("variable", Name("turb_k"))
		eps := turb.Ensure("variable", Name("turb_eps"))
		assert.False(t, k.Same(eps))
		assert.Len(t, turb.FindAll("variable"), 2)
		assert.True(t, k.Same(turb.Find("variable", Name("turb_k"))))
		assert.Nil(t, turb.Find("variable", Name("turb_omega")))
		assert.Equal(t, "/Code_Saturne_GUI/thermophysical_models/turbulence/variable[@name='turb_eps']", eps.Path())
	}
	{ // Descendant search and removal
		k := c.Find("variable", Name("turb_k"))
		require.NotNil(t, k)
		assert.True(t, k.Parent().Remove(k))
		assert.False(t, k.Parent() != nil && k.Parent().Remove(k))
		assert.Nil(t, c.Find("variable", Name("turb_k")))
		assert.Len(t, c.Root().FindAllDescendants("variable"), 1)
	}
	{ // Typed text accessors
		n := c.Ensure("analysis_control").Ensure("time_step")
		assert.Equal(t, 3, n.Int(3))
		n.SetInt(12)
		assert.Equal(t, 12, n.Int(3))
		n.SetText("garbage")
		assert.Equal(t, 0.5, n.Float(0.5))
		n.SetFloat(1e-5)
		assert.Equal(t, 1e-5, n.Float(0))
		n.SetStatus(true)
		assert.True(t, n.Status())
		n.SetStatus(false)
		assert.Equal(t, "off", n.Get("status"))
	}
}

func TestLoadAndSave(t *testing.T) {
	input := []byte(`<?xml version="1.0" encoding="utf-8"?>
<Code_Saturne_GUI study="s" case="c" version="1.0">
  <thermophysical_models>
    <turbulence model="k-omega-SST">
      <variable name="turb_k" label="TurbEner"/>
    </turbulence>
  </thermophysical_models>
</Code_Saturne_GUI>
`)
	c, err := Parse(input)
	require.NoError(t, err)
	turb := c.Models().Find("turbulence")
	require.NotNil(t, turb)
	assert.Equal(t, "k-omega-SST", turb.Get("model"))
	turb.Ensure("variable", Name("turb_omega"), Label("omega"))

	dir := t.TempDir()
	path := filepath.Join(dir, "case.xml")
	require.NoError(t, c.SaveFile(path))
	assert.Equal(t, path, c.FileName)

	reread, err := LoadFile(path)
	require.NoError(t, err)
	names := []string{}
	for _, v := range reread.Models().Find("turbulence").FindAll("variable") {
		names = append(names, v.Get("name"))
	}
	assert.Equal(t, []string{"turb_k", "turb_omega"}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadRejectsBadStructure(t *testing.T) {
	{
		_, err := Parse([]byte(`<other/>`))
		assert.Error(t, err)
	}
	{
		_, err := Parse([]byte(`<Code_Saturne_GUI><thermophysical_models/><thermophysical_models/></Code_Saturne_GUI>`))
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "holds 2"))
	}
	{
		c, err := Parse([]byte(`<Code_Saturne_GUI/>`))
		require.NoError(t, err)
		assert.NotNil(t, c.Models())
		assert.True(t, c.Models().Same(c.Find(ModelsTag)))
	}
	{
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.xml"))
		assert.Error(t, err)
	}
}

func TestDecimalIntegers(t *testing.T) {
	c, err := Parse([]byte(`<Code_Saturne_GUI>
  <time_average id="010">
    <time_step_start>010</time_step_start>
    <restart_from_time_average> 09 </restart_from_time_average>
    <time_step> -007 </time_step>
    <hex>0x10</hex>
  </time_average>
</Code_Saturne_GUI>`))
	require.NoError(t, err)
	avg := c.Find("time_average")
	require.NotNil(t, avg)
	assert.Equal(t, 10, avg.AttrInt("id", 0))
	assert.Equal(t, 10, avg.Find("time_step_start").Int(1))
	assert.Equal(t, 9, avg.Find("restart_from_time_average").Int(0))
	assert.Equal(t, -7, avg.Find("time_step").Int(0))
	assert.Equal(t, 1, avg.Find("hex").Int(1))
	assert.Equal(t, 3, avg.AttrInt("missing", 3))
	for _, text := range []string{"0", "000", "+4"} {
		_, err := ToInt(text)
		assert.NoError(t, err, text)
	}
	for _, text := range []string{"", "-", "1_000", "0b1", "0o7", "1.5"} {
		_, err := ToInt(text)
		assert.Error(t, err, text)
	}
}

func TestSaveKeepsFileMode(t *testing.T) {
	dir := t.TempDir()
	c := New("study", "case")
	{ // New files are world readable
		path := filepath.Join(dir, "new.xml")
		require.NoError(t, c.SaveFile(path))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), fi.Mode().Perm())
	}
	{ // Rewriting an existing file keeps its mode
		path := filepath.Join(dir, "shared.xml")
		require.NoError(t, os.WriteFile(path, []byte("<Code_Saturne_GUI/>"), 0600))
		require.NoError(t, os.Chmod(path, 0640))
		require.NoError(t, c.SaveFile(path))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), fi.Mode().Perm())
	}
}
