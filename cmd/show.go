/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/averages"
	"github.com/notargets/casemodel/fsi"
	"github.com/notargets/casemodel/xmlcase"
)

type CaseSummary struct {
	Study           string             `json:"Study"`
	Case            string             `json:"Case"`
	TurbulenceModel string             `json:"TurbulenceModel"`
	Variables       []string           `json:"Variables"`
	Properties      []string           `json:"Properties"`
	Averages        []averages.Average `json:"Averages,omitempty"`
	ALE             bool               `json:"ALE"`
	Boundaries      map[string]string  `json:"Boundaries,omitempty"` // Label to ALE choice
}

func summarize(c *xmlcase.Case) (s CaseSummary, err error) {
	s.Study = c.Root().Get("study")
	s.Case = c.Root().Get("case")
	sm := newSchemaModel(c)
	tm, err := sm.Turbulence()
	if err != nil {
		return
	}
	s.TurbulenceModel = tm.String()
	vars, err := sm.TurbulenceVariables()
	if err != nil {
		return
	}
	for _, n := range vars {
		s.Variables = append(s.Variables, n.Get("name"))
	}
	props, err := sm.TurbulenceProperties()
	if err != nil {
		return
	}
	for _, n := range props {
		s.Properties = append(s.Properties, n.Get("name"))
	}
	am := averages.New(c)
	for _, id := range am.List() {
		var a averages.Average
		if a, err = am.Get(id); err != nil {
			return
		}
		s.Averages = append(s.Averages, a)
	}
	fm := fsi.New(c)
	s.ALE = fm.Enabled()
	for _, z := range fm.Zones() {
		var b *fsi.Boundary
		if b, err = fm.Boundary(z.Label); err != nil {
			return
		}
		if s.Boundaries == nil {
			s.Boundaries = make(map[string]string)
		}
		s.Boundaries[z.Label] = b.Choice().String()
	}
	return
}

func sortedKeys(m map[string]string) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (s CaseSummary) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Study\n", s.Study)
	fmt.Fprintf(w, "\"%s\"\t\t= Case\n", s.Case)
	fmt.Fprintf(w, "[%s]\t\t= Turbulence Model\n", s.TurbulenceModel)
	fmt.Fprintf(w, "[%s]\t\t= Variables\n", strings.Join(s.Variables, ", "))
	fmt.Fprintf(w, "[%s]\t\t= Properties\n", strings.Join(s.Properties, ", "))
	for _, a := range s.Averages {
		fmt.Fprintf(w, "Average[%d] %s = <%s> from step %d\n", a.ID, a.Label, strings.Join(a.Variables, "*"), a.Start)
	}
	fmt.Fprintf(w, "%v\t\t\t= ALE\n", s.ALE)
	for _, label := range sortedKeys(s.Boundaries) {
		fmt.Fprintf(w, "BCs[%s] = %s\n", label, s.Boundaries[label])
	}
}

// ShowCmd represents the show command
var ShowCmd = &cobra.Command{
	Use:   "show case.xml",
	Short: "Summarise a case file",
	Long: `
Prints the turbulence model with its variables and properties, the time
averages and the boundary couplings of a case. Missing model nodes are
reported as they would be created, the file is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		s, err := summarize(c)
		if err != nil {
			return err
		}
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			data, err := yaml.Marshal(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		s.Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ShowCmd)
	ShowCmd.Flags().BoolP("yaml", "y", false, "print the summary as YAML")
}
