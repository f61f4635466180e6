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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/schema"
)

// TurbulenceCmd represents the turbulence command
var TurbulenceCmd = &cobra.Command{
	Use:   "turbulence case.xml [model]",
	Short: "Show or select the turbulence model of a case",
	Long: `
Without a model, prints the current turbulence model and the variable and
property nodes it uses. With a model, selects it: nodes left over from the
previous model are removed and those of the new one are created.

casemodel turbulence case.xml Rij-SSG`,
	Args: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(1, 2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, tm := range schema.TurbulenceModels() {
				fmt.Fprintf(out, "%-16s variables: %v properties: %v\n", tm, tm.Variables(), tm.Properties())
			}
			return nil
		}
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		sm := newSchemaModel(c)
		if len(args) == 2 {
			tm := schema.ParseTurbulenceModel(args[1])
			if !tm.Selectable() {
				return errors.Errorf("unknown turbulence model %q, see --list", args[1])
			}
			if err = sm.SetTurbulenceModel(tm); err != nil {
				return err
			}
			return saveCase(c, args[0])
		}
		_, value, err := sm.TurbulenceModel()
		if err != nil {
			return err
		}
		nodes, err := sm.TurbulenceNodes()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s]\t\t= Turbulence Model\n", value)
		for _, n := range nodes {
			fmt.Fprintf(out, "%s %s (%s)\n", n.Tag(), n.Get("name"), n.Get("label"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(TurbulenceCmd)
	TurbulenceCmd.Flags().BoolP("list", "l", false, "list the selectable turbulence models")
}
