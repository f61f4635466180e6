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
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/InputParameters"
)

const exampleFile = `
########################################
Title: "Test Case"
Study: "Pipe"
TurbulenceModel: k-omega-SST # Any of the models listed by "casemodel turbulence --list"
Averages:
  - Label: MeanK
    Start: 100
    Variables: [turb_k, turb_viscosity]
ALE:
  Enabled: true
  MaxIterations: 2
BCs:
  inlet_1:
    Nature: inlet
  wall_1:
    Nature: wall
    ALE: internal_coupling
    MassMatrix: "m11 = 1; m22 = 1; m33 = 1; m12 = 0; m13 = 0; m23 = 0; m21 = 0; m31 = 0; m32 = 0;"
########################################
`

// NewCmd represents the new command
var NewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a case file, optionally from a YAML setup file",
	Long: `
Creates a case file holding the base structure and the nodes of the selected
turbulence model. A YAML setup file (-I) can also declare time averages,
ALE parameters and boundary zones with their structure couplings.

casemodel new -I setup.yaml -o case.xml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip      = &InputParameters.CaseParameters{}
			icFile  string
			outFile string
		)
		if icFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if outFile, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if example, _ := cmd.Flags().GetBool("example"); example {
			fmt.Fprintf(cmd.OutOrStdout(), "Example File:%s\n", exampleFile)
			return
		}
		if len(icFile) != 0 {
			var data []byte
			if data, err = ioutil.ReadFile(icFile); err != nil {
				return errors.Wrapf(err, "could not read setup file %s", icFile)
			}
			if err = ip.Parse(data); err != nil {
				return errors.Wrapf(err, "could not parse setup file %s", icFile)
			}
			ip.Print()
		}
		c, err := ip.NewCase()
		if err != nil {
			return
		}
		return saveCase(c, outFile)
	},
}

func init() {
	rootCmd.AddCommand(NewCmd)
	NewCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML setup file with the turbulence model, averages and boundary couplings")
	NewCmd.Flags().StringP("output", "o", "case.xml", "case file to write")
	NewCmd.Flags().BoolP("example", "e", false, "print an example setup file and exit")
}
