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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/averages"
	"github.com/notargets/casemodel/fsi"
	"github.com/notargets/casemodel/schema"
)

// ValidateCmd represents the validate command
var ValidateCmd = &cobra.Command{
	Use:   "validate case.xml",
	Short: "Report schema problems in a case file without modifying it",
	Long: `
Checks the turbulence model value and its nodes, the time averages and the
boundary couplings. Every finding is printed; the command fails when there
is at least one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		warnings := schema.Validate(c, averages.Check, fsi.Check)
		for _, w := range warnings {
			logrus.WithField("path", w.Path).Warn(w.Message)
			fmt.Fprintln(cmd.OutOrStdout(), w)
		}
		if len(warnings) != 0 {
			return errors.Errorf("%s: %d problems found", args[0], len(warnings))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ValidateCmd)
}
