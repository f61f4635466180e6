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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/averages"
	"github.com/notargets/casemodel/xmlcase"
)

// AverageCmd represents the average command
var AverageCmd = &cobra.Command{
	Use:   "average",
	Short: "List, add and delete the time averages of a case",
}

var averageListCmd = &cobra.Command{
	Use:   "list case.xml",
	Short: "List the time averages and the fields available for averaging",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		am := averages.New(c)
		out := cmd.OutOrStdout()
		for _, id := range am.List() {
			a, err := am.Get(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d\t%s\t%d\t%d\t%s\n", a.ID, a.Label, a.Start, a.Restart, strings.Join(a.Variables, "*"))
		}
		fmt.Fprintf(out, "available: %s\n", strings.Join(am.Available(), " "))
		return nil
	},
}

var averageAddCmd = &cobra.Command{
	Use:   "add case.xml field [field...]",
	Short: "Append a time average of the product of the given fields",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		c, err := loadCase(args[0])
		if err != nil {
			return
		}
		a := averages.Average{Variables: args[1:]}
		if a.Label, err = cmd.Flags().GetString("label"); err != nil {
			return
		}
		if a.Start, err = cmd.Flags().GetInt("start"); err != nil {
			return
		}
		if a.Restart, err = cmd.Flags().GetInt("restart"); err != nil {
			return
		}
		am := averages.New(c)
		available := make(map[string]bool)
		for _, name := range am.Available() {
			available[name] = true
		}
		for _, v := range a.Variables {
			if !available[v] {
				return errors.Errorf("field %q is not defined in %s", v, args[0])
			}
		}
		if a, err = am.Add(a); err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added average %d (%s)\n", a.ID, a.Label)
		return saveCase(c, args[0])
	},
}

var averageDeleteCmd = &cobra.Command{
	Use:   "delete case.xml id",
	Short: "Delete a time average, renumbering the following ones",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := xmlcase.ToInt(args[1])
		if err != nil {
			return errors.Wrapf(err, "bad average id %q", args[1])
		}
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		if err = averages.New(c).Delete(id); err != nil {
			return err
		}
		return saveCase(c, args[0])
	},
}

func init() {
	rootCmd.AddCommand(AverageCmd)
	AverageCmd.AddCommand(averageListCmd, averageAddCmd, averageDeleteCmd)
	averageAddCmd.Flags().StringP("label", "l", "", "label of the average (default Average<id>)")
	averageAddCmd.Flags().IntP("start", "s", 1, "time step the accumulation starts from")
	averageAddCmd.Flags().IntP("restart", "r", 0, "average of the restart file to continue from, 0 for none")
}
