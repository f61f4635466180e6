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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/casemodel/fsi"
	"github.com/notargets/casemodel/readfiles"
	"github.com/notargets/casemodel/types"
)

// ZonesCmd represents the zones command
var ZonesCmd = &cobra.Command{
	Use:   "zones case.xml [label=nature...]",
	Short: "List boundary zones, or declare them from a mesh file",
	Long: `
Without a mesh file, lists the boundary zones of the case with their nature
and ALE choice. With a Gambit neutral (.neu) or SU2 (.su2) mesh file (-F),
declares one zone per boundary group of the mesh. The nature of a zone is
taken from its label (inlet, outflow, wall, symmetry...) unless given as
label=nature; zones with no known nature are skipped.

casemodel zones case.xml -F mesh.neu Cyl=wall`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			meshFile string
			out      = cmd.OutOrStdout()
		)
		if meshFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			return
		}
		natures := make(map[string]types.BCFLAG)
		for _, arg := range args[1:] {
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) != 2 || types.NewBCFLAG(kv[1]) == types.BC_None {
				return errors.Errorf("bad zone nature %q, expected label=nature", arg)
			}
			natures[kv[0]] = types.NewBCFLAG(kv[1])
		}
		c, err := loadCase(args[0])
		if err != nil {
			return
		}
		fm := fsi.New(c)
		if len(meshFile) == 0 {
			for _, z := range fm.Zones() {
				b, err := fm.Boundary(z.Label)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", z.Label, z.Nature, b.Choice())
			}
			return
		}
		zones, err := readfiles.ReadZones(meshFile)
		if err != nil {
			return
		}
		for _, mz := range zones {
			nature, ok := natures[mz.Label]
			if !ok {
				nature = types.NewBCFLAG(mz.Label)
			}
			if nature == types.BC_None {
				logrus.WithField("zone", mz.Label).Warn("no boundary nature, zone skipped")
				continue
			}
			if _, err = fm.AddZone(mz.Label, nature); err != nil {
				return
			}
			fmt.Fprintf(out, "%s\t%s\t%d faces\n", mz.Label, nature, mz.Faces)
		}
		return saveCase(c, args[0])
	},
}

func init() {
	rootCmd.AddCommand(ZonesCmd)
	ZonesCmd.Flags().StringP("gridFile", "F", "", "mesh file in Gambit (.neu) or SU2 (.su2) format")
}
