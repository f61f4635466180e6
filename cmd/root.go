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
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/casemodel/schema"
	"github.com/notargets/casemodel/xmlcase"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "casemodel",
	Short: "Edit and validate solver case files",
	Long: `
Creates, inspects and edits the XML case files read by the solver:
turbulence model, time averages and fluid-structure couplings.

casemodel new -I setup.yaml -o case.xml
casemodel validate case.xml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.casemodel.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "logging level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("strict", false, "fail on unrecognized values instead of reading them as empty")
	rootCmd.PersistentFlags().Int("indent", 2, "number of spaces used to indent written case files")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile of the run to the current directory")
	for _, key := range []string{"log-level", "strict", "indent", "profile"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".casemodel" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".casemodel")
	}
	viper.SetEnvPrefix("CASEMODEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

func loadCase(path string) (c *xmlcase.Case, err error) {
	if c, err = xmlcase.LoadFile(path); err != nil {
		return
	}
	c.Indent = viper.GetInt("indent")
	return
}

func saveCase(c *xmlcase.Case, path string) error {
	c.Indent = viper.GetInt("indent")
	if err := c.SaveFile(path); err != nil {
		return err
	}
	logrus.WithField("file", path).Info("case saved")
	return nil
}

func newSchemaModel(c *xmlcase.Case) *schema.Model {
	return schema.NewModel(c, schema.Strict(viper.GetBool("strict")))
}
