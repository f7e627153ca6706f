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
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/flame1d/InputParameters"
)

type Model1D struct {
	CaseFile string
	OutFile  string
}

const exampleCase = `
########################################
Title: "Methane/air counterflow"
Mechanism: ch4_1step.yaml
FlowType: axisymmetric stagnation # or free flame, porous
Grid:
  Points: 21
  Length: 0.02
Inlet:
  T: 300
  Y: {CH4: 0.055, O2: 0.22, N2: 0.725}
Outlet:
  T: 1800
  Y: {CO2: 0.15, H2O: 0.12, O2: 0.01, N2: 0.72}
MassFlux: 0.4
Energy: true
########################################
`

func getModel(cmd *cobra.Command) (m1d *Model1D) {
	m1d = &Model1D{}
	m1d.CaseFile, _ = cmd.Flags().GetString("inputConditionsFile")
	m1d.OutFile, _ = cmd.Flags().GetString("output")
	return
}

func addCaseFlags(cmd *cobra.Command, outUsage string) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file naming the mechanism, grid and streams")
	if len(outUsage) != 0 {
		cmd.Flags().StringP("output", "o", "", outUsage)
	}
}

func processInput(m1d *Model1D) (c *InputParameters.Case, err error) {
	var (
		ip *InputParameters.InputParameters1D
	)
	if len(m1d.CaseFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleCase)
		return nil, fmt.Errorf("must supply a case file (-I, --inputConditionsFile)")
	}
	if ip, err = InputParameters.ReadInputParameters(m1d.CaseFile); err != nil {
		return
	}
	if np := viper.GetInt("parallel"); np > 0 {
		ip.ParallelDegree = np
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		ip.Print()
	}
	return ip.NewCase()
}

// ResidualCmd represents the residual command
var ResidualCmd = &cobra.Command{
	Use:   "residual",
	Short: "Evaluate the residual of the initial profile",
	Long: `
Builds the domain and its initial profile from a case file, evaluates the full
residual and prints the largest residual of each component.

flame1d residual -I case.yaml -o state.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m1d = getModel(cmd)
			c   *InputParameters.Case
		)
		if c, err = processInput(m1d); err != nil {
			return
		}
		var (
			f    = c.Flow
			rsd  = make([]float64, len(c.X))
			diag = make([]int, len(c.X))
			nv   = f.NComponents()
		)
		if err = f.EvalFull(c.X, rsd, diag, 0); err != nil {
			return
		}
		fmt.Printf("%-12s %14s %6s\n", "component", "max |rsd|", "point")
		for n := 0; n < nv; n++ {
			if !f.ComponentActive(n) {
				continue
			}
			var (
				rmax float64
				jmax int
			)
			for j := 0; j < f.NPoints(); j++ {
				if r := math.Abs(rsd[nv*j+n]); r > rmax {
					rmax, jmax = r, j
				}
			}
			fmt.Printf("%-12s %14.6e %6d\n", f.ComponentName(n), rmax, jmax)
		}
		return writeState(c, m1d.OutFile)
	},
}

// writeState exports the case state to fileName, if one was given.
func writeState(c *InputParameters.Case, fileName string) (err error) {
	var (
		data []byte
	)
	if len(fileName) == 0 {
		return
	}
	if data, err = c.Flow.Export(c.X).Marshal(); err != nil {
		return
	}
	if err = ioutil.WriteFile(fileName, data, 0644); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": fileName}).Info("state written")
	return
}

func init() {
	rootCmd.AddCommand(ResidualCmd)
	addCaseFlags(ResidualCmd, "YAML file to save the domain state in")
}
