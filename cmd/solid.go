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

	"github.com/spf13/cobra"

	"github.com/notargets/flame1d/InputParameters"
)

// SolidCmd represents the solid command
var SolidCmd = &cobra.Command{
	Use:   "solid",
	Short: "Solve the solid matrix temperature of a porous burner case",
	Long: `
Requests a solid solve, runs a full evaluation of a porous case and prints the
solid temperature and radiative source at every point.

flame1d solid -I porous.yaml -o state.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m1d = getModel(cmd)
			c   *InputParameters.Case
		)
		if c, err = processInput(m1d); err != nil {
			return
		}
		f := c.Flow
		ps := f.Porous()
		if ps == nil {
			return fmt.Errorf("%s case has no solid phase", f.Type.Print())
		}
		f.RequestSolidSolve()
		rsd := make([]float64, len(c.X))
		if err = f.EvalFull(c.X, rsd, make([]int, len(c.X)), 0); err != nil {
			return
		}
		res := ps.LastResult
		fmt.Printf("converged: %v after %d iterations, change %8.3e, %d radiation stalls\n",
			res.Converged, res.OuterIterations, res.Change, res.InnerStalls)
		fmt.Printf("%10s %10s %10s %14s %14s\n", "z [mm]", "T [K]", "Ts [K]", "dq [W/m^3]", "hv [W/m^3/K]")
		for j, z := range f.Grid().Z {
			fmt.Printf("%10.4f %10.2f %10.2f %14.6e %14.6e\n",
				1000*z, f.T(c.X, j), ps.Tsolid[j], ps.Radiation[j], ps.Hconv[j])
		}
		return writeState(c, m1d.OutFile)
	},
}

func init() {
	rootCmd.AddCommand(SolidCmd)
	addCaseFlags(SolidCmd, "YAML state file to write, including the solid fields")
}
