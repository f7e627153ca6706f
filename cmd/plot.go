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
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/flame1d/InputParameters"
	"github.com/notargets/flame1d/model_problems/Flame1D"
)

// PlotCmd represents the plot command
var PlotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the temperature profiles of a case to a PNG file",
	Long: `
Plots the gas temperature and, for porous cases, the solid temperature after a
solid solve against the axial coordinate.

flame1d plot -I case.yaml -o profiles.png`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m1d = getModel(cmd)
			c   *InputParameters.Case
			p   *plot.Plot
		)
		if len(m1d.OutFile) == 0 {
			m1d.OutFile = "profiles.png"
		}
		if c, err = processInput(m1d); err != nil {
			return
		}
		if c.Flow.Porous() != nil {
			c.Flow.RequestSolidSolve()
			if err = c.Flow.EvalFull(c.X, make([]float64, len(c.X)), make([]int, len(c.X)), 0); err != nil {
				return
			}
		}
		if p, err = profilePlot(c.Flow, c.X); err != nil {
			return
		}
		if err = p.Save(6*vg.Inch, 4*vg.Inch, m1d.OutFile); err != nil {
			return
		}
		fmt.Printf("wrote %s\n", m1d.OutFile)
		return
	},
}

func profilePlot(f *Flame1D.Flow, x []float64) (p *plot.Plot, err error) {
	var (
		z     = f.Grid().Z
		gas   = make(plotter.XYs, len(z))
		lines []interface{}
	)
	p = plot.New()
	p.Title.Text = f.Type.Print()
	p.X.Label.Text = "z [mm]"
	p.Y.Label.Text = "T [K]"
	for j := range z {
		gas[j].X, gas[j].Y = 1000*z[j], f.T(x, j)
	}
	lines = append(lines, "gas", gas)
	if ps := f.Porous(); ps != nil {
		solid := make(plotter.XYs, len(z))
		for j := range z {
			solid[j].X, solid[j].Y = 1000*z[j], ps.Tsolid[j]
		}
		lines = append(lines, "solid", solid)
	}
	if err = plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, err
	}
	return
}

func init() {
	rootCmd.AddCommand(PlotCmd)
	addCaseFlags(PlotCmd, "PNG file to write (default profiles.png)")
}
