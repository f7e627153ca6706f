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
	"github.com/notargets/flame1d/jacobian"
)

// JacobianCmd represents the jacobian command
var JacobianCmd = &cobra.Command{
	Use:   "jacobian",
	Short: "Assemble the finite difference Jacobian of the initial profile",
	Long: `
Perturbs every component of every point, evaluating only the residual rows
coupled to that point, and reports the size and band structure of the
resulting sparse Jacobian, with a check of J*dx against the change of the
full residual.

flame1d jacobian -I case.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			c *InputParameters.Case
		)
		if c, err = processInput(getModel(cmd)); err != nil {
			return
		}
		jac := jacobian.New(c.Flow, jacobian.DefaultConfig())
		if err = jac.Eval(c.X, 0); err != nil {
			return
		}
		var (
			relErr float64
		)
		if relErr, err = jac.Check(c.X, 0); err != nil {
			return
		}
		var (
			C      = jac.CSR()
			kl, ku = C.Bandwidth()
			n, _   = C.Dims()
		)
		fmt.Printf("%d rows, %d nonzeros, bandwidth %d/%d, %d windowed evaluations\n",
			n, C.NNZ(), kl, ku, jac.NEvals)
		fmt.Printf("J*dx against the full residual change: %8.3e relative\n", relErr)
		return
	},
}

func init() {
	rootCmd.AddCommand(JacobianCmd)
	addCaseFlags(JacobianCmd, "")
}
