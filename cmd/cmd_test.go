package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/flame1d/model_problems/Flame1D"
)

func runCommand(t *testing.T, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestResidualCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "flame1d")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "state.yaml")
	require.NoError(t, runCommand(t, "residual", "-I", "../cases/stagnation.yaml", "-o", out))
	data, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	st, err := Flame1D.ParseFlowState(data)
	require.NoError(t, err)
	assert.Equal(t, "Axisymmetric Stagnation", st.Type)
	assert.Len(t, st.Grid, 21)
	assert.Contains(t, st.Solution, "CH4")
}

func TestCaseCommands(t *testing.T) {
	require.NoError(t, runCommand(t, "jacobian", "-I", "../cases/freeflame.yaml"))
	assert.Nil(t, JacobianCmd.Flags().Lookup("output"))

	dir, err := ioutil.TempDir("", "flame1d")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	state := filepath.Join(dir, "solid.yaml")
	require.NoError(t, runCommand(t, "solid", "-I", "../cases/porous.yaml", "-o", state))
	data, err := ioutil.ReadFile(state)
	require.NoError(t, err)
	st, err := Flame1D.ParseFlowState(data)
	require.NoError(t, err)
	require.NotNil(t, st.Solid)
	assert.Len(t, st.Solid.Tsolid, 31)
	defer SolidCmd.Flags().Set("output", "")
	assert.Error(t, runCommand(t, "solid", "-I", "../cases/stagnation.yaml"))

	png := filepath.Join(dir, "profiles.png")
	require.NoError(t, runCommand(t, "plot", "-I", "../cases/porous.yaml", "-o", png))
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMissingCase(t *testing.T) {
	assert.Error(t, runCommand(t, "residual", "-I", ""))
	defer rootCmd.PersistentFlags().Set("profile", "")
	assert.Error(t, runCommand(t, "--profile", "gpu", "residual", "-I", "../cases/stagnation.yaml"))
}
