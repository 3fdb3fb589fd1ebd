// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedFlagsNoneSelected(t *testing.T) {
	assert.Empty(t, selectedFlags("", "", "", ""))
}

func TestSelectedFlagsOneSelected(t *testing.T) {
	assert.Equal(t, []string{"--print"}, selectedFlags("", "", "foo", ""))
}

func TestSelectedFlagsMultipleSelected(t *testing.T) {
	got := selectedFlags("a", "", "b", "")
	assert.Equal(t, []string{"--extract", "--print"}, got)
}

func TestJoinFlagsTwo(t *testing.T) {
	assert.Equal(t, "--extract and --run", joinFlags([]string{"--extract", "--run"}))
}

func TestGlasHomePrefersExplicitFlag(t *testing.T) {
	home, err := glasHome("/explicit/home")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/home", home)
}

func TestGlasHomeFallsBackToEnv(t *testing.T) {
	require.NoError(t, os.Setenv("GLAS_HOME", "/env/home"))
	defer os.Unsetenv("GLAS_HOME")

	home, err := glasHome("")
	require.NoError(t, err)
	assert.Equal(t, "/env/home", home)
}

func TestGlasHomeFallsBackToUserHomeDir(t *testing.T) {
	os.Unsetenv("GLAS_HOME")

	home, err := glasHome("")
	require.NoError(t, err)
	assert.Contains(t, home, ".glas")
}

func TestNewRootCmdRegistersAllFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"extract", "run", "print", "arity", "home", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestMainWithNoArgsShowsHelp(t *testing.T) {
	code := Main(nil)
	assert.Equal(t, 0, code)
}

func TestMainRejectsConflictingFlags(t *testing.T) {
	code := Main([]string{"--extract", "a", "--print", "b"})
	assert.Equal(t, 1, code)
}
