package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := createCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--boundaries", "../../testdata/boundaries.geojson",
		"--population", "../../testdata/population.csv",
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	out, err := runCheck(t)
	require.NoError(t, err)
	assert.Contains(t, out, "states: 3, districts: 5, boundary records: 6")
	assert.Contains(t, out, "states without population (1):\n  Goa\n")
}

func TestCheckCmd_Strict(t *testing.T) {
	_, err := runCheck(t, "--strict")
	assert.EqualError(t, err, "data check failed")
}

func TestCheckCmd_LoadError(t *testing.T) {
	_, err := runCheck(t, "--population", "missing.csv")
	assert.Error(t, err)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("GEODASH_TEST_PATH", "")
	assert.Equal(t, "fallback", envOr("GEODASH_TEST_PATH", "fallback"))
	t.Setenv("GEODASH_TEST_PATH", "set.json")
	assert.Equal(t, "set.json", envOr("GEODASH_TEST_PATH", "fallback"))
}
