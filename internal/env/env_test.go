package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverRecordsDirectories(t *testing.T) {
	e := Discover("in", "out")

	assert.Equal(t, "in", e.InputDir)
	assert.Equal(t, "out", e.OutputDir)
}

func TestValidateAggregatesAllProblems(t *testing.T) {
	base := t.TempDir()
	e := Env{
		InputDir:  filepath.Join(base, "missing"),
		OutputDir: filepath.Join(base, "out"),
	}

	err := e.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvironment)
	assert.Contains(t, err.Error(), "b2 CLI")
	assert.Contains(t, err.Error(), "1Password CLI")
	assert.Contains(t, err.Error(), "input directory")
}

func TestValidateCreatesOutputDir(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(base, "in")
	require.NoError(t, os.Mkdir(input, 0755))
	output := filepath.Join(base, "out", "nested")

	e := Env{B2Bin: "/usr/local/bin/b2", OpBin: "/usr/local/bin/op", InputDir: input, OutputDir: output}

	require.NoError(t, e.Validate())

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
