package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsWithEnvUnset(t *testing.T) {
	t.Setenv("GRIN_ARGS", "")
	argv := []string{"needle", "src"}
	got, err := ArgsWithEnv("GRIN_ARGS", argv)
	require.NoError(t, err)
	assert.Equal(t, argv, got)
}

func TestArgsWithEnvPrepends(t *testing.T) {
	t.Setenv("GRIN_ARGS", "-C 2 --color never")
	got, err := ArgsWithEnv("GRIN_ARGS", []string{"needle", "src"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-C", "2", "--color", "never", "needle", "src"}, got)
}

func TestArgsWithEnvQuoting(t *testing.T) {
	t.Setenv("GRIN_ARGS", `-d "CVS,build dir"`)
	got, err := ArgsWithEnv("GRIN_ARGS", []string{"needle"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-d", "CVS,build dir", "needle"}, got)
}

func TestArgsWithEnvMalformed(t *testing.T) {
	t.Setenv("GRIN_ARGS", `-d "unterminated`)
	_, err := ArgsWithEnv("GRIN_ARGS", []string{"needle"})
	assert.Error(t, err)
}
