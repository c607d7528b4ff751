package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/foldgraph/internal/cli"
	"github.com/stretchr/testify/require"
)

const demoPatch = `
node "two" {
  kind  = "number"
  value = 2
}

node "three" {
  kind  = "number"
  value = 3
}

node "mul" {
  kind      = "arithmetic"
  operation = "multiply"
}

node "greeting" {
  kind  = "text"
  value = "Hello World!"
}

node "split" {
  kind = "text_split"
}

patch {
  from = "two.out"
  to   = "mul.term1"
}

patch {
  from = "three.out"
  to   = "mul.term2"
}

patch {
  from = "greeting.out"
  to   = "split.text"
}

patch {
  from = "mul.out"
  to   = "split.at"
}

patch {
  from = "mul.out"
  to   = "output.numeric"
}

patch {
  from = "split.end"
  to   = "output.text"
}
`

func TestRun_Demo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(demoPatch), 0600))
	out := &bytes.Buffer{}

	err := run(context.Background(), out, io.Discard, []string{"-ticks", "2", path})

	require.NoError(t, err)
	require.Equal(t, "tick=0 numeric=6 text=\"World!\"\ntick=1 numeric=6 text=\"World!\"\n", out.String())
}

func TestRun_InvalidPatch(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		node "two" {
			kind = "number"
		// Missing closing brace here
	`
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(invalidHCL), 0600))

	err := run(context.Background(), &bytes.Buffer{}, io.Discard, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load patch")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_Kinds(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"-kinds"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "arithmetic")
	require.Contains(t, out.String(), "lfo")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, io.Discard, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.IsType(t, &cli.ExitError{}, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
