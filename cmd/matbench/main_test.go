// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/bench"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig(strings.NewReader(`
libraries: [gonum, sparse]
operations: [solveExact, MULT]
sizes: [8, 16]
trials: 3
seed: 9
memory_limit: 1048576
`))
	require.NoError(t, err)
	assert.Equal(t, []bench.LibraryID{"gonum", "sparse"}, cfg.Libraries)
	assert.Equal(t, []bench.OperationKind{bench.OpSolveExact, bench.OpMult}, cfg.Operations)
	assert.Equal(t, []int{8, 16}, cfg.Sizes)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.True(t, cfg.Check, "default kept")
	assert.Equal(t, int64(1<<20), cfg.MemoryLimit)

	cfg, err = decodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestDecodeConfig_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown op":      "operations: [fft]",
		"unknown library": "libraries: [eigen3]",
		"unknown field":   "threads: 4",
		"zero trials":     "trials: 0",
		"negative size":   "sizes: [-1]",
	} {
		_, err := decodeConfig(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestParseLists(t *testing.T) {
	ops, err := parseOps("all")
	require.NoError(t, err)
	assert.Len(t, ops, len(bench.AllOperations()))

	ops, err = parseOps(" qr, lu ,")
	require.NoError(t, err)
	assert.Equal(t, []bench.OperationKind{bench.OpQR, bench.OpLU}, ops)

	_, err = parseOps("qr,fft")
	require.ErrorIs(t, err, bench.ErrUnknownOperation)

	sizes, err := parseSizes("4,8")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, sizes)
	_, err = parseSizes("4,x")
	require.Error(t, err)

	assert.Equal(t, []bench.LibraryID{"gonum", "lvdense"}, parseLibraries("gonum,lvdense"))
}

func TestRunAndRank(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.yaml")

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--libs", "gonum,lvdense,sparse", "--ops", "solveExact,svd", "--sizes", "12", "--trials", "2", "--out", out})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "solveExact n=12")
	assert.Contains(t, stdout.String(), "unsupported")

	stdout.Reset()
	root = newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"rank", out})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "svd n=12")
	assert.Contains(t, stdout.String(), "Gonum")
}

func TestLibrariesCmd(t *testing.T) {
	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"libraries"})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "lvdense")
	assert.Contains(t, stdout.String(), "1/15")
}
