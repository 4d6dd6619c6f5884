// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/library"
	"github.com/katalvlaran/matbench/runner"
)

// sweepConfig is the YAML form of a sweep:
//
//	libraries: [gonum, lvdense]
//	operations: [mult, qr, solveExact]
//	sizes: [32, 64, 128]
//	trials: 10
//	check: true
//	tolerance: 1e-8
//	seed: 1
//	memory_limit: 1073741824
//	probe: true
type sweepConfig struct {
	Libraries   []bench.LibraryID `yaml:"libraries"`
	runner.Plan `yaml:",inline"`
	MemoryLimit int64 `yaml:"memory_limit"`
	Probe       bool  `yaml:"probe"`
}

// defaultConfig sweeps every library and operation at one small size.
func defaultConfig() sweepConfig {
	return sweepConfig{
		Libraries: library.IDs(),
		Plan: runner.Plan{
			Operations: bench.AllOperations(),
			Sizes:      []int{64},
			Trials:     5,
			Check:      true,
			Tolerance:  bench.DefaultTolerance,
			Seed:       1,
		},
	}
}

func loadConfig(path string) (sweepConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return sweepConfig{}, err
	}
	defer f.Close()

	return decodeConfig(f)
}

// decodeConfig overlays the YAML document on defaultConfig.
func decodeConfig(r io.Reader) (sweepConfig, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return sweepConfig{}, fmt.Errorf("sweep config: %w", err)
	}

	return cfg, cfg.validate()
}

func (c sweepConfig) validate() error {
	if len(c.Libraries) == 0 || len(c.Operations) == 0 || len(c.Sizes) == 0 {
		return fmt.Errorf("sweep config: libraries, operations and sizes must be non-empty: %w", bench.ErrInvalidTrial)
	}
	for _, id := range c.Libraries {
		if _, err := library.Lookup(id); err != nil {
			return err
		}
	}
	for _, n := range c.Sizes {
		if n < 0 {
			return fmt.Errorf("sweep config: size %d: %w", n, bench.ErrInvalidTrial)
		}
	}
	if c.Trials < 1 {
		return fmt.Errorf("sweep config: trials %d: %w", c.Trials, bench.ErrInvalidTrial)
	}
	if c.MemoryLimit < 0 {
		return fmt.Errorf("sweep config: memory_limit %d: %w", c.MemoryLimit, bench.ErrInvalidTrial)
	}

	return nil
}

// parseOps splits a comma list of operation names; "all" selects every kind.
func parseOps(s string) ([]bench.OperationKind, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return bench.AllOperations(), nil
	}
	var out []bench.OperationKind
	for _, f := range splitList(s) {
		k, err := bench.ParseOperation(f)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}

	return out, nil
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, f := range splitList(s) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", f, err)
		}
		out = append(out, n)
	}

	return out, nil
}

func parseLibraries(s string) []bench.LibraryID {
	var out []bench.LibraryID
	for _, f := range splitList(s) {
		out = append(out, bench.LibraryID(f))
	}

	return out
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}
