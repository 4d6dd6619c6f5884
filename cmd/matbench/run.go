// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/library"
	"github.com/katalvlaran/matbench/ranking"
	"github.com/katalvlaran/matbench/report"
	"github.com/katalvlaran/matbench/runner"
)

type runFlags struct {
	config    string
	libs      string
	ops       string
	sizes     string
	trials    int
	check     bool
	tolerance float64
	seed      int64
	memLimit  int64
	probe     bool
	out       string
}

func newRunCmd() *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark sweep and print leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, rf)
			if err != nil {
				return err
			}
			return runSweep(cmd, cfg, rf.out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&rf.config, "config", "c", "", "YAML sweep file; flags override its fields")
	f.StringVar(&rf.libs, "libs", "", "comma-separated library IDs (default all)")
	f.StringVar(&rf.ops, "ops", "", "comma-separated operations or 'all'")
	f.StringVar(&rf.sizes, "sizes", "", "comma-separated matrix sizes")
	f.IntVarP(&rf.trials, "trials", "n", 5, "iterations per timed loop")
	f.BoolVar(&rf.check, "check", true, "verify outputs")
	f.Float64Var(&rf.tolerance, "tol", bench.DefaultTolerance, "residual tolerance")
	f.Int64Var(&rf.seed, "seed", 1, "base input seed")
	f.Int64Var(&rf.memLimit, "mem-limit", 0, "skip trials estimated above this many bytes (0 = off)")
	f.BoolVar(&rf.probe, "probe", false, "measure heap allocation in an extra untimed pass")
	f.StringVarP(&rf.out, "out", "o", "", "write records to a .json or .yaml report")

	return cmd
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, rf runFlags) (sweepConfig, error) {
	cfg := defaultConfig()
	if rf.config != "" {
		var err error
		if cfg, err = loadConfig(rf.config); err != nil {
			return sweepConfig{}, err
		}
	}
	f := cmd.Flags()
	if f.Changed("libs") {
		cfg.Libraries = parseLibraries(rf.libs)
	}
	if f.Changed("ops") {
		ops, err := parseOps(rf.ops)
		if err != nil {
			return sweepConfig{}, err
		}
		cfg.Operations = ops
	}
	if f.Changed("sizes") {
		sizes, err := parseSizes(rf.sizes)
		if err != nil {
			return sweepConfig{}, err
		}
		cfg.Sizes = sizes
	}
	if f.Changed("trials") {
		cfg.Trials = rf.trials
	}
	if f.Changed("check") {
		cfg.Check = rf.check
	}
	if f.Changed("tol") {
		cfg.Tolerance = rf.tolerance
	}
	if f.Changed("seed") {
		cfg.Seed = rf.seed
	}
	if f.Changed("mem-limit") {
		cfg.MemoryLimit = rf.memLimit
	}
	if f.Changed("probe") {
		cfg.Probe = rf.probe
	}

	return cfg, cfg.validate()
}

func runSweep(cmd *cobra.Command, cfg sweepConfig, out string) error {
	adapters := make([]bench.LibraryAdapter, 0, len(cfg.Libraries))
	for _, id := range cfg.Libraries {
		a, err := library.NewAdapter(id, log.Logger)
		if err != nil {
			return err
		}
		adapters = append(adapters, a)
	}

	opts := []runner.Option{
		runner.WithLogger(log.Logger),
		runner.WithMemoryLimit(cfg.MemoryLimit),
		runner.WithProgress(func(r bench.ResultRecord) {
			log.Info().
				Str("library", string(r.Library)).
				Str("op", r.Operation.String()).
				Int("size", r.Size).
				Float64("ops_per_sec", r.OpsPerSec).
				Str("class", r.Class.String()).
				Str("failure", r.Failure.String()).
				Msg("trial")
		}),
	}
	if cfg.Probe {
		opts = append(opts, runner.WithMemoryProbe(runner.HeapProbe{}))
	}

	records, err := runner.New(opts...).Sweep(cmd.Context(), adapters, cfg.Plan)
	if err != nil {
		return err
	}
	if out != "" {
		if err = writeReport(out, records); err != nil {
			return err
		}
		log.Info().Str("path", out).Int("records", len(records)).Msg("report written")
	}

	return report.WriteLeaderboards(cmd.OutOrStdout(), ranking.RankAll(records, library.Order))
}

func writeReport(path string, records []bench.ResultRecord) error {
	format, err := report.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.Encode(f, report.NewDocument(records), format); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
