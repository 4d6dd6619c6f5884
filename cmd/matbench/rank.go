// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matbench/library"
	"github.com/katalvlaran/matbench/ranking"
	"github.com/katalvlaran/matbench/report"
)

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank REPORT",
		Short: "Print leaderboards from a saved .json or .yaml report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := report.Decode(f, format)
			if err != nil {
				return err
			}
			return report.WriteLeaderboards(cmd.OutOrStdout(), ranking.RankAll(doc.Records, library.Order))
		},
	}
}
