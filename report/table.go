// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/library"
	"github.com/katalvlaran/matbench/ranking"
)

// displayName is the plot name of id, or id itself when unregistered.
func displayName(id bench.LibraryID) string {
	if d, err := library.Lookup(id); err == nil {
		return d.PlotName
	}

	return string(id)
}

// WriteLeaderboards prints one table per board:
//
//	mult n=256
//	RANK  LIBRARY  OPS/SEC  ELAPSED  RESIDUAL  MEMORY
//	1     Gonum    812.4    ...
//	-     Sparse   -        ...      unsupported: operation not supported
func WriteLeaderboards(w io.Writer, boards []ranking.Leaderboard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, b := range boards {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s n=%d\n", b.Operation, b.Size)
		fmt.Fprintln(tw, "RANK\tLIBRARY\tOPS/SEC\tELAPSED\tRESIDUAL\tMEMORY\tNOTE")
		for _, e := range b.Ranked {
			rank := fmt.Sprint(e.Rank)
			if e.Tied {
				rank += "="
			}
			r := e.Record
			fmt.Fprintf(tw, "%s\t%s\t%.4g\t%s\t%s\t%s\t\n",
				rank, displayName(r.Library), r.OpsPerSec, r.Elapsed, residual(r), memory(r))
		}
		for _, r := range b.Excluded {
			note := r.Failure.String()
			if r.Failure == bench.FailureNone {
				note = r.Class.String()
			}
			fmt.Fprintf(tw, "-\t%s\t-\t-\t%s\t%s\t%s: %s\n",
				displayName(r.Library), residual(r), memory(r), note, r.Reason)
		}
	}

	return tw.Flush()
}

func residual(r bench.ResultRecord) string {
	if r.Residual == bench.ResidualUnchecked {
		return "-"
	}

	return fmt.Sprintf("%.2e", r.Residual)
}

func memory(r bench.ResultRecord) string {
	if r.MemoryBytes == bench.MemoryUnmeasured {
		return "-"
	}

	return fmt.Sprintf("%d", r.MemoryBytes)
}
