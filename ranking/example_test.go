// SPDX-License-Identifier: MIT

package ranking_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/ranking"
)

// ExampleRank ranks four libraries with one tie and one wrong answer.
func ExampleRank() {
	var recs []bench.ResultRecord
	for _, r := range []struct {
		lib    bench.LibraryID
		trials int
		class  bench.OutputError
	}{
		{"A", 10, bench.NoError},
		{"B", 5, bench.NoError},
		{"C", 10, bench.NoError},
		{"D", 1, bench.NoError},
		{"E", 50, bench.LargeError},
	} {
		t, _ := bench.NewTrial(r.lib, bench.OpMult, 128, r.trials, true, 0, 1)
		recs = append(recs, bench.NewSuccess(t, time.Second, bench.MemoryUnmeasured, &bench.Verdict{Class: r.class, Residual: 0}))
	}

	board, _ := ranking.Rank(recs, nil)
	for _, e := range board.Ranked {
		fmt.Printf("%d %s %.0f tied=%v\n", e.Rank, e.Record.Library, e.Record.OpsPerSec, e.Tied)
	}
	for _, r := range board.Excluded {
		fmt.Printf("excluded %s %s\n", r.Library, r.Class)
	}

	// Output:
	// 1 A 10 tied=true
	// 1 C 10 tied=true
	// 3 B 5 tied=false
	// 4 D 1 tied=false
	// excluded E LARGE_ERROR
}
