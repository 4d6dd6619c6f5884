// SPDX-License-Identifier: MIT

// Package ranking orders ResultRecords of one (operation, size) by throughput.
//
// Policy:
//   - Primary key: OpsPerSec descending.
//   - Equal throughput is a tie: tied records share a rank and the next rank
//     skips (1, 1, 3, 4). Ties are displayed in registry order, then by ID.
//   - Records that failed or did not verify as NO_ERROR are excluded from the
//     order but kept, with their reason, in Leaderboard.Excluded.
package ranking

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/matbench/bench"
)

var (
	// ErrNoRecords is returned when Rank is given an empty population.
	ErrNoRecords = errors.New("ranking: no records")

	// ErrMixedRecords is returned when records span several (operation, size) pairs.
	ErrMixedRecords = errors.New("ranking: records span several operations or sizes")
)

// Order maps a library to its display position; lower comes first.
// Unknown libraries should return a negative value and sort last.
type Order func(bench.LibraryID) int

// Entry is one ranked record.
type Entry struct {
	Rank   int                `json:"rank" yaml:"rank"`
	Tied   bool               `json:"tied" yaml:"tied"`
	Record bench.ResultRecord `json:"record" yaml:"record"`
}

// Leaderboard is the ordering of one (operation, size).
type Leaderboard struct {
	Operation bench.OperationKind  `json:"operation" yaml:"operation"`
	Size      int                  `json:"size" yaml:"size"`
	Ranked    []Entry              `json:"ranked" yaml:"ranked"`
	Excluded  []bench.ResultRecord `json:"excluded" yaml:"excluded"`
}

// Winner returns the first ranked entry; ok is false when nothing ranked.
func (l Leaderboard) Winner() (Entry, bool) {
	if len(l.Ranked) == 0 {
		return Entry{}, false
	}

	return l.Ranked[0], true
}

// key is the grouping key of RankAll.
type key struct {
	op   bench.OperationKind
	size int
}

// Rank builds the Leaderboard of records, which must share operation and size.
// A nil order falls back to lexicographic library IDs for tie display.
//
// Errors:
//   - ErrNoRecords, ErrMixedRecords.
//
// Complexity:
//   - O(k log k) for k records.
func Rank(records []bench.ResultRecord, order Order) (Leaderboard, error) {
	if len(records) == 0 {
		return Leaderboard{}, ErrNoRecords
	}
	first := records[0]
	for _, r := range records[1:] {
		if r.Operation != first.Operation || r.Size != first.Size {
			return Leaderboard{}, fmt.Errorf("%s/%d vs %s/%d: %w", first.Operation, first.Size, r.Operation, r.Size, ErrMixedRecords)
		}
	}

	eligible := lo.Filter(records, func(r bench.ResultRecord, _ int) bool { return r.Ranked() })
	excluded := lo.Reject(records, func(r bench.ResultRecord, _ int) bool { return r.Ranked() })
	slices.SortStableFunc(eligible, func(a, b bench.ResultRecord) int {
		if c := bench.CompareThroughput(a, b); c != 0 {
			return c
		}
		return compareLibraries(a.Library, b.Library, order)
	})

	board := Leaderboard{
		Operation: first.Operation,
		Size:      first.Size,
		Ranked:    make([]Entry, len(eligible)),
		Excluded:  excluded,
	}
	for i, r := range eligible {
		rank := i + 1
		if i > 0 && bench.CompareThroughput(eligible[i-1], r) == 0 {
			rank = board.Ranked[i-1].Rank
			board.Ranked[i-1].Tied = true
			board.Ranked[i].Tied = true
		}
		board.Ranked[i].Rank = rank
		board.Ranked[i].Record = r
	}

	return board, nil
}

// RankAll groups records by (operation, size) and ranks each group. Boards
// are returned ordered by operation, then size.
func RankAll(records []bench.ResultRecord, order Order) []Leaderboard {
	groups := lo.GroupBy(records, func(r bench.ResultRecord) key { return key{r.Operation, r.Size} })
	keys := lo.Keys(groups)
	slices.SortFunc(keys, func(a, b key) int {
		if a.op != b.op {
			return int(a.op) - int(b.op)
		}
		return a.size - b.size
	})

	boards := make([]Leaderboard, 0, len(keys))
	for _, k := range keys {
		// groups are non-empty and homogeneous by construction
		board, _ := Rank(groups[k], order)
		boards = append(boards, board)
	}

	return boards
}

// compareLibraries is the deterministic display order among tied records.
func compareLibraries(a, b bench.LibraryID, order Order) int {
	if order != nil {
		oa, ob := order(a), order(b)
		if oa < 0 {
			oa = math.MaxInt
		}
		if ob < 0 {
			ob = math.MaxInt
		}
		if oa != ob {
			if oa < ob {
				return -1
			}
			return 1
		}
	}

	return strings.Compare(string(a), string(b))
}
