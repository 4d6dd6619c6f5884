// SPDX-License-Identifier: MIT

// Command matbench runs the cross-library linear-algebra benchmark.
//
//	matbench libraries                      list registered libraries
//	matbench run --ops mult,qr --sizes 64   run a sweep, print leaderboards
//	matbench run --config sweep.yaml --out results.json
//	matbench rank results.json              re-rank a saved report
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("matbench failed")
		os.Exit(1)
	}
}
