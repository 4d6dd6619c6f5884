// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	json    bool
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:           "matbench",
		Short:         "Compare dense linear-algebra libraries on identical inputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), rf)
		},
	}
	root.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&rf.json, "log-json", false, "log as JSON lines instead of console text")

	root.AddCommand(newLibrariesCmd(), newRunCmd(), newRankCmd())

	return root
}

// setupLogging installs the global zerolog logger on w.
func setupLogging(w io.Writer, rf rootFlags) {
	level := zerolog.InfoLevel
	if rf.verbose {
		level = zerolog.DebugLevel
	}
	if !rf.json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}
