// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/library"
)

func newLibrariesCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "libraries",
		Short: "List registered libraries and their supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(library.All())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVERSION\tOPERATIONS")
			for _, d := range library.All() {
				a, err := library.NewAdapter(d.ID, log.Logger)
				if err != nil {
					return err
				}
				var ops []string
				for _, k := range bench.AllOperations() {
					if a.Supports(k) {
						ops = append(ops, k.String())
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d %v\n", d.ID, d.PlotName, d.Version, len(ops), len(bench.AllOperations()), ops)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print descriptors as YAML")

	return cmd
}
