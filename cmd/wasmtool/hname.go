package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/solo"
)

func newHnameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hname [name...]",
		Short: "Print the hname of contract or function names",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", solo.HashName(name), name)
			}
		},
	}
}
