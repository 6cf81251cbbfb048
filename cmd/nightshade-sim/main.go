// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command nightshade-sim spins up a local, in-process Nightshade
// session and drives it to commitment, for manual inspection and
// parameter tuning.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nightshade-sim",
	Short: "Run a local Nightshade consensus session",
	Long: `nightshade-sim spins up N in-process authorities, each driven by its
own Engine and gossip Task connected through in-memory channels, and
runs a full-mesh simulation until every authority commits or the time
budget set by --timeout is exhausted.`,
}

func main() {
	rootCmd.AddCommand(runCmd(), paramsCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
