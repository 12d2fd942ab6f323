// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command ftdebug is a scaffold over FT.DEBUG's numeric-index inspection
// subcommands (§10.6): FT.CREATE/FT.ADD/FT.SEARCH/FT.DEBUG themselves are
// host-owned and out of scope (spec.md's stated Non-goals), so this tool
// builds a demo NumericRangeTree in process and dumps it, the way
// pebble's own cmd/pebble lets a developer poke at sstable/manifest state
// without a running server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ftdebug",
		Short: "inspect an in-process numeric range tree, mirroring FT.DEBUG",
	}
	root.AddCommand(
		newNumidxSummaryCmd(),
		newDumpNumidxCmd(),
		newDumpNumidxTreeCmd(),
	)
	return root
}
