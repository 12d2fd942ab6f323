// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/RediSearch/RediSearch-sub004/internal/numtree"
)

// newNumidxSummaryCmd implements FT.DEBUG NUMIDX_SUMMARY: overall tree
// stats plus a sparkline of each leaf's record count, rendered with
// asciigraph the way an operator eyeballs skew across a tree's leaves.
func newNumidxSummaryCmd() *cobra.Command {
	var docs int
	cmd := &cobra.Command{
		Use:   "numidx-summary",
		Short: "print NumericRangeTree summary stats (FT.DEBUG NUMIDX_SUMMARY)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := buildDemoTree(docs)
			if err != nil {
				return err
			}
			return runNumidxSummary(cmd, tr)
		},
	}
	cmd.Flags().IntVar(&docs, "docs", 5000, "number of synthetic documents to insert")
	return cmd
}

func runNumidxSummary(cmd *cobra.Command, tr *numtree.NumericRangeTree) error {
	var counts []float64
	var leafCount int
	it := tr.Iter()
	var entry numtree.IterEntry
	for it(&entry) {
		if !entry.IsLeaf {
			continue
		}
		leafCount++
		counts = append(counts, float64(entry.Range.Count))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "revision:   %d\n", tr.Revision())
	fmt.Fprintf(cmd.OutOrStdout(), "leaves:     %d\n", leafCount)
	fmt.Fprintf(cmd.OutOrStdout(), "mem_usage:  %d bytes\n", tr.MemUsage())

	if leafCount == 0 {
		return nil
	}
	graph := asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Caption("records per leaf (pre-order)"),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}
