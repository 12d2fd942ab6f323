// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/RediSearch/RediSearch-sub004/internal/numtree"
)

// newDumpNumidxCmd implements FT.DEBUG DUMP_NUMIDX: one row per leaf range,
// in the order Iter walks them.
func newDumpNumidxCmd() *cobra.Command {
	var docs int
	cmd := &cobra.Command{
		Use:   "dump-numidx",
		Short: "dump every NumericRangeTree leaf range (FT.DEBUG DUMP_NUMIDX)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := buildDemoTree(docs)
			if err != nil {
				return err
			}
			return runDumpNumidx(cmd, tr)
		},
	}
	cmd.Flags().IntVar(&docs, "docs", 5000, "number of synthetic documents to insert")
	return cmd
}

func runDumpNumidx(cmd *cobra.Command, tr *numtree.NumericRangeTree) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"min", "max", "count", "unique_docs", "cardinality_est"})

	it := tr.Iter()
	var entry numtree.IterEntry
	for it(&entry) {
		if !entry.IsLeaf {
			continue
		}
		r := entry.Range
		table.Append([]string{
			fmt.Sprintf("%g", r.Min),
			fmt.Sprintf("%g", r.Max),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.InvIdx.UniqueDocs()),
			fmt.Sprintf("%.1f", r.CardinalityEstimate()),
		})
	}
	table.Render()
	return nil
}
