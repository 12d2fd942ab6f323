// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestDumpNumidxTreeStreamFiltersDataRows drives runDumpNumidxTree's output
// through filterBetween the way the teacher's data_test.go drives recorded
// command output through streamFilterBetweenGrep: the table's border and
// header decoration is allowed to vary (tablewriter version, column
// widths) while the test still pins down that every data row names a
// node kind.
func TestDumpNumidxTreeStreamFiltersDataRows(t *testing.T) {
	tr, err := buildDemoTree(50)
	require.NoError(t, err)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runDumpNumidxTree(cmd, tr))

	rows, err := runFilter(buf.String(), filterBetween(regexp.QuoteMeta(beginNodesMarker), regexp.QuoteMeta(endNodesMarker)))
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		require.NotContains(t, row, beginNodesMarker)
		require.NotContains(t, row, endNodesMarker)
	}

	var sawNode bool
	for _, row := range rows {
		if strings.Contains(row, "leaf") || strings.Contains(row, "split") {
			sawNode = true
			break
		}
	}
	require.True(t, sawNode, "expected at least one leaf or split row between the markers")
}
