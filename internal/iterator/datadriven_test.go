// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterator

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

// runIterCmd drives it with one datadriven command, in the same style as
// pebble's own data_test.go runIterCmd: a small dispatch over
// read/skip-to/rewind verbs, each printing its result or "." at EOF.
func runIterCmd(d *datadriven.TestData, it QueryIterator) string {
	var buf strings.Builder
	for _, line := range strings.Split(d.Input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "read":
			res, err := it.Read()
			printResult(&buf, res, err)
		case "skip-to":
			target, _ := strconv.Atoi(fields[1])
			out, err := it.SkipTo(base.DocId(target))
			if err != nil {
				fmt.Fprintf(&buf, "err: %v\n", err)
				continue
			}
			if out.Found {
				fmt.Fprintf(&buf, "found: ")
				printResult(&buf, out.Result, nil)
			} else if out.Result != nil {
				fmt.Fprintf(&buf, "not-found, next: ")
				printResult(&buf, out.Result, nil)
			} else {
				fmt.Fprintf(&buf, "not-found, eof\n")
			}
		case "rewind":
			it.Rewind()
			fmt.Fprintf(&buf, "ok\n")
		default:
			fmt.Fprintf(&buf, "unknown command %q\n", fields[0])
		}
	}
	return buf.String()
}

func printResult(buf *strings.Builder, res *IndexResult, err error) {
	if err != nil {
		fmt.Fprintf(buf, "err: %v\n", err)
		return
	}
	if res == nil {
		fmt.Fprintf(buf, ".\n")
		return
	}
	fmt.Fprintf(buf, "doc_id=%d weight=%g freq=%d\n", res.DocID, res.Weight, res.Freq)
}

// TestIntersectionDataDriven mirrors runIterCmd over an Intersection of two
// fixed IdList leaves, matching pebble's data_test.go pattern of a fixed
// backing store driven by testdata/ command scripts rather than inline Go
// assertions.
func TestIntersectionDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/intersection", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "run":
			left := NewIdList([]base.DocId{1, 2, 3, 5, 8, 13}, true)
			right := NewIdList([]base.DocId{2, 3, 5, 7, 8}, true)
			it := NewIntersection([]QueryIterator{left, right}, IntersectionFull)
			return runIterCmd(d, it)
		default:
			return fmt.Sprintf("unknown command %q", d.Cmd)
		}
	})
}

// TestIdListDataDriven exercises a sorted IdList leaf's skip-to/read
// semantics directly.
func TestIdListDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/idlist", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "run":
			it := NewIdList([]base.DocId{1, 2, 3, 5, 8, 13}, true)
			return runIterCmd(d, it)
		default:
			return fmt.Sprintf("unknown command %q", d.Cmd)
		}
	})
}

// TestUnionDataDriven exercises Union the same way.
func TestUnionDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/union", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "run":
			a := NewIdList([]base.DocId{1, 4, 9}, true)
			b := NewIdList([]base.DocId{2, 4, 6}, true)
			it := NewUnion([]QueryIterator{a, b}, UnionFull)
			return runIterCmd(d, it)
		default:
			return fmt.Sprintf("unknown command %q", d.Cmd)
		}
	})
}
