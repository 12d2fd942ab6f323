// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/ghemawat/stream"
)

// filterBetween mirrors the teacher's own data_test.go streamFilterBetweenGrep:
// a stream.Filter that passes through only the lines strictly between the
// first line matching start and the next line matching end, neither of
// which is itself emitted. Debug-dump commands bracket their data rows with
// sentinel markers (beginNodesMarker/endNodesMarker) specifically so tests
// can lift the data out of table-library decoration this way instead of
// pinning border characters verbatim.
func filterBetween(start, end string) stream.Filter {
	startRegexp := regexp.MustCompile(start)
	endRegexp := regexp.MustCompile(end)
	var passedStart bool
	return stream.FilterFunc(func(arg stream.Arg) error {
		for s := range arg.In {
			if passedStart {
				if endRegexp.MatchString(s) {
					break
				}
				arg.Out <- s
				continue
			}
			passedStart = startRegexp.MatchString(s)
		}
		return nil
	})
}

// runFilter feeds text line-by-line through f and collects the lines it
// emits, driving the stream.Filter interface directly (In/Out channels)
// rather than the package's own pipeline composition helpers, since a
// single-stage filter has no need for a multi-stage stream.Run chain.
func runFilter(text string, f stream.Filter) ([]string, error) {
	in := make(chan string)
	out := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		errc <- f.Run(stream.Arg{In: in, Out: out})
	}()
	go func() {
		defer close(in)
		sc := bufio.NewScanner(strings.NewReader(text))
		for sc.Scan() {
			in <- sc.Text()
		}
	}()

	var lines []string
	for l := range out {
		lines = append(lines, l)
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return lines, nil
}
