// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubsync

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// closestLine finds the line of content most similar to search. It is used
// only to explain an anchor that could not be found. Returns the trimmed
// line, its similarity, and its 1-based line number.
func closestLine(content, search string) (string, float64, int) {
	if search == "" || content == "" {
		return "", 0, 0
	}

	var best string
	var bestSim float64
	var bestLine int
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s := similarity(line, search); s > bestSim {
			best, bestSim, bestLine = line, s, i+1
		}
	}
	return best, bestSim, bestLine
}

// similarity scores how close a line is to the missing anchor: 1 for an
// exact match, 0 when nothing is shared. The score is one minus the edit
// distance over the longer length.
func similarity(a, b string) float64 {
	switch {
	case a == b:
		return 1
	case a == "" || b == "":
		return 0
	}
	dmp := diffmatchpatch.New()
	dist := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	return 1 - float64(dist)/float64(max(len(a), len(b)))
}
