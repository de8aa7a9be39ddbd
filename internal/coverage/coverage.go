// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package coverage counts how much of the catalog the header and the test
// suite actually implement.
package coverage

import (
	"regexp"
	"sort"
	"strings"

	"github.com/petar-djukic/neonsync/internal/catalog"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// DefaultExclude lists the data-width and type tags the translation does
// not aim to support. A header line containing any of them is not expected
// to be implemented.
var DefaultExclude = []string{"p8", "p16", "p32", "p64", "f16"}

const (
	declToken     = "FORCE_INLINE"
	disabledToken = "// FORCE_INLINE"
	unimplemented = "return TEST_UNIMPL;"
)

var (
	activeDecl = regexp.MustCompile(`(?m)^FORCE_INLINE .+? (v\w+)\(`)
	testFunc   = regexp.MustCompile(`(?m)^[ \t]*result_t[ \t]+test_(\w+)[ \t]*\(`)
)

// Summary is an implemented/expected pair with its ratio.
type Summary struct {
	Expected    int     `json:"expected" yaml:"expected"`
	Implemented int     `json:"implemented" yaml:"implemented"`
	Ratio       float64 `json:"ratio" yaml:"ratio"`
}

// Ratio returns implemented/expected. An empty expected set is an error,
// never 0 or NaN.
func Ratio(implemented, expected int) (float64, error) {
	if expected == 0 {
		return 0, types.ErrDivideByZero
	}
	return float64(implemented) / float64(expected), nil
}

// Header counts header lines mentioning FORCE_INLINE. Lines carrying an
// excluded tag are not expected; lines that are not commented-out
// placeholders are implemented.
func Header(text string, exclude []string) (Summary, error) {
	var s Summary
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, declToken) {
			continue
		}
		if !containsAny(line, exclude) {
			s.Expected++
		}
		if !strings.Contains(line, disabledToken) {
			s.Implemented++
		}
	}

	r, err := Ratio(s.Implemented, s.Expected)
	if err != nil {
		return s, err
	}
	s.Ratio = r
	return s, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ImplementedNames returns the intrinsics with an active declaration at
// the start of a header line.
func ImplementedNames(text string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range activeDecl.FindAllStringSubmatch(text, -1) {
		names[m[1]] = true
	}
	return names
}

// Group is the coverage of one catalog group. Primary groups carry their
// secondary groups in Groups.
type Group struct {
	Name        string  `json:"name" yaml:"name"`
	Implemented int     `json:"implemented" yaml:"implemented"`
	Total       int     `json:"total" yaml:"total"`
	Groups      []Group `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Groups breaks coverage down by primary group (the part of the group path
// before " / ") and by full group path, both sorted by name. Counts are over
// distinct names.
func Groups(entries []types.CatalogEntry, implemented map[string]bool) []Group {
	primary := make(map[string]map[string]bool)
	secondary := make(map[string]map[string]bool)
	for _, e := range entries {
		p := catalog.PrimaryGroup(e.Group)
		addName(primary, p, e.Name)
		addName(secondary, e.Group, e.Name)
	}

	var out []Group
	for _, p := range sortedKeys(primary) {
		g := count(p, primary[p], implemented)
		for _, s := range catalog.Groups(entries) {
			if catalog.PrimaryGroup(s) == p {
				g.Groups = append(g.Groups, count(s, secondary[s], implemented))
			}
		}
		out = append(out, g)
	}
	return out
}

// Total returns distinct catalog names that are implemented, over all
// distinct catalog names.
func Total(entries []types.CatalogEntry, implemented map[string]bool) Group {
	return count("Total", catalog.Names(entries), implemented)
}

func count(name string, names, implemented map[string]bool) Group {
	g := Group{Name: name, Total: len(names)}
	for n := range names {
		if implemented[n] {
			g.Implemented++
		}
	}
	return g
}

func addName(m map[string]map[string]bool, key, name string) {
	if m[key] == nil {
		m[key] = make(map[string]bool)
	}
	m[key][name] = true
}

func sortedKeys(m map[string]map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TestSummary counts test functions, treating a body that only returns
// TEST_UNIMPL as not implemented.
type TestSummary struct {
	Summary
	Unimplemented []string `json:"unimplemented,omitempty" yaml:"unimplemented,omitempty"`
}

// Tests scans a test implementation file.
func Tests(text string) (TestSummary, error) {
	var s TestSummary
	for _, loc := range testFunc.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		s.Expected++
		body, ok := functionBody(text, loc[1])
		if ok && strings.Join(strings.Fields(body), " ") == unimplemented {
			s.Unimplemented = append(s.Unimplemented, name)
			continue
		}
		s.Implemented++
	}

	r, err := Ratio(s.Implemented, s.Expected)
	if err != nil {
		return s, err
	}
	s.Ratio = r
	return s, nil
}

// functionBody returns the text between the first '{' at or after from and
// its matching '}'. A ';' before the '{' means a prototype without a body.
func functionBody(text string, from int) (string, bool) {
	open := strings.IndexAny(text[from:], "{;")
	if open < 0 || text[from+open] == ';' {
		return "", false
	}
	open += from

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open+1 : i], true
			}
		}
	}
	return "", false
}
