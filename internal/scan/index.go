// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan indexes the declarations an artifact already carries, so
// presence and anchor lookups work on entries rather than raw substrings.
package scan

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/petar-djukic/neonsync/pkg/types"
)

var (
	headerDecl = regexp.MustCompile(`(?m)^[ \t]*(//[ \t]*)?FORCE_INLINE[ \t]+([^(\n]*?)[ \t]*\b([A-Za-z_]\w*)[ \t]*\(`)
	listDecl   = regexp.MustCompile(`(/\*[ \t]*)?_\(([A-Za-z_]\w*)\)`)
	testDecl   = regexp.MustCompile(`(?m)^[ \t]*result_t[ \t]+test_([A-Za-z_]\w*)[ \t]*\(`)
)

// Decl is one declaration found in an artifact. Start and End cover the
// whole line holding it, including the trailing newline when present.
type Decl struct {
	Name       string
	ReturnType string // Header kind only
	Start      int
	End        int
	Disabled   bool // Commented-out placeholder
}

// Index is the ordered set of declarations in one artifact.
type Index struct {
	Kind  types.ArtifactKind
	Decls []Decl
	size  int
}

// Build scans text for declarations of the given kind. Matches inside
// comments or string literals are ignored, except the commented-out
// placeholder forms this tool writes.
func Build(ctx context.Context, kind types.ArtifactKind, text string) *Index {
	idx := &Index{Kind: kind, size: len(text)}
	m := buildMask(ctx, text)

	switch kind {
	case types.KindHeader:
		for _, loc := range headerDecl.FindAllStringSubmatchIndex(text, -1) {
			disabled := loc[2] >= 0
			pos := strings.Index(text[loc[0]:loc[1]], "FORCE_INLINE") + loc[0]
			if disabled {
				pos = loc[2]
			}
			if !m.allows(pos, disabled) {
				continue
			}
			idx.add(text, pos, Decl{
				Name:       text[loc[6]:loc[7]],
				ReturnType: NormalizeType(text[loc[4]:loc[5]]),
				Disabled:   disabled,
			})
		}
	case types.KindTestDecl:
		for _, loc := range listDecl.FindAllStringSubmatchIndex(text, -1) {
			disabled := loc[2] >= 0
			pos := loc[0]
			if !disabled && pos > 0 && isWordByte(text[pos-1]) {
				continue
			}
			if !m.allows(pos, disabled) {
				continue
			}
			idx.add(text, pos, Decl{Name: text[loc[4]:loc[5]], Disabled: disabled})
		}
	case types.KindTestImpl:
		for _, loc := range testDecl.FindAllStringSubmatchIndex(text, -1) {
			pos := strings.Index(text[loc[0]:loc[1]], "result_t") + loc[0]
			if !m.allows(pos, false) {
				continue
			}
			idx.add(text, pos, Decl{Name: text[loc[2]:loc[3]]})
		}
	}
	return idx
}

func (idx *Index) add(text string, pos int, d Decl) {
	d.Start, d.End = lineBounds(text, pos)
	idx.Decls = append(idx.Decls, d)
}

// Find returns the position of the first declaration matching e, or -1.
// Header declarations must also agree on the return type.
func (idx *Index) Find(e types.CatalogEntry) int {
	rt := NormalizeType(e.ReturnType)
	for i, d := range idx.Decls {
		if d.Name != e.Name {
			continue
		}
		if idx.Kind == types.KindHeader && d.ReturnType != rt {
			continue
		}
		return i
	}
	return -1
}

// Next returns the position of the first declaration starting at or after
// offset, or -1.
func (idx *Index) Next(offset int) int {
	i := sort.Search(len(idx.Decls), func(i int) bool { return idx.Decls[i].Start >= offset })
	if i == len(idx.Decls) {
		return -1
	}
	return i
}

// Size returns the length of the indexed text.
func (idx *Index) Size() int {
	return idx.size
}

// Insert records length bytes spliced in at offset holding d. Spans after
// the splice shift right; d covers [offset, offset+length).
func (idx *Index) Insert(offset, length int, d Decl) {
	for i := range idx.Decls {
		switch {
		case idx.Decls[i].Start >= offset:
			idx.Decls[i].Start += length
			idx.Decls[i].End += length
		case idx.Decls[i].End > offset:
			idx.Decls[i].End += length
		}
	}
	d.Start, d.End = offset, offset+length
	if d.ReturnType != "" {
		d.ReturnType = NormalizeType(d.ReturnType)
	}

	at := sort.Search(len(idx.Decls), func(i int) bool { return idx.Decls[i].Start >= d.End })
	idx.Decls = append(idx.Decls, Decl{})
	copy(idx.Decls[at+1:], idx.Decls[at:])
	idx.Decls[at] = d
	idx.size += length
}

// NormalizeType collapses whitespace in a C type and removes it around
// pointer and reference markers, so "int8_t *" and "int8_t*" compare equal.
func NormalizeType(t string) string {
	t = strings.Join(strings.Fields(t), " ")
	t = strings.ReplaceAll(t, " *", "*")
	t = strings.ReplaceAll(t, "* ", "*")
	t = strings.ReplaceAll(t, " &", "&")
	return strings.ReplaceAll(t, "& ", "&")
}

// lineBounds returns the start of the line holding pos and the offset just
// past its newline (or the end of text).
func lineBounds(text string, pos int) (int, int) {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return start, len(text)
	}
	return start, pos + end + 1
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
