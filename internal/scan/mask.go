// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// maskQuery captures the lexical regions whose text must not count as a
// declaration: comments and string literals.
const maskQuery = `
	(comment) @mask
	(string_literal) @mask
`

// span is a half-open byte range [start, end).
type span struct {
	start int
	end   int
}

// mask is a sorted, non-overlapping set of spans.
type mask []span

// buildMask parses text as C++ and collects comment and string spans.
// Parse failures yield an empty mask, so every match counts.
func buildMask(ctx context.Context, text string) mask {
	if text == "" {
		return nil
	}
	content := []byte(text)
	lang := cpp.GetLanguage()

	root, err := sitter.ParseCtx(ctx, content, lang)
	if err != nil || root == nil {
		return nil
	}

	q, err := sitter.NewQuery([]byte(maskQuery), lang)
	if err != nil {
		return nil
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var m mask
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			m = append(m, span{start: int(c.Node.StartByte()), end: int(c.Node.EndByte())})
		}
	}

	sort.Slice(m, func(i, j int) bool { return m[i].start < m[j].start })
	return m
}

// covering returns the span containing pos, if any.
func (m mask) covering(pos int) (span, bool) {
	i := sort.Search(len(m), func(i int) bool { return m[i].start > pos })
	if i == 0 {
		return span{}, false
	}
	s := m[i-1]
	if pos < s.end {
		return s, true
	}
	return span{}, false
}

// allows reports whether a match at pos is real code. A disabled stub is
// accepted only when its own comment opens at pos.
func (m mask) allows(pos int, disabled bool) bool {
	s, ok := m.covering(pos)
	if !ok {
		return true
	}
	return disabled && s.start == pos
}
