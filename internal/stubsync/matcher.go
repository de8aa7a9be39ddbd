// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubsync

import (
	"context"
	"fmt"
	"strings"

	"github.com/petar-djukic/neonsync/internal/scan"
	"github.com/petar-djukic/neonsync/internal/stub"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// MatchMode selects how presence and anchors are resolved.
type MatchMode string

const (
	// MatchLiteral tests raw substring containment and searches marker
	// tokens in the text. A fragment inside an unrelated comment counts as
	// present, and a declaration that differs only in whitespace counts as
	// missing.
	MatchLiteral MatchMode = "literal"

	// MatchStructured resolves presence and anchors against a declaration
	// index. Comments and string literals never match, return types compare
	// whitespace-insensitively, and header stubs go before the whole line of
	// the next declaration, so a following "// FORCE_INLINE" placeholder is
	// never split.
	MatchStructured MatchMode = "structured"
)

// ParseMatchMode validates a mode name; empty selects MatchLiteral.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchLiteral:
		return MatchLiteral, nil
	case MatchStructured:
		return MatchStructured, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, MatchLiteral, MatchStructured)
	}
}

// Matcher answers presence and insertion-point questions for one artifact
// pass. Implementations may keep state about the text; Inserted must be
// called after every splice so that state stays aligned.
type Matcher interface {
	// Present reports whether e already exists in text.
	Present(text string, e types.CatalogEntry) bool
	// Locate returns where the stub for the entry following anchor goes.
	Locate(text string, anchor types.Anchor) types.InsertionPoint
	// Inserted records that stub for e was spliced in at offset.
	Inserted(offset int, e types.CatalogEntry, stub string)
}

// NewMatcher returns the matcher for mode over the initial text of kind.
func NewMatcher(ctx context.Context, mode MatchMode, kind types.ArtifactKind, text string) Matcher {
	if mode == MatchStructured {
		return &StructuredMatcher{kind: kind, index: scan.Build(ctx, kind, text)}
	}
	return &LiteralMatcher{kind: kind}
}

// LiteralMatcher is the substring oracle. It holds no state; every call
// searches the latest text.
type LiteralMatcher struct {
	kind types.ArtifactKind
}

var _ Matcher = (*LiteralMatcher)(nil)

func (m *LiteralMatcher) Present(text string, e types.CatalogEntry) bool {
	return strings.Contains(text, stub.Fragment(m.kind, e))
}

// Locate finds the first occurrence of the anchor marker, then the next
// marker token after it. An empty or missing anchor searches from the top
// of the file and is reported as AtOrigin. No marker token after the
// anchor means the end of the text.
func (m *LiteralMatcher) Locate(text string, anchor types.Anchor) types.InsertionPoint {
	start := strings.Index(text, anchor.Marker)
	atOrigin := anchor.Marker == "" || start < 0

	from := start + 1
	if from > len(text) {
		from = len(text)
	}

	marker := stub.Marker(m.kind)
	i := strings.Index(text[from:], marker)
	if i < 0 {
		return types.InsertionPoint{Offset: len(text), AtOrigin: atOrigin}
	}

	offset := from + i
	if stub.InsertAfterMarker(m.kind) {
		offset += len(marker)
	}
	return types.InsertionPoint{Offset: offset, AtOrigin: atOrigin}
}

func (m *LiteralMatcher) Inserted(int, types.CatalogEntry, string) {}

// StructuredMatcher answers from a declaration index built once from the
// initial text and updated on every insertion.
type StructuredMatcher struct {
	kind  types.ArtifactKind
	index *scan.Index
}

var _ Matcher = (*StructuredMatcher)(nil)

func (m *StructuredMatcher) Present(_ string, e types.CatalogEntry) bool {
	return m.index.Find(e) >= 0
}

// Locate places the stub after the anchor's declaration: on the following
// line for the test-declaration kind, otherwise at the start of the next
// declaration line. Without an anchor the stub goes before the first
// declaration.
func (m *StructuredMatcher) Locate(_ string, anchor types.Anchor) types.InsertionPoint {
	decls := m.index.Decls
	size := m.index.Size()

	at := -1
	if anchor.Entry != nil {
		at = m.index.Find(*anchor.Entry)
	}
	if at < 0 {
		if len(decls) == 0 {
			return types.InsertionPoint{Offset: size, AtOrigin: true}
		}
		return types.InsertionPoint{Offset: decls[0].Start, AtOrigin: true}
	}

	if m.kind == types.KindTestDecl {
		return types.InsertionPoint{Offset: decls[at].End}
	}

	next := m.index.Next(decls[at].End)
	if next < 0 {
		return types.InsertionPoint{Offset: size}
	}
	return types.InsertionPoint{Offset: decls[next].Start}
}

func (m *StructuredMatcher) Inserted(offset int, e types.CatalogEntry, s string) {
	m.index.Insert(offset, len(s), scan.Decl{
		Name:       e.Name,
		ReturnType: e.ReturnType,
		Disabled:   m.kind != types.KindTestImpl,
	})
}
