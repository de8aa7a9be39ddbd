// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stub holds the per-artifact text templates: the fragment that
// proves an entry is present, the marker token that delimits entries, and
// the placeholder rendered for a missing entry.
package stub

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/neonsync/pkg/types"
)

const (
	// DefaultDeclWidth is the visible width of a test-declaration stub line,
	// counted through the trailing line continuation.
	DefaultDeclWidth = 79

	// DefaultImplType is the test fixture type taken by every test function.
	DefaultImplType = "NEON2RVV_TEST_IMPL"
)

const (
	headerMarker      = "FORCE_INLINE"
	declMarker        = "\n"
	implMarker        = "result_t test_"
	declOpen          = "/*"
	declClose         = "*/\\"
	unimplementedBody = " return TEST_UNIMPL;\n}\n"
)

// Options configures stub rendering.
type Options struct {
	DeclWidth int    // Visible width of test-declaration stubs (default 79)
	ImplType  string // Fixture type in test-implementation stubs
}

func (o Options) declWidth() int {
	if o.DeclWidth > 0 {
		return o.DeclWidth
	}
	return DefaultDeclWidth
}

func (o Options) implType() string {
	if o.ImplType != "" {
		return o.ImplType
	}
	return DefaultImplType
}

// Fragment returns the literal text whose presence in an artifact means
// the entry already exists there.
func Fragment(kind types.ArtifactKind, e types.CatalogEntry) string {
	switch kind {
	case types.KindHeader:
		return "FORCE_INLINE " + e.ReturnType + " " + e.Name + "("
	case types.KindTestDecl:
		return "_(" + e.Name + ")"
	case types.KindTestImpl:
		return "result_t test_" + e.Name + "("
	default:
		return ""
	}
}

// Marker returns the token that follows an anchor and bounds the insertion.
func Marker(kind types.ArtifactKind) string {
	switch kind {
	case types.KindHeader:
		return headerMarker
	case types.KindTestDecl:
		return declMarker
	case types.KindTestImpl:
		return implMarker
	default:
		return ""
	}
}

// InsertAfterMarker reports whether stubs go after the marker token rather
// than before it. Test-declaration stubs start on the line after the anchor.
func InsertAfterMarker(kind types.ArtifactKind) bool {
	return kind == types.KindTestDecl
}

// Render produces the placeholder text for a missing entry.
func Render(e types.CatalogEntry, kind types.ArtifactKind, opts Options) (string, error) {
	switch kind {
	case types.KindHeader:
		return "// FORCE_INLINE " + e.ReturnType + " " + e.Name + e.Arguments + "; \n", nil
	case types.KindTestDecl:
		return renderDecl(e.Name, opts.declWidth())
	case types.KindTestImpl:
		return "result_t test_" + e.Name + "(const " + opts.implType() +
			" &impl, uint32_t iter) {\n" + unimplementedBody, nil
	default:
		return "", fmt.Errorf("unknown artifact kind %d", kind)
	}
}

// renderDecl pads a disabled macro entry so the continuation backslash
// lands exactly in column width.
func renderDecl(name string, width int) (string, error) {
	head := declOpen + Fragment(types.KindTestDecl, types.CatalogEntry{Name: name})
	need := len(head) + len(declClose)
	if need > width {
		return "", &types.TemplateOverflowError{Name: name, Width: width, Length: need}
	}
	return head + strings.Repeat(" ", width-need) + declClose + "\n", nil
}
