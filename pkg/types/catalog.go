// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types holds the data shared by the catalog, the artifact
// scanners, and the stub synchronizer.
package types

// CatalogEntry is one intrinsic signature from the authoritative catalog.
// Entries are immutable once parsed and keep catalog file order.
type CatalogEntry struct {
	ReturnType string `json:"return_type" yaml:"return_type"` // e.g. "int32x4_t"
	Name       string `json:"name" yaml:"name"`               // e.g. "vaddq_s32"
	Arguments  string `json:"arguments" yaml:"arguments"`     // Literal parameter list including parentheses
	Group      string `json:"group" yaml:"group"`             // e.g. "Vector arithmetic / Add / Addition"
}

// ArtifactKind identifies one of the three maintained text files.
type ArtifactKind int

const (
	KindHeader   ArtifactKind = iota // Translation header (FORCE_INLINE declarations)
	KindTestDecl                     // Test declaration macro list (_(name) entries)
	KindTestImpl                     // Test implementation (result_t test_name functions)
)

// Kinds lists every artifact kind in processing order.
var Kinds = []ArtifactKind{KindHeader, KindTestDecl, KindTestImpl}

func (k ArtifactKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindTestDecl:
		return "test-decl"
	case KindTestImpl:
		return "test-impl"
	default:
		return "unknown"
	}
}

// MarshalText lets kinds appear by name in JSON and YAML reports.
func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Artifact is the full text of one target file. The synchronizer never
// mutates Content; every patch produces a new string.
type Artifact struct {
	Kind    ArtifactKind
	Path    string
	Content string
}
