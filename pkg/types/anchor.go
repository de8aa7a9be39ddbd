// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Anchor carries the format-specific fragment of the previously processed
// catalog entry. The zero value is the start-of-pass anchor.
type Anchor struct {
	Marker string // Presence fragment of the previous entry ("" before the first)
	Entry  *CatalogEntry
}

// InsertionPoint is where a stub goes. AtOrigin reports that the anchor
// was empty or could not be found, so the position was searched from the
// top of the file instead of after the previous entry.
type InsertionPoint struct {
	Offset   int
	AtOrigin bool
}

// Insertion records one stub spliced into an artifact.
type Insertion struct {
	Name     string `json:"name" yaml:"name"`
	Offset   int    `json:"offset" yaml:"offset"`
	AtOrigin bool   `json:"at_origin,omitempty" yaml:"at_origin,omitempty"`
	Stub     string `json:"stub" yaml:"stub"`
}
