// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned when a coverage ratio has no expected entries.
var ErrDivideByZero = errors.New("coverage ratio: expected count is zero")

// IOUnavailableError reports a source file that could not be read.
// Processing of the affected artifact stops; other artifacts continue.
type IOUnavailableError struct {
	Path string
	Err  error
}

func (e *IOUnavailableError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOUnavailableError) Unwrap() error { return e.Err }

// MalformedCatalogError describes a catalog row with too few fields.
type MalformedCatalogError struct {
	Line   int // 1-based line of the offending row
	Fields int // Number of fields found
}

func (e *MalformedCatalogError) Error() string {
	return fmt.Sprintf("malformed catalog row at line %d: got %d fields, want at least 4", e.Line, e.Fields)
}

// TemplateOverflowError is returned when a fixed-width stub cannot fit its
// name within the target width.
type TemplateOverflowError struct {
	Name   string
	Width  int // Target visible width
	Length int // Width the unpadded stub needs
}

func (e *TemplateOverflowError) Error() string {
	return fmt.Sprintf("stub for %s needs %d columns, exceeds width %d", e.Name, e.Length, e.Width)
}
