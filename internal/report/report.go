// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders synchronization and coverage results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name; empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// TextRenderer is implemented by results with a human-readable form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// Write encodes v to w. Text output requires v to implement TextRenderer.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		tr, ok := v.(TextRenderer)
		if !ok {
			return fmt.Errorf("%T has no text form", v)
		}
		return tr.RenderText(w)
	}
}

// Diff renders the line-level changes from before to after. Each hunk
// starts with a header naming its first line; added lines are prefixed
// with "+" and removed lines with "-". Identical texts produce "".
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		n := len(splitLines(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine += n
			newLine += n
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&sb, "@@ +%d,%d @@\n", newLine, n)
			writePrefixed(&sb, "+", d.Text)
			newLine += n
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&sb, "@@ -%d,%d @@\n", oldLine, n)
			writePrefixed(&sb, "-", d.Text)
			oldLine += n
		}
	}
	return sb.String()
}

func writePrefixed(sb *strings.Builder, prefix, text string) {
	for _, l := range splitLines(text) {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

// splitLines splits text into lines, dropping the empty remainder after a
// final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
