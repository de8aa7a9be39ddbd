// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stubsync inserts placeholder stubs for catalog entries missing
// from an artifact, keeping catalog order relative to the entries that are
// already there.
//
// A pass is a left fold over the catalog. The accumulator carries the
// patched text and the anchor of the previous entry; each step either
// leaves the text alone (entry present) or splices one rendered stub in
// after the anchor. The anchor always advances to the current entry, so
// the next insertion is searched after it even when nothing was inserted.
package stubsync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petar-djukic/neonsync/internal/stub"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// Options configures a synchronization pass.
type Options struct {
	Mode   MatchMode
	Stub   stub.Options
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// Outcome is the result of one artifact pass.
type Outcome struct {
	Kind       types.ArtifactKind
	Text       string            // Patched text
	Insertions []types.Insertion // Stubs in insertion order
	Present    int               // Entries already in the artifact
}

// state is the fold accumulator.
type state struct {
	text       string
	anchor     types.Anchor
	insertions []types.Insertion
	present    int
}

// Apply returns text with s spliced in at offset. Offsets outside the text
// are clamped. text itself is never modified.
func Apply(text string, offset int, s string) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return text[:offset] + s + text[offset:]
}

// Detect returns the entries missing from text, in catalog order, without
// patching anything.
func Detect(ctx context.Context, entries []types.CatalogEntry, kind types.ArtifactKind, text string, mode MatchMode) []types.CatalogEntry {
	m := NewMatcher(ctx, mode, kind, text)
	var missing []types.CatalogEntry
	for _, e := range entries {
		if !m.Present(text, e) {
			missing = append(missing, e)
		}
	}
	return missing
}

// Synchronize runs one pass over entries for an artifact of the given kind
// and returns the patched text. A stub that cannot be rendered aborts the
// pass; the input text is left untouched either way.
func Synchronize(ctx context.Context, entries []types.CatalogEntry, kind types.ArtifactKind, text string, opts Options) (*Outcome, error) {
	log := opts.logger().With(zap.Stringer("kind", kind))
	m := NewMatcher(ctx, opts.Mode, kind, text)

	step := func(s state, e types.CatalogEntry) (state, error) {
		next := s
		next.anchor = types.Anchor{Marker: stub.Fragment(kind, e), Entry: &e}

		if m.Present(s.text, e) {
			next.present++
			return next, nil
		}

		rendered, err := stub.Render(e, kind, opts.Stub)
		if err != nil {
			return s, fmt.Errorf("rendering stub for %s: %w", e.Name, err)
		}

		p := m.Locate(s.text, s.anchor)
		if p.AtOrigin && s.anchor.Marker != "" {
			line, sim, lineNo := closestLine(s.text, s.anchor.Marker)
			log.Warn("anchor not found, inserting from top of file",
				zap.String("name", e.Name),
				zap.String("anchor", s.anchor.Marker),
				zap.String("closest", line),
				zap.Int("closest_line", lineNo),
				zap.Float64("similarity", sim))
		}

		next.text = Apply(s.text, p.Offset, rendered)
		m.Inserted(p.Offset, e, rendered)
		next.insertions = append(s.insertions, types.Insertion{
			Name:     e.Name,
			Offset:   p.Offset,
			AtOrigin: p.AtOrigin,
			Stub:     rendered,
		})
		log.Debug("inserted stub",
			zap.String("name", e.Name),
			zap.Int("offset", p.Offset),
			zap.Bool("at_origin", p.AtOrigin))
		return next, nil
	}

	final, err := foldl(entries, state{text: text}, step)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Kind:       kind,
		Text:       final.text,
		Insertions: final.insertions,
		Present:    final.present,
	}, nil
}

// foldl applies f left to right, threading the accumulator, and stops at
// the first error.
func foldl[T, A any](xs []T, acc A, f func(A, T) (A, error)) (A, error) {
	for _, x := range xs {
		var err error
		if acc, err = f(acc, x); err != nil {
			return acc, err
		}
	}
	return acc, nil
}
