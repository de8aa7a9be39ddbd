// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package neonsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/petar-djukic/neonsync/internal/artifact"
	"github.com/petar-djukic/neonsync/internal/catalog"
	"github.com/petar-djukic/neonsync/internal/git"
	"github.com/petar-djukic/neonsync/internal/report"
	"github.com/petar-djukic/neonsync/internal/stubsync"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// SyncOptions controls what a Sync call produces.
type SyncOptions struct {
	DryRun bool // Do not write patched copies
	Diff   bool // Include a line diff of each patched copy
}

// ArtifactResult is the outcome of one artifact pass. Error is set when
// the pass failed; the other passes are unaffected.
type ArtifactResult struct {
	Kind       types.ArtifactKind `json:"kind" yaml:"kind"`
	Source     string             `json:"source" yaml:"source"`
	Output     string             `json:"output,omitempty" yaml:"output,omitempty"`
	Present    int                `json:"present" yaml:"present"`
	Insertions []types.Insertion  `json:"insertions,omitempty" yaml:"insertions,omitempty"`
	SourceHash string             `json:"source_hash,omitempty" yaml:"source_hash,omitempty"`
	OutputHash string             `json:"output_hash,omitempty" yaml:"output_hash,omitempty"`
	Dirty      bool               `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	Diff       string             `json:"diff,omitempty" yaml:"diff,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the error that stopped this pass, if any.
func (r *ArtifactResult) Err() error { return r.err }

// Result holds every artifact pass of a Sync call.
type Result struct {
	Catalog   string           `json:"catalog" yaml:"catalog"`
	Entries   int              `json:"entries" yaml:"entries"`
	Match     string           `json:"match" yaml:"match"`
	DryRun    bool             `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Artifacts []ArtifactResult `json:"artifacts" yaml:"artifacts"`
}

// Err joins the errors of all failed passes.
func (r *Result) Err() error {
	var errs []error
	for i := range r.Artifacts {
		if err := r.Artifacts[i].err; err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Artifacts[i].Kind, err))
		}
	}
	return errors.Join(errs...)
}

// RenderText prints one summary line per artifact, then any diffs.
func (r *Result) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "catalog: %s (%d entries, %s match)\n", r.Catalog, r.Entries, r.Match)
	for _, a := range r.Artifacts {
		if a.Error != "" {
			fmt.Fprintf(w, "%-9s  %s: error: %s\n", a.Kind, a.Source, a.Error)
			continue
		}
		dest := a.Output
		if dest == "" {
			dest = "(not written)"
		}
		fmt.Fprintf(w, "%-9s  %s: %d present, %d stubs inserted -> %s\n",
			a.Kind, a.Source, a.Present, len(a.Insertions), dest)
		for _, ins := range a.Insertions {
			origin := ""
			if ins.AtOrigin {
				origin = " (anchored at top)"
			}
			fmt.Fprintf(w, "    + %s @%d%s\n", ins.Name, ins.Offset, origin)
		}
	}
	for _, a := range r.Artifacts {
		if a.Diff != "" {
			fmt.Fprintf(w, "\n--- %s\n+++ %s\n%s", a.Source, a.Output, a.Diff)
		}
	}
	return nil
}

// Sync parses the catalog once, then patches each artifact independently.
// A catalog error fails the whole call; an artifact error is recorded in
// that artifact's result and the remaining artifacts are still processed.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*Result, error) {
	entries, err := catalog.Load(s.cfg.Catalog)
	if err != nil {
		return nil, err
	}
	s.log.Info("catalog loaded", zap.String("path", s.cfg.Catalog), zap.Int("entries", len(entries)))

	dirty := s.dirtySources()

	res := &Result{
		Catalog: s.cfg.Catalog,
		Entries: len(entries),
		Match:   string(s.mode),
		DryRun:  opts.DryRun,
	}
	for _, kind := range types.Kinds {
		ar := s.syncArtifact(ctx, entries, kind, opts)
		ar.Dirty = dirty[ar.Source]
		if ar.err != nil {
			ar.Error = ar.err.Error()
			s.log.Error("artifact pass failed", zap.Stringer("kind", kind), zap.String("path", ar.Source), zap.Error(ar.err))
		}
		res.Artifacts = append(res.Artifacts, ar)
	}
	return res, nil
}

func (s *Syncer) syncArtifact(ctx context.Context, entries []types.CatalogEntry, kind types.ArtifactKind, opts SyncOptions) ArtifactResult {
	src := s.source(kind)
	ar := ArtifactResult{Kind: kind, Source: src}

	a, err := artifact.Read(kind, src)
	if err != nil {
		ar.err = err
		return ar
	}
	ar.SourceHash = hash(a.Content)

	out, err := stubsync.Synchronize(ctx, entries, kind, a.Content, stubsync.Options{
		Mode:   s.mode,
		Stub:   s.stubOptions(),
		Logger: s.log,
	})
	if err != nil {
		ar.err = err
		return ar
	}
	ar.Present = out.Present
	ar.Insertions = out.Insertions
	ar.OutputHash = hash(out.Text)

	if opts.Diff {
		ar.Diff = report.Diff(a.Content, out.Text)
	}
	if opts.DryRun {
		return ar
	}

	dest := artifact.OutputPath(s.cfg.OutDir, s.cfg.OutPrefix, src)
	if err := artifact.Write(dest, []byte(out.Text)); err != nil {
		ar.err = fmt.Errorf("writing %s: %w", dest, err)
		return ar
	}
	ar.Output = dest
	s.log.Info("patched copy written",
		zap.Stringer("kind", kind),
		zap.String("path", dest),
		zap.Int("stubs", len(out.Insertions)))
	return ar
}

// dirtySources reports which artifacts have uncommitted edits. Outside a
// git worktree nothing is reported.
func (s *Syncer) dirtySources() map[string]bool {
	repo, err := git.Open(s.cfg.Root)
	if err != nil {
		s.log.Debug("dirty check skipped", zap.Error(err))
		return nil
	}
	paths := []string{s.cfg.Header, s.cfg.TestDecl, s.cfg.TestImpl}
	dirty, err := repo.DirtyPaths(paths)
	if err != nil {
		s.log.Warn("dirty check failed", zap.Error(err))
		return nil
	}
	out := make(map[string]bool, len(dirty))
	for _, p := range dirty {
		out[p] = true
		s.log.Warn("artifact has uncommitted changes", zap.String("path", filepath.Clean(p)))
	}
	return out
}

func hash(text string) string {
	return strconv.FormatUint(artifact.Fingerprint(text), 16)
}
