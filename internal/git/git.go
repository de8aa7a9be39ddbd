// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git locates the repository that holds the maintained artifacts
// and reports which of them carry uncommitted edits.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGit is returned when no repository encloses the start directory.
var ErrNoGit = errors.New("not a git repository")

// Repo wraps a go-git repository opened from somewhere inside its worktree.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open finds the repository enclosing dir, walking up parent directories.
func Open(dir string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repo{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute worktree root.
func (r *Repo) Root() string {
	return r.root
}

// DirtyPaths returns the subset of paths (absolute or root-relative) that
// are modified, staged, or untracked. Paths outside the worktree are skipped.
func (r *Repo) DirtyPaths(paths []string) ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var dirty []string
	for _, p := range paths {
		rel := p
		if filepath.IsAbs(p) {
			rel, err = filepath.Rel(r.root, p)
			if err != nil {
				continue
			}
		}
		rel = filepath.ToSlash(rel)
		fs, ok := status[rel]
		if !ok {
			continue
		}
		if fs.Worktree != gogit.Unmodified || fs.Staging != gogit.Unmodified {
			dirty = append(dirty, p)
		}
	}
	return dirty, nil
}

// FindRoot returns the worktree root enclosing dir.
func FindRoot(dir string) (string, error) {
	r, err := Open(dir)
	if err != nil {
		return "", err
	}
	return r.Root(), nil
}
