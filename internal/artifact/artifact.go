// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package artifact loads and writes the maintained text files.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/petar-djukic/neonsync/pkg/types"
)

// DefaultPrefix is prepended to the base name of each patched copy.
const DefaultPrefix = "modified_"

// Read loads the artifact at path. Any failure is an IOUnavailableError.
func Read(kind types.ArtifactKind, path string) (*types.Artifact, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.IOUnavailableError{Path: path, Err: err}
	}
	return &types.Artifact{Kind: kind, Path: path, Content: string(content)}, nil
}

// OutputPath returns where the patched copy of src is written: dir joined
// with prefix and the base name of src. An empty prefix falls back to
// DefaultPrefix so the original is never overwritten.
func OutputPath(dir, prefix, src string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, prefix+filepath.Base(src))
}

// Fingerprint returns a fast content hash used to tell whether a patched
// copy differs from its source.
func Fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Write replaces path with data in one rename, so a watcher or editor
// reading a patched copy never sees half of it. Parent directories are
// created; an existing copy keeps its permission bits.
func Write(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".neonsync-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
