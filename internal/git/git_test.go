// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, resolve(t, dir), resolve(t, repo.Root()))
}

func TestOpen_FromSubdirectory(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "tests")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := FindRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, resolve(t, dir), resolve(t, root))
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir)
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestDirtyPaths(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(dir)
	require.NoError(t, err)

	t.Run("clean tree reports nothing", func(t *testing.T) {
		dirty, err := repo.DirtyPaths([]string{"neon2rvv.h", "tests/impl.h"})
		require.NoError(t, err)
		assert.Empty(t, dirty)
	})

	t.Run("modified tracked file is reported", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "neon2rvv.h"), []byte("FORCE_INLINE int x(void) {}\n// changed\n"), 0o644))

		dirty, err := repo.DirtyPaths([]string{"neon2rvv.h", "tests/impl.h"})
		require.NoError(t, err)
		assert.Equal(t, []string{"neon2rvv.h"}, dirty)
	})

	t.Run("untracked file is reported", func(t *testing.T) {
		abs := filepath.Join(repo.Root(), "scratch.h")
		require.NoError(t, os.WriteFile(abs, []byte("x"), 0o644))

		dirty, err := repo.DirtyPaths([]string{abs})
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, dirty)
	})
}

// initTestRepo creates a temporary repository with one committed header.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "neon2rvv.h"), []byte("FORCE_INLINE int x(void) {}\n"), 0o644))

	_, err = wt.Add("neon2rvv.h")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

// resolve evaluates symlinks so temp-dir paths compare equal on macOS.
func resolve(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}
