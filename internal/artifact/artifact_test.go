// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/petar-djukic/neonsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Run("loads content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "neon2rvv.h")
		require.NoError(t, os.WriteFile(path, []byte("FORCE_INLINE int8x8_t vadd_s8(int8x8_t a, int8x8_t b) {}\n"), 0o644))

		a, err := Read(types.KindHeader, path)
		require.NoError(t, err)
		assert.Equal(t, types.KindHeader, a.Kind)
		assert.Equal(t, path, a.Path)
		assert.Contains(t, a.Content, "FORCE_INLINE int8x8_t vadd_s8(")
	})

	t.Run("missing file is IOUnavailableError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.h")
		_, err := Read(types.KindHeader, path)

		var ioe *types.IOUnavailableError
		require.True(t, errors.As(err, &ioe))
		assert.Equal(t, path, ioe.Path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		dir    string
		prefix string
		src    string
		want   string
	}{
		{"explicit dir and prefix", "/out", "patched_", "/repo/tests/impl.h", "/out/patched_impl.h"},
		{"empty prefix uses default", "/out", "", "/repo/neon2rvv.h", "/out/modified_neon2rvv.h"},
		{"empty dir uses source dir", "", "modified_", "/repo/tests/impl.cpp", "/repo/tests/modified_impl.cpp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.dir, tt.prefix, tt.src)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
			assert.NotEqual(t, tt.src, got)
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("abc"), Fingerprint("abc"))
	assert.NotEqual(t, Fingerprint("abc"), Fingerprint("abd"))
}

func TestWrite(t *testing.T) {
	t.Run("creates file and parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "modified_impl.h")
		require.NoError(t, Write(path, []byte("content\n")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content\n", string(got))
	})

	t.Run("preserves permissions on overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "modified_neon2rvv.h")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		require.NoError(t, Write(path, []byte("new")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Write(filepath.Join(dir, "f.h"), []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
	t.Run("failed replace removes temp file", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "f.h")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))

		require.Error(t, Write(target, []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "f.h", entries[0].Name())
	})
}
