// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/neonsync/pkg/neonsync"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, neonsync.DefaultCatalog,
		"ReturnType,Name,Arguments,Group\n"+
			"int8x8_t,vadd_s8,\"(int8x8_t a, int8x8_t b)\",Vector arithmetic / Add\n"+
			"int16x4_t,vadd_s16,\"(int16x4_t a, int16x4_t b)\",Vector arithmetic / Add\n")
	writeFixture(t, root, neonsync.DefaultHeader, "FORCE_INLINE int8x8_t vadd_s8(int8x8_t a, int8x8_t b) { return a; }\n")
	writeFixture(t, root, neonsync.DefaultTestDecl, "#define INTRIN_LIST \\\n  _(vadd_s8) \\\n\n")
	writeFixture(t, root, neonsync.DefaultTestImpl,
		"result_t test_vadd_s8(const NEON2RVV_TEST_IMPL &impl, uint32_t iter) {\n  return TEST_SUCCESS;\n}\n")
	return root
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "neonsync "+version+"\n", out)
}

func TestSyncCmd_DryRunJSON(t *testing.T) {
	root := fixtureRoot(t)

	out, err := execute(t, "sync", "--dry-run", "-o", "json", "--root", root)
	require.NoError(t, err)

	var res struct {
		Entries   int `json:"entries"`
		Artifacts []struct {
			Kind       string `json:"kind"`
			Present    int    `json:"present"`
			Insertions []struct {
				Name string `json:"name"`
			} `json:"insertions"`
		} `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Entries)
	require.Len(t, res.Artifacts, 3)
	for _, a := range res.Artifacts {
		assert.Equal(t, 1, a.Present, a.Kind)
		require.Len(t, a.Insertions, 1, a.Kind)
		assert.Equal(t, "vadd_s16", a.Insertions[0].Name)
	}
	assert.NoFileExists(t, filepath.Join(root, "modified_neon2rvv.h"))
}

func TestSyncCmd_ReportsArtifactFailure(t *testing.T) {
	root := fixtureRoot(t)
	require.NoError(t, os.Remove(filepath.Join(root, "tests/impl.h")))

	out, err := execute(t, "sync", "--root", root, "--match", "literal")
	require.Error(t, err)
	assert.Contains(t, out, "test-decl")
	assert.FileExists(t, filepath.Join(root, "modified_neon2rvv.h"))
	assert.FileExists(t, filepath.Join(root, "modified_impl.cpp"))
}

func TestCoverageCmd(t *testing.T) {
	root := fixtureRoot(t)

	out, err := execute(t, "coverage", "--groups", "--root", root, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "expected_impl_cnt: 1")
	assert.Contains(t, out, "is_impl_cnt: 1")
	assert.Contains(t, out, "Total 1 / 2")
}

func TestSyncCmd_DefaultFlagsWritesCopies(t *testing.T) {
	root := fixtureRoot(t)

	out, err := execute(t, "sync", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "1 stubs inserted")

	impl, err := os.ReadFile(filepath.Join(root, "modified_impl.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(impl),
		"result_t test_vadd_s16(const NEON2RVV_TEST_IMPL &impl, uint32_t iter) {\n return TEST_UNIMPL;\n}\n")
}

func TestCoverageCmd_ExcludeFromEnv(t *testing.T) {
	root := fixtureRoot(t)
	writeFixture(t, root, neonsync.DefaultHeader,
		"FORCE_INLINE int8x8_t vadd_s8(int8x8_t a, int8x8_t b) { return a; }\n"+
			"FORCE_INLINE int16x4_t vadd_s16(int16x4_t a, int16x4_t b) { return a; }\n")

	out, err := execute(t, "coverage", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "expected_impl_cnt: 2")

	t.Setenv("NEONSYNC_EXCLUDE", "p8,int16")
	out, err = execute(t, "coverage", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "expected_impl_cnt: 1")
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"flag values", []string{"p8", "p16"}, []string{"p8", "p16"}},
		{"comma separated", []string{"p8,p16", "f16"}, []string{"p8", "p16", "f16"}},
		{"blanks dropped", []string{" p8 , ,p16"}, []string{"p8", "p16"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTags(tt.in))
		})
	}
}

func TestSyncCmd_RejectsUnknownFormat(t *testing.T) {
	root := fixtureRoot(t)
	_, err := execute(t, "sync", "--root", root, "-o", "xml")
	require.Error(t, err)
}
