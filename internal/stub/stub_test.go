// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stub

import (
	"errors"
	"strings"
	"testing"

	"github.com/petar-djukic/neonsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vaddq = types.CatalogEntry{
	ReturnType: "int32x4_t",
	Name:       "vaddq_s32",
	Arguments:  "(int32x4_t a, int32x4_t b)",
	Group:      "Vector arithmetic / Add / Addition",
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "FORCE_INLINE int32x4_t vaddq_s32(", Fragment(types.KindHeader, vaddq))
	assert.Equal(t, "_(vaddq_s32)", Fragment(types.KindTestDecl, vaddq))
	assert.Equal(t, "result_t test_vaddq_s32(", Fragment(types.KindTestImpl, vaddq))
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "FORCE_INLINE", Marker(types.KindHeader))
	assert.Equal(t, "\n", Marker(types.KindTestDecl))
	assert.Equal(t, "result_t test_", Marker(types.KindTestImpl))

	assert.False(t, InsertAfterMarker(types.KindHeader))
	assert.True(t, InsertAfterMarker(types.KindTestDecl))
	assert.False(t, InsertAfterMarker(types.KindTestImpl))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		kind types.ArtifactKind
		opts Options
		want string
	}{
		{
			name: "header declaration comment",
			kind: types.KindHeader,
			want: "// FORCE_INLINE int32x4_t vaddq_s32(int32x4_t a, int32x4_t b); \n",
		},
		{
			name: "test implementation skeleton",
			kind: types.KindTestImpl,
			want: "result_t test_vaddq_s32(const NEON2RVV_TEST_IMPL &impl, uint32_t iter) {\n return TEST_UNIMPL;\n}\n",
		},
		{
			name: "test implementation with custom fixture type",
			kind: types.KindTestImpl,
			opts: Options{ImplType: "SSE2NEON_TEST_IMPL"},
			want: "result_t test_vaddq_s32(const SSE2NEON_TEST_IMPL &impl, uint32_t iter) {\n return TEST_UNIMPL;\n}\n",
		},
		{
			name: "test declaration padded comment",
			kind: types.KindTestDecl,
			want: "/*_(vaddq_s32)" + strings.Repeat(" ", 79-17) + "*/\\\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(vaddq, tt.kind, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_DeclWidth(t *testing.T) {
	for _, name := range []string{"v", "vadd_s8", "vqrdmlshq_laneq_s32", strings.Repeat("x", 71)} {
		t.Run(name, func(t *testing.T) {
			got, err := Render(types.CatalogEntry{Name: name}, types.KindTestDecl, Options{})
			require.NoError(t, err)

			line := strings.TrimSuffix(got, "\n")
			assert.Len(t, line, DefaultDeclWidth)
			assert.True(t, strings.HasSuffix(line, "*/\\"))
			assert.True(t, strings.HasPrefix(line, "/*_("+name+")"))
			assert.Equal(t, 1, strings.Count(got, "\n"))
		})
	}

	t.Run("custom width", func(t *testing.T) {
		got, err := Render(types.CatalogEntry{Name: "vadd_s8"}, types.KindTestDecl, Options{DeclWidth: 40})
		require.NoError(t, err)
		assert.Len(t, strings.TrimSuffix(got, "\n"), 40)
	})
}

func TestRender_Overflow(t *testing.T) {
	name := strings.Repeat("x", 72)
	_, err := Render(types.CatalogEntry{Name: name}, types.KindTestDecl, Options{})

	var toe *types.TemplateOverflowError
	require.True(t, errors.As(err, &toe))
	assert.Equal(t, name, toe.Name)
	assert.Equal(t, DefaultDeclWidth, toe.Width)
	assert.Equal(t, 80, toe.Length)
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(vaddq, types.ArtifactKind(42), Options{})
	assert.Error(t, err)
}
