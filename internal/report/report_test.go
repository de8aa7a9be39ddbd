// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "identical",
			before: "a\nb\n",
			after:  "a\nb\n",
			want:   "",
		},
		{
			name:   "inserted line",
			before: "a\nc\n",
			after:  "a\nb\nc\n",
			want:   "@@ +2,1 @@\n+b\n",
		},
		{
			name:   "two insertions",
			before: "a\nc\n",
			after:  "a\nb\nc\nd\n",
			want:   "@@ +2,1 @@\n+b\n@@ +4,1 @@\n+d\n",
		},
		{
			name:   "split line",
			before: "a\n// x\n",
			after:  "a\n// y\nx\n",
			want:   "@@ -2,1 @@\n-// x\n@@ +2,2 @@\n+// y\n+x\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.before, tt.after))
		})
	}
}

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (s sample) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d\n", s.Name, s.Count)
	return err
}

func TestWrite(t *testing.T) {
	v := sample{Name: "header", Count: 2}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "header: 2\n"},
		{FormatJSON, "{\n  \"name\": \"header\",\n  \"count\": 2\n}\n"},
		{FormatYAML, "name: header\ncount: 2\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.format, v))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("text without renderer", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Write(&buf, FormatText, struct{}{}))
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
