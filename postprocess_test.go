// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeLines(t *testing.T) {
	assert.Equal(t, []bool{true, true, true, false},
		codeLines([]string{"> ```", "> x", "> ```", "y"}))
	assert.Equal(t, []bool{false, true, true, true, false},
		codeLines([]string{"text", "* ```go", "  code", "  ```", "more"}))
	assert.Equal(t, []bool{true, true},
		codeLines([]string{"~~~", "unterminated"}))
}

func TestOutsideCodeSpans(t *testing.T) {
	assert.Equal(t, "A `b` C", outsideCodeSpans("a `b` c", strings.ToUpper))
	assert.Equal(t, "A ``b`c`` D", outsideCodeSpans("a ``b`c`` d", strings.ToUpper))
	assert.Equal(t, "A `B", outsideCodeSpans("a `b", strings.ToUpper))
}

func TestUnescapeFootnoteRefs(t *testing.T) {
	in := []string{
		`See \[^1\] and \[^note].`,
		"Code `\\[^x\\]` stays.",
		"```",
		`\[^y\]`,
		"```",
	}
	want := []string{
		`See [^1] and [^note].`,
		"Code `\\[^x\\]` stays.",
		"```",
		`\[^y\]`,
		"```",
	}
	assert.Equal(t, want, unescapeFootnoteRefs(in))
}

func TestNormalizeHeadings(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"# # Title"}, []string{"# Title"}},
		{[]string{"## ### Title"}, []string{"## Title"}},
		{[]string{"Title", "====="}, []string{"# Title"}},
		{[]string{"", "Sub", "---"}, []string{"", "## Sub"}},
		{[]string{"===", "x"}, []string{"x"}},
		{[]string{"a", "b", "==="}, []string{"a", "b"}},
		{[]string{"* a", "---"}, []string{"* a", "---"}},
		{[]string{"", "---"}, []string{"", "---"}},
		{[]string{"```", "x", "===", "```"}, []string{"```", "x", "===", "```"}},
	}
	for _, tt := range tests {
		in := append([]string(nil), tt.in...)
		assert.Equal(t, tt.want, normalizeHeadings(in), "normalizeHeadings(%q)", tt.in)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, collapseBlankLines([]string{"a", "", " ", "", "b"}))
	assert.Equal(t, []string{"```", "", "", "```"}, collapseBlankLines([]string{"```", "", "", "```"}))
}

func TestRefLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, refLabels("[x][a] [b][] [c] [y](/y) ![z](/z.png)"))
	assert.Empty(t, refLabels("[only](inline)"))
}

func TestTrimTrailingSpace(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "```", "code  ", "```", "b"},
		trimTrailingSpace([]string{"a  ", "```", "code  ", "```", "b\t"}))
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"definitions move to the end",
			"[a]: /x\n\nUse [a].\n\n[^n]: note\n\nRef[^n]",
			"Use [a].\n\nRef[^n]\n\n[a]: /x\n\n[^n]: note",
		},
		{
			"unused definitions dropped",
			"Body.\n\n[x]: /x\n\n[^y]: note",
			"Body.",
		},
		{
			"notes referenced from notes follow",
			"Text[^a]\n\n[^b]: inner\n\n[^a]: see [^b]",
			"Text[^a]\n\n[^a]: see [^b]\n[^b]: inner",
		},
		{
			"note continuation lines",
			"Text[^a]\n\n[^a]: first\n\n    second\n\nAfter.",
			"Text[^a]\n\nAfter.\n\n[^a]: first\n\n    second",
		},
		{
			"blank runs and trailing space",
			"a  \n\n\n\nb",
			"a\n\nb",
		},
		{
			"inline link text is not a reference",
			"See [x](/other).\n\n[x]: /unused",
			"See [x](/other).",
		},
		{
			"full and collapsed references",
			"[text][a] and [b][].\n\n[text]: /t\n[a]: /a\n[b]: /b",
			"[text][a] and [b][].\n\n[a]: /a\n[b]: /b",
		},
		{
			"definitions in code stay",
			"```\n[a]: /x\n```",
			"```\n[a]: /x\n```",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostProcess(tt.in))
		})
	}
}
