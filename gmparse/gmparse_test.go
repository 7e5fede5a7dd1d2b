// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmparse

import (
	"testing"

	"github.com/duetdocs/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The goldmark engine and the native parser should agree
// on documents that both read the same way.
var agreeTests = []string{
	"# Title\n\nSome *emph* and **strong** text.\n",
	"* one\n* two\n* three\n",
	"1. first\n2. second\n",
	"```go\nx := 1\n```\n",
	"> quoted\n",
	"| a | b |\n|:--|--:|\n| 1 | 2 |\n",
	"- [x] done\n- [ ] todo\n",
	"Some ~~old~~ text.\n",
	"A [link](https://example.com) here.\n",
	"Text[^note].\n\n[^note]: The note.\n",
}

func TestAgree(t *testing.T) {
	native := markdown.New(markdown.DefaultConfig())
	gm := markdown.New(markdown.DefaultConfig(), markdown.WithMarkdownParser(New()))
	for _, md := range agreeTests {
		assert.Equal(t, native.MarkdownToHTML(md), gm.MarkdownToHTML(md), "input %q", md)
	}
}

func TestTaskItem(t *testing.T) {
	doc, err := New().ParseMarkdown("- [x] done\n")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	list, ok := doc.Blocks[0].(*markdown.List)
	require.True(t, ok, "got %T", doc.Blocks[0])
	require.Len(t, list.Items, 1)
	assert.Equal(t, markdown.TaskDone, list.Items[0].Task)
	assert.Equal(t, "done", markdown.ToText(list.Items[0].Blocks[0].(*markdown.Text).Inline[0]))
}

func TestFootnoteLabel(t *testing.T) {
	doc, err := New().ParseMarkdown("See[^a].\n\n[^a]: Here.\n")
	require.NoError(t, err)
	dump := markdown.Dump(doc)
	assert.Contains(t, dump, `FootnoteLink "a"`)
	assert.Contains(t, dump, `Footnote "a"`)
}

func TestAutoLink(t *testing.T) {
	doc, err := New().ParseMarkdown("<me@example.com>\n")
	require.NoError(t, err)
	assert.Contains(t, markdown.Dump(doc), `Link "mailto:me@example.com"`)
}
