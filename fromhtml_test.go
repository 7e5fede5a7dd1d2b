// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readHTML(t *testing.T, s string) *Document {
	t.Helper()
	r := &HTMLReader{RawTags: DefaultConfig().RawInlineTags}
	doc, err := r.ParseHTML(s)
	require.NoError(t, err)
	return doc
}

func TestFootnoteLabel(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
		label  string
		ok     bool
	}{
		{"fn-note", "fn", "note", true},
		{"#fn:1", "fn", "1", true},
		{"fnref-a", "fnref", "a", true},
		{"fn", "fn", "", false},
		{"fn-", "fn", "", false},
		{"fnx", "fn", "", false},
		{"#fn-a b", "fn", "", false},
		{"top", "fn", "", false},
	}
	for _, tt := range tests {
		label, ok := footnoteLabel(tt.id, tt.prefix)
		assert.Equal(t, tt.ok, ok, "footnoteLabel(%q, %q)", tt.id, tt.prefix)
		assert.Equal(t, tt.label, label, "footnoteLabel(%q, %q)", tt.id, tt.prefix)
	}
}

func TestCodeLang(t *testing.T) {
	assert.Equal(t, "go", codeLang("language-go"))
	assert.Equal(t, "js", codeLang("hljs lang-js"))
	assert.Equal(t, "", codeLang("language- other"))
	assert.Equal(t, "", codeLang(""))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, " a b ", collapseSpace("\n a \t\n b  "))
	assert.Equal(t, "ab", collapseSpace("ab"))
}

func TestReadTaskItem(t *testing.T) {
	doc := readHTML(t, `<ul><li><input type="checkbox" checked disabled> done</li><li><input type="checkbox"> open</li></ul>`)
	require.Len(t, doc.Blocks, 1)
	list, ok := doc.Blocks[0].(*List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, TaskDone, list.Items[0].Task)
	assert.Equal(t, TaskOpen, list.Items[1].Task)
	assert.False(t, list.Loose)
	require.Len(t, list.Items[0].Blocks, 1)
	assert.IsType(t, &Text{}, list.Items[0].Blocks[0])
	assert.Contains(t, Dump(doc), `Plain "done"`)
}

func TestReadLooseList(t *testing.T) {
	doc := readHTML(t, "<ol start=\"3\">\n<li><p>a</p></li>\n<li>b</li>\n</ol>")
	require.Len(t, doc.Blocks, 1)
	list, ok := doc.Blocks[0].(*List)
	require.True(t, ok)
	assert.True(t, list.Ordered)
	assert.True(t, list.Loose)
	assert.Equal(t, 3, list.Start)
	require.Len(t, list.Items, 2)
	assert.IsType(t, &Paragraph{}, list.Items[0].Blocks[0])
	assert.IsType(t, &Paragraph{}, list.Items[1].Blocks[0])
}

func TestReadListInList(t *testing.T) {
	doc := readHTML(t, `<ul><li>a</li><ol><li>b</li></ol></ul>`)
	require.Len(t, doc.Blocks, 1)
	list := doc.Blocks[0].(*List)
	require.Len(t, list.Items, 1)
	blocks := list.Items[0].Blocks
	require.Len(t, blocks, 2)
	assert.IsType(t, &Text{}, blocks[0])
	inner, ok := blocks[1].(*List)
	require.True(t, ok)
	assert.True(t, inner.Ordered)
}

func TestReadTable(t *testing.T) {
	doc := readHTML(t, `<table><tr><td align="center">a</td><td style="color: red; text-align: right">b</td></tr><tr><td>1</td><td>2</td></tr></table>`)
	require.Len(t, doc.Blocks, 1)
	table, ok := doc.Blocks[0].(*Table)
	require.True(t, ok)
	require.Len(t, table.Header.Cells, 2)
	assert.Equal(t, AlignCenter, table.Header.Cells[0].Align)
	assert.Equal(t, AlignRight, table.Header.Cells[1].Align)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, AlignCenter, table.Rows[0].Cells[0].Align)
	assert.Equal(t, AlignRight, table.Rows[0].Cells[1].Align)
}

func TestReadEmptyTable(t *testing.T) {
	doc := readHTML(t, `<p>x</p><table></table>`)
	require.Len(t, doc.Blocks, 1)
	assert.IsType(t, &Paragraph{}, doc.Blocks[0])
}

func TestReadCode(t *testing.T) {
	doc := readHTML(t, "<pre><code class=\"language-go\">x := 1\nif x &lt; 2 {}\n</code></pre>")
	require.Len(t, doc.Blocks, 1)
	code, ok := doc.Blocks[0].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "go", code.Info)
	assert.Equal(t, []string{"x := 1", "if x < 2 {}"}, code.Text)
}

func TestReadSkipsScripts(t *testing.T) {
	doc := readHTML(t, `<head><title>T</title><style>p{}</style></head><body><p>a</p><script>alert(1)</script></body>`)
	require.Len(t, doc.Blocks, 1)
	assert.Contains(t, Dump(doc), `Plain "a"`)
	assert.NotContains(t, Dump(doc), "alert")
}

func TestReadRawTags(t *testing.T) {
	doc := readHTML(t, `<p>Press <kbd>Ctrl</kbd> and <blink>go</blink></p>`)
	d := Dump(doc)
	assert.Contains(t, d, `RawHTML "<kbd>Ctrl</kbd>"`)
	assert.NotContains(t, d, "blink")
}

func TestReadFootnotes(t *testing.T) {
	doc := readHTML(t, `<p>Text<sup class="footnote-ref"><a href="#fn-a" id="fnref-a">1</a></sup></p>
<section class="footnotes">
<ol>
<li id="fn-a">
<p>Note. <a href="#fnref-a" class="footnote-backref">↩</a></p>
</li>
</ol>
</section>`)
	require.Len(t, doc.Blocks, 2)
	assert.IsType(t, &Paragraph{}, doc.Blocks[0])
	note, ok := doc.Blocks[1].(*Footnote)
	require.True(t, ok)
	assert.Equal(t, "a", note.Label)
	d := Dump(doc)
	assert.Contains(t, d, `FootnoteLink "a"`)
	assert.NotContains(t, d, "↩")
}

func TestReadStrayItem(t *testing.T) {
	doc := readHTML(t, `<li>alone</li>`)
	require.Len(t, doc.Blocks, 1)
	list, ok := doc.Blocks[0].(*List)
	require.True(t, ok)
	assert.Len(t, list.Items, 1)
}
