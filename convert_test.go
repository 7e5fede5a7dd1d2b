// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, md string) *Document {
	t.Helper()
	doc, err := New(DefaultConfig()).ParseMarkdown(md)
	require.NoError(t, err)
	return doc
}

func TestHeadingNeedsSpace(t *testing.T) {
	doc := parseDoc(t, "#NoSpace")
	require.Len(t, doc.Blocks, 1)
	assert.IsType(t, &Paragraph{}, doc.Blocks[0])
	assert.Contains(t, Dump(doc), `Plain "#NoSpace"`)
}

func TestTaskItems(t *testing.T) {
	doc := parseDoc(t, "- [ ] open\n- [X] done\n- plain")
	require.Len(t, doc.Blocks, 1)
	list, ok := doc.Blocks[0].(*List)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
	assert.Equal(t, TaskOpen, list.Items[0].Task)
	assert.Equal(t, TaskDone, list.Items[1].Task)
	assert.Equal(t, NoTask, list.Items[2].Task)

	conv := New(DefaultConfig())
	out := conv.Format("- [ ] open\n- [X] done\n- plain")
	assert.Equal(t, "* [ ] open\n* [x] done\n* plain", out)
	assert.Equal(t, out, conv.HTMLToMarkdown(conv.MarkdownToHTML(out)))
}

func TestFootnoteDefinedFirst(t *testing.T) {
	conv := New(DefaultConfig())
	html := conv.MarkdownToHTML("[^n]: The note.\n\nText[^n].")
	assert.Contains(t, html, `<a href="#fn-n" id="fnref-n">1</a>`)
	assert.Contains(t, html, `<li id="fn-n">`)
	assert.True(t, strings.HasPrefix(html, "<p>Text<sup"), "html = %q", html)

	assert.Equal(t, "Text[^n].\n\n[^n]: The note.", conv.Format("[^n]: The note.\n\nText[^n]."))
}

func TestUnusedDefinition(t *testing.T) {
	conv := New(DefaultConfig())
	assert.Equal(t, "Text.", conv.Format("Text.\n\n[x]: /unused"))
	assert.Equal(t, "Text.", conv.Format("Text.\n\n[^x]: Unused note."))
}

func TestTableAlignments(t *testing.T) {
	doc := parseDoc(t, "| a | b | c | d |\n| :-- | :-: | --: | --- |\n| 1 | 2 | 3 | 4 |")
	require.Len(t, doc.Blocks, 1)
	table, ok := doc.Blocks[0].(*Table)
	require.True(t, ok)
	require.NotNil(t, table.Header)
	var aligns []Align
	for _, c := range table.Header.Cells {
		aligns = append(aligns, c.Align)
	}
	assert.Equal(t, []Align{AlignLeft, AlignCenter, AlignRight, AlignDefault}, aligns)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0].Cells, 4)
}

func TestNestedOrderedList(t *testing.T) {
	doc := parseDoc(t, "1. One\n    1. Sub\n    2. Sub two\n2. Two")
	require.Len(t, doc.Blocks, 1)
	outer, ok := doc.Blocks[0].(*List)
	require.True(t, ok)
	assert.True(t, outer.Ordered)
	require.Len(t, outer.Items, 2)

	first := outer.Items[0].Blocks
	require.Len(t, first, 2)
	assert.IsType(t, &Text{}, first[0])
	inner, ok := first[1].(*List)
	require.True(t, ok)
	assert.True(t, inner.Ordered)
	assert.Len(t, inner.Items, 2)
}

func TestStrongEmph(t *testing.T) {
	doc := parseDoc(t, "***bold italic***")
	require.Len(t, doc.Blocks, 1)
	para, ok := doc.Blocks[0].(*Paragraph)
	require.True(t, ok)
	require.Len(t, para.Text.Inline, 1)
	strong, ok := para.Text.Inline[0].(*Strong)
	require.True(t, ok)
	require.Len(t, strong.Inner, 1)
	emph, ok := strong.Inner[0].(*Emph)
	require.True(t, ok)
	assert.Equal(t, Inlines{&Plain{"bold italic"}}, emph.Inner)

	conv := New(DefaultConfig())
	assert.Equal(t, "***bold italic***", conv.Format("***bold italic***"))
	assert.Equal(t, "<p><strong><em>bold italic</em></strong></p>", conv.MarkdownToHTML("***bold italic***"))
	assert.Equal(t, "***bold italic***", conv.HTMLToMarkdown("<p><strong><em>bold italic</em></strong></p>"))
}

func TestRoundTripStable(t *testing.T) {
	inputs := []string{
		"# Title\n\nSome *text* with `code`.",
		"* a\n* b\n  * c\n  * d\n* e",
		"1. one\n2. two\n\n* * *\n\n> quoted text",
		"| x | y |\n| --- | --: |\n| 1 | 2 |",
		"```go\nfunc main() {}\n```",
		"Note[^1] here.\n\n[^1]: Footnote *text*.",
		"A [link](https://example.com) and ![img](/i.png \"T\").",
		"* [ ] todo\n* [x] done",
	}
	conv := New(DefaultConfig())
	for _, in := range inputs {
		out := conv.Format(in)
		assert.Equal(t, out, conv.Format(out), "format of %q not stable", in)
		assert.Equal(t, out, conv.HTMLToMarkdown(conv.MarkdownToHTML(out)), "round trip of %q", in)
	}
}

type failingParser struct{ err error }

func (p failingParser) ParseMarkdown(string) (*Document, error) { return nil, p.err }
func (p failingParser) ParseHTML(string) (*Document, error)     { return nil, p.err }

type panickingParser struct{}

func (panickingParser) ParseMarkdown(string) (*Document, error) { panic("boom") }
func (panickingParser) ParseHTML(string) (*Document, error)     { panic("boom") }

func TestNoParser(t *testing.T) {
	conv := New(DefaultConfig(), WithMarkdownParser(nil), WithHTMLParser(nil))

	_, err := conv.ParseMarkdown("x")
	assert.ErrorIs(t, err, ErrNoParser)
	_, err = conv.ParseHTML("x")
	assert.ErrorIs(t, err, ErrNoParser)

	assert.Equal(t, "x *y*", conv.MarkdownToHTML("x *y*"))
	assert.Equal(t, "x *y*", conv.Format("x *y*"))
	out := conv.HTMLToMarkdown("<p>x</p>")
	assert.True(t, strings.HasPrefix(out, ErrorPrefix), "out = %q", out)
	assert.Contains(t, out, "no parser configured")
}

func TestParserFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	bad := failingParser{errors.New("bad input")}
	conv := New(DefaultConfig(), WithMarkdownParser(bad), WithHTMLParser(bad), WithLogger(log))

	assert.Equal(t, "*x*", conv.MarkdownToHTML("*x*"))
	assert.Equal(t, "*x*", conv.Format("*x*"))
	assert.Equal(t, ErrorPrefix+"parsing HTML: bad input", conv.HTMLToMarkdown("<p>x</p>"))
	assert.Contains(t, buf.String(), "conversion failed")
}

func TestParserPanic(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	conv := New(DefaultConfig(), WithMarkdownParser(panickingParser{}), WithHTMLParser(panickingParser{}), WithLogger(log))

	assert.Equal(t, "*x*", conv.MarkdownToHTML("*x*"))
	assert.Equal(t, ErrorPrefix+"html-to-markdown: boom", conv.HTMLToMarkdown("<p>x</p>"))
	assert.Contains(t, buf.String(), "conversion panicked")
}

type wrapper struct{ err error }

func (w wrapper) Wrap(body, title string, dark bool) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	theme := "light"
	if dark {
		theme = "dark"
	}
	return "<html data-theme=" + theme + "><title>" + title + "</title>" + body + "</html>", nil
}

func TestExport(t *testing.T) {
	conv := New(DefaultConfig())

	out, err := conv.Export("*x*", "Doc", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "<p><em>x</em></p>", out)

	out, err = conv.Export("*x*", "Doc", true, wrapper{})
	require.NoError(t, err)
	assert.Equal(t, "<html data-theme=dark><title>Doc</title><p><em>x</em></p></html>", out)

	_, err = conv.Export("*x*", "Doc", false, wrapper{errors.New("no styles")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Doc"`)
	assert.Contains(t, err.Error(), "no styles")
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, "<p><em>x</em></p>", MarkdownToHTML("*x*"))
	assert.Equal(t, "*x*", HTMLToMarkdown("<p><i>x</i></p>"))
	assert.Equal(t, "# T", Format("T\n="))
}

func TestConfigDefaults(t *testing.T) {
	cfg := New(Config{BulletIndent: 3}).Config()
	d := DefaultConfig()
	assert.Equal(t, d.Bullet, cfg.Bullet)
	assert.Equal(t, d.Fence, cfg.Fence)
	assert.Equal(t, d.ThematicBreak, cfg.ThematicBreak)
	assert.Equal(t, 3, cfg.BulletIndent)
	assert.Equal(t, d.OrderedIndent, cfg.OrderedIndent)
	assert.False(t, cfg.HeadingIDs)
}

func TestConfigPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bullet = "-"
	cfg.HeadingIDs = false
	cfg.LinkStyle = LinkReferenced
	conv := New(cfg)

	assert.Equal(t, "<h1>Hi</h1>", conv.MarkdownToHTML("# Hi"))
	assert.Equal(t, "- a\n- b", conv.Format("* a\n* b"))
	assert.Equal(t, "See [docs][1].\n\n[1]: /d", conv.HTMLToMarkdown(`<p>See <a href="/d">docs</a>.</p>`))
}
