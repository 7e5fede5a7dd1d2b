// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmparse parses Markdown with goldmark
// into the document tree of package markdown.
//
// It is an alternate engine for [markdown.WithMarkdownParser],
// useful for cross-checking the native parser.
// Reference-style links resolve to inline links,
// since goldmark does not record the reference label.
package gmparse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/duetdocs/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// A Parser is a [markdown.MarkdownParser] backed by goldmark
// with the table, strikethrough, task list, and footnote extensions.
type Parser struct {
	md goldmark.Markdown
}

// New returns a new Parser.
func New() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			extension.Footnote,
		)),
	}
}

// ParseMarkdown implements [markdown.MarkdownParser].
func (p *Parser) ParseMarkdown(src string) (doc *markdown.Document, err error) {
	defer func() {
		if e := recover(); e != nil {
			doc, err = nil, fmt.Errorf("goldmark: %v", e)
		}
	}()
	source := []byte(src)
	root := p.md.Parser().Parse(text.NewReader(source))
	w := &walker{src: source, labels: make(map[int]string)}
	w.collectLabels(root)
	doc = &markdown.Document{
		Blocks: w.blocks(root),
		Links:  make(map[string]*markdown.Link),
	}
	return doc, nil
}

type walker struct {
	src    []byte
	labels map[int]string // footnote index -> label
}

// collectLabels records the label of every footnote definition,
// so that references, which carry only an index, can be named.
func (w *walker) collectLabels(root ast.Node) {
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if f, ok := n.(*east.Footnote); ok && entering {
			w.labels[f.Index] = string(f.Ref)
		}
		return ast.WalkContinue, nil
	})
}

func (w *walker) blocks(n ast.Node) []markdown.Block {
	var bs []markdown.Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.FootnoteList); ok {
			bs = append(bs, w.blocks(c)...)
			continue
		}
		if b := w.block(c); b != nil {
			bs = append(bs, b)
		}
	}
	return bs
}

func (w *walker) block(n ast.Node) markdown.Block {
	switch n := n.(type) {
	case *ast.Heading:
		return &markdown.Heading{Level: n.Level, Text: w.text(n)}
	case *ast.Paragraph:
		return &markdown.Paragraph{Text: w.text(n)}
	case *ast.TextBlock:
		return w.text(n)
	case *ast.ThematicBreak:
		return &markdown.ThematicBreak{}
	case *ast.Blockquote:
		return &markdown.Quote{Blocks: w.blocks(n)}
	case *ast.List:
		return w.list(n)
	case *ast.FencedCodeBlock:
		info := ""
		if n.Info != nil {
			info = string(n.Info.Segment.Value(w.src))
		}
		return &markdown.CodeBlock{Fence: "```", Info: info, Text: w.lines(n)}
	case *ast.CodeBlock:
		return &markdown.CodeBlock{Text: w.lines(n)}
	case *ast.HTMLBlock:
		lines := w.lines(n)
		if n.HasClosure() {
			lines = append(lines, strings.TrimRight(string(n.ClosureLine.Value(w.src)), "\r\n"))
		}
		return &markdown.HTMLBlock{Text: lines}
	case *east.Table:
		return w.table(n)
	case *east.Footnote:
		return &markdown.Footnote{Label: string(n.Ref), Blocks: w.blocks(n)}
	}
	return nil
}

// lines returns the source lines of a block without line endings.
func (w *walker) lines(n ast.Node) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(w.src)), "\r\n"))
	}
	return out
}

func (w *walker) list(n *ast.List) markdown.Block {
	l := &markdown.List{Ordered: n.IsOrdered(), Loose: !n.IsTight}
	if l.Ordered {
		l.Start = n.Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		it := &markdown.Item{}
		for b := c.FirstChild(); b != nil; b = b.NextSibling() {
			if box, ok := b.FirstChild().(*east.TaskCheckBox); ok && b == c.FirstChild() {
				it.Task = markdown.TaskOpen
				if box.IsChecked {
					it.Task = markdown.TaskDone
				}
			}
			if x := w.block(b); x != nil {
				it.Blocks = append(it.Blocks, x)
			}
		}
		l.Items = append(l.Items, it)
	}
	return l
}

func (w *walker) table(n *east.Table) markdown.Block {
	t := &markdown.Table{}
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		row := &markdown.TableRow{}
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cell, ok := c.(*east.TableCell)
			if !ok {
				continue
			}
			row.Cells = append(row.Cells, &markdown.TableCell{
				Align: align(cell.Alignment),
				Inner: w.inlines(cell),
			})
		}
		if _, ok := r.(*east.TableHeader); ok {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func align(a east.Alignment) markdown.Align {
	switch a {
	case east.AlignLeft:
		return markdown.AlignLeft
	case east.AlignCenter:
		return markdown.AlignCenter
	case east.AlignRight:
		return markdown.AlignRight
	}
	return markdown.AlignDefault
}

func (w *walker) text(n ast.Node) *markdown.Text {
	return &markdown.Text{Inline: trimEdges(w.inlines(n))}
}

func (w *walker) inlines(n ast.Node) markdown.Inlines {
	var xs markdown.Inlines
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		xs = append(xs, w.inline(c)...)
	}
	return merge(xs)
}

func (w *walker) inline(n ast.Node) []markdown.Inline {
	switch n := n.(type) {
	case *ast.Text:
		var xs []markdown.Inline
		if s := unescape(n.Segment.Value(w.src)); s != "" {
			xs = append(xs, &markdown.Plain{Text: s})
		}
		switch {
		case n.HardLineBreak():
			xs = append(xs, &markdown.HardBreak{})
		case n.SoftLineBreak():
			xs = append(xs, &markdown.SoftBreak{})
		}
		return xs
	case *ast.String:
		return []markdown.Inline{&markdown.Plain{Text: string(n.Value)}}
	case *ast.CodeSpan:
		return []markdown.Inline{&markdown.Code{Text: w.raw(n)}}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return []markdown.Inline{&markdown.Strong{Inner: w.inlines(n)}}
		}
		return []markdown.Inline{&markdown.Emph{Inner: w.inlines(n)}}
	case *east.Strikethrough:
		return []markdown.Inline{&markdown.Del{Inner: w.inlines(n)}}
	case *ast.Link:
		return []markdown.Inline{&markdown.Link{
			Inner: w.inlines(n),
			URL:   unescape(n.Destination),
			Title: unescape(n.Title),
		}}
	case *ast.Image:
		return []markdown.Inline{&markdown.Image{
			Inner: w.inlines(n),
			URL:   unescape(n.Destination),
			Title: unescape(n.Title),
		}}
	case *ast.AutoLink:
		url := string(n.URL(w.src))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return []markdown.Inline{&markdown.Link{
			Inner: markdown.Inlines{&markdown.Plain{Text: string(n.Label(w.src))}},
			URL:   url,
			Auto:  true,
		}}
	case *ast.RawHTML:
		var b bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.src))
		}
		return []markdown.Inline{&markdown.RawHTML{Text: b.String()}}
	case *east.FootnoteLink:
		return []markdown.Inline{&markdown.FootnoteLink{Label: w.labels[n.Index]}}
	case *east.TaskCheckBox, *east.FootnoteBacklink:
		return nil
	}
	var xs []markdown.Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		xs = append(xs, w.inline(c)...)
	}
	return xs
}

// raw returns the text of a code span, with line endings as spaces.
func (w *walker) raw(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(w.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

func unescape(s []byte) string {
	s = util.ResolveNumericReferences(s)
	s = util.ResolveEntityNames(s)
	return string(util.UnescapePunctuations(s))
}

// merge joins adjacent plain text.
func merge(xs markdown.Inlines) markdown.Inlines {
	var out markdown.Inlines
	for _, x := range xs {
		if p, ok := x.(*markdown.Plain); ok && len(out) > 0 {
			if q, ok := out[len(out)-1].(*markdown.Plain); ok {
				out[len(out)-1] = &markdown.Plain{Text: q.Text + p.Text}
				continue
			}
		}
		out = append(out, x)
	}
	return out
}

// trimEdges drops the space left after a task checkbox
// and any trailing break.
func trimEdges(xs markdown.Inlines) markdown.Inlines {
	if len(xs) > 0 {
		if p, ok := xs[0].(*markdown.Plain); ok {
			p.Text = strings.TrimLeft(p.Text, " \t")
			if p.Text == "" {
				xs = xs[1:]
			}
		}
	}
	for len(xs) > 0 {
		switch xs[len(xs)-1].(type) {
		case *markdown.SoftBreak, *markdown.HardBreak:
			xs = xs[:len(xs)-1]
			continue
		}
		break
	}
	return xs
}
