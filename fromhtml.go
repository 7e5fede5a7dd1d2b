// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// An HTMLReader reads HTML into a document tree.
// It understands the HTML that [ToHTML] writes, as well as
// the common variants produced by other Markdown renderers
// (<b> and <i>, <s> and <strike>, align= table cells,
// goldmark-style footnotes and task list checkboxes).
type HTMLReader struct {
	// RawTags lists the inline elements (lower case)
	// kept verbatim as [RawHTML].
	RawTags []string
}

var (
	footnoteSectionSel = cascadia.MustCompile(`.footnotes`)
	footnoteDefSel     = cascadia.MustCompile(`.footnotes li[id]`)
	footnoteRefSel     = cascadia.MustCompile(`a[href^="#fn-"], a[href^="#fn:"]`)
	backrefSel         = cascadia.MustCompile(`a.footnote-backref, a[href^="#fnref-"], a[href^="#fnref:"]`)
	checkboxSel        = cascadia.MustCompile(`input[type="checkbox"]`)
	codeSel            = cascadia.MustCompile(`code`)
)

// An htmlReader holds the state of a single call to [HTMLReader.ParseHTML].
type htmlReader struct {
	raw  map[string]bool
	skip map[*html.Node]bool
}

// ParseHTML implements [HTMLParser].
func (r *HTMLReader) ParseHTML(text string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	hr := &htmlReader{raw: make(map[string]bool), skip: make(map[*html.Node]bool)}
	for _, t := range r.RawTags {
		hr.raw[strings.ToLower(t)] = true
	}
	for _, n := range backrefSel.MatchAll(root) {
		hr.skip[n] = true
	}

	// Footnote definitions live in a trailing section;
	// read them separately and leave the section out of the body.
	var notes []Block
	for _, li := range footnoteDefSel.MatchAll(root) {
		label, ok := footnoteLabel(attr(li, "id"), "fn")
		if !ok {
			continue
		}
		notes = append(notes, &Footnote{Label: label, Blocks: hr.blocks(li, false)})
	}
	for _, n := range footnoteSectionSel.MatchAll(root) {
		hr.skip[n] = true
	}

	body := findBody(root)
	if body == nil {
		body = root
	}
	doc := &Document{Blocks: hr.blocks(body, false), Links: make(map[string]*Link)}
	doc.Blocks = append(doc.Blocks, notes...)
	return doc, nil
}

// findBody returns the <body> element under n, or nil.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// footnoteLabel extracts the label from a footnote id or href
// such as "fn-note", "#fn:1", or "fnref-note".
func footnoteLabel(id, prefix string) (string, bool) {
	id = strings.TrimPrefix(id, "#")
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" || rest[0] != '-' && rest[0] != ':' {
		return "", false
	}
	rest = rest[1:]
	if rest == "" || strings.ContainsAny(rest, " \t\n[]") {
		return "", false
	}
	return rest, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// textContent returns the concatenated text under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// renderHTML returns the HTML source of n.
func renderHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// isBlockElement reports whether n is an element read as a block.
func isBlockElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Body,
		atom.Center, atom.Details, atom.Dialog, atom.Div, atom.Dl, atom.Fieldset,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.H1, atom.H2,
		atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hr, atom.Html,
		atom.Iframe, atom.Li, atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre,
		atom.Section, atom.Table, atom.Ul, atom.Head, atom.Script, atom.Style,
		atom.Template, atom.Noscript, atom.Video, atom.Audio, atom.Canvas,
		atom.Object, atom.Svg, atom.Summary:
		return true
	}
	return false
}

// blocks reads the children of n as a sequence of blocks.
// Runs of inline content between block elements become
// paragraphs, or bare text when tight is set.
func (r *htmlReader) blocks(n *html.Node, tight bool) []Block {
	var out []Block
	var run Inlines
	flush := func() {
		inl := r.normalize(run)
		run = nil
		if len(inl) == 0 {
			return
		}
		t := &Text{Inline: inl}
		if tight {
			out = append(out, t)
		} else {
			out = append(out, &Paragraph{Text: t})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if r.skip[c] || c.Type == html.CommentNode {
			continue
		}
		if !isBlockElement(c) {
			run = append(run, r.inline(c)...)
			continue
		}
		flush()
		out = append(out, r.block(c, tight)...)
	}
	flush()
	return out
}

// block reads the block element n.
func (r *htmlReader) block(n *html.Node, tight bool) []Block {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Noscript:
		return nil

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		return []Block{&Heading{Level: level, Text: &Text{Inline: r.normalize(r.inlines(n))}}}

	case atom.P:
		inl := r.normalize(r.inlines(n))
		if len(inl) == 0 {
			return nil
		}
		if tight {
			return []Block{&Text{Inline: inl}}
		}
		return []Block{&Paragraph{Text: &Text{Inline: inl}}}

	case atom.Hr:
		return []Block{&ThematicBreak{}}

	case atom.Blockquote:
		return []Block{&Quote{Blocks: r.blocks(n, false)}}

	case atom.Ul, atom.Ol:
		return []Block{r.list(n)}

	case atom.Li:
		// A stray item outside a list.
		return []Block{&List{Items: []*Item{r.item(n, true)}}}

	case atom.Pre:
		return []Block{r.code(n)}

	case atom.Table:
		if t := r.table(n); t != nil {
			return []Block{t}
		}
		return nil

	case atom.Dl, atom.Form, atom.Fieldset, atom.Iframe, atom.Video, atom.Audio,
		atom.Canvas, atom.Object, atom.Svg, atom.Details, atom.Dialog:
		var text []string
		for _, s := range strings.Split(renderHTML(n), "\n") {
			if strings.TrimSpace(s) != "" {
				text = append(text, s)
			}
		}
		return []Block{&HTMLBlock{Text: text}}
	}

	// Containers such as <div> and <section> are transparent.
	return r.blocks(n, tight)
}

// list reads a <ul> or <ol> element.
// A list is loose when any of its items holds a <p>.
func (r *htmlReader) list(n *html.Node) *List {
	l := &List{Ordered: n.DataAtom == atom.Ol, Start: 1}
	if l.Ordered {
		if v, err := strconv.Atoi(strings.TrimSpace(attr(n, "start"))); err == nil {
			l.Start = v
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		for p := c.FirstChild; p != nil; p = p.NextSibling {
			if p.Type == html.ElementNode && p.DataAtom == atom.P {
				l.Loose = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || r.skip[c] {
			continue
		}
		switch c.DataAtom {
		case atom.Li:
			l.Items = append(l.Items, r.item(c, !l.Loose))
		case atom.Ul, atom.Ol:
			// A list nested directly in a list belongs to the preceding item.
			if len(l.Items) == 0 {
				l.Items = append(l.Items, &Item{})
			}
			last := l.Items[len(l.Items)-1]
			last.Blocks = append(last.Blocks, r.list(c))
		}
	}
	return l
}

// item reads an <li> element.
// A leading checkbox makes the item a task.
func (r *htmlReader) item(n *html.Node, tight bool) *Item {
	it := &Item{}
	if box := leadingCheckbox(n); box != nil {
		it.Task = TaskOpen
		if hasAttr(box, "checked") {
			it.Task = TaskDone
		}
		r.skip[box] = true
	}
	it.Blocks = r.blocks(n, tight)
	return it
}

// leadingCheckbox returns the checkbox input at the start of the item n,
// possibly inside its first paragraph, or nil.
func leadingCheckbox(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			continue
		case c.Type == html.ElementNode && checkboxSel.Match(c):
			return c
		case c.Type == html.ElementNode && (c.DataAtom == atom.P || c.DataAtom == atom.Label):
			return leadingCheckbox(c)
		}
		return nil
	}
	return nil
}

// code reads a <pre> element as a fenced code block.
// The language comes from a language-X or lang-X class
// on the <code> element or on the <pre> itself.
func (r *htmlReader) code(n *html.Node) *CodeBlock {
	lang := codeLang(attr(n, "class"))
	if c := codeSel.MatchFirst(n); c != nil && c != n && lang == "" {
		lang = codeLang(attr(c, "class"))
	}
	text := textContent(n)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return &CodeBlock{Fence: "```", Info: lang, Text: lines}
}

func codeLang(class string) string {
	for _, f := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(f, "language-"); ok && lang != "" {
			return lang
		}
		if lang, ok := strings.CutPrefix(f, "lang-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}

// table reads a <table> element. The first row of the
// <thead>, or else the first row of the table, is the header.
func (r *htmlReader) table(n *html.Node) *Table {
	var head *html.Node
	var rows []*html.Node
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead:
				walk(c, true)
			case atom.Tbody, atom.Tfoot:
				walk(c, false)
			case atom.Tr:
				if inHead && head == nil {
					head = c
				} else {
					rows = append(rows, c)
				}
			}
		}
	}
	walk(n, false)
	if head == nil {
		if len(rows) == 0 {
			return nil
		}
		head, rows = rows[0], rows[1:]
	}

	t := &Table{Header: r.row(head)}
	if len(t.Header.Cells) == 0 {
		return nil
	}
	for _, tr := range rows {
		row := r.row(tr)
		// Body rows take their alignment from the header.
		for i, c := range row.Cells {
			c.Align = t.align(i)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (r *htmlReader) row(tr *html.Node) *TableRow {
	row := &TableRow{}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Th && c.DataAtom != atom.Td {
			continue
		}
		row.Cells = append(row.Cells, &TableCell{
			Align: cellAlign(c),
			Inner: r.normalize(r.inlines(c)),
		})
	}
	return row
}

// cellAlign returns the alignment of a table cell,
// given by either an align attribute or a text-align style.
func cellAlign(n *html.Node) Align {
	a := strings.ToLower(strings.TrimSpace(attr(n, "align")))
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), "text-align") {
			a = strings.ToLower(strings.TrimSpace(v))
		}
	}
	switch a {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	}
	return AlignDefault
}

// inlines reads the children of n as inline content.
func (r *htmlReader) inlines(n *html.Node) Inlines {
	var out Inlines
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, r.inline(c)...)
	}
	return out
}

// inline reads the node n as inline content.
func (r *htmlReader) inline(n *html.Node) Inlines {
	if r.skip[n] {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return Inlines{&Plain{collapseSpace(n.Data)}}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.Br:
		return Inlines{&HardBreak{}}
	case atom.Strong, atom.B:
		return Inlines{&Strong{Inner: r.inlines(n)}}
	case atom.Em, atom.I:
		return Inlines{&Emph{Inner: r.inlines(n)}}
	case atom.Del, atom.S, atom.Strike:
		return Inlines{&Del{Inner: r.inlines(n)}}
	case atom.Code, atom.Tt:
		return Inlines{&Code{Text: collapseSpace(textContent(n))}}
	case atom.Img:
		img := &Image{URL: attr(n, "src"), Title: attr(n, "title")}
		if alt := attr(n, "alt"); alt != "" {
			img.Inner = Inlines{&Plain{alt}}
		}
		return Inlines{img}
	case atom.A:
		if footnoteRefSel.Match(n) {
			if label, ok := footnoteLabel(attr(n, "href"), "fn"); ok {
				return Inlines{&FootnoteLink{Label: label}}
			}
		}
		if !hasAttr(n, "href") {
			return r.inlines(n)
		}
		return Inlines{&Link{Inner: r.inlines(n), URL: attr(n, "href"), Title: attr(n, "title")}}
	case atom.Sup:
		if ref := footnoteRefSel.MatchFirst(n); ref != nil {
			if label, ok := footnoteLabel(attr(ref, "href"), "fn"); ok {
				return Inlines{&FootnoteLink{Label: label}}
			}
		}
	case atom.Input, atom.Script, atom.Style, atom.Template, atom.Noscript:
		return nil
	}
	if r.raw[n.Data] {
		return Inlines{&RawHTML{Tag: n.Data, Text: renderHTML(n)}}
	}
	return r.inlines(n)
}

// collapseSpace replaces each run of HTML white space in s with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteByte(c)
			space = false
		}
	}
	return b.String()
}

// normalize cleans up inline content read from HTML
// so that it prints as Markdown that reads back the same:
// spaces at the edges of emphasis move outside it,
// empty emphasis disappears, adjacent emphasis of one kind merges,
// and spaces collapse and are trimmed at the edges of the block
// and around line breaks.
func (r *htmlReader) normalize(xs Inlines) Inlines {
	xs = hoist(xs)
	xs = mergePlain(xs)
	for i, x := range xs {
		if pl, ok := x.(*Plain); ok {
			t := pl.Text
			for strings.Contains(t, "  ") {
				t = strings.ReplaceAll(t, "  ", " ")
			}
			if i == 0 || isBreak(xs[i-1]) {
				t = strings.TrimLeft(t, " ")
			}
			if i == len(xs)-1 || isBreak(xs[i+1]) {
				t = strings.TrimRight(t, " ")
			}
			xs[i] = &Plain{t}
		}
	}
	xs = mergePlain(xs)
	for len(xs) > 0 && isBreak(xs[len(xs)-1]) {
		xs = xs[:len(xs)-1]
	}
	for len(xs) > 0 && isBreak(xs[0]) {
		xs = xs[1:]
	}
	return xs
}

func isBreak(x Inline) bool {
	switch x.(type) {
	case *HardBreak, *SoftBreak:
		return true
	}
	return false
}

// hoist rewrites emphasis nodes in xs, recursively,
// moving leading and trailing spaces out of them.
func hoist(xs Inlines) Inlines {
	var out Inlines
	for _, x := range xs {
		var inner *Inlines
		switch x := x.(type) {
		case *Strong:
			inner = &x.Inner
		case *Emph:
			inner = &x.Inner
		case *Del:
			inner = &x.Inner
		case *Link:
			x.Inner = hoist(x.Inner)
		}
		if inner == nil {
			out = append(out, x)
			continue
		}
		in := mergePlain(hoist(*inner))
		var lead, trail string
		if len(in) > 0 {
			if pl, ok := in[0].(*Plain); ok {
				t := strings.TrimLeft(pl.Text, " ")
				lead = pl.Text[:len(pl.Text)-len(t)]
				in[0] = &Plain{t}
			}
			if pl, ok := in[len(in)-1].(*Plain); ok {
				t := strings.TrimRight(pl.Text, " ")
				trail = pl.Text[len(t):]
				in[len(in)-1] = &Plain{t}
			}
			in = mergePlain(in)
		}
		*inner = in
		if lead != "" {
			out = append(out, &Plain{" "})
		}
		if len(in) > 0 {
			if len(out) > 0 && sameEmphasis(out[len(out)-1], x) {
				appendInner(out[len(out)-1], in)
			} else {
				out = append(out, x)
			}
		}
		if trail != "" {
			out = append(out, &Plain{" "})
		}
	}
	return out
}

// sameEmphasis reports whether x and y are emphasis nodes of the same kind.
func sameEmphasis(x, y Inline) bool {
	switch x.(type) {
	case *Strong:
		_, ok := y.(*Strong)
		return ok
	case *Emph:
		_, ok := y.(*Emph)
		return ok
	case *Del:
		_, ok := y.(*Del)
		return ok
	}
	return false
}

func appendInner(x Inline, in Inlines) {
	switch x := x.(type) {
	case *Strong:
		x.Inner = mergePlain(append(x.Inner, in...))
	case *Emph:
		x.Inner = mergePlain(append(x.Inner, in...))
	case *Del:
		x.Inner = mergePlain(append(x.Inner, in...))
	}
}
