// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"bytes"
	"strings"
)

const (
	writeMarkdown = iota
	writeHTML
	writeText
)

// A printer accumulates the output of a single render.
// It is created per call and never shared.
type printer struct {
	writeMode int
	cfg       *Config
	buf       bytes.Buffer
	prefix    []byte
	trimLimit int

	bol     bool // only block markers written on the current line
	oneLine bool // soft breaks print as spaces
	inTable bool // pipes must be escaped

	footnotes    map[string]*Footnote
	notes        map[string]*printedNote
	footnotelist []*printedNote
	links        map[string]bool
	linklist     []*linkDef
	headingIDs   map[string]int
	lists        []*List // enclosing lists, innermost last
}

func newPrinter(cfg *Config, mode int) *printer {
	return &printer{
		writeMode:  mode,
		cfg:        cfg,
		bol:        true,
		footnotes:  make(map[string]*Footnote),
		notes:      make(map[string]*printedNote),
		links:      make(map[string]bool),
		headingIDs: make(map[string]int),
	}
}

// render prints b and the trailing footnote and link
// definition sections it needs, returning the text
// with trailing newlines removed.
func (p *printer) render(b Block) string {
	p.collectFootnotes(b)
	switch p.writeMode {
	case writeHTML:
		b.printHTML(p)
		printFootnoteHTML(p)
	case writeMarkdown:
		b.printMarkdown(p)
		p.trimNL()
		notes := footnoteMarkdown(p)
		printLinkDefs(p)
		if notes != "" {
			if p.buf.Len() > 0 {
				p.nl()
				p.nl()
			}
			p.md(notes)
		}
	default:
		b.printHTML(p)
	}
	return strings.TrimRight(p.buf.String(), "\n")
}

// collectFootnotes records the footnote definitions in b by label.
// The first definition of a label wins.
func (p *printer) collectFootnotes(b Block) {
	walkBlocks(b, func(b Block) {
		if f, ok := b.(*Footnote); ok {
			key := normalizeLabel(f.Label)
			if p.footnotes[key] == nil {
				p.footnotes[key] = f
			}
		}
	})
}

// trimNL removes trailing newlines and blank prefix lines from the output.
func (p *printer) trimNL() {
	text := bytes.TrimRight(p.buf.Bytes(), " \n")
	p.buf.Truncate(len(text))
}

func (p *printer) noTrim() {
	p.trimLimit = p.buf.Len()
}

// nl ends the current output line, trimming trailing spaces,
// and starts the next one with the current prefix.
func (p *printer) nl() {
	text := p.buf.Bytes()
	for len(text) > p.trimLimit && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
	}
	p.buf.Truncate(len(text))
	p.buf.WriteByte('\n')
	p.buf.Write(p.prefix)
	p.bol = true
}

// push appends s to the line prefix, returning the old prefix length for pop.
func (p *printer) push(s string) int {
	n := len(p.prefix)
	p.prefix = append(p.prefix, s...)
	return n
}

func (p *printer) pop(n int) {
	p.prefix = p.prefix[:n]
}

// html writes raw HTML text.
func (p *printer) html(list ...string) {
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// text writes text content, escaped for HTML output.
func (p *printer) text(list ...string) {
	if p.writeMode == writeHTML {
		for _, s := range list {
			htmlEscaper.WriteString(&p.buf, s)
		}
		return
	}
	for _, s := range list {
		p.buf.WriteString(s)
	}
	p.bol = false
}

// md writes inline Markdown syntax.
func (p *printer) md(list ...string) {
	for _, s := range list {
		p.buf.WriteString(s)
	}
	p.bol = false
}

// marker writes a block marker such as "* " or "> ".
// Text that follows a marker is still at the start of its line.
func (p *printer) marker(s string) {
	p.buf.WriteString(s)
	p.bol = true
}

var closeP = []byte("</p>\n")

func (p *printer) eraseCloseP() bool {
	if bytes.HasSuffix(p.buf.Bytes(), closeP) {
		p.buf.Truncate(p.buf.Len() - len(closeP))
		return true
	}
	return false
}

// sub returns a printer for rendering a fragment
// that shares p's configuration and document state.
func (p *printer) sub() *printer {
	q := *p
	q.buf = bytes.Buffer{}
	q.prefix = nil
	q.trimLimit = 0
	q.bol = true
	return &q
}

// merge copies the document state accumulated by q back into p.
func (p *printer) merge(q *printer) {
	p.footnotelist = q.footnotelist
	p.linklist = q.linklist
}

// ToHTML returns the HTML rendering of b using the default configuration.
func ToHTML(b Block) string {
	cfg := DefaultConfig()
	return newPrinter(&cfg, writeHTML).render(b)
}

// ToMarkdown returns the Markdown rendering of b using the default configuration.
// Unlike [Converter.RenderMarkdown], it does not run the post-processor.
func ToMarkdown(b Block) string {
	cfg := DefaultConfig()
	return newPrinter(&cfg, writeMarkdown).render(b)
}

// ToText returns the plain text content of x.
func ToText(x Inline) string {
	cfg := DefaultConfig()
	p := newPrinter(&cfg, writeText)
	x.printText(p)
	return p.buf.String()
}
