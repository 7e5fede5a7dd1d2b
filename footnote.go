// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strconv"
	"strings"
)

// A Footnote is a [Block] representing a footnote definition, [^id]: text.
// Definitions print nowhere in the body: they are collected
// and printed once at the end of the document,
// in the order of their first reference.
// A definition that is never referenced is dropped.
type Footnote struct {
	Position
	Label  string
	Blocks []Block
}

func (b *Footnote) printHTML(p *printer)     {}
func (b *Footnote) printMarkdown(p *printer) {}

// A FootnoteLink is an [Inline] representing a footnote reference, [^id].
// A reference without a matching definition prints as literal text.
type FootnoteLink struct {
	Label string
}

func (*FootnoteLink) Inline() {}

// A printedNote is a footnote referenced by the printed text.
type printedNote struct {
	num   int
	label string
	note  *Footnote
	refs  []string // ids of the references, for back links
}

// note returns the printed note for label,
// numbering it on first use, or nil if label is not defined.
func (p *printer) note(label string) *printedNote {
	key := normalizeLabel(label)
	f := p.footnotes[key]
	if f == nil {
		return nil
	}
	pr := p.notes[key]
	if pr == nil {
		pr = &printedNote{num: len(p.footnotelist) + 1, label: f.Label, note: f}
		p.notes[key] = pr
		p.footnotelist = append(p.footnotelist, pr)
	}
	return pr
}

// ref records another reference to pr and returns its id.
func (pr *printedNote) ref() string {
	id := pr.label
	if len(pr.refs) > 0 {
		id += "-" + strconv.Itoa(len(pr.refs)+1)
	}
	pr.refs = append(pr.refs, id)
	return id
}

func (x *FootnoteLink) printHTML(p *printer) {
	pr := p.note(x.Label)
	if pr == nil {
		p.text("[^", x.Label, "]")
		return
	}
	ref := pr.ref()
	p.html(`<sup class="footnote-ref"><a href="#fn-`, htmlQuoteEscaper.Replace(pr.label),
		`" id="fnref-`, htmlQuoteEscaper.Replace(ref), `">`, strconv.Itoa(pr.num), `</a></sup>`)
}

func (x *FootnoteLink) printMarkdown(p *printer) {
	if pr := p.note(x.Label); pr != nil {
		pr.ref()
		p.md("[^", pr.label, "]")
		return
	}
	p.md("[^", x.Label, "]")
}

func (x *FootnoteLink) printText(p *printer) {
	p.text("[^", x.Label, "]")
}

// printFootnoteHTML prints the footnotes section.
// Notes referenced only from other notes join the list as it prints.
func printFootnoteHTML(p *printer) {
	if len(p.footnotelist) == 0 {
		return
	}
	p.html(`<section class="footnotes">`, "\n<ol>\n")
	for i := 0; i < len(p.footnotelist); i++ {
		pr := p.footnotelist[i]
		p.html(`<li id="fn-`, htmlQuoteEscaper.Replace(pr.label), `">`, "\n")
		for _, b := range pr.note.Blocks {
			b.printHTML(p)
		}
		var back []string
		for _, ref := range pr.refs {
			back = append(back, `<a href="#fnref-`+htmlQuoteEscaper.Replace(ref)+`" class="footnote-backref">↩</a>`)
		}
		if p.eraseCloseP() {
			p.html(" ")
		} else {
			p.html("<p>")
		}
		p.html(strings.Join(back, " "), "</p>\n")
		p.html("</li>\n")
	}
	p.html("</ol>\n</section>\n")
}

// footnoteMarkdown returns the footnote definitions block.
// Continuation lines are indented four spaces.
func footnoteMarkdown(p *printer) string {
	q := p.sub()
	for i := 0; i < len(q.footnotelist); i++ {
		pr := q.footnotelist[i]
		if i > 0 {
			q.nl()
		}
		q.md("[^", pr.label, "]: ")
		n := q.push("    ")
		printMarkdownBlocks(pr.note.Blocks, q, true)
		q.pop(n)
	}
	p.merge(q)
	return strings.TrimRight(q.buf.String(), " \n")
}

// isFootnoteStart reports whether t, a line with leading space removed,
// begins a footnote definition.
func isFootnoteStart(t string) bool {
	_, end, ok := parseFootnoteLabel(t, 0)
	return ok && end < len(t) && t[end] == ':'
}

// parseFootnoteLabel parses [^label] at s[i:].
// Labels are non-empty and hold no spaces or brackets.
func parseFootnoteLabel(s string, i int) (label string, end int, ok bool) {
	if i+2 >= len(s) || s[i] != '[' || s[i+1] != '^' {
		return "", 0, false
	}
	for j := i + 2; j < len(s) && j-i < 1000; j++ {
		switch s[j] {
		case ']':
			if j == i+2 {
				return "", 0, false
			}
			return s[i+2 : j], j + 1, true
		case ' ', '\t', '\n', '\r', '[', '\x00':
			return "", 0, false
		}
	}
	return "", 0, false
}

// footnote parses the footnote definition starting at lines[0].
// Its text continues on lines indented four spaces
// and on lazy continuation lines of its last paragraph.
func (ps *parseState) footnote(lines []line) (Block, int) {
	t := lines[0].trimSpaceString()
	label, end, _ := parseFootnoteLabel(t, 0)
	body := []line{{text: trimLeftSpaceTab(t[end+1:]), lineno: lines[0].lineno}}
	var pt paraTracker
	last := 0
	var blanks []line
Scan:
	for j := 1; j < len(lines); j++ {
		s := lines[j]
		switch {
		case s.isBlank():
			blanks = append(blanks, line{lineno: s.lineno})
			continue
		case s.indent() >= 4:
			s = s.trimIndent(4)
		case len(blanks) == 0 && ps.lazyContinues(&pt, body, s):
		default:
			break Scan
		}
		body = append(body, blanks...)
		body = append(body, s)
		blanks = nil
		last = j
	}
	return &Footnote{
		Position: Position{lines[0].lineno, lines[last].lineno},
		Label:    label,
		Blocks:   ps.blocks(body),
	}, last + 1
}
