// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strconv"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"
)

// A Heading is a [Block] representing a heading,
// displayed with the <h1> through <h6> tags.
//
// Headings always print as ATX headings ("## Heading"),
// including those parsed from Setext underlines.
type Heading struct {
	Position

	// Level is the heading level: 1 through 6.
	// Other values are clamped to the valid range.
	Level int

	// Text is the text of the heading.
	Text *Text

	// ID is the HTML id attribute.
	// If empty and the converter has heading ids enabled,
	// an id is derived from the heading text.
	ID string
}

// level returns the effective level, clamping Level to the range [1, 6].
func (b *Heading) level() int {
	return max(1, min(6, b.Level))
}

func (b *Heading) printHTML(p *printer) {
	n := strconv.Itoa(b.level())
	p.html("<h", n)
	if id := b.htmlID(p); id != "" {
		p.html(` id="`, htmlQuoteEscaper.Replace(id), `"`)
	}
	p.html(">")
	b.Text.printHTML(p)
	p.html("</h", n, ">\n")
}

// htmlID returns the id attribute for b, unique within the document.
func (b *Heading) htmlID(p *printer) string {
	id := b.ID
	if id == "" {
		if !p.cfg.HeadingIDs {
			return ""
		}
		id = sanitized_anchor_name.Create(ToText(b.Text.Inline))
	}
	if id == "" {
		return ""
	}
	n := p.headingIDs[id]
	p.headingIDs[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

func (b *Heading) printMarkdown(p *printer) {
	p.marker(strings.Repeat("#", b.level()) + " ")
	p.oneLine = true
	b.Text.printMarkdown(p)
	p.oneLine = false
}

// isATXHeading reports whether t, a line with leading space removed,
// is an ATX heading: 1 to 6 # characters followed by
// a space, a tab, or the end of the line.
// A line like "#NoSpace" is not a heading.
func isATXHeading(t string) bool {
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	return 1 <= n && n <= 6 && (n == len(t) || t[n] == ' ' || t[n] == '\t')
}

// atxHeading parses the ATX heading line s.
func (ps *parseState) atxHeading(s line) Block {
	t := s.trimSpaceString()
	n := 0
	for t[n] == '#' {
		n++
		if n == len(t) {
			break
		}
	}
	text := trimSpaceTab(t[n:])

	// Remove a closing sequence of #s if preceded by a space or tab.
	if inner := strings.TrimRight(text, "#"); inner == "" {
		text = ""
	} else if inner != trimRightSpaceTab(inner) {
		text = trimRightSpaceTab(inner)
	}

	pos := Position{s.lineno, s.lineno}
	h := &Heading{Position: pos, Level: n, Text: &Text{Position: pos}}
	ps.inline(&h.Text.Inline, text)
	return h
}

// setextLevel returns 1 if t is a === underline,
// 2 if t is a --- underline, and 0 otherwise.
func setextLevel(t string) int {
	t = trimRightSpaceTab(t)
	if t == "" {
		return 0
	}
	switch c := t[0]; c {
	case '=', '-':
		if strings.Trim(t, string(c)) == "" {
			if c == '=' {
				return 1
			}
			return 2
		}
	}
	return 0
}

// setextHeading converts the paragraph lines para,
// underlined by s, into a heading.
// It returns nil if para holds only link reference definitions.
func (ps *parseState) setextHeading(para []line, s line, level int) Block {
	b := ps.paragraph(para)
	if b == nil {
		return nil
	}
	pb := b.(*Paragraph)
	pos := Position{pb.StartLine, s.lineno}
	return &Heading{Position: pos, Level: level, Text: pb.Text}
}
