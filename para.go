// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// A Text is a [Block] holding inline content without a paragraph wrapper.
// It appears as the content of a [Paragraph] or [Heading],
// and directly as a block in the items of a tight list.
type Text struct {
	Position
	Inline Inlines
}

func (b *Text) printHTML(p *printer) {
	b.Inline.printHTML(p)
}

func (b *Text) printMarkdown(p *printer) {
	b.Inline.printMarkdown(p)
}

// A Paragraph is a [Block] representing a paragraph.
// Except when they appear in an item of a tight list,
// paragraphs render in <p>...</p> tags.
type Paragraph struct {
	Position
	Text *Text
}

func (b *Paragraph) printHTML(p *printer) {
	p.html("<p>")
	b.Text.printHTML(p)
	p.html("</p>\n")
}

func (b *Paragraph) printMarkdown(p *printer) {
	b.Text.printMarkdown(p)
}

// paragraph builds a Paragraph from lines,
// first removing any link reference definitions at its start.
// It returns nil if nothing but definitions remain.
func (ps *parseState) paragraph(lines []line) Block {
	var b strings.Builder
	for i, s := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(trimLeftSpaceTab(s.text))
	}
	text := b.String()
	for text != "" && text[0] == '[' {
		n, ok := ps.parseLinkRefDef(text)
		if !ok {
			break
		}
		text = text[n:]
	}
	text = trimRightSpaceTab(text)
	if text == "" {
		return nil
	}
	pos := lineRange(lines)
	pos.StartLine = pos.EndLine - strings.Count(text, "\n")
	para := &Paragraph{Position: pos, Text: &Text{Position: pos}}
	ps.inline(&para.Text.Inline, text)
	return para
}
