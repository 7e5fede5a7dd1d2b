// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// A Quote is a [Block] representing a block quote.
type Quote struct {
	Position
	Blocks []Block
}

func (b *Quote) printHTML(p *printer) {
	p.html("<blockquote>\n")
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
	p.html("</blockquote>\n")
}

// printMarkdown prints each line of the quote with one more
// "> " than the enclosing text; blank lines keep the bare ">".
func (b *Quote) printMarkdown(p *printer) {
	p.marker("> ")
	defer p.pop(p.push("> "))
	printMarkdownBlocks(b.Blocks, p, true)
}

// quote parses the block quote starting at lines[0].
// Lines that lose their > marker still belong to the quote
// when they continue a paragraph open inside it.
func (ps *parseState) quote(lines []line) (Block, int) {
	var inner []line
	var pt paraTracker
	n := 0
	for n < len(lines) {
		s := lines[n]
		t := s.trimSpaceString()
		if s.indent() <= 3 && t != "" && t[0] == '>' {
			s = line{text: t[1:], lineno: s.lineno}.trimIndent(1)
		} else if !ps.lazyContinues(&pt, inner, s) {
			break
		}
		inner = append(inner, s)
		n++
	}
	return &Quote{Position: lineRange(lines[:n]), Blocks: ps.blocks(inner)}, n
}
