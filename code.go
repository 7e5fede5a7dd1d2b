// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// A CodeBlock is a [Block] representing a fenced or indented code block.
// Code blocks always print as fenced blocks.
type CodeBlock struct {
	Position
	Fence string   // fence that opened the block, or "" for an indented block
	Info  string   // info string after the opening fence
	Text  []string // lines, without trailing newlines
}

// Lang returns the language tag of the block: the first word of its info string.
func (b *CodeBlock) Lang() string {
	lang, _, _ := strings.Cut(b.Info, " ")
	return mdUnescape(lang)
}

func (b *CodeBlock) printHTML(p *printer) {
	p.html("<pre><code")
	if lang := b.Lang(); lang != "" {
		p.html(` class="language-`, htmlQuoteEscaper.Replace(lang), `"`)
	}
	p.html(">")
	for _, s := range b.Text {
		p.text(s, "\n")
	}
	p.html("</code></pre>\n")
}

func (b *CodeBlock) printMarkdown(p *printer) {
	fence := p.cfg.Fence
	if fence == "" {
		fence = "```"
	}
	// Lengthen the fence past any run of fence characters in the code.
	for _, s := range b.Text {
		if n := maxRun(s, fence[0]); n >= len(fence) {
			fence = strings.Repeat(fence[:1], n+1)
		}
	}
	p.md(fence, b.Info)
	for _, s := range b.Text {
		p.nl()
		p.md(s)
		p.noTrim()
	}
	p.nl()
	p.md(fence)
}

// fenceOpen reports whether t, a line with leading space removed,
// opens a fenced code block, returning the fence and the info string.
func fenceOpen(t string) (fence, info string) {
	if len(t) < 3 || t[0] != '`' && t[0] != '~' {
		return "", ""
	}
	c := t[0]
	n := 0
	for n < len(t) && t[n] == c {
		n++
	}
	if n < 3 {
		return "", ""
	}
	info = trimSpaceTab(t[n:])
	if c == '`' && strings.Contains(info, "`") {
		return "", ""
	}
	return t[:n], info
}

// isFenceClose reports whether t, a line with leading space removed,
// closes a code block opened with fence.
func isFenceClose(t, fence string) bool {
	n := 0
	for n < len(t) && t[n] == fence[0] {
		n++
	}
	return n >= len(fence) && trimSpaceTab(t[n:]) == ""
}

// fencedCode parses the fenced code block starting at lines[0].
// An unterminated fence is not a code block; fencedCode returns nil
// and the opening line reads as ordinary text.
func (ps *parseState) fencedCode(lines []line) (Block, int) {
	s := lines[0]
	ind := s.indent()
	fence, info := fenceOpen(s.trimSpaceString())
	var text []string
	for j := 1; j < len(lines); j++ {
		t := lines[j]
		if t.indent() <= 3 && isFenceClose(t.trimSpaceString(), fence) {
			return &CodeBlock{
				Position: Position{s.lineno, t.lineno},
				Fence:    fence,
				Info:     info,
				Text:     text,
			}, j + 1
		}
		text = append(text, t.trimIndent(ind).text)
	}
	return nil, 0
}

// indentedCode parses the indented code block starting at lines[0].
func (ps *parseState) indentedCode(lines []line) (Block, int) {
	n := 0
	end := 0
	var text []string
	for n < len(lines) {
		s := lines[n]
		if !s.isBlank() && s.indent() < 4 {
			break
		}
		text = append(text, s.trimIndent(4).text)
		n++
		if !s.isBlank() {
			end = n
		}
	}
	return &CodeBlock{
		Position: Position{lines[0].lineno, lines[end-1].lineno},
		Text:     text[:end],
	}, end
}
