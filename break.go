// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// A ThematicBreak is a [Block] representing a thematic break,
// printed as <hr /> in HTML and "* * *" in Markdown by default.
type ThematicBreak struct {
	Position
}

func (b *ThematicBreak) printHTML(p *printer) {
	p.html("<hr />\n")
}

func (b *ThematicBreak) printMarkdown(p *printer) {
	p.md(p.cfg.ThematicBreak)
}

// isThematicBreak reports whether s is a thematic break line:
// three or more matching -, _, or * characters,
// optionally separated by spaces or tabs.
func isThematicBreak(s string) bool {
	s = trimSpaceTab(s)
	if s == "" {
		return false
	}
	c := s[0]
	if c != '-' && c != '_' && c != '*' {
		return false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case c:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

// A HardBreak is an [Inline] representing a hard line break (<br />).
type HardBreak struct{}

func (*HardBreak) Inline() {}

func (x *HardBreak) printHTML(p *printer) {
	p.html("<br />\n")
}

func (x *HardBreak) printMarkdown(p *printer) {
	if p.oneLine {
		p.md(" ")
		return
	}
	p.md(`\`)
	p.nl()
}

func (x *HardBreak) printText(p *printer) {
	p.text(" ")
}

// A SoftBreak is an [Inline] representing a soft line break,
// a line ending inside a paragraph.
type SoftBreak struct{}

func (*SoftBreak) Inline() {}

func (x *SoftBreak) printHTML(p *printer) {
	p.html("\n")
}

func (x *SoftBreak) printMarkdown(p *printer) {
	if p.oneLine {
		p.md(" ")
		return
	}
	p.nl()
}

func (x *SoftBreak) printText(p *printer) {
	p.text(" ")
}
