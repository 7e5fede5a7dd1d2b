// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"strings"
)

// Dump returns a debugging description of the tree rooted at b,
// one node per line, indented by depth.
func Dump(b Block) string {
	var d dumper
	d.block(b)
	return d.buf.String()
}

type dumper struct {
	buf   strings.Builder
	depth int
}

func (d *dumper) line(format string, args ...any) {
	d.buf.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(&d.buf, format, args...)
	d.buf.WriteByte('\n')
}

func (d *dumper) block(b Block) {
	d.depth++
	defer func() { d.depth-- }()
	pos := b.Pos()
	switch b := b.(type) {
	case *Document:
		d.line("Document")
		for _, c := range b.Blocks {
			d.block(c)
		}
	case *Heading:
		d.line("Heading %d %d-%d", b.level(), pos.StartLine, pos.EndLine)
		d.inlines(b.Text.Inline)
	case *Paragraph:
		d.line("Paragraph %d-%d", pos.StartLine, pos.EndLine)
		d.inlines(b.Text.Inline)
	case *Text:
		d.line("Text %d-%d", pos.StartLine, pos.EndLine)
		d.inlines(b.Inline)
	case *List:
		d.line("List ordered=%v start=%d loose=%v", b.Ordered, b.start(), b.Loose)
		for _, it := range b.Items {
			d.block(it)
		}
	case *Item:
		d.line("Item task=%d", b.Task)
		for _, c := range b.Blocks {
			d.block(c)
		}
	case *Quote:
		d.line("Quote")
		for _, c := range b.Blocks {
			d.block(c)
		}
	case *Footnote:
		d.line("Footnote %q", b.Label)
		for _, c := range b.Blocks {
			d.block(c)
		}
	case *CodeBlock:
		d.line("CodeBlock %q %q", b.Info, b.Text)
	case *HTMLBlock:
		d.line("HTMLBlock %q", b.Text)
	case *ThematicBreak:
		d.line("ThematicBreak")
	case *Table:
		d.line("Table")
		rows := append([]*TableRow{b.Header}, b.Rows...)
		for _, r := range rows {
			if r == nil {
				continue
			}
			d.depth++
			d.line("Row")
			for _, c := range r.Cells {
				d.depth++
				d.line("Cell %s", c.Align)
				d.inlines(c.Inner)
				d.depth--
			}
			d.depth--
		}
	default:
		d.line("%T", b)
	}
}

func (d *dumper) inlines(xs Inlines) {
	d.depth++
	defer func() { d.depth-- }()
	for _, x := range xs {
		switch x := x.(type) {
		case *Plain:
			d.line("Plain %q", x.Text)
		case *Code:
			d.line("Code %q", x.Text)
		case *Strong:
			d.line("Strong")
			d.inlines(x.Inner)
		case *Emph:
			d.line("Emph")
			d.inlines(x.Inner)
		case *Del:
			d.line("Del")
			d.inlines(x.Inner)
		case *Link:
			d.line("Link %q %q ref=%q", x.URL, x.Title, x.RefID)
			d.inlines(x.Inner)
		case *Image:
			d.line("Image %q %q ref=%q", x.URL, x.Title, x.RefID)
			d.inlines(x.Inner)
		case *FootnoteLink:
			d.line("FootnoteLink %q", x.Label)
		case *RawHTML:
			d.line("RawHTML %q", x.Text)
		default:
			d.line("%T", x)
		}
	}
}
