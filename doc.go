// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markdown converts between Markdown and HTML
// through a shared document tree.
//
// A [Parser] or an [HTMLParser] builds a [*Document] from source text.
// The document is made of [Block] nodes (headings, paragraphs, lists,
// tables, code blocks, quotes, footnote definitions) holding [Inline]
// runs (emphasis, links, images, code spans, raw HTML tags).
// The same tree prints as HTML or as Markdown,
// and printing Markdown is followed by a text-level
// post-processing pass that places link and footnote
// definitions at the end of the document.
//
// The conversion functions [MarkdownToHTML], [HTMLToMarkdown] and [Format]
// use a process-wide [Converter] built on first use.
// Programs that need a different policy build their own with [New].
//
// Converting a document to the other syntax and back is meant to be
// stable: after one normalizing round trip, further round trips
// reproduce the same text.
package markdown

// A Block is a block-level node in a document tree.
type Block interface {
	Pos() Position
	printHTML(*printer)
	printMarkdown(*printer)
}

// A Position records the input lines a block was parsed from.
// Blocks built from HTML have a zero Position.
type Position struct {
	StartLine int
	EndLine   int
}

func (p Position) Pos() Position {
	return p
}

// A Document is the root of a document tree.
type Document struct {
	Position
	Blocks []Block

	// Links holds the link reference definitions
	// found in the source, keyed by normalized label.
	Links map[string]*Link
}

func (b *Document) printHTML(p *printer) {
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
}

func (b *Document) printMarkdown(p *printer) {
	printMarkdownBlocks(b.Blocks, p, true)
}

// printMarkdownBlocks prints a sequence of sibling blocks,
// separated by blank lines when loose is set.
// Footnote definitions are skipped here;
// they are printed at the end of the document.
func printMarkdownBlocks(bs []Block, p *printer, loose bool) {
	var prev Block
	for _, b := range bs {
		if _, ok := b.(*Footnote); ok {
			continue
		}
		if prev != nil {
			p.nl()
			if loose || needsBlank(prev, b) {
				p.nl()
			}
		}
		prev = b
		b.printMarkdown(p)
	}
}

// needsBlank reports whether b must be separated from prev
// by a blank line even in a tight list item,
// because otherwise the two would read back as one block.
func needsBlank(prev, b Block) bool {
	_, ok1 := prev.(*Text)
	_, ok2 := b.(*Text)
	return ok1 && ok2
}

// walkBlocks calls f for b and for every block nested inside it.
func walkBlocks(b Block, f func(Block)) {
	f(b)
	var kids []Block
	switch b := b.(type) {
	case *Document:
		kids = b.Blocks
	case *Quote:
		kids = b.Blocks
	case *List:
		for _, it := range b.Items {
			kids = append(kids, it)
		}
	case *Item:
		kids = b.Blocks
	case *Footnote:
		kids = b.Blocks
	}
	for _, k := range kids {
		walkBlocks(k, f)
	}
}
