// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// A Parser is the native Markdown engine.
//
// The zero value parses the core constructs only;
// the fields enable the extensions the converter relies on.
// A Parser is not modified by parsing and may be
// used by multiple goroutines at once.
type Parser struct {
	// Table enables pipe tables.
	Table bool

	// Strikethrough enables ~~deleted~~ text.
	Strikethrough bool

	// TaskList enables [ ] and [x] checkboxes at the start of list items.
	TaskList bool

	// Footnote enables [^id] references and [^id]: definitions.
	Footnote bool

	// RawTags lists the inline HTML tags (lower case) whose
	// elements pass through verbatim, content included.
	RawTags []string
}

// A parseState holds the state of a single call to [Parser.Parse].
type parseState struct {
	opt     *Parser
	rawTags map[string]bool
	links   map[string]*Link

	// inline parsing is deferred until all
	// link reference definitions are known.
	todo []func()
}

// Parse parses text as Markdown. It never fails:
// malformed constructs are kept as literal text.
func (p *Parser) Parse(text string) *Document {
	ps := &parseState{
		opt:     p,
		rawTags: make(map[string]bool),
		links:   make(map[string]*Link),
	}
	for _, t := range p.RawTags {
		ps.rawTags[strings.ToLower(t)] = true
	}
	text = strings.ReplaceAll(text, "\x00", "�")
	lines := splitLines(text)
	doc := &Document{Blocks: ps.blocks(lines), Links: ps.links}
	if len(lines) > 0 {
		doc.Position = Position{StartLine: 1, EndLine: len(lines)}
	}
	for _, f := range ps.todo {
		f()
	}
	return doc
}

// ParseMarkdown implements [MarkdownParser].
func (p *Parser) ParseMarkdown(text string) (*Document, error) {
	return p.Parse(text), nil
}

// inline arranges for *dst to be set to the inline parse of text
// once the block structure of the whole document is known.
func (ps *parseState) inline(dst *Inlines, text string) {
	ps.todo = append(ps.todo, func() {
		*dst = ps.parseInline(text)
	})
}

// blocks parses lines as a sequence of blocks.
// Container blocks (quotes, list items, footnotes) collect
// their own lines, strip their markers, and call blocks recursively.
func (ps *parseState) blocks(lines []line) []Block {
	var out []Block
	var para []line
	closePara := func() {
		if len(para) > 0 {
			if b := ps.paragraph(para); b != nil {
				out = append(out, b)
			}
			para = nil
		}
	}

	for i := 0; i < len(lines); {
		s := lines[i]
		if s.isBlank() {
			closePara()
			i++
			continue
		}
		ind := s.indent()
		t := s.trimSpaceString()
		_, isItem := listMarker(s)

		if ind >= 4 && !isItem {
			if len(para) > 0 {
				para = append(para, s)
				i++
				continue
			}
			b, n := ps.indentedCode(lines[i:])
			out = append(out, b)
			i += n
			continue
		}

		if len(para) > 0 {
			if level := setextLevel(t); level > 0 {
				if h := ps.setextHeading(para, s, level); h != nil {
					out = append(out, h)
					para = nil
					i++
					continue
				}
				closePara()
			}
			if ps.opt.Table && isTableStart(para[len(para)-1].text, t) {
				head := para[len(para)-1]
				para = para[:len(para)-1]
				closePara()
				b, n := ps.table(head, lines[i:])
				out = append(out, b)
				i += n
				continue
			}
		}

		if fence, _ := fenceOpen(t); fence != "" && ind <= 3 {
			if b, n := ps.fencedCode(lines[i:]); b != nil {
				closePara()
				out = append(out, b)
				i += n
				continue
			}
		}

		switch {
		case isATXHeading(t):
			closePara()
			out = append(out, ps.atxHeading(s))
			i++

		case isThematicBreak(t):
			closePara()
			out = append(out, &ThematicBreak{Position{s.lineno, s.lineno}})
			i++

		case setextLevel(t) == 1:
			// A bare === underline has nothing to underline.
			i++

		case t[0] == '>':
			closePara()
			b, n := ps.quote(lines[i:])
			out = append(out, b)
			i += n

		case ps.opt.Footnote && isFootnoteStart(t):
			closePara()
			b, n := ps.footnote(lines[i:])
			out = append(out, b)
			i += n

		case isItem && (len(para) == 0 || canInterrupt(s)):
			closePara()
			b, n := ps.list(lines[i:])
			out = append(out, b)
			i += n

		case isHTMLBlockStart(t, len(para) > 0):
			closePara()
			b, n := ps.htmlBlock(lines[i:])
			out = append(out, b)
			i += n

		default:
			para = append(para, s)
			i++
		}
	}
	closePara()
	return out
}

// startsBlock reports whether s begins a block other than a paragraph,
// so that it cannot be a lazy continuation line.
func startsBlock(ps *parseState, s line) bool {
	t := s.trimSpaceString()
	if t == "" {
		return true
	}
	if _, ok := listMarker(s); ok && canInterrupt(s) {
		return true
	}
	fence, _ := fenceOpen(t)
	return fence != "" || isATXHeading(t) || isThematicBreak(t) || t[0] == '>' ||
		ps.opt.Footnote && isFootnoteStart(t) || isHTMLBlockStart(t, true)
}

// A paraTracker follows the lines a container collects
// and records whether they end with an open paragraph
// that a lazy continuation line could extend.
// Lines are examined only when a lazy line needs the answer,
// and each line at most once.
type paraTracker struct {
	fence string // closing fence of an open code block
	open  bool
	done  int // lines already examined
}

// update examines the collected lines not yet seen
// and reports whether a paragraph is open at the end.
func (pt *paraTracker) update(collected []line) bool {
	for ; pt.done < len(collected); pt.done++ {
		pt.add(collected[pt.done])
	}
	return pt.open
}

func (pt *paraTracker) add(s line) {
	t := s.trimSpaceString()
	for strings.HasPrefix(t, ">") {
		t = trimLeftSpaceTab(t[1:])
	}
	if m, ok := listMarker(line{text: t}); ok {
		t = m.rest.trimSpaceString()
	}
	if pt.fence != "" {
		if isFenceClose(t, pt.fence) {
			pt.fence = ""
		}
		pt.open = false
		return
	}
	if f, _ := fenceOpen(t); f != "" {
		pt.fence = f
		pt.open = false
		return
	}
	switch {
	case t == "", isThematicBreak(t), isATXHeading(t):
		pt.open = false
	case s.indent() >= 4 && !pt.open:
		// indented code
	default:
		pt.open = true
	}
}

// lazyContinues reports whether s can continue the paragraph
// still open at the end of the container lines collected so far.
func (ps *parseState) lazyContinues(pt *paraTracker, collected []line, s line) bool {
	return !s.isBlank() && !startsBlock(ps, s) && setextLevel(s.trimSpaceString()) == 0 && pt.update(collected)
}

// lineRange returns the position covering lines.
func lineRange(lines []line) Position {
	if len(lines) == 0 {
		return Position{}
	}
	return Position{lines[0].lineno, lines[len(lines)-1].lineno}
}
