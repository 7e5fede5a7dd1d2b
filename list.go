// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strconv"
	"strings"
)

// A List is a [Block] representing an ordered or unordered list.
type List struct {
	Position
	Ordered bool
	Start   int  // number of the first item of an ordered list
	Loose   bool // items are separated by blank lines
	Items   []*Item
}

// A TaskState records whether a list item is a task and whether it is done.
type TaskState int

const (
	NoTask   TaskState = iota // ordinary list item
	TaskOpen                  // [ ]
	TaskDone                  // [x]
)

// An Item is a [Block] representing a list item.
type Item struct {
	Position
	Task   TaskState
	Blocks []Block
}

// start returns the number of the first item of b.
func (b *List) start() int {
	return max(b.Start, 1)
}

func (b *List) printHTML(p *printer) {
	if b.Ordered {
		p.html("<ol")
		if n := b.start(); n != 1 {
			p.html(` start="`, strconv.Itoa(n), `"`)
		}
		p.html(">\n")
	} else {
		p.html("<ul>\n")
	}
	for _, c := range b.Items {
		c.printHTML(p)
	}
	if b.Ordered {
		p.html("</ol>\n")
	} else {
		p.html("</ul>\n")
	}
}

func (b *Item) printHTML(p *printer) {
	p.html("<li")
	if b.Task != NoTask {
		p.html(` class="task-list-item"><input type="checkbox" class="task-list-item-checkbox" disabled`)
		if b.Task == TaskDone {
			p.html(" checked")
		}
		p.html("> ")
	} else {
		p.html(">")
	}
	if len(b.Blocks) > 0 {
		if _, ok := b.Blocks[0].(*Text); !ok {
			p.html("\n")
		}
	}
	for i, c := range b.Blocks {
		c.printHTML(p)
		if i+1 < len(b.Blocks) {
			if _, ok := c.(*Text); ok {
				p.html("\n")
			}
		}
	}
	p.html("</li>\n")
}

// printMarkdown prints the list with its items renumbered from the list start.
// Bullets are always printed with the configured glyph.
func (b *List) printMarkdown(p *printer) {
	p.lists = append(p.lists, b)
	defer func() { p.lists = p.lists[:len(p.lists)-1] }()

	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		marker := p.cfg.Bullet
		if b.Ordered {
			marker = strconv.Itoa(b.start()+i) + "."
		}
		item.print(p, marker+" ", b.Loose)
	}
}

func (b *Item) printMarkdown(p *printer) {
	b.print(p, p.cfg.Bullet+" ", false)
}

// print prints the item with the given marker.
// Continuation lines are indented by the marker width;
// nested lists are indented according to [listIndent].
func (b *Item) print(p *printer, marker string, loose bool) {
	p.marker(marker)
	switch b.Task {
	case TaskOpen:
		p.md("[ ] ")
	case TaskDone:
		p.md("[x] ")
	}

	base := len(p.prefix)
	defer p.pop(base)
	var prev Block
	for _, c := range b.Blocks {
		if _, ok := c.(*Footnote); ok {
			continue
		}
		p.pop(base)
		if l, ok := c.(*List); ok {
			p.push(strings.Repeat(" ", listIndent(p, l, len(marker))))
		} else {
			p.push(strings.Repeat(" ", len(marker)))
		}
		if prev != nil {
			p.nl()
			if loose || needsBlank(prev, c) {
				p.nl()
			}
		} else if _, ok := c.(*List); ok {
			// An item that starts with a list puts it on the next line.
			p.nl()
		}
		prev = c
		c.printMarkdown(p)
	}
}

// listIndent returns the indentation of the child list l
// inside an item of the innermost list being printed,
// whose marker is width bytes wide.
// Under an ordered item, children align with the item text.
// Under a bullet item, child bullet lists are indented
// by the configured bullet indent and child ordered lists
// by the wider ordered indent.
func listIndent(p *printer, l *List, width int) int {
	if len(p.lists) == 0 || p.lists[len(p.lists)-1].Ordered {
		return width
	}
	if l.Ordered {
		return max(p.cfg.OrderedIndent, width)
	}
	return max(p.cfg.BulletIndent, width)
}

// A listMark describes the list marker at the start of a line.
type listMark struct {
	ind     int // indentation of the marker
	width   int // indentation of the item content
	ordered bool
	num     int
	rest    line // text after the marker
}

// listMarker reports whether s begins with a list marker:
// a bullet (*, -, +) or a number followed by . or ),
// then white space or the end of the line.
func listMarker(s line) (listMark, bool) {
	m := listMark{ind: s.indent()}
	t := s.trimSpaceString()
	n := 0
	switch {
	case t == "":
		return m, false
	case t[0] == '*' || t[0] == '-' || t[0] == '+':
		n = 1
	default:
		for n < len(t) && n < 9 && isDigit(t[n]) {
			n++
		}
		if n == 0 || n >= len(t) || t[n] != '.' && t[n] != ')' {
			return m, false
		}
		m.ordered = true
		m.num, _ = strconv.Atoi(t[:n])
		n++
	}
	if n < len(t) && t[n] != ' ' && t[n] != '\t' {
		return m, false
	}
	rest := line{text: t[n:], lineno: s.lineno}
	if rest.isBlank() {
		m.width = m.ind + n + 1
		m.rest = line{lineno: s.lineno}
		return m, true
	}
	sp := rest.indent()
	if sp > 4 {
		// The item starts with indented code.
		sp = 1
	}
	m.rest = rest.trimIndent(sp)
	m.width = m.ind + n + sp
	return m, true
}

// canInterrupt reports whether the list item line s
// may interrupt a paragraph: it must not be empty,
// and an ordered item must start at 1.
func canInterrupt(s line) bool {
	m, ok := listMarker(s)
	return ok && !m.rest.isBlank() && (!m.ordered || m.num == 1) && !isThematicBreak(s.text)
}

// isItemStart reports whether s starts an item of a list
// that is ordered or not as given.
func isItemStart(s line, ordered bool) (listMark, bool) {
	m, ok := listMarker(s)
	if !ok || m.ordered != ordered || isThematicBreak(s.text) {
		return m, false
	}
	return m, true
}

// list parses the list starting at lines[0].
// All bullet glyphs continue the same bullet list,
// and the . and ) delimiters continue the same ordered list.
func (ps *parseState) list(lines []line) (Block, int) {
	first, _ := listMarker(lines[0])
	list := &List{Ordered: first.ordered, Start: first.num}
	i := 0
	for i < len(lines) {
		m, ok := isItemStart(lines[i], first.ordered)
		if !ok {
			break
		}
		item, n := ps.item(lines[i:], m)
		list.Items = append(list.Items, item)
		i += n

		// Blank lines between items.
		j := i
		for j < len(lines) && lines[j].isBlank() {
			j++
		}
		if j > i {
			if j == len(lines) {
				break
			}
			if _, ok := isItemStart(lines[j], first.ordered); !ok {
				break
			}
			i = j
		}
	}
	list.Position = Position{lines[0].lineno, list.Items[len(list.Items)-1].EndLine}

	for k, it := range list.Items {
		if k+1 < len(list.Items) && list.Items[k+1].StartLine-it.EndLine > 1 {
			list.Loose = true
		}
		for bi := 0; bi+1 < len(it.Blocks); bi++ {
			if it.Blocks[bi+1].Pos().StartLine-it.Blocks[bi].Pos().EndLine > 1 {
				list.Loose = true
			}
		}
	}
	if !list.Loose {
		for _, it := range list.Items {
			for bi, b := range it.Blocks {
				if para, ok := b.(*Paragraph); ok {
					it.Blocks[bi] = para.Text
				}
			}
		}
	}
	return list, i
}

// item parses the list item starting at lines[0] with marker m.
// Lines indented past the marker belong to the item,
// so a deeper-indented list nests inside it;
// after a blank line, text must be indented to the item content.
func (ps *parseState) item(lines []line, m listMark) (*Item, int) {
	item := &Item{}
	first := m.rest
	if ps.opt.TaskList {
		first, item.Task = taskToken(first)
	}
	// The body overwrites the item's own lines, which the caller
	// skips, so that nested items do not copy every line per level.
	lines[0] = first
	var pt paraTracker
	last := 0
	blanks := 0
Scan:
	for j := 1; j < len(lines); j++ {
		s := lines[j]
		if s.isBlank() {
			blanks++
			continue
		}
		ind := s.indent()
		_, isMarker := listMarker(s)
		switch {
		case ind > m.ind && (blanks == 0 || ind >= m.width || isMarker):
			s = s.trimIndent(min(ind, m.width))
		case ind <= m.ind && isMarker && !isThematicBreak(s.text):
			break Scan
		case blanks == 0 && ps.lazyContinues(&pt, lines[:last+1], s):
		default:
			break Scan
		}
		for k := last + 1; k < j; k++ {
			lines[k] = line{lineno: lines[k].lineno}
		}
		lines[j] = s
		blanks = 0
		last = j
	}
	item.Position = Position{lines[0].lineno, lines[last].lineno}
	item.Blocks = ps.blocks(lines[:last+1])
	return item, last + 1
}

// taskToken strips a leading [ ], [x], or [X] checkbox from s.
func taskToken(s line) (line, TaskState) {
	t := s.text
	if len(t) < 3 || t[0] != '[' || t[2] != ']' || len(t) > 3 && t[3] != ' ' && t[3] != '\t' {
		return s, NoTask
	}
	var state TaskState
	switch t[1] {
	case ' ':
		state = TaskOpen
	case 'x', 'X':
		state = TaskDone
	default:
		return s, NoTask
	}
	s.text = trimLeftSpaceTab(t[3:])
	s.counted = false
	return s, state
}
