// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"unicode/utf8"
)

// An Inline is an inline element, one of
// [Plain], [Code], [Strong], [Emph], [Del],
// [Link], [Image], [FootnoteLink],
// [SoftBreak], [HardBreak], and [RawHTML].
type Inline interface {
	Inline()

	printHTML(*printer)
	printText(*printer)
	printMarkdown(*printer)
}

// An Inlines is an [Inline] that represents a concatenation of Inlines.
type Inlines []Inline

func (Inlines) Inline() {}

func (x Inlines) printText(p *printer) {
	for _, inl := range x {
		inl.printText(p)
	}
}

func (x Inlines) printHTML(p *printer) {
	for _, inl := range x {
		inl.printHTML(p)
	}
}

func (x Inlines) printMarkdown(p *printer) {
	for _, inl := range x {
		inl.printMarkdown(p)
	}
}

// A Plain is an [Inline] holding literal text.
type Plain struct {
	Text string
}

func (*Plain) Inline() {}

func (x *Plain) printText(p *printer) { p.text(x.Text) }
func (x *Plain) printHTML(p *printer) { p.text(x.Text) }

func (x *Plain) printMarkdown(p *printer) {
	for i, s := range strings.Split(x.Text, "\n") {
		if i > 0 {
			if p.oneLine {
				p.md(" ")
				continue
			}
			p.nl()
		}
		s = escapeMarkdown(s, p.bol)
		if p.inTable {
			s = strings.ReplaceAll(s, "|", `\|`)
		}
		p.md(s)
	}
}

// A Code is an [Inline] that represents a code span.
type Code struct {
	Text string
}

func (*Code) Inline() {}

func (x *Code) printText(p *printer) { p.text(x.Text) }

func (x *Code) printHTML(p *printer) {
	p.html(`<code>`)
	p.text(x.Text)
	p.html(`</code>`)
}

func (x *Code) printMarkdown(p *printer) {
	// Use the fewest backticks we can, and add spaces as needed.
	text := strings.ReplaceAll(x.Text, "\n", " ")
	if p.inTable {
		text = strings.ReplaceAll(text, "|", `\|`)
	}
	ticks := strings.Repeat("`", maxRun(text, '`')+1)
	space := text == "" || text[0] == '`' || text[len(text)-1] == '`' ||
		text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != ""
	p.md(ticks)
	if space {
		p.md(" ")
	}
	p.md(text)
	if space {
		p.md(" ")
	}
	p.md(ticks)
}

// maxRun returns the length of the longest run of b bytes in s.
func maxRun(s string, b byte) int {
	m := 0
	n := 0
	for i := range len(s) {
		if s[i] == b {
			n++
			m = max(m, n)
		} else {
			n = 0
		}
	}
	return m
}

// A Strong is an [Inline] that represents strong emphasis (bold text).
type Strong struct {
	Inner Inlines
}

func (*Strong) Inline() {}

func (x *Strong) printText(p *printer) { x.Inner.printText(p) }

func (x *Strong) printHTML(p *printer) {
	p.html("<strong>")
	x.Inner.printHTML(p)
	p.html("</strong>")
}

func (x *Strong) printMarkdown(p *printer) {
	p.md("**")
	x.Inner.printMarkdown(p)
	p.md("**")
}

// An Emph is an [Inline] representing emphasis (italic text).
type Emph struct {
	Inner Inlines
}

func (*Emph) Inline() {}

func (x *Emph) printText(p *printer) { x.Inner.printText(p) }

func (x *Emph) printHTML(p *printer) {
	p.html("<em>")
	x.Inner.printHTML(p)
	p.html("</em>")
}

func (x *Emph) printMarkdown(p *printer) {
	p.md("*")
	x.Inner.printMarkdown(p)
	p.md("*")
}

// A Del is an [Inline] that represents deleted (strikethrough) text.
// It is written ~~text~~ in Markdown and <del>text</del> in HTML,
// whichever of <del>, <s> or <strike> it was read from.
type Del struct {
	Inner Inlines
}

func (*Del) Inline() {}

func (x *Del) printText(p *printer) { x.Inner.printText(p) }

func (x *Del) printHTML(p *printer) {
	p.html("<del>")
	x.Inner.printHTML(p)
	p.html("</del>")
}

func (x *Del) printMarkdown(p *printer) {
	p.md("~~")
	x.Inner.printMarkdown(p)
	p.md("~~")
}

// An inlineParser parses the inline content of a single block.
type inlineParser struct {
	ps       *parseState
	s        string
	lower    string // ASCII-lowercased s, for tag matching
	list     []Inline
	start    int       // start of pending plain text
	brackets []*bracket // open [ and ![ markers, innermost last
	noComEnd bool       // no --> remains in s

	// Link brackets below linkFloor in brackets are inactive:
	// they were open when a link closed, and links cannot nest.
	linkFloor int

	ticks backticks
}

// A bracket is an open link or image marker.
type bracket struct {
	image     bool
	pos       int // index of the marker's Plain in list
	textStart int // offset in s of the link text
}

// A delim is a run of emphasis characters during inline parsing.
// Runs that find no partner turn back into Plain text.
type delim struct {
	c        byte
	n        int // characters remaining
	orig     int // characters in the original run
	canOpen  bool
	canClose bool
	pos      int // index in the output list during matching
}

func (*delim) Inline()                  {}
func (x *delim) printHTML(p *printer)   { p.text(strings.Repeat(string(x.c), x.n)) }
func (x *delim) printText(p *printer)   { p.text(strings.Repeat(string(x.c), x.n)) }
func (x *delim) printMarkdown(p *printer) { p.md(strings.Repeat(`\`+string(x.c), x.n)) }

// parseInline parses s as inline content.
func (ps *parseState) parseInline(s string) Inlines {
	ip := &inlineParser{ps: ps, s: s, lower: asciiLower(s)}
	return ip.parse()
}

func (ip *inlineParser) parse() Inlines {
	s := ip.s
	for i := 0; i < len(s); {
		next, ok := ip.step(i)
		if next <= i {
			i++
			continue
		}
		if ok {
			ip.start = next
		}
		i = next
	}
	ip.flush(len(s))
	return mergePlain(ip.emph(ip.list))
}

// flush adds the pending plain text ending at end to the list.
func (ip *inlineParser) flush(end int) {
	if ip.start < end {
		ip.list = append(ip.list, &Plain{ip.s[ip.start:end]})
	}
	ip.start = end
}

// add flushes pending plain text ending at i and appends x.
func (ip *inlineParser) add(i int, x Inline) {
	ip.flush(i)
	ip.list = append(ip.list, x)
}

// step tries to recognize an inline construct at s[i].
// It returns the offset just past the construct and
// whether the construct was added to the list;
// text skipped without being added stays pending as plain text.
func (ip *inlineParser) step(i int) (int, bool) {
	s := ip.s
	opt := ip.ps.opt
	switch s[i] {
	case '\\':
		if i+1 < len(s) {
			if s[i+1] == '\n' {
				ip.add(i, &HardBreak{})
				return skipLeadingSpace(s, i+2), true
			}
			if isPunct(s[i+1]) {
				ip.add(i, &Plain{s[i+1 : i+2]})
				return i + 2, true
			}
		}
	case '`':
		return ip.codeSpan(i)
	case '*', '_':
		return ip.delimRun(i)
	case '~':
		if opt.Strikethrough {
			return ip.delimRun(i)
		}
	case '!':
		if i+1 < len(s) && s[i+1] == '[' {
			ip.flush(i)
			ip.brackets = append(ip.brackets, &bracket{image: true, pos: len(ip.list), textStart: i + 2})
			ip.list = append(ip.list, &Plain{"!["})
			return i + 2, true
		}
	case '[':
		if opt.Footnote && i+1 < len(s) && s[i+1] == '^' {
			if label, end, ok := parseFootnoteLabel(s, i); ok {
				ip.add(i, &FootnoteLink{Label: label})
				return end, true
			}
		}
		ip.flush(i)
		ip.brackets = append(ip.brackets, &bracket{pos: len(ip.list), textStart: i + 1})
		ip.list = append(ip.list, &Plain{"["})
		return i + 1, true
	case ']':
		return ip.closeBracket(i)
	case '<':
		return ip.tag(i)
	case '&':
		if dec, n := entity(s[i:]); n > 0 {
			ip.add(i, &Plain{dec})
			return i + n, true
		}
	case '\n':
		j := i
		for j > ip.start && s[j-1] == ' ' {
			j--
		}
		var x Inline = &SoftBreak{}
		if i-j >= 2 {
			x = &HardBreak{}
		}
		ip.add(j, x)
		return skipLeadingSpace(s, i+1), true
	}
	return 0, false
}

func skipLeadingSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// maxBackticks is the longest backtick run that can open a code span.
// Longer runs are literal text.
const maxBackticks = 80

// backticks remembers, once a search for a closing run has
// reached the end of the text, where the final run of each
// length begins, so later searches that must fail are skipped.
type backticks struct {
	last    [maxBackticks]int // last[n-1] is the offset of the final run of n backticks
	scanned bool
}

// codeSpan parses a backtick code span starting at s[i].
// An unmatched backtick run is literal text.
func (ip *inlineParser) codeSpan(i int) (int, bool) {
	s := ip.s
	bt := &ip.ticks
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	if n > maxBackticks || bt.scanned && bt.last[n-1] < i+n {
		return i + n, false
	}
	for j := i + n; j < len(s); {
		k := strings.IndexByte(s[j:], '`')
		if k < 0 {
			break
		}
		j += k
		m := 0
		for j+m < len(s) && s[j+m] == '`' {
			m++
		}
		if !bt.scanned && m <= maxBackticks {
			bt.last[m-1] = j
		}
		if m == n {
			text := strings.ReplaceAll(s[i+n:j], "\n", " ")
			if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != "" {
				text = text[1 : len(text)-1]
			}
			ip.add(i, &Code{text})
			return j + m, true
		}
		j += m
	}
	bt.scanned = true
	return i + n, false
}

// delimRun records a run of emphasis characters starting at s[i].
func (ip *inlineParser) delimRun(i int) (int, bool) {
	s := ip.s
	c := s[i]
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	if c == '~' && n != 2 {
		return i + n, false
	}

	before, after := ' ', ' '
	if i > 0 {
		before, _ = utf8.DecodeLastRuneInString(s[:i])
	}
	if i+n < len(s) {
		after, _ = utf8.DecodeRuneInString(s[i+n:])
	}
	left := !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))
	right := !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))

	d := &delim{c: c, n: n, orig: n}
	if c == '_' {
		d.canOpen = left && (!right || isUnicodePunct(before))
		d.canClose = right && (!left || isUnicodePunct(after))
	} else {
		d.canOpen = left
		d.canClose = right
	}
	ip.add(i, d)
	return i + n, true
}

// emph matches the emphasis delimiters in xs,
// returning the list with matched runs replaced by
// [Emph], [Strong] and [Del] nodes.
func (ip *inlineParser) emph(xs []Inline) []Inline {
	var out []Inline
	var stack []*delim
	// bottom[k] is the stack depth below which no opener
	// can match a closer with key k.
	bottom := make(map[closerKey]int)
	for _, x := range xs {
		d, ok := x.(*delim)
		if !ok {
			out = append(out, x)
			continue
		}
		key := closerKey{d.c, d.canOpen, d.orig % 3}
		for d.canClose && d.n > 0 {
			j := len(stack) - 1
			for ; j >= bottom[key]; j-- {
				if canMatch(stack[j], d) {
					break
				}
			}
			if j < bottom[key] {
				bottom[key] = len(stack)
				break
			}
			o := stack[j]
			k := 1
			switch {
			case o.c == '~':
				k = 2
			case o.n >= 3 && d.n >= 3:
				k = 1
			case o.n >= 2 && d.n >= 2:
				k = 2
			}
			inner := plainDelims(append(Inlines(nil), out[o.pos+1:]...))
			var node Inline
			switch {
			case o.c == '~':
				node = &Del{Inner: inner}
			case k == 2:
				node = &Strong{Inner: inner}
			default:
				node = &Emph{Inner: inner}
			}
			o.n -= k
			d.n -= k
			out = out[:o.pos+1]
			stack = stack[:j+1]
			if o.n == 0 {
				out = out[:o.pos]
				stack = stack[:j]
			}
			for k, b := range bottom {
				if b > len(stack) {
					bottom[k] = len(stack)
				}
			}
			out = append(out, node)
		}
		if d.n > 0 {
			d.pos = len(out)
			out = append(out, d)
			if d.canOpen {
				stack = append(stack, d)
			}
		}
	}
	return plainDelims(out)
}

// A closerKey groups closing delimiter runs that
// match exactly the same openers.
type closerKey struct {
	c       byte
	canOpen bool
	mod3    int
}

// canMatch reports whether opener o and closer d can form emphasis.
func canMatch(o, d *delim) bool {
	if o.c != d.c {
		return false
	}
	if o.c == '~' {
		return o.n == 2 && d.n == 2
	}
	if (o.canClose || d.canOpen) && (o.orig+d.orig)%3 == 0 && (o.orig%3 != 0 || d.orig%3 != 0) {
		return false
	}
	return true
}

// plainDelims replaces unmatched delimiter runs in xs with plain text.
func plainDelims(xs []Inline) []Inline {
	for i, x := range xs {
		if d, ok := x.(*delim); ok {
			xs[i] = &Plain{strings.Repeat(string(d.c), d.n)}
		}
	}
	return xs
}

// mergePlain merges adjacent Plain nodes and drops empty ones.
func mergePlain(xs []Inline) Inlines {
	var out Inlines
	for _, x := range xs {
		if pl, ok := x.(*Plain); ok {
			if pl.Text == "" {
				continue
			}
			if len(out) > 0 {
				if last, ok := out[len(out)-1].(*Plain); ok {
					out[len(out)-1] = &Plain{last.Text + pl.Text}
					continue
				}
			}
		}
		out = append(out, x)
	}
	return out
}

// asciiLower returns s with ASCII upper-case letters lowered,
// preserving byte offsets.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
