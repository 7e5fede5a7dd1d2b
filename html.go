// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// An HTMLBlock is a [Block] representing raw HTML lines.
// It prints verbatim in both HTML and Markdown.
type HTMLBlock struct {
	Position
	Text []string // lines, without trailing newlines
}

func (b *HTMLBlock) printHTML(p *printer) {
	for _, s := range b.Text {
		p.html(s, "\n")
	}
}

func (b *HTMLBlock) printMarkdown(p *printer) {
	for i, s := range b.Text {
		if i > 0 {
			p.nl()
		}
		p.md(s)
		p.noTrim()
	}
}

// A RawHTML is an [Inline] holding an allow-listed HTML element,
// such as <kbd>Ctrl</kbd>, or an HTML comment.
// Its content is not interpreted as Markdown
// and prints verbatim in both HTML and Markdown.
type RawHTML struct {
	Tag  string // lower-case element name, or "" for a comment
	Text string
}

func (*RawHTML) Inline() {}

func (x *RawHTML) printHTML(p *printer) {
	p.html(x.Text)
}

func (x *RawHTML) printMarkdown(p *printer) {
	for i, s := range strings.Split(x.Text, "\n") {
		if i > 0 {
			if p.oneLine {
				p.md(" ")
				continue
			}
			p.nl()
		}
		p.md(s)
		p.noTrim()
	}
}

func (x *RawHTML) printText(p *printer) {}

// tag handles a < at s[i]: an autolink, a <br> line break,
// a strikethrough element, an allow-listed element, or a comment.
// Any other tag is literal text.
func (ip *inlineParser) tag(i int) (int, bool) {
	s := ip.s
	if l, end, ok := parseAutoLink(s, i); ok {
		ip.add(i, l)
		return end, true
	}
	if strings.HasPrefix(s[i:], "<!--") {
		if ip.noComEnd {
			return 0, false
		}
		if k := strings.Index(s[i+4:], "-->"); k >= 0 {
			end := i + 4 + k + 3
			ip.add(i, &RawHTML{Text: s[i:end]})
			return end, true
		}
		ip.noComEnd = true
		return 0, false
	}
	name, end, ok := parseHTMLOpenTag(s, i)
	if !ok {
		return 0, false
	}
	name = strings.ToLower(name)
	switch {
	case name == "br":
		ip.add(i, &HardBreak{})
		if end < len(s) && s[end] == '\n' {
			end = skipLeadingSpace(s, end+1)
		}
		return end, true

	case ip.ps.opt.Strikethrough && (name == "del" || name == "s" || name == "strike"):
		start, cend, ok := ip.closeTag(name, end)
		if !ok {
			return 0, false
		}
		ip.add(i, &Del{Inner: ip.ps.parseInline(s[end:start])})
		return cend, true

	case ip.ps.rawTags[name]:
		if strings.HasSuffix(s[:end], "/>") {
			ip.add(i, &RawHTML{Tag: name, Text: s[i:end]})
			return end, true
		}
		_, cend, ok := ip.closeTag(name, end)
		if !ok {
			return 0, false
		}
		ip.add(i, &RawHTML{Tag: name, Text: s[i:cend]})
		return cend, true
	}
	return 0, false
}

// closeTag finds the closing tag </name> matching an element
// whose open tag ends at s[i], skipping nested elements of the same name.
// It returns the offsets of the start and end of the closing tag.
func (ip *inlineParser) closeTag(name string, i int) (start, end int, ok bool) {
	s := ip.lower
	depth := 0
	for j := i; j < len(s); j++ {
		k := strings.IndexByte(s[j:], '<')
		if k < 0 {
			break
		}
		j += k
		if n, e, ok := parseHTMLOpenTag(s, j); ok && n == name && !strings.HasSuffix(s[:e], "/>") {
			depth++
			continue
		}
		if n, e, ok := parseHTMLClosingTag(s, j); ok && n == name {
			if depth == 0 {
				return j, e, true
			}
			depth--
		}
	}
	return 0, 0, false
}

// isHTMLBlockStart reports whether t, a line with leading space removed,
// starts an HTML block. When interrupt is set, the line would interrupt
// a paragraph, and a line holding only an arbitrary complete tag does not count.
func isHTMLBlockStart(t string, interrupt bool) bool {
	_, ok := htmlBlockEnd(t, interrupt)
	return ok
}

// htmlBlockEnd reports whether t starts an HTML block and returns
// the function reporting whether a line ends the block.
// A nil function means the block ends before the next blank line.
func htmlBlockEnd(t string, interrupt bool) (end func(string) bool, ok bool) {
	if len(t) < 2 || t[0] != '<' {
		return nil, false
	}

	// <pre>, <script>, <style>, and <textarea> run to their closing tag.
	i := 1
	for i < len(t) && t[i] != ' ' && t[i] != '\t' && t[i] != '>' {
		i++
	}
	if isBlock1Tag(t[1:i]) {
		return endBlock1, true
	}

	for _, m := range []struct{ start, end string }{
		{"<!--", "-->"},
		{"<?", "?>"},
		{"<![CDATA[", "]]>"},
	} {
		if strings.HasPrefix(t, m.start) {
			return func(s string) bool { return strings.Contains(s, m.end) }, true
		}
	}
	if len(t) >= 3 && t[1] == '!' && 'A' <= t[2] && t[2] <= 'Z' {
		return func(s string) bool { return strings.Contains(s, ">") }, true
	}

	// Known block-level tags run to a blank line.
	start := 1
	if t[1] == '/' {
		start = 2
	}
	j := start
	for j < len(t) && j < 16 && isLetterDigit(t[j]) {
		j++
	}
	if j < len(t) {
		switch t[j] {
		case ' ', '\t', '>':
		case '/':
			if j+1 >= len(t) || t[j+1] != '>' {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	if tag := t[start:j]; tag != "" {
		for _, name := range htmlTags {
			if lowerEq(tag, name) {
				return nil, true
			}
		}
	}

	// A complete open or closing tag alone on a line,
	// except where it would interrupt a paragraph.
	if interrupt {
		return nil, false
	}
	if _, e, ok := parseHTMLOpenTag(t, 0); ok && skipSpace(t, e) == len(t) {
		return nil, true
	}
	if _, e, ok := parseHTMLClosingTag(t, 0); ok && skipSpace(t, e) == len(t) {
		return nil, true
	}
	return nil, false
}

// htmlBlock parses the HTML block starting at lines[0].
func (ps *parseState) htmlBlock(lines []line) (Block, int) {
	end, _ := htmlBlockEnd(lines[0].trimSpaceString(), false)
	var text []string
	n := 0
	for n < len(lines) {
		s := lines[n]
		if end == nil && s.isBlank() {
			break
		}
		text = append(text, s.text)
		n++
		if end != nil && end(s.text) {
			break
		}
	}
	return &HTMLBlock{Position: lineRange(lines[:n]), Text: text}, n
}

const forceLower = 0x20 // ASCII letter | forceLower == ASCII lower-case

// endBlock1 reports whether the string contains
// </pre>, </script>, </style>, or </textarea>,
// using ASCII case-insensitive matching.
func endBlock1(s string) bool {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && i+1 < len(s) && s[i+1] == '/' {
			start = i + 2
		}
		if s[i] == '>' && start >= 0 {
			if isBlock1Tag(s[start:i]) {
				return true
			}
			start = -1
		}
	}
	return false
}

func isBlock1Tag(tag string) bool {
	return lowerEq(tag, "pre") || lowerEq(tag, "script") || lowerEq(tag, "style") || lowerEq(tag, "textarea")
}

// lowerEq reports whether strings.ToLower(s) == lower
// assuming lower is entirely ASCII lower-case letters and digits.
func lowerEq(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i]|forceLower != lower[i] {
			return false
		}
	}
	return true
}

// parseHTMLOpenTag parses an open tag at s[i:],
// returning the tag name and the index just past the tag.
func parseHTMLOpenTag(s string, i int) (name string, end int, ok bool) {
	if i >= len(s) || s[i] != '<' {
		return "", 0, false
	}
	name, j, ok := parseTagName(s, i+1)
	if !ok {
		return "", 0, false
	}

	// zero or more attributes
	for {
		if j >= len(s) || s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '/' && s[j] != '>' {
			return "", 0, false
		}
		k, ok := parseAttr(s, skipSpace(s, j))
		if !ok {
			break
		}
		j = k
	}
	j = skipSpace(s, j)
	if j < len(s) && s[j] == '/' {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return "", 0, false
	}
	return name, j + 1, true
}

// parseHTMLClosingTag parses a closing tag at s[i:],
// returning the tag name and the index just past the tag.
func parseHTMLClosingTag(s string, i int) (name string, end int, ok bool) {
	if i+2 >= len(s) || s[i] != '<' || s[i+1] != '/' {
		return "", 0, false
	}
	name, j, ok := parseTagName(s, i+2)
	if !ok {
		return "", 0, false
	}
	j = skipSpace(s, j)
	if j >= len(s) || s[j] != '>' {
		return "", 0, false
	}
	return name, j + 1, true
}

// parseTagName parses a tag name at s[start:]:
// an ASCII letter followed by letters, digits, or hyphens.
func parseTagName(s string, start int) (tag string, end int, ok bool) {
	if start >= len(s) || !isLetter(s[start]) {
		return "", 0, false
	}
	end = start + 1
	for end < len(s) && isLDH(s[end]) {
		end++
	}
	return s[start:end], end, true
}

func isLDH(c byte) bool {
	return isLetterDigit(c) || c == '-'
}

// parseAttr parses an attribute, name or name=value, at s[start:].
func parseAttr(s string, start int) (end int, ok bool) {
	if start >= len(s) || !isLetter(s[start]) && s[start] != '_' && s[start] != ':' {
		return 0, false
	}
	end = start + 1
	for end < len(s) && (isLDH(s[end]) || s[end] == '_' || s[end] == '.' || s[end] == ':') {
		end++
	}
	if e, ok := parseAttrValueSpec(s, end); ok {
		end = e
	}
	return end, true
}

// parseAttrValueSpec parses =value at s[start:], allowing surrounding space.
func parseAttrValueSpec(s string, start int) (end int, ok bool) {
	end = skipSpace(s, start)
	if end >= len(s) || s[end] != '=' {
		return 0, false
	}
	end = skipSpace(s, end+1)
	if end < len(s) && (s[end] == '\'' || s[end] == '"') {
		i := strings.IndexByte(s[end+1:], s[end])
		if i < 0 {
			return 0, false
		}
		return end + 1 + i + 1, true
	}
	i := end
	for i < len(s) && !strings.ContainsRune(" \t\n\"'=<>`", rune(s[i])) {
		i++
	}
	if i == end {
		return 0, false
	}
	return i, true
}

// htmlTags lists the block-level tags that start an HTML block.
var htmlTags = []string{
	"address",
	"article",
	"aside",
	"base",
	"basefont",
	"blockquote",
	"body",
	"caption",
	"center",
	"col",
	"colgroup",
	"dd",
	"details",
	"dialog",
	"dir",
	"div",
	"dl",
	"dt",
	"fieldset",
	"figcaption",
	"figure",
	"footer",
	"form",
	"frame",
	"frameset",
	"h1",
	"h2",
	"h3",
	"h4",
	"h5",
	"h6",
	"head",
	"header",
	"hr",
	"html",
	"iframe",
	"legend",
	"li",
	"link",
	"main",
	"menu",
	"menuitem",
	"nav",
	"noframes",
	"ol",
	"optgroup",
	"option",
	"p",
	"param",
	"search",
	"section",
	"summary",
	"table",
	"tbody",
	"td",
	"tfoot",
	"th",
	"thead",
	"title",
	"tr",
	"track",
	"ul",
}
