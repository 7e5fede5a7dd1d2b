// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// A Link is an [Inline] representing a hyperlink.
//
// A link written in reference style, [text][id],
// keeps its label in RefID and prints the same way,
// with a matching definition at the end of the document.
type Link struct {
	Inner Inlines
	URL   string
	Title string
	RefID string // reference label, or "" for an inline link
	Auto  bool   // written as an autolink, <url>
}

// An Image is an [Inline] representing an image.
// Inner holds the alternate text.
type Image struct {
	Inner Inlines
	URL   string
	Title string
	RefID string
}

// LinkStyle selects how links without a reference label print as Markdown.
type LinkStyle int

const (
	// LinkInline prints [text](url "title").
	LinkInline LinkStyle = iota
	// LinkReferenced prints [text][n] and a numbered definition
	// at the end of the document.
	LinkReferenced
)

// A linkDef is a reference definition printed at the end of a document.
type linkDef struct {
	label string
	url   string
	title string
}

func (*Link) Inline() {}

func (x *Link) printHTML(p *printer) {
	p.html(`<a href="`, htmlQuoteEscaper.Replace(x.URL), `"`)
	if x.Title != "" {
		p.html(` title="`, htmlQuoteEscaper.Replace(x.Title), `"`)
	}
	p.html(`>`)
	x.Inner.printHTML(p)
	p.html(`</a>`)
}

func (x *Link) printMarkdown(p *printer) {
	if x.Auto && x.RefID == "" && isAutoLinkable(x) {
		p.md("<", x.URL, ">")
		return
	}
	p.md("[")
	x.Inner.printMarkdown(p)
	p.md("]")
	printLinkTarget(p, x.URL, x.Title, x.RefID)
}

func (x *Link) printText(p *printer) {
	x.Inner.printText(p)
}

// isAutoLinkable reports whether x can print as <url>.
func isAutoLinkable(x *Link) bool {
	if len(x.Inner) != 1 || x.Title != "" || strings.ContainsAny(x.URL, " <>") {
		return false
	}
	pl, ok := x.Inner[0].(*Plain)
	return ok && (pl.Text == x.URL || "mailto:"+pl.Text == x.URL)
}

// printLinkTarget prints the part of a link or image after its text:
// either (url "title") or [id] with the definition recorded for the end of the document.
func printLinkTarget(p *printer, url, title, ref string) {
	if ref == "" && p.cfg.LinkStyle == LinkReferenced {
		ref = p.refFor(url, title)
	}
	if ref != "" {
		key := normalizeLabel(ref)
		if !p.links[key] {
			p.links[key] = true
			p.linklist = append(p.linklist, &linkDef{label: ref, url: url, title: title})
		}
		p.md("[", ref, "]")
		return
	}
	p.md("(", markdownDest(url))
	if title != "" {
		p.md(` "`, mdTitleEscaper.Replace(title), `"`)
	}
	p.md(")")
}

// refFor returns the numbered label used for url and title
// in [LinkReferenced] style.
func (p *printer) refFor(url, title string) string {
	for _, d := range p.linklist {
		if d.url == url && d.title == title {
			return d.label
		}
	}
	n := len(p.linklist) + 1
	for p.links[strconv.Itoa(n)] {
		n++
	}
	return strconv.Itoa(n)
}

// markdownDest returns url formatted as a Markdown link destination.
func markdownDest(url string) string {
	if url == "" || strings.ContainsAny(url, " \t") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(url) + ">"
	}
	return mdLinkEscaper.Replace(url)
}

// printLinkDefs prints the reference definitions used by the document,
// in order of first use.
func printLinkDefs(p *printer) {
	if len(p.linklist) == 0 {
		return
	}
	if p.buf.Len() > 0 {
		p.nl()
		p.nl()
	}
	for i, d := range p.linklist {
		if i > 0 {
			p.nl()
		}
		p.md("[", d.label, "]: ", markdownDest(d.url))
		if d.title != "" {
			p.md(` "`, mdTitleEscaper.Replace(d.title), `"`)
		}
	}
}

func (*Image) Inline() {}

func (x *Image) printHTML(p *printer) {
	p.html(`<img src="`, htmlQuoteEscaper.Replace(x.URL), `" alt="`)
	alt := p.sub()
	alt.writeMode = writeText
	x.Inner.printText(alt)
	p.html(htmlQuoteEscaper.Replace(alt.buf.String()), `"`)
	if x.Title != "" {
		p.html(` title="`, htmlQuoteEscaper.Replace(x.Title), `"`)
	}
	p.html(` />`)
}

func (x *Image) printMarkdown(p *printer) {
	p.md("![")
	x.Inner.printMarkdown(p)
	p.md("]")
	printLinkTarget(p, x.URL, x.Title, x.RefID)
}

func (x *Image) printText(p *printer) {
	x.Inner.printText(p)
}

// closeBracket handles a ] at s[i], turning the innermost open
// bracket into a link or image if a link target follows.
func (ip *inlineParser) closeBracket(i int) (int, bool) {
	n := len(ip.brackets)
	if n == 0 {
		return 0, false
	}
	b := ip.brackets[n-1]
	ip.brackets = ip.brackets[:n-1]
	inactive := !b.image && n-1 < ip.linkFloor
	ip.linkFloor = min(ip.linkFloor, n-1)
	if inactive {
		return 0, false
	}
	url, title, ref, end, ok := ip.linkTail(b, i)
	if !ok {
		return 0, false
	}
	ip.flush(i)
	inner := mergePlain(ip.emph(append([]Inline(nil), ip.list[b.pos+1:]...)))
	ip.list = ip.list[:b.pos]
	var x Inline
	if b.image {
		x = &Image{Inner: inner, URL: url, Title: title, RefID: ref}
	} else {
		x = &Link{Inner: inner, URL: url, Title: title, RefID: ref}
		ip.linkFloor = len(ip.brackets)
	}
	ip.list = append(ip.list, x)
	return end, true
}

// linkTail parses the link target following the ] at s[i]:
// an inline (dest "title"), a full reference [id],
// a collapsed reference [], or a shortcut reference.
func (ip *inlineParser) linkTail(b *bracket, i int) (url, title, ref string, end int, ok bool) {
	s := ip.s
	j := i + 1
	if j < len(s) && s[j] == '(' {
		if url, title, end, ok := parseInlineTarget(s, j); ok {
			return url, title, "", end, true
		}
	}
	text := s[b.textStart:i]
	if j < len(s) && s[j] == '[' {
		if j+1 < len(s) && s[j+1] == ']' {
			if l := ip.ps.link(text); l != nil {
				return l.URL, l.Title, text, j + 2, true
			}
			return "", "", "", 0, false
		}
		if label, end, ok := parseLinkLabel(s, j); ok {
			if l := ip.ps.link(label); l != nil {
				return l.URL, l.Title, label, end, true
			}
			return "", "", "", 0, false
		}
	}
	if l := ip.ps.link(text); l != nil {
		return l.URL, l.Title, text, i + 1, true
	}
	return "", "", "", 0, false
}

// parseInlineTarget parses (dest "title") at s[i:].
func parseInlineTarget(s string, i int) (url, title string, end int, ok bool) {
	j := skipSpace(s, i+1)
	if j < len(s) && s[j] == ')' {
		return "", "", j + 1, true
	}
	url, j, ok = parseLinkDest(s, j)
	if !ok {
		return "", "", 0, false
	}
	k := skipSpace(s, j)
	if k > j {
		if t, _, e, ok := parseLinkTitle(s, k); ok {
			title = t
			k = skipSpace(s, e)
		}
	}
	if k >= len(s) || s[k] != ')' {
		return "", "", 0, false
	}
	return url, title, k + 1, true
}

// parseLinkRefDef parses and records a link reference definition
// at the start of s, if any.
// It returns the length of the definition and whether one was found.
func (ps *parseState) parseLinkRefDef(s string) (int, bool) {
	i := skipSpace(s, 0)
	label, i, ok := parseLinkLabel(s, i)
	if !ok || i >= len(s) || s[i] != ':' || strings.HasPrefix(label, "^") {
		return 0, false
	}
	i = skipSpace(s, i+1)
	dest, i, ok := parseLinkDest(s, i)
	if !ok {
		return 0, false
	}
	moved := false
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		moved = true
		i++
	}

	// Take title if present and doesn't break parse.
	j := i
	if j >= len(s) || s[j] == '\n' {
		moved = true
		if j < len(s) {
			j++
		}
	}
	var title string
	if moved {
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if t, _, j, ok := parseLinkTitle(s, j); ok {
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j >= len(s) || s[j] == '\n' {
				i = j
				title = t
			}
		}
	}

	// Must end line.
	if i < len(s) && s[i] != '\n' {
		return 0, false
	}
	if i < len(s) {
		i++
	}

	key := normalizeLabel(label)
	if key != "" && ps.links[key] == nil {
		ps.links[key] = &Link{URL: dest, Title: title, RefID: label}
	}
	return i, true
}

// link returns the definition for label, or nil.
// Labels longer than 999 bytes never match.
func (ps *parseState) link(label string) *Link {
	if len(ps.links) == 0 || len(label) > 999 {
		return nil
	}
	key := normalizeLabel(label)
	if key == "" {
		return nil
	}
	return ps.links[key]
}

// parseLinkTitle parses a link title at s[i:], returning the title,
// the terminating character (one of " ' or )),
// the index just past the title, and whether a title was found.
func parseLinkTitle(s string, i int) (title string, char byte, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		for j := i + 1; j < len(s); j++ {
			if s[j] == want {
				return mdUnescape(s[i+1 : j]), want, j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
			if s[j] == '\\' && j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, 0, false
}

// parseLinkLabel parses a link label [label] at s[i:], returning
// the label, the index just past the label, and whether a label was found.
// Labels hold at least one non-space character, no unescaped brackets,
// and at most 999 characters.
func parseLinkLabel(s string, i int) (string, int, bool) {
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	for j := i + 1; j < len(s); j++ {
		if s[j] == ']' {
			if j-(i+1) > 999 {
				break
			}
			if label := trimSpaceTabNewline(s[i+1 : j]); label != "" {
				return label, j + 1, true
			}
			break
		}
		if s[j] == '[' {
			break
		}
		if s[j] == '\\' && j+1 < len(s) {
			j++
		}
	}
	return "", 0, false
}

// normalizeLabel returns the normalized label for s, for uniquely identifying that label:
// case-folded, trimmed, with internal runs of white space collapsed to one space.
func normalizeLabel(s string) string {
	if strings.Contains(s, "[") || strings.Contains(s, "]") {
		// Labels cannot have [ ] so avoid the work of translating.
		// This matters for inputs like [[[[[[[[[[a]]]]]]]]]].
		return ""
	}
	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a link destination at s[i:], returning
// the destination, the index just past it, and whether one was found.
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	// <...> with no line endings or unescaped < or >.
	if s[i] == '<' {
		for j := i + 1; j < len(s); j++ {
			if s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '\\' {
				j++
			}
		}
		return "", 0, false
	}

	// A run without spaces or control characters,
	// with parentheses escaped or balanced.
	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// Stop on deep nesting to avoid quadratic inputs.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case '\\':
			if j+1 < len(s) {
				if s[j+1] == ' ' || s[j+1] == '\t' {
					return "", 0, false
				}
				j++
			}
		case ' ', '\t', '\n':
			break Loop
		}
	}
	if j == i || depth != 0 {
		return "", 0, false
	}
	return mdUnescape(s[i:j]), j, true
}

// parseAutoLink parses an autolink, <scheme:rest> or <user@domain>, at s[i:].
func parseAutoLink(s string, i int) (*Link, int, bool) {
	end := strings.IndexByte(s[i:], '>')
	if end < 0 {
		return nil, 0, false
	}
	end += i
	text := s[i+1 : end]
	if text == "" || strings.ContainsAny(text, " \t\n<") {
		return nil, 0, false
	}

	// scheme:rest with a 2 to 32 character scheme.
	if colon := strings.IndexByte(text, ':'); colon >= 2 && colon <= 32 && isLetter(text[0]) {
		ok := true
		for k := 1; k < colon; k++ {
			if c := text[k]; !isLetterDigit(c) && c != '+' && c != '.' && c != '-' {
				ok = false
				break
			}
		}
		if ok {
			return &Link{Inner: Inlines{&Plain{text}}, URL: text, Auto: true}, end + 1, true
		}
	}

	// user@domain.
	if at := strings.IndexByte(text, '@'); at > 0 && at < len(text)-1 && strings.Count(text, "@") == 1 {
		for k := 0; k < len(text); k++ {
			if c := text[k]; !isLetterDigit(c) && !strings.ContainsRune(".!#$%&'*+/=?^_`{|}~-@", rune(c)) {
				return nil, 0, false
			}
		}
		return &Link{Inner: Inlines{&Plain{text}}, URL: "mailto:" + text, Auto: true}, end + 1, true
	}
	return nil, 0, false
}
