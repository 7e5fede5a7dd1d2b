// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// isPunct reports whether c is Markdown punctuation.
func isPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetterDigit reports whether c is an ASCII letter or digit.
func isLetterDigit(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// isUnicodeSpace reports whether r is a Unicode space as defined by Markdown.
// This is not the same as unicode.IsSpace.
func isUnicodeSpace(r rune) bool {
	if r < 0x80 {
		return r == ' ' || r == '\t' || r == '\f' || r == '\n'
	}
	return unicode.In(r, unicode.Zs)
}

// isUnicodePunct reports whether r is Unicode punctuation as defined by Markdown.
// This is not the same as unicode.Punct; it also includes unicode.Symbol.
func isUnicodePunct(r rune) bool {
	if r < 0x80 {
		return isPunct(byte(r))
	}
	return unicode.In(r, unicode.Punct, unicode.Symbol)
}

// skipSpace returns i + the number of spaces, tabs, and newlines
// at the start of s[i:].
func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

// htmlEscaper escapes text for use in HTML element content.
var htmlEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
)

// htmlQuoteEscaper escapes text for use in a double-quoted HTML attribute.
var htmlQuoteEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
)

// mdLinkEscaper escapes symbols that have meaning inside a link target.
var mdLinkEscaper = strings.NewReplacer(
	`(`, `\(`,
	`)`, `\)`,
	`<`, `\<`,
	`>`, `\>`,
)

// mdTitleEscaper escapes a link title for printing inside double quotes.
var mdTitleEscaper = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
)

// mdUnescape returns the Markdown unescaping of s:
// backslash escapes are removed and entity references decoded.
func mdUnescape(s string) string {
	if !strings.Contains(s, `\`) && !strings.Contains(s, `&`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && isPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '&' {
			if tok, n := entity(s[i:]); n > 0 {
				b.WriteString(tok)
				i += n - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// entity decodes the character reference at the start of s,
// returning the decoded text and the length of the reference.
// If s does not begin with a valid reference, entity returns "", 0.
func entity(s string) (string, int) {
	if len(s) < 3 || s[0] != '&' {
		return "", 0
	}
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 32 {
		return "", 0
	}
	name := s[1:end]
	if name[0] == '#' {
		if len(name) < 2 {
			return "", 0
		}
		digits := name[1:]
		if digits[0] == 'x' || digits[0] == 'X' {
			digits = digits[1:]
			if len(digits) == 0 {
				return "", 0
			}
			for i := 0; i < len(digits); i++ {
				if !isHexDigit(digits[i]) {
					return "", 0
				}
			}
		} else {
			for i := 0; i < len(digits); i++ {
				if !isDigit(digits[i]) {
					return "", 0
				}
			}
		}
	} else {
		for i := 0; i < len(name); i++ {
			if !isLetterDigit(name[i]) {
				return "", 0
			}
		}
	}
	ref := s[:end+1]
	dec := html.UnescapeString(ref)
	if dec == ref {
		return "", 0
	}
	return dec, end + 1
}

// isHexDigit reports whether c is an ASCII hexadecimal digit.
func isHexDigit(c byte) bool {
	return 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' || '0' <= c && c <= '9'
}

// escapeMarkdown escapes s for printing as inline Markdown text
// such that reparsing yields s again as plain text.
// If lineStart is true, s begins a line of output and
// block-level markers are escaped too.
func escapeMarkdown(s string, lineStart bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '*', '`', '[', ']':
			b.WriteByte('\\')
		case '_':
			if i == 0 || i+1 == len(s) || !isLetterDigit(s[i-1]) || !isLetterDigit(s[i+1]) {
				b.WriteByte('\\')
			}
		case '~':
			if i+1 < len(s) && s[i+1] == '~' || i > 0 && s[i-1] == '~' {
				b.WriteByte('\\')
			}
		case '<':
			if i+1 < len(s) && (isLetter(s[i+1]) || s[i+1] == '/' || s[i+1] == '!' || s[i+1] == '?') {
				b.WriteByte('\\')
			}
		case '&':
			if _, n := entity(s[i:]); n > 0 {
				b.WriteByte('\\')
			}
		case '|':
			// Escaped only inside table cells, by the table printer.
		}
		b.WriteByte(c)
	}
	out := b.String()
	if lineStart {
		out = escapeLineStart(out)
	}
	return out
}

// escapeLineStart escapes s if, at the start of a line,
// it would be mistaken for a block marker.
func escapeLineStart(s string) string {
	t := strings.TrimLeft(s, " ")
	lead := s[:len(s)-len(t)]
	if t == "" {
		return s
	}
	switch t[0] {
	case '#':
		n := 0
		for n < len(t) && t[n] == '#' {
			n++
		}
		if n <= 6 && (n == len(t) || t[n] == ' ' || t[n] == '\t') {
			return lead + `\` + t
		}
	case '>':
		return lead + `\` + t
	case '-', '+', '=':
		if len(t) == 1 || t[1] == ' ' || t[1] == '\t' || t[0] != '+' && strings.Trim(t, string(t[0])) == "" {
			return lead + `\` + t
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := 0
		for n < len(t) && n < 10 && isDigit(t[n]) {
			n++
		}
		if n < len(t) && (t[n] == '.' || t[n] == ')') && (n+1 == len(t) || t[n+1] == ' ' || t[n+1] == '\t') {
			return lead + t[:n] + `\` + t[n:]
		}
	}
	return s
}
