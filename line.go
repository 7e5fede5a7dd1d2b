// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// A line is a single input line with its trailing newline removed.
// Container blocks strip their markers and hand the remaining
// text of each line to the nested block scan.
type line struct {
	text   string
	lineno int // 1-based line number in the original input

	// spaces counts the leading ' ' bytes of text when counted is set.
	// Nested containers trim the same lines once per level,
	// and the count keeps each trim from rescanning the indentation.
	spaces  int
	counted bool
}

// splitLines splits text into lines, accepting \n, \r\n, and \r as line endings.
// A final line ending does not start an extra empty line.
func splitLines(text string) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	var lines []line
	for i, s := range strings.Split(text, "\n") {
		lines = append(lines, line{text: s, lineno: i + 1, spaces: countSpaces(s), counted: true})
	}
	return lines
}

func countSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func (s line) leadingSpaces() int {
	if s.counted {
		return s.spaces
	}
	return countSpaces(s.text)
}

func (s line) isBlank() bool {
	return trimRightSpaceTab(s.trimSpaceString()) == ""
}

// indent returns the width of the leading white space in s,
// counting tabs as advancing to the next multiple of 4 columns.
func (s line) indent() int {
	col := s.leadingSpaces()
	for i := col; i < len(s.text); i++ {
		switch s.text[i] {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return col
		}
	}
	return col
}

// trimIndent returns s with up to n columns of leading white space removed.
// A tab that straddles column n is replaced by the spaces left over.
func (s line) trimIndent(n int) line {
	if sp := s.leadingSpaces(); n <= sp {
		return line{text: s.text[n:], lineno: s.lineno, spaces: sp - n, counted: true}
	}
	s.counted = false
	col := 0
	for i := 0; i < len(s.text); i++ {
		if col >= n {
			s.text = s.text[i:]
			return s
		}
		switch s.text[i] {
		case ' ':
			col++
		case '\t':
			next := col + 4 - col%4
			if next > n {
				s.text = strings.Repeat(" ", next-n) + s.text[i+1:]
				return s
			}
			col = next
		default:
			s.text = s.text[i:]
			return s
		}
	}
	s.text = ""
	return s
}

// trimSpaceString returns the text of s after its leading white space.
func (s line) trimSpaceString() string {
	return trimLeftSpaceTab(s.text[s.leadingSpaces():])
}

func trimLeftSpaceTab(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func trimRightSpaceTab(s string) string {
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[:j]
}

func trimSpaceTab(s string) string {
	return trimRightSpaceTab(trimLeftSpaceTab(s))
}

func trimSpaceTabNewline(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	s = s[i:]
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[:j]
}
