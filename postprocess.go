// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"regexp"
	"strings"
)

// A postStep is one text-level normalization of rendered Markdown.
// Steps run in order over the lines of the document;
// a step that finds nothing to change returns its input.
type postStep struct {
	name string
	fix  func(lines []string) []string
}

var postSteps = []postStep{
	{"footnote-escapes", unescapeFootnoteRefs},
	{"headings", normalizeHeadings},
	{"blank-lines", collapseBlankLines},
	{"definitions", rehomeDefinitions},
	{"trailing-space", trimTrailingSpace},
}

// PostProcess normalizes rendered Markdown text.
// It is applied by [Converter.HTMLToMarkdown] and [Converter.Format]
// after the document tree prints.
func PostProcess(md string) string {
	lines := strings.Split(md, "\n")
	for _, step := range postSteps {
		lines = step.fix(lines)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// codeLines reports, for each line, whether it belongs to a fenced
// code block, fences included. Fences are found after any
// block quote and list markers at the start of the line.
func codeLines(lines []string) []bool {
	code := make([]bool, len(lines))
	fence := ""
	for i, s := range lines {
		t := trimSpaceTab(s)
		for strings.HasPrefix(t, ">") {
			t = trimLeftSpaceTab(t[1:])
		}
		if fence != "" {
			code[i] = true
			if isFenceClose(t, fence) {
				fence = ""
			}
			continue
		}
		if m, ok := listMarker(line{text: t}); ok {
			t = m.rest.trimSpaceString()
		}
		if f, _ := fenceOpen(t); f != "" {
			fence = f
			code[i] = true
		}
	}
	return code
}

// outsideCodeSpans applies f to the parts of s outside backtick code spans.
func outsideCodeSpans(s string, f func(string) string) string {
	if !strings.Contains(s, "`") {
		return f(s)
	}
	var b strings.Builder
	for s != "" {
		i := strings.IndexByte(s, '`')
		if i < 0 {
			b.WriteString(f(s))
			break
		}
		b.WriteString(f(s[:i]))
		n := 0
		for i+n < len(s) && s[i+n] == '`' {
			n++
		}
		ticks := s[i : i+n]
		rest := s[i+n:]
		j := strings.Index(rest, ticks)
		for j >= 0 && j+n < len(rest) && rest[j+n] == '`' {
			k := strings.Index(rest[j+n:], ticks)
			if k < 0 {
				j = -1
				break
			}
			j += n + k
		}
		if j < 0 {
			b.WriteString(ticks)
			s = rest
			continue
		}
		b.WriteString(s[i : i+n+j+n])
		s = rest[j+n:]
	}
	return b.String()
}

var escapedFootnoteRef = regexp.MustCompile(`\\\[\^([^\]\\\s]+)\\?\]`)

// unescapeFootnoteRefs turns \[^id\] back into [^id].
func unescapeFootnoteRefs(lines []string) []string {
	code := codeLines(lines)
	for i, s := range lines {
		if code[i] || !strings.Contains(s, `\[^`) {
			continue
		}
		lines[i] = outsideCodeSpans(s, func(s string) string {
			return escapedFootnoteRef.ReplaceAllString(s, "[^$1]")
		})
	}
	return lines
}

var (
	doubleHeading = regexp.MustCompile(`^(#{1,6})[ \t]+#{1,6}[ \t]+(.*)$`)
	setextLine    = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
)

// normalizeHeadings collapses doubled heading markers,
// turns a one-line paragraph underlined with === or --- into an ATX heading,
// and drops underline lines that have nothing to underline.
// A bare --- line is left alone: it is a thematic break.
func normalizeHeadings(lines []string) []string {
	code := codeLines(lines)
	var out []string
	for i, s := range lines {
		if code[i] {
			out = append(out, s)
			continue
		}
		if m := doubleHeading.FindStringSubmatch(s); m != nil {
			s = m[1] + " " + m[2]
		}
		if m := setextLine.FindStringSubmatch(s); m != nil {
			n := len(out)
			if n > 0 && isPlainTextLine(out[n-1]) && (n == 1 || trimSpaceTab(out[n-2]) == "") {
				mark := "# "
				if m[1][0] == '-' {
					mark = "## "
				}
				out[n-1] = mark + trimSpaceTab(out[n-1])
				continue
			}
			if m[1][0] == '=' {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// isPlainTextLine reports whether s is a line of paragraph text
// at the left margin, not the start of some other block.
func isPlainTextLine(s string) bool {
	if s == "" || s[0] == ' ' || s[0] == '\t' {
		return false
	}
	t := trimSpaceTab(s)
	if t == "" {
		return false
	}
	if _, ok := listMarker(line{text: s}); ok {
		return false
	}
	if f, _ := fenceOpen(t); f != "" {
		return false
	}
	switch t[0] {
	case '>', '|', '#', '<', '[':
		return false
	}
	return !isThematicBreak(t)
}

// collapseBlankLines reduces each run of blank lines to a single one.
func collapseBlankLines(lines []string) []string {
	code := codeLines(lines)
	var out []string
	blank := false
	for i, s := range lines {
		if !code[i] && trimSpaceTab(s) == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, s)
	}
	return out
}

var (
	linkDefLine     = regexp.MustCompile(`^\[([^\]\[^][^\]\[]*)\]:[ \t]*\S`)
	footnoteDefLine = regexp.MustCompile(`^\[\^([^\]\s]+)\]:`)
	footnoteRef     = regexp.MustCompile(`\[\^([^\]\s]+)\]`)
	bracketLabel    = regexp.MustCompile(`\[([^\[\]]+)\]`)
)

// refLabels returns the labels that text uses as link references:
// the label of [text][label], [label][], or a shortcut [label].
// The text of an inline link [text](dest) is not a reference.
func refLabels(text string) []string {
	var labels []string
	prevEnd := -1
	for _, m := range bracketLabel.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		full := start == prevEnd
		prevEnd = end
		if !full && end < len(text) {
			if text[end] == '(' || text[end] == '[' && !strings.HasPrefix(text[end:], "[]") {
				continue
			}
		}
		labels = append(labels, text[m[2]:m[3]])
	}
	return labels
}

// A definition is a link reference or footnote definition
// lifted out of the body of a document.
type definition struct {
	label string
	lines []string
}

// rehomeDefinitions moves link reference definitions and footnote
// definitions to the end of the document: first the link definitions
// that the body uses, then the footnote definitions that the body
// (or another used footnote) references, each in order of first use
// and each label once.
func rehomeDefinitions(lines []string) []string {
	code := codeLines(lines)
	var body []string
	var links, notes []definition
	for i := 0; i < len(lines); i++ {
		s := lines[i]
		if code[i] {
			body = append(body, s)
			continue
		}
		if m := footnoteDefLine.FindStringSubmatch(s); m != nil {
			def := definition{label: m[1], lines: []string{s}}
			// Continuation lines are indented, possibly after blank lines.
			j := i + 1
			for j < len(lines) {
				if strings.HasPrefix(lines[j], "    ") || strings.HasPrefix(lines[j], "\t") {
					def.lines = append(def.lines, lines[j])
					j++
					continue
				}
				k := j
				for k < len(lines) && trimSpaceTab(lines[k]) == "" {
					k++
				}
				if k > j && k < len(lines) && (strings.HasPrefix(lines[k], "    ") || strings.HasPrefix(lines[k], "\t")) {
					def.lines = append(def.lines, lines[j:k]...)
					j = k
					continue
				}
				break
			}
			notes = append(notes, def)
			i = j - 1
			continue
		}
		if m := linkDefLine.FindStringSubmatch(s); m != nil {
			links = append(links, definition{label: m[1], lines: []string{s}})
			continue
		}
		// Lifting a definition out can leave two blank lines together.
		if trimSpaceTab(s) == "" && (len(body) == 0 || trimSpaceTab(body[len(body)-1]) == "") {
			continue
		}
		body = append(body, s)
	}
	if len(links) == 0 && len(notes) == 0 {
		return lines
	}

	// Footnotes referenced from the body come first,
	// then those referenced only from other footnotes.
	text := strings.Join(body, "\n")
	var usedNotes []definition
	noteSeen := make(map[string]bool)
	addRefs := func(text string) {
		for _, m := range footnoteRef.FindAllStringSubmatch(text, -1) {
			key := normalizeLabel(m[1])
			if noteSeen[key] {
				continue
			}
			for _, d := range notes {
				if normalizeLabel(d.label) == key {
					noteSeen[key] = true
					usedNotes = append(usedNotes, d)
					break
				}
			}
		}
	}
	addRefs(text)
	all := []string{text}
	for i := 0; i < len(usedNotes); i++ {
		t := strings.Join(usedNotes[i].lines, "\n")
		t = t[len(footnoteDefLine.FindString(t)):]
		all = append(all, t)
		addRefs(t)
	}

	var used []definition
	seen := make(map[string]bool)
	for _, label := range refLabels(strings.Join(all, "\n")) {
		key := normalizeLabel(label)
		if seen[key] {
			continue
		}
		for _, d := range links {
			if normalizeLabel(d.label) == key {
				seen[key] = true
				used = append(used, d)
				break
			}
		}
	}

	for len(body) > 0 && trimSpaceTab(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	out := body
	if len(used) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		for _, d := range used {
			out = append(out, d.lines...)
		}
	}
	if len(usedNotes) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		for _, d := range usedNotes {
			out = append(out, d.lines...)
		}
	}
	return out
}

// trimTrailingSpace removes trailing spaces and tabs
// from every line outside fenced code.
func trimTrailingSpace(lines []string) []string {
	code := codeLines(lines)
	for i, s := range lines {
		if !code[i] {
			lines[i] = trimRightSpaceTab(s)
		}
	}
	return lines
}
