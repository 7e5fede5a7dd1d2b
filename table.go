// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"

	"golang.org/x/text/width"
)

// An Align is the alignment of a table column.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// A Table is a [Block] representing a table.
// The alignment of each column is the alignment of
// the corresponding cell in the header row.
type Table struct {
	Position
	Header *TableRow
	Rows   []*TableRow
}

// A TableRow is a row of a [Table].
type TableRow struct {
	Cells []*TableCell
}

// A TableCell is a cell of a [TableRow].
type TableCell struct {
	Align Align
	Inner Inlines
}

// align returns the alignment of column i.
func (t *Table) align(i int) Align {
	if t.Header == nil || i >= len(t.Header.Cells) {
		return AlignDefault
	}
	return t.Header.Cells[i].Align
}

// columns returns the number of columns in t.
func (t *Table) columns() int {
	n := 0
	if t.Header != nil {
		n = len(t.Header.Cells)
	}
	for _, r := range t.Rows {
		n = max(n, len(r.Cells))
	}
	return n
}

func (t *Table) printHTML(p *printer) {
	p.html("<table>\n")
	if t.Header != nil {
		p.html("<thead>\n")
		t.printRowHTML(p, t.Header, "th")
		p.html("</thead>\n")
	}
	if len(t.Rows) > 0 {
		p.html("<tbody>\n")
		for _, row := range t.Rows {
			t.printRowHTML(p, row, "td")
		}
		p.html("</tbody>\n")
	}
	p.html("</table>\n")
}

func (t *Table) printRowHTML(p *printer, row *TableRow, tag string) {
	p.html("<tr>\n")
	for i, cell := range row.Cells {
		p.html("<", tag)
		if a := t.align(i); a != AlignDefault {
			p.html(` style="text-align:`, a.String(), `"`)
		}
		p.html(">")
		cell.Inner.printHTML(p)
		p.html("</", tag, ">\n")
	}
	p.html("</tr>\n")
}

func (t *Table) printMarkdown(p *printer) {
	ncol := t.columns()
	if ncol == 0 {
		return
	}
	render := func(row *TableRow) []string {
		out := make([]string, ncol)
		if row == nil {
			return out
		}
		for i, cell := range row.Cells {
			if i >= ncol {
				break
			}
			q := p.sub()
			q.inTable = true
			q.oneLine = true
			cell.Inner.printMarkdown(q)
			p.merge(q)
			out[i] = strings.TrimSpace(q.buf.String())
		}
		return out
	}
	header := render(t.Header)
	var rows [][]string
	for _, r := range t.Rows {
		rows = append(rows, render(r))
	}

	widths := make([]int, ncol)
	for i := range widths {
		widths[i] = 3
		if p.cfg.PadTables {
			widths[i] = max(widths[i], displayWidth(header[i]))
			for _, r := range rows {
				widths[i] = max(widths[i], displayWidth(r[i]))
			}
		}
	}

	printRow := func(cells []string) {
		p.md("|")
		for i, c := range cells {
			if p.cfg.PadTables {
				c = paddedCell(c, t.align(i), widths[i])
			}
			p.md(" ", c, " |")
		}
	}
	printRow(header)
	p.nl()
	p.md("|")
	for i := range widths {
		p.md(" ", alignMarker(t.align(i), widths[i]), " |")
	}
	for _, r := range rows {
		p.nl()
		printRow(r)
	}
}

// alignMarker returns the separator row marker for a column
// of the given alignment and width (at least 3).
func alignMarker(a Align, w int) string {
	w = max(w, 3)
	switch a {
	case AlignLeft:
		return ":" + strings.Repeat("-", w-1)
	case AlignCenter:
		return ":" + strings.Repeat("-", w-2) + ":"
	case AlignRight:
		return strings.Repeat("-", w-1) + ":"
	}
	return strings.Repeat("-", w)
}

// paddedCell returns raw padded with spaces to display width w,
// positioned according to align.
func paddedCell(raw string, align Align, w int) string {
	n := w - displayWidth(raw)
	if n <= 0 {
		return raw
	}
	switch align {
	case AlignCenter:
		return strings.Repeat(" ", n/2) + raw + strings.Repeat(" ", n-n/2)
	case AlignRight:
		return strings.Repeat(" ", n) + raw
	}
	return raw + strings.Repeat(" ", n)
}

// displayWidth returns the width of s in a monospace display,
// counting East Asian wide and fullwidth characters as two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	i := 0
	for i < len(s) && isTableSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isTableSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

// tableTrimOuter trims surrounding space and the outer pipes from row.
func tableTrimOuter(row string) string {
	row = tableTrimSpace(row)
	if len(row) > 0 && row[0] == '|' {
		row = row[1:]
	}
	if len(row) > 0 && row[len(row)-1] == '|' && (len(row) < 2 || row[len(row)-2] != '\\') {
		row = row[:len(row)-1]
	}
	return row
}

// isTableStart reports whether hdr and delim are the header
// and delimiter rows of a table with matching column counts.
func isTableStart(hdr, delim string) bool {
	if !strings.Contains(hdr, "|") && !strings.Contains(delim, "|") {
		return false
	}
	col := 0
	delim = tableTrimOuter(delim)
	i := 0
	for ; ; col++ {
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i >= len(delim) {
			break
		}
		if delim[i] == ':' {
			i++
		}
		if i >= len(delim) || delim[i] != '-' {
			return false
		}
		i++
		for i < len(delim) && delim[i] == '-' {
			i++
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i < len(delim) {
			if delim[i] != '|' {
				return false
			}
			i++
		}
	}
	return col > 0 && col == tableCount(tableTrimOuter(hdr))
}

// tableCount returns the number of cells in a row
// whose outer pipes have been trimmed.
// A pipe preceded by a backslash does not separate cells.
func tableCount(row string) int {
	col := 1
	for i := 0; i < len(row); i++ {
		if row[i] == '|' && (i == 0 || row[i-1] != '\\') {
			col++
		}
	}
	return col
}

// tableCells splits a row into exactly n cell texts,
// dropping extra cells and adding empty ones as needed.
// Escaped pipes become plain pipes.
func tableCells(row string, n int) []string {
	row = tableTrimOuter(row)
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(row) && len(out) < n; i++ {
		if row[i] == '|' && (i == 0 || row[i-1] != '\\') {
			out = append(out, row[start:i])
			start = i + 1
		}
	}
	if len(out) < n {
		out = append(out, row[start:])
	}
	for len(out) < n {
		out = append(out, "")
	}
	for i, c := range out {
		out[i] = strings.ReplaceAll(tableTrimSpace(c), `\|`, "|")
	}
	return out
}

// tableAlign returns the alignment given by a delimiter row cell.
func tableAlign(cell string) Align {
	cell = tableTrimSpace(cell)
	if cell == "" {
		return AlignDefault
	}
	l := cell[0] == ':'
	r := cell[len(cell)-1] == ':'
	switch {
	case l && r:
		return AlignCenter
	case l:
		return AlignLeft
	case r:
		return AlignRight
	}
	return AlignDefault
}

// table parses the table whose header line is head and
// whose delimiter row is lines[0]. Rows continue up to a
// blank line or the start of another block.
func (ps *parseState) table(head line, lines []line) (Block, int) {
	ncol := tableCount(tableTrimOuter(head.text))
	var aligns []Align
	for _, c := range tableCells(lines[0].text, ncol) {
		aligns = append(aligns, tableAlign(c))
	}
	row := func(s line) *TableRow {
		r := &TableRow{}
		for i, text := range tableCells(s.text, ncol) {
			cell := &TableCell{Align: aligns[i]}
			ps.inline(&cell.Inner, text)
			r.Cells = append(r.Cells, cell)
		}
		return r
	}

	t := &Table{Header: row(head)}
	n := 1
	for n < len(lines) {
		s := lines[n]
		if s.isBlank() || startsBlock(ps, s) || s.trimSpaceString() == "|" {
			break
		}
		t.Rows = append(t.Rows, row(s))
		n++
	}
	t.Position = Position{head.lineno, lines[n-1].lineno}
	return t, n
}
