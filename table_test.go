// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "testing"

var tableCountTests = []struct {
	row string
	n   int
}{
	{"|", 1},
	{"|x|", 1},
	{"||", 1},
	{"| |", 1},
	{"| | |", 2},
	{"| | Foo | Bar |", 3},
	{"|          | Foo      | Bar      |", 3},
	{"", 1},
	{"|a|b", 2},
	{"|a| ", 1},
	{" |b", 1},
	{"a|b", 2},
	{`x\|y`, 1},
	{`x\\|y`, 1},
	{`x\\\|y`, 1},
	{`x\\\\|y`, 1},
	{`x\\\\\|y`, 1},
	{`| 0\|1\\|2\\\|3\\\\|4\\\\\|5\\\\\\|6\\\\\\\|7\\\\\\\\|8  |`, 1},
}

func TestTableCount(t *testing.T) {
	for _, tt := range tableCountTests {
		n := tableCount(tableTrimOuter(tt.row))
		if n != tt.n {
			t.Errorf("tableCount(%#q) = %d, want %d", tt.row, n, tt.n)
		}
	}
}

func TestTablePaddedCell(t *testing.T) {
	testCases := []struct {
		raw   string
		align Align
		w     int

		want string
	}{
		{"foo", AlignCenter, 8, "  foo   "},
		{"foo", AlignCenter, 6, " foo  "},
		{"foo", AlignCenter, 5, " foo "},
		{"foo", AlignCenter, 4, "foo "},
		{"foo", AlignCenter, 3, "foo"},

		{"foo", AlignLeft, 8, "foo     "},
		{"foo", AlignRight, 8, "     foo"},
		{"foo", AlignDefault, 8, "foo     "},

		{"foo", AlignLeft, 6, "foo   "},
		{"foo", AlignRight, 6, "   foo"},
		{"foo", AlignDefault, 6, "foo   "},

		{"foo", AlignLeft, 5, "foo  "},
		{"foo", AlignRight, 5, "  foo"},
		{"foo", AlignDefault, 5, "foo  "},

		{"foo", AlignLeft, 4, "foo "},
		{"foo", AlignRight, 4, " foo"},
		{"foo", AlignDefault, 4, "foo "},

		{"foo", AlignLeft, 3, "foo"},
		{"foo", AlignRight, 3, "foo"},
		{"foo", AlignDefault, 3, "foo"},
	}

	for _, tc := range testCases {
		in := tc.raw
		a := tc.align
		w := tc.w
		want := tc.want
		if h := paddedCell(in, a, w); h != want {
			t.Errorf("\npaddedCell(%s, %v, %d)\n have %q\n want %q", in, a, w, h, want)
		}
	}
}

func TestTableAlignMarker(t *testing.T) {
	for _, tt := range []struct {
		a    Align
		w    int
		want string
	}{
		{AlignDefault, 1, "---"},
		{AlignLeft, 3, ":--"},
		{AlignCenter, 3, ":-:"},
		{AlignRight, 5, "----:"},
		{AlignCenter, 6, ":----:"},
	} {
		if m := alignMarker(tt.a, tt.w); m != tt.want {
			t.Errorf("alignMarker(%v, %d) = %q, want %q", tt.a, tt.w, m, tt.want)
		}
	}
}

func TestTableDisplayWidth(t *testing.T) {
	for s, want := range map[string]int{
		"":      0,
		"abc":   3,
		"héllo": 5,
		"日本":    4,
		"ｆｕｌｌ":  8,
	} {
		if n := displayWidth(s); n != want {
			t.Errorf("displayWidth(%q) = %d, want %d", s, n, want)
		}
	}
	if s := paddedCell("日本", AlignRight, 6); s != "  日本" {
		t.Errorf("paddedCell(日本, right, 6) = %q", s)
	}
}
