// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

var rep = strings.Repeat

func repf(f func(int) string, n int) string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = f(i)
	}
	return strings.Join(out, "")
}

// Many cases here derived from cmark-gfm/test/pathological_tests.py.
// An empty out means the input comes back as a single literal paragraph.
// Cases whose full output is unwieldy give a fragment in contains instead.
var bigTests = []struct {
	name     string
	in       string
	out      string
	contains string
}{
	{
		name: "nested strong emph",
		in:   rep("*a **a ", 65000) + "b" + rep(" a** a*", 65000),
		out:  "<p>" + rep("<em>a <strong>a ", 65000) + "b" + rep(" a</strong> a</em>", 65000) + "</p>",
	},
	{name: "many emph closers with no openers", in: rep("a_ ", 65000)},
	{name: "many emph openers with no closers", in: rep("_a ", 65000)},
	{name: "many link closers with no openers", in: rep("a]", 65000)},
	{name: "many link openers with no closers", in: rep("[a", 65000)},
	{name: "mismatched openers and closers", in: rep("*a_ ", 50000)},
	{name: "openers and closers multiple of 3", in: "a**b" + rep("c* ", 50000)},
	{name: "link openers and emph closers", in: rep("[ a_", 50000)},
	{name: "pattern [ (]( repeated", in: rep("[ (](", 80000)},
	{
		name: "pattern ![[]() repeated",
		in:   rep("![[]()", 160000),
		out:  "<p>" + rep(`![<a href=""></a>`, 160000) + "</p>",
	},
	{name: "nested brackets", in: rep("[", 50000) + "a" + rep("]", 50000)},
	{
		name: "nested block quotes",
		in:   rep("> ", 50000) + "a",
		out:  rep("<blockquote>\n", 50000) + "<p>a</p>\n" + rep("</blockquote>\n", 49999) + "</blockquote>",
	},
	{
		name: "deeply nested lists",
		in:   repf(func(x int) string { return rep("  ", x) + "* a\n" }, 4000),
		out:  "<ul>\n" + rep("<li>a\n<ul>\n", 4000-1) + "<li>a</li>\n" + rep("</ul>\n</li>\n", 4000-1) + "</ul>",
	},
	{name: "backticks", in: repf(func(x int) string { return "e" + rep("`", x) }, 5000)},
	{name: "backticks2", in: repf(func(x int) string { return "e" + rep("`", 5000-x) }, 5000)},
	{
		name: "unclosed links A",
		in:   rep("[a](<b", 30000),
		out:  "<p>" + rep("[a](&lt;b", 30000) + "</p>",
	},
	{name: "unclosed links B", in: rep("[a](b", 30000)},
	{
		name: "unclosed <!--",
		in:   "</" + rep(" <!--", 30000),
		out:  "<p>&lt;/" + rep(" &lt;!--", 30000) + "</p>",
	},
	{
		name: "unclosed <?",
		in:   "</" + rep(" <?", 30000),
		out:  "<p>&lt;/" + rep(" &lt;?", 30000) + "</p>",
	},
	{name: "many table rows", in: rep("| a | b |\n", 20000)},
	{
		name: "lazy lines in a block quote",
		in:   "> a\n" + rep("b\n", 50000),
		out:  "<blockquote>\n<p>a\n" + rep("b\n", 49999) + "b</p>\n</blockquote>",
	},
	{
		name: "lazy lines in a list item",
		in:   "* a\n" + rep("b\n", 50000),
		out:  "<ul>\n<li>a\n" + rep("b\n", 49999) + "b</li>\n</ul>",
	},
	{
		name:     "lazy lines in a footnote",
		in:       "x[^1]\n\n[^1]: a\n" + rep("b\n", 50000),
		contains: "a\n" + rep("b\n", 49999) + "b",
	},
	{
		name:     "long footnote chain",
		in:       repf(func(x int) string { return fmt.Sprintf("[^%d]: see [^%d]\n\n", x, x+1) }, 3000) + "start[^0]\n",
		contains: `<p>start<sup`,
	},
}

func compress(s string) string {
	var out []byte
	start := 0
S:
	for i := 0; i+4 < len(s); i++ {
		c := s[i]
		for j := i + 1; j < i+100 && j < len(s); j++ {
			if s[j] == c {
				n := 1
				w := j - i
				for j+w <= len(s) && s[i:i+w] == s[j:j+w] {
					j += w
					n++
				}
				if n > 2 {
					out = append(out, s[start:i]...)
					out = fmt.Appendf(out, "«%d:%s»", n, s[i:i+w])
					start = j
					i = start - 1
					continue S
				}
			}
		}
	}
	out = append(out, s[start:]...)
	return string(out)
}

func TestBig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in -short mode")
	}
	conv := New(DefaultConfig())
	for _, tt := range bigTests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			out := conv.MarkdownToHTML(tt.in)
			if d := time.Since(start); d > 2*time.Second {
				t.Fatalf("MarkdownToHTML(%q) took %v", compress(tt.in), d)
			}
			if tt.contains != "" {
				if !strings.Contains(out, tt.contains) {
					t.Fatalf("MarkdownToHTML(%q):\nhave %q\nwant text %q", compress(tt.in), compress(out), compress(tt.contains))
				}
				return
			}
			if tt.out == "" {
				tt.out = "<p>" + strings.TrimSpace(tt.in) + "</p>"
			}
			if out != tt.out {
				t.Fatalf("MarkdownToHTML(%q):\nhave %q\nwant %q", compress(tt.in), compress(out), compress(tt.out))
			}
		})
	}
}

func bench(b *testing.B, text string) {
	conv := New(DefaultConfig())
	for i := 0; i < b.N; i++ {
		_ = conv.MarkdownToHTML(text)
	}
	b.SetBytes(int64(len(text)))
}

func BenchmarkBrackets(b *testing.B) {
	bench(b, rep("[", 10000)+"a"+rep("]", 10000))
}

func BenchmarkDeepList(b *testing.B) {
	bench(b, repf(func(x int) string { return rep("  ", x) + "* a\n" }, 1000))
}

func BenchmarkList(b *testing.B) {
	bench(b, repf(func(x int) string { return "* a\n" }, 1000))
}

func BenchmarkFormat(b *testing.B) {
	text := repf(func(x int) string { return fmt.Sprintf("%d. item *%d*\n", x+1, x) }, 1000)
	conv := New(DefaultConfig())
	for i := 0; i < b.N; i++ {
		_ = conv.Format(text)
	}
	b.SetBytes(int64(len(text)))
}
