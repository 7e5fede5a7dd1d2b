// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/tools/txtar"
)

// addSeeds adds the input of every fixture pair in testdata
// whose name ends in ext.
func addSeeds(f *testing.F, ext string) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		f.Fatal(err)
	}
	for _, file := range files {
		a, err := txtar.ParseFile(file)
		if err != nil {
			f.Fatal(err)
		}
		for i := 0; i+2 <= len(a.Files); i += 2 {
			if strings.HasSuffix(a.Files[i].Name, ext) {
				f.Add(decode(string(a.Files[i].Data)))
			}
		}
	}
}

// FuzzFormat checks that parsing and printing never panic.
func FuzzFormat(f *testing.F) {
	addSeeds(f, ".md")
	conv := New(DefaultConfig())
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		doc, err := conv.ParseMarkdown(s)
		if err != nil {
			t.Fatal(err)
		}
		_ = conv.RenderHTML(doc)
		_ = conv.RenderMarkdown(doc)
	})
}

// FuzzHTML checks that HTML conversion never reports an error.
func FuzzHTML(f *testing.F) {
	addSeeds(f, ".html")
	conv := New(DefaultConfig())
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		if out := conv.HTMLToMarkdown(s); strings.HasPrefix(out, ErrorPrefix) {
			t.Fatalf("HTMLToMarkdown(%q) = %q", s, out)
		}
	})
}
