// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Test runs the conversion fixtures in testdata.
// Each archive holds pairs of files, an input and its expected output.
// The archive comment selects the conversion with a "mode:" line
// (html, markdown, or format) and may request a "roundtrip: true"
// check that each output converts to HTML and back unchanged.
func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	conv := New(DefaultConfig())
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			opts, err := parseOptions(a.Comment)
			if err != nil {
				t.Fatal(err)
			}
			var convert func(string) string
			switch opts.mode {
			case "html":
				convert = conv.MarkdownToHTML
			case "markdown":
				convert = conv.HTMLToMarkdown
			case "format":
				convert = conv.Format
			default:
				t.Fatalf("unknown mode %q", opts.mode)
			}

			var ncase, npass int
			for i := 0; i+2 <= len(a.Files); i += 2 {
				ncase++
				in := a.Files[i]
				want := a.Files[i+1]
				name := caseName(in.Name)
				if name != caseName(want.Name) {
					t.Fatalf("mismatched file pair: %s and %s", in.Name, want.Name)
				}

				t.Run(name, func(t *testing.T) {
					out := convert(decode(string(in.Data)))
					if have := encode(out + "\n"); have != string(want.Data) {
						t.Fatalf("input %q\nhave %q\nwant %q", in.Data, have, want.Data)
					}
					if opts.mode == "format" {
						if again := conv.Format(out); again != out {
							t.Fatalf("format not idempotent:\nfirst  %q\nsecond %q", out, again)
						}
					}
					if opts.roundtrip {
						html := conv.MarkdownToHTML(out)
						if back := conv.HTMLToMarkdown(html); back != out {
							t.Fatalf("round trip through HTML:\nhtml %q\nhave %q\nwant %q", html, back, out)
						}
					}
					npass++
				})
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

// caseName returns the case name of a fixture file:
// its name up to the first dot.
func caseName(file string) string {
	name, _, _ := strings.Cut(file, ".")
	return name
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^M", "\r")
	s = strings.ReplaceAll(s, "^D\n", "")
	s = strings.ReplaceAll(s, "^@", "\x00")
	return s
}

func encode(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "^M\n")
	s = strings.ReplaceAll(s, "\r", "^M^D\n")
	s = strings.ReplaceAll(s, " \n", " ^J\n")
	s = strings.ReplaceAll(s, "\t\n", "\t^J\n")
	s = strings.ReplaceAll(s, "\x00", "^@")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "^D\n"
	}
	return s
}

type fixtureOptions struct {
	mode      string
	roundtrip bool
}

// parseOptions extracts lines of the form
//
//	key: value
//
// from an archive comment. Other lines are description.
func parseOptions(data []byte) (fixtureOptions, error) {
	var opts fixtureOptions
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.Contains(key, " ") {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "mode":
			opts.mode = value
		case "roundtrip":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return opts, err
			}
			opts.roundtrip = b
		default:
			return opts, fmt.Errorf("unknown option: %q", key)
		}
	}
	return opts, nil
}
