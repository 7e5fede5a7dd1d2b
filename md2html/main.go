// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Md2html converts Markdown to HTML.
//
// Usage:
//
//	md2html [-engine name] [-ids=false] [file...]
//
// Md2html reads the named files, or else standard input, as Markdown documents
// and then prints the corresponding HTML to standard output.
//
// The -engine flag selects the Markdown parser: native (the default) or goldmark.
// The -ids flag controls whether headings get id attributes.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"github.com/duetdocs/markdown"
	"github.com/duetdocs/markdown/internal/config"
)

var (
	engine = flag.String("engine", config.EngineNative, "Markdown `parser`: native or goldmark")
	ids    = flag.Bool("ids", true, "add id attributes to headings")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: md2html [-engine name] [-ids=false] [file...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("md2html: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	opt, err := config.EngineOption(*engine)
	if err != nil {
		log.Fatal(err)
	}
	cfg := markdown.DefaultConfig()
	cfg.HeadingIDs = *ids
	conv := markdown.New(cfg, opt)

	args := flag.Args()
	if len(args) == 0 {
		do(conv, os.Stdin)
		return
	}
	for _, arg := range args {
		f, err := os.Open(arg)
		if err != nil {
			log.Fatal(err)
		}
		do(conv, f)
		f.Close()
	}
}

func do(conv *markdown.Converter, f *os.File) {
	data, err := io.ReadAll(f)
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.WriteString(conv.MarkdownToHTML(string(replaceTabs(data))) + "\n")
}

// replaceTabs replaces all tabs in text with spaces up to a 4-space tab stop.
//
// In Markdown, tabs used for indentation are interpreted as 4-space tab stops.
// Browsers often use 8-space tab stops in code blocks,
// so expanding tabs keeps code consistently compact.
//
// This function does not handle multi-codepoint Unicode sequences correctly.
func replaceTabs(text []byte) []byte {
	var buf bytes.Buffer
	col := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]

		switch r {
		case '\n':
			buf.WriteByte('\n')
			col = 0

		case '\t':
			buf.WriteByte(' ')
			col++
			for col%4 != 0 {
				buf.WriteByte(' ')
				col++
			}

		default:
			buf.WriteRune(r)
			col++
		}
	}
	return buf.Bytes()
}
