// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Html2md converts HTML to Markdown.
//
// Usage:
//
//	html2md [-link style] [file...]
//
// Html2md reads the named files, or else standard input, as HTML documents
// and then prints the corresponding Markdown to standard output.
//
// The -link flag selects how links print: inline (the default) or referenced.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/duetdocs/markdown"
	"github.com/duetdocs/markdown/internal/config"
)

var link = flag.String("link", "inline", "link `style`: inline or referenced")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: html2md [-link style] [file...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("html2md: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	conv, err := newConverter(*link)
	if err != nil {
		log.Fatal(err)
	}

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

// newConverter returns a converter printing links in the named style.
func newConverter(style string) (*markdown.Converter, error) {
	ls, err := config.ParseLinkStyle(style)
	if err != nil {
		return nil, err
	}
	cfg := markdown.DefaultConfig()
	cfg.LinkStyle = ls
	return markdown.New(cfg), nil
}

func do(conv *markdown.Converter, f *os.File) {
	data, err := io.ReadAll(f)
	if err != nil {
		log.Fatal(err)
	}
	out, err := convert(conv, data)
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.WriteString(out + "\n")
}

func convert(conv *markdown.Converter, data []byte) (string, error) {
	out := conv.HTMLToMarkdown(string(data))
	if strings.HasPrefix(out, markdown.ErrorPrefix) {
		return "", errors.New(out)
	}
	return out, nil
}
