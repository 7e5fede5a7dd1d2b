// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdfmt reformats Markdown data.
//
// Usage:
//
//	mdfmt [-w] [-engine name] [file...]
//
// Mdfmt reads the named files, or else standard input, as Markdown documents
// and then reprints the same Markdown documents, normalized, to standard output.
//
// The -w flag specifies to rewrite the files in place.
// The -engine flag selects the Markdown parser: native (the default) or goldmark.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/duetdocs/markdown"
	"github.com/duetdocs/markdown/internal/config"
)

var (
	wflag  = flag.Bool("w", false, "write reformatted Markdown to files")
	engine = flag.String("engine", config.EngineNative, "Markdown `parser`: native or goldmark")
	exit   = 0
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mdfmt [-w] [-engine name] [file...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("mdfmt: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	opt, err := config.EngineOption(*engine)
	if err != nil {
		log.Fatal(err)
	}
	conv := markdown.New(markdown.DefaultConfig(), opt)

	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		if err := convert(conv, data, "", os.Stdout); err != nil {
			log.Print(err)
			exit = 1
		}
	} else {
		for _, file := range flag.Args() {
			data, err := os.ReadFile(file)
			if err != nil {
				log.Print(err)
				exit = 1
				continue
			}
			if err := convert(conv, data, file, os.Stdout); err != nil {
				log.Print(err)
				exit = 1
			}
		}
	}
	os.Exit(exit)
}

// convert reformats data, read from file, and writes the result
// back to file if -w is set and to stdout otherwise.
func convert(conv *markdown.Converter, data []byte, file string, stdout io.Writer) error {
	out := []byte(conv.Format(string(data)) + "\n")
	if *wflag && file != "" {
		return os.WriteFile(file, out, 0666)
	}
	_, err := stdout.Write(out)
	return err
}
