// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// A Config is the conversion policy shared by parsing and printing.
// A Config is treated as immutable once passed to [New].
type Config struct {
	// Bullet is the marker printed for unordered list items.
	Bullet string

	// ThematicBreak is the line printed for a thematic break.
	ThematicBreak string

	// Fence is the code block fence. It is lengthened
	// as needed when the code itself contains a run of fence characters.
	Fence string

	// BulletIndent and OrderedIndent are the indentation of
	// bullet and ordered lists nested in a bullet list item.
	// Lists nested in an ordered item align with the item text.
	BulletIndent  int
	OrderedIndent int

	// HeadingIDs adds id attributes derived from the text to HTML headings.
	HeadingIDs bool

	// PadTables pads Markdown table cells to the column width.
	PadTables bool

	// LinkStyle selects inline or reference-style links
	// for links that do not already carry a reference label.
	LinkStyle LinkStyle

	// RawInlineTags lists the inline HTML elements
	// that pass through conversion verbatim.
	RawInlineTags []string

	// Logger receives diagnostics. A nil Logger discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the reference conversion policy.
func DefaultConfig() Config {
	return Config{
		Bullet:        "*",
		ThematicBreak: "* * *",
		Fence:         "```",
		BulletIndent:  2,
		OrderedIndent: 4,
		HeadingIDs:    true,
		PadTables:     true,
		LinkStyle:     LinkInline,
		RawInlineTags: []string{"kbd", "sup", "sub", "mark", "ins", "u", "abbr", "var", "samp"},
	}
}

// withDefaults returns c with empty markers and zero indents
// replaced by the defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Bullet == "" {
		c.Bullet = d.Bullet
	}
	if c.ThematicBreak == "" {
		c.ThematicBreak = d.ThematicBreak
	}
	if c.Fence == "" {
		c.Fence = d.Fence
	}
	if c.BulletIndent <= 0 {
		c.BulletIndent = d.BulletIndent
	}
	if c.OrderedIndent <= 0 {
		c.OrderedIndent = d.OrderedIndent
	}
	c.RawInlineTags = append([]string(nil), c.RawInlineTags...)
	return c
}

// A MarkdownParser parses Markdown text into a document tree.
type MarkdownParser interface {
	ParseMarkdown(text string) (*Document, error)
}

// An HTMLParser parses HTML text into a document tree.
type HTMLParser interface {
	ParseHTML(text string) (*Document, error)
}

// A Wrapper turns an HTML body into a complete standalone document,
// applying sanitization and styling.
type Wrapper interface {
	Wrap(body, title string, dark bool) (string, error)
}

// ErrNoParser is reported when a conversion needs
// a parser that the [Converter] was not given.
var ErrNoParser = errors.New("no parser configured")

// An Option configures a [Converter].
type Option func(*Converter)

// WithMarkdownParser sets the Markdown engine.
// The default is the native [Parser] with all extensions enabled.
func WithMarkdownParser(p MarkdownParser) Option {
	return func(c *Converter) { c.md = p }
}

// WithHTMLParser sets the HTML engine.
// The default is an [HTMLReader].
func WithHTMLParser(p HTMLParser) Option {
	return func(c *Converter) { c.html = p }
}

// WithLogger sets the logger, overriding Config.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// A Converter converts between Markdown and HTML.
// It is safe for concurrent use: every call builds
// and discards its own document tree.
type Converter struct {
	cfg  Config
	md   MarkdownParser
	html HTMLParser
	log  *slog.Logger
}

// New returns a Converter with the given policy.
// Empty string and zero integer fields of cfg take their default values.
func New(cfg Config, opts ...Option) *Converter {
	cfg = cfg.withDefaults()
	c := &Converter{
		cfg: cfg,
		md: &Parser{
			Table:         true,
			Strikethrough: true,
			TaskList:      true,
			Footnote:      true,
			RawTags:       cfg.RawInlineTags,
		},
		html: &HTMLReader{RawTags: cfg.RawInlineTags},
		log:  cfg.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Config returns the converter's policy.
func (c *Converter) Config() Config {
	return c.cfg
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return New(DefaultConfig())
})

// Default returns the process-wide converter used by the
// package-level conversion functions, building it on first use.
func Default() *Converter {
	return defaultConverter()
}

// MarkdownToHTML converts Markdown to HTML using the [Default] converter.
func MarkdownToHTML(md string) string {
	return Default().MarkdownToHTML(md)
}

// HTMLToMarkdown converts HTML to Markdown using the [Default] converter.
func HTMLToMarkdown(html string) string {
	return Default().HTMLToMarkdown(html)
}

// Format normalizes Markdown using the [Default] converter.
func Format(md string) string {
	return Default().Format(md)
}

// ParseMarkdown parses md with the converter's Markdown engine.
func (c *Converter) ParseMarkdown(md string) (*Document, error) {
	if c.md == nil {
		return nil, fmt.Errorf("parsing Markdown: %w", ErrNoParser)
	}
	doc, err := c.md.ParseMarkdown(md)
	if err != nil {
		return nil, fmt.Errorf("parsing Markdown: %w", err)
	}
	return doc, nil
}

// ParseHTML parses html with the converter's HTML engine.
func (c *Converter) ParseHTML(html string) (*Document, error) {
	if c.html == nil {
		return nil, fmt.Errorf("parsing HTML: %w", ErrNoParser)
	}
	doc, err := c.html.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// RenderHTML prints doc as HTML.
func (c *Converter) RenderHTML(doc *Document) string {
	return newPrinter(&c.cfg, writeHTML).render(doc)
}

// RenderMarkdown prints doc as Markdown and post-processes the result.
func (c *Converter) RenderMarkdown(doc *Document) string {
	return PostProcess(newPrinter(&c.cfg, writeMarkdown).render(doc))
}

// ErrorPrefix starts the text returned by HTMLToMarkdown on failure.
const ErrorPrefix = "Error converting HTML to Markdown: "

// MarkdownToHTML converts Markdown to HTML.
// It never fails: if conversion is impossible,
// it logs the problem and returns md unchanged.
func (c *Converter) MarkdownToHTML(md string) string {
	out, err := c.try("markdown-to-html", md, func() (string, error) {
		doc, err := c.ParseMarkdown(md)
		if err != nil {
			return "", err
		}
		return c.RenderHTML(doc), nil
	})
	if err != nil {
		return md
	}
	return out
}

// HTMLToMarkdown converts HTML to Markdown.
// It never fails: if conversion is impossible,
// it returns a short message describing the problem.
func (c *Converter) HTMLToMarkdown(html string) string {
	out, err := c.try("html-to-markdown", html, func() (string, error) {
		doc, err := c.ParseHTML(html)
		if err != nil {
			return "", err
		}
		return c.RenderMarkdown(doc), nil
	})
	if err != nil {
		return ErrorPrefix + err.Error()
	}
	return out
}

// Format converts Markdown to normalized Markdown.
// If conversion is impossible, it returns md unchanged.
func (c *Converter) Format(md string) string {
	out, err := c.try("format", md, func() (string, error) {
		doc, err := c.ParseMarkdown(md)
		if err != nil {
			return "", err
		}
		return c.RenderMarkdown(doc), nil
	})
	if err != nil {
		return md
	}
	return out
}

// Export converts Markdown to a standalone HTML document
// by handing the converted body to w.
// A nil w returns the bare body.
func (c *Converter) Export(md, title string, dark bool, w Wrapper) (string, error) {
	body := c.MarkdownToHTML(md)
	if w == nil {
		return body, nil
	}
	out, err := w.Wrap(body, title, dark)
	if err != nil {
		return "", fmt.Errorf("wrapping %q: %w", title, err)
	}
	return out, nil
}

// try runs the conversion f, turning a panic into an error.
// Failures are logged here; callers only pick the fallback.
func (c *Converter) try(op, in string, f func() (string, error)) (out string, err error) {
	defer func() {
		if e := recover(); e != nil {
			c.log.Error("conversion panicked", "op", op, "panic", e)
			out, err = "", fmt.Errorf("%s: %v", op, e)
		}
	}()
	out, err = f()
	if err != nil {
		c.log.Warn("conversion failed", "op", op, "err", err)
		return "", err
	}
	c.log.Debug("converted", "op", op, "in", len(in), "out", len(out))
	return out, nil
}
