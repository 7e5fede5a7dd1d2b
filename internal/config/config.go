// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of the conversion service
// and the choice of Markdown engine shared by the commands.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/duetdocs/markdown"
	"github.com/duetdocs/markdown/gmparse"
)

// Engine names accepted by [EngineOption].
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

type Config struct {
	Addr    string
	MaxBody int64

	// Conversion policy
	Engine     string
	HeadingIDs bool
	PadTables  bool
	LinkStyle  string

	LogLevel string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from MDCONV_* environment variables.
// Unset or malformed values take their defaults.
func Load() Config {
	cfg := Config{
		Addr:    envOr("MDCONV_ADDR", ":8080"),
		MaxBody: envInt64("MDCONV_MAX_BODY", 1<<20),

		Engine:     envOr("MDCONV_ENGINE", EngineNative),
		HeadingIDs: envBool("MDCONV_HEADING_IDS", true),
		PadTables:  envBool("MDCONV_PAD_TABLES", true),
		LinkStyle:  envOr("MDCONV_LINK_STYLE", "inline"),

		LogLevel: envOr("MDCONV_LOG_LEVEL", "info"),

		ReadTimeout:     envDuration("MDCONV_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    envDuration("MDCONV_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDuration("MDCONV_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = 1 << 20
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("MDCONV_ADDR is required")
	}
	if _, err := EngineOption(c.Engine); err != nil {
		return fmt.Errorf("MDCONV_ENGINE: %w", err)
	}
	if _, err := c.linkStyle(); err != nil {
		return fmt.Errorf("MDCONV_LINK_STYLE: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("MDCONV_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return l, nil
}

func (c Config) linkStyle() (markdown.LinkStyle, error) {
	return ParseLinkStyle(c.LinkStyle)
}

// ParseLinkStyle returns the link style with the given name:
// inline (the default when name is empty) or referenced.
func ParseLinkStyle(name string) (markdown.LinkStyle, error) {
	switch strings.ToLower(name) {
	case "", "inline":
		return markdown.LinkInline, nil
	case "referenced", "reference":
		return markdown.LinkReferenced, nil
	}
	return 0, fmt.Errorf("unknown link style %q", name)
}

// Converter builds the converter described by c.
func (c Config) Converter(log *slog.Logger) (*markdown.Converter, error) {
	engine, err := EngineOption(c.Engine)
	if err != nil {
		return nil, err
	}
	style, err := c.linkStyle()
	if err != nil {
		return nil, err
	}
	mc := markdown.DefaultConfig()
	mc.HeadingIDs = c.HeadingIDs
	mc.PadTables = c.PadTables
	mc.LinkStyle = style
	mc.Logger = log
	return markdown.New(mc, engine), nil
}

// EngineOption returns the converter option selecting the named Markdown engine.
func EngineOption(name string) (markdown.Option, error) {
	switch strings.ToLower(name) {
	case "", EngineNative:
		return func(*markdown.Converter) {}, nil
	case EngineGoldmark:
		return markdown.WithMarkdownParser(gmparse.New()), nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
