// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdconvd serves Markdown and HTML conversion over HTTP.
//
// Usage:
//
//	mdconvd
//
// Mdconvd is configured by MDCONV_* environment variables
// and answers POST /v1/html, /v1/markdown, and /v1/format
// with JSON bodies of the form {"input": "..."}.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/duetdocs/markdown/internal/api"
	"github.com/duetdocs/markdown/internal/config"
)

func main() {
	cfg := config.Load()
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	conv, err := cfg.Converter(log)
	if err != nil {
		log.Error("building converter", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewServer(conv, log, cfg.MaxBody),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("starting mdconvd", "addr", cfg.Addr, "engine", cfg.Engine)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
