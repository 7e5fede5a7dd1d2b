// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api serves Markdown and HTML conversion over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/duetdocs/markdown"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API of the conversion service.
type Server struct {
	router  chi.Router
	conv    *markdown.Converter
	log     *slog.Logger
	maxBody int64
}

// NewServer returns a server converting with conv.
// Request bodies larger than maxBody bytes are rejected.
func NewServer(conv *markdown.Converter, log *slog.Logger, maxBody int64) *Server {
	s := &Server{
		conv:    conv,
		log:     log,
		maxBody: maxBody,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/html", s.convert(s.conv.MarkdownToHTML))
		r.Post("/markdown", s.convert(s.conv.HTMLToMarkdown))
		r.Post("/format", s.convert(s.conv.Format))
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type request struct {
	Input string `json:"input"`
}

type response struct {
	Output string `json:"output"`
}

// convert returns a handler applying f to the input of a JSON request.
func (s *Server) convert(f func(string) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.maxBody), http.StatusRequestEntityTooLarge)
				return
			}
			jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response{Output: f(req.Input)})
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
