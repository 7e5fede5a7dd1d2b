// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/duetdocs/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(maxBody int64) *Server {
	log := slog.New(slog.DiscardHandler)
	return NewServer(markdown.New(markdown.DefaultConfig()), log, maxBody)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func output(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Output
}

func TestHealth(t *testing.T) {
	s := newTestServer(1 << 10)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestConvert(t *testing.T) {
	s := newTestServer(1 << 10)

	out := output(t, post(t, s, "/v1/html", `{"input":"**bold**"}`))
	assert.Equal(t, "<p><strong>bold</strong></p>", out)

	out = output(t, post(t, s, "/v1/markdown", `{"input":"<p><em>hi</em></p>"}`))
	assert.Equal(t, "*hi*", out)

	out = output(t, post(t, s, "/v1/format", `{"input":"Title\n=====\n"}`))
	assert.Equal(t, "# Title", out)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(64)

	rec := post(t, s, "/v1/html", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")

	rec = post(t, s, "/v1/html", `{"input":"`+strings.Repeat("x", 100)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/html", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
