// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/duetdocs/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkHTML = `<p>See <a href="/d">docs</a>.</p>`

func TestLinkStyle(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"inline", "See [docs](/d)."},
		{"referenced", "See [docs][1].\n\n[1]: /d"},
		{"reference", "See [docs][1].\n\n[1]: /d"},
	}
	for _, tt := range tests {
		conv, err := newConverter(tt.style)
		require.NoError(t, err, "newConverter(%q)", tt.style)
		out, err := convert(conv, []byte(linkHTML))
		require.NoError(t, err)
		assert.Equal(t, tt.want, out, "-link %s", tt.style)
	}

	_, err := newConverter("footnote")
	assert.EqualError(t, err, `unknown link style "footnote"`)
}

func TestConvertError(t *testing.T) {
	conv := markdown.New(markdown.DefaultConfig(), markdown.WithHTMLParser(nil))
	_, err := convert(conv, []byte(linkHTML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), markdown.ErrorPrefix)
	assert.Contains(t, err.Error(), "no parser configured")
}
