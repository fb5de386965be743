// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package normhtml provides functions for comparing rendered HTML
// while ignoring insignificant output differences
// like whitespace between block tags, attribute order,
// and void element syntax.
// The rules follow the [CommonMark spec test normalization].
//
// [CommonMark spec test normalization]: https://github.com/commonmark/commonmark-spec/blob/0.30.0/test/normalize.py
package normhtml

import (
	"bytes"
	"slices"
	"strings"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML strips insignificant output differences from HTML.
func NormalizeHTML(b []byte) []byte {
	n := &normalizer{
		tok:  html.NewTokenizerFragment(bytes.NewReader(b), "div"),
		last: html.StartTagToken,
	}
	for {
		tt := n.tok.Next()
		switch tt {
		case html.ErrorToken:
			return n.output
		case html.TextToken:
			n.text(n.tok.Text())
		case html.EndTagToken:
			n.endTag()
		case html.StartTagToken, html.SelfClosingTagToken:
			n.startTag()
		case html.CommentToken:
			n.output = append(n.output, n.tok.Raw()...)
		}
		n.last = tt
		if tt == html.SelfClosingTagToken {
			n.last = html.EndTagToken
		}
	}
}

// String is like [NormalizeHTML] but operates on strings.
func String(s string) string {
	return string(NormalizeHTML([]byte(s)))
}

type normalizer struct {
	tok    *html.Tokenizer
	output []byte

	// last is the type of the previous token.
	// Self-closing tags count as end tags.
	last    html.TokenType
	lastTag atom.Atom
	inPre   bool
}

func (n *normalizer) text(data []byte) {
	afterTag := n.last == html.EndTagToken || n.last == html.StartTagToken
	if afterTag && n.lastTag == atom.Br {
		data = bytes.TrimLeft(data, "\n")
	}
	if n.inPre {
		n.output = append(n.output, htmlEscaper.Replace(bytes.Clone(data))...)
		return
	}
	data = collapseSpace(data)
	if afterTag && isBlockTag(n.lastTag) {
		switch n.last {
		case html.StartTagToken:
			data = bytes.TrimLeftFunc(data, unicode.IsSpace)
		case html.EndTagToken:
			data = bytes.TrimSpace(data)
		}
	}
	n.output = append(n.output, htmlEscaper.Replace(data)...)
}

func (n *normalizer) endTag() {
	name, _ := n.tok.TagName()
	tag := atom.Lookup(name)
	if tag == atom.Pre {
		n.inPre = false
	} else if isBlockTag(tag) {
		n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
	}
	n.output = append(n.output, "</"...)
	n.output = append(n.output, name...)
	n.output = append(n.output, '>')
	n.lastTag = tag
}

func (n *normalizer) startTag() {
	name, hasAttr := n.tok.TagName()
	// TagName's result is only valid until the next call to the tokenizer.
	name = bytes.Clone(name)
	tag := atom.Lookup(name)
	if tag == atom.Pre {
		n.inPre = true
	}
	if isBlockTag(tag) {
		n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
	}
	n.output = append(n.output, '<')
	n.output = append(n.output, name...)
	if hasAttr {
		var attrs []html.Attribute
		for more := true; more; {
			var k, v []byte
			k, v, more = n.tok.TagAttr()
			attrs = append(attrs, html.Attribute{Key: string(k), Val: string(v)})
		}
		slices.SortFunc(attrs, func(a, b html.Attribute) int {
			return strings.Compare(a.Key, b.Key)
		})
		for _, attr := range attrs {
			n.output = append(n.output, ' ')
			n.output = append(n.output, attr.Key...)
			if attr.Val != "" {
				n.output = append(n.output, `="`...)
				n.output = append(n.output, html.EscapeString(attr.Val)...)
				n.output = append(n.output, '"')
			}
		}
	}
	n.output = append(n.output, '>')
	n.lastTag = tag
}

// collapseSpace replaces each run of ASCII whitespace with a single space.
func collapseSpace(b []byte) []byte {
	out := make([]byte, 0, len(b))
	inSpace := false
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\f', '\r':
			if !inSpace {
				out = append(out, ' ')
			}
			inSpace = true
		default:
			out = append(out, c)
			inSpace = false
		}
	}
	return out
}

// blockTags are the elements around which whitespace is insignificant.
var blockTags = map[atom.Atom]struct{}{
	atom.Article: {}, atom.Aside: {}, atom.Blockquote: {}, atom.Body: {},
	atom.Button: {}, atom.Canvas: {}, atom.Caption: {}, atom.Col: {},
	atom.Colgroup: {}, atom.Dd: {}, atom.Details: {}, atom.Div: {},
	atom.Dl: {}, atom.Dt: {}, atom.Embed: {}, atom.Fieldset: {},
	atom.Figcaption: {}, atom.Figure: {}, atom.Footer: {}, atom.Form: {},
	atom.H1: {}, atom.H2: {}, atom.H3: {}, atom.H4: {}, atom.H5: {}, atom.H6: {},
	atom.Header: {}, atom.Hgroup: {}, atom.Hr: {}, atom.Iframe: {},
	atom.Li: {}, atom.Map: {}, atom.Object: {}, atom.Ol: {},
	atom.Output: {}, atom.P: {}, atom.Pre: {}, atom.Progress: {},
	atom.Script: {}, atom.Section: {}, atom.Style: {}, atom.Summary: {},
	atom.Table: {}, atom.Tbody: {}, atom.Td: {}, atom.Textarea: {},
	atom.Tfoot: {}, atom.Th: {}, atom.Thead: {}, atom.Tr: {},
	atom.Ul: {}, atom.Video: {},
}

func isBlockTag(tag atom.Atom) bool {
	_, ok := blockTags[tag]
	return ok
}
