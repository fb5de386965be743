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

package markdownextra

import (
	"bytes"
	"slices"
	"strings"

	"go4.org/bytereplacer"
)

// A renderContext holds the state of a single top-level render call.
// It is passed to every recognizer and renderer.
type renderContext struct {
	opts     *Converter
	registry *Registry

	depth    int
	maxDepth int
	// err is the first error encountered.
	err error
}

func newRenderContext(conv *Converter) *renderContext {
	maxDepth := conv.MaxNestingDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxNestingDepth
	}
	return &renderContext{
		opts:     conv,
		registry: NewRegistry(),
		maxDepth: maxDepth,
	}
}

// enter records one more level of nesting.
// It reports false and records [ErrNestingTooDeep]
// if the nesting limit has been reached,
// in which case the caller must not descend and must not call leave.
func (c *renderContext) enter() bool {
	if c.depth >= c.maxDepth {
		if c.err == nil {
			c.err = ErrNestingTooDeep
		}
		return false
	}
	c.depth++
	return true
}

func (c *renderContext) leave() {
	c.depth--
}

var (
	textEscaper = bytereplacer.New(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attributeEscaper = bytereplacer.New(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

func appendEscapedText(dst []byte, s string) []byte {
	return append(dst, textEscaper.Replace([]byte(s))...)
}

func appendEscapedAttribute(dst []byte, s string) []byte {
	return append(dst, attributeEscaper.Replace([]byte(s))...)
}

// appendElement renders e as HTML.
func (c *renderContext) appendElement(dst []byte, e *Element) []byte {
	dst = append(dst, '<')
	dst = append(dst, e.Name...)
	for _, attr := range e.Attrs {
		dst = append(dst, ' ')
		dst = append(dst, attr.Key...)
		dst = append(dst, `="`...)
		dst = appendEscapedAttribute(dst, attr.Val)
		dst = append(dst, '"')
	}
	if e.Content == nil {
		return append(dst, " />"...)
	}
	dst = append(dst, '>')
	switch content := e.Content.(type) {
	case Text:
		dst = appendEscapedText(dst, string(content))
	case Line:
		dst = c.appendLine(dst, string(content), e.nonNestables)
	case Markdown:
		dst = c.appendText(dst, string(content))
	case Lines:
		dst = c.appendLines(dst, content)
	case ListItem:
		dst = c.appendListItem(dst, content)
	case Children:
		dst = c.appendChildren(dst, content)
	case Raw:
		dst = append(dst, content...)
	case Multiple:
		dst = c.appendMultiple(dst, content)
	}
	dst = append(dst, "</"...)
	dst = append(dst, e.Name...)
	return append(dst, '>')
}

// appendChildren renders each element on its own line.
func (c *renderContext) appendChildren(dst []byte, children []*Element) []byte {
	for _, child := range children {
		dst = append(dst, '\n')
		dst = c.appendElement(dst, child)
	}
	return append(dst, '\n')
}

// appendMultiple renders parts back to back.
// A source part is rendered as blocks if it spans multiple lines
// and inline otherwise.
func (c *renderContext) appendMultiple(dst []byte, parts []Part) []byte {
	for _, part := range parts {
		switch part := part.(type) {
		case *Element:
			dst = c.appendElement(dst, part)
		case Source:
			if strings.Contains(string(part), "\n") {
				dst = c.appendText(dst, string(part))
			} else {
				dst = c.appendLine(dst, string(part), nil)
			}
		}
	}
	return dst
}

// appendText renders block-level Markdown
// without surrounding newlines.
func (c *renderContext) appendText(dst []byte, text string) []byte {
	markup := c.appendLines(nil, splitLines(text))
	return append(dst, bytes.Trim(markup, "\n")...)
}

// appendLines parses and renders block-level Markdown.
// Past the nesting limit, the lines are written as escaped text.
func (c *renderContext) appendLines(dst []byte, lines []string) []byte {
	if !c.enter() {
		return appendEscapedText(dst, strings.Join(lines, "\n"))
	}
	defer c.leave()
	return c.appendBlocks(dst, c.parseBlocks(lines))
}

// appendListItem renders the content of a list item.
// If the item has no blank lines,
// the paragraph tags around its first paragraph are removed.
func (c *renderContext) appendListItem(dst []byte, lines []string) []byte {
	markup := c.appendLines(nil, lines)
	if slices.Contains(lines, "") {
		return append(dst, markup...)
	}
	trimmed := bytes.Trim(markup, " \t\n\r\x00\x0b")
	rest, ok := bytes.CutPrefix(trimmed, []byte("<p>"))
	if !ok {
		return append(dst, markup...)
	}
	if i := bytes.Index(rest, []byte("</p>")); i >= 0 {
		dst = append(dst, rest[:i]...)
		return append(dst, rest[i+len("</p>"):]...)
	}
	return append(dst, rest...)
}
