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

// Package markdownextra provides a [Markdown Extra] to HTML converter.
//
// Markdown Extra adds footnotes, definition lists,
// tables with column spans, abbreviations, figures,
// and {#id .class} attribute annotations to Markdown.
// It also renders Markdown inside raw HTML blocks
// whose elements are marked with markdown="1".
//
// Link and image destinations are percent-encoded with [NormalizeURI],
// so non-ASCII characters and spaces never appear raw in href or src.
//
// [Markdown Extra]: https://michelf.ca/projects/php-markdown/extra/
package markdownextra

import (
	"errors"
	"fmt"
)

// DefaultMaxNestingDepth is the nesting limit used
// when [Converter.MaxNestingDepth] is zero.
const DefaultMaxNestingDepth = 100

// ErrNestingTooDeep is reported when a document nests
// block quotes, lists, footnotes, raw HTML, or inline markup
// more deeply than the converter's limit.
// Content past the limit is written as escaped text.
var ErrNestingTooDeep = errors.New("nesting too deep")

// A Converter renders Markdown Extra documents to HTML.
// The zero value is ready to use.
// A Converter may be used by multiple goroutines concurrently,
// since each call to [Converter.Render] keeps its own state.
type Converter struct {
	// BreaksEnabled renders every line break inside a paragraph
	// as a <br /> element.
	BreaksEnabled bool
	// EscapeRaw escapes raw HTML in the input instead of passing it through.
	EscapeRaw bool
	// NoURLLinks disables linking bare http and https URLs.
	NoURLLinks bool
	// MaxNestingDepth bounds the depth of nested content.
	// Zero means DefaultMaxNestingDepth.
	MaxNestingDepth int
}

// Render converts a Markdown Extra document to HTML.
// Footnotes, abbreviations, and link references defined in source
// apply only to this document.
//
// If the document nests too deeply, Render returns the output produced
// along with an error wrapping [ErrNestingTooDeep].
func (conv *Converter) Render(source []byte) ([]byte, error) {
	c := newRenderContext(conv)
	dst := c.appendText(nil, string(source))
	dst = c.appendFootnotes(dst)
	if c.err != nil {
		return dst, fmt.Errorf("markdownextra: render: %w", c.err)
	}
	return dst, nil
}

// Render converts a Markdown Extra document to HTML
// using the default options.
func Render(source []byte) ([]byte, error) {
	return new(Converter).Render(source)
}

func init() {
	installBaselineBlocks()
	installBlockExtensions()
	installBaselineInlines()
	installInlineExtensions()
}
