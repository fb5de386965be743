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
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"
)

// installBlockExtensions adds the Markdown Extra block recognizers
// on top of the baseline ones.
func installBlockExtensions() {
	blockRules[footnoteDefinitionKind] = blockRule{
		start:         startFootnoteDefinition,
		continueBlock: continueFootnoteDefinition,
		complete:      completeFootnoteDefinition,
	}
	blockRules[abbreviationDefinitionKind] = blockRule{
		start: startAbbreviationDefinition,
	}
	blockRules[definitionListKind] = blockRule{
		start:         startDefinitionList,
		continueBlock: continueDefinitionList,
		complete:      completeDefinitionList,
	}
	blockRules[figureKind] = blockRule{
		start:         startFigure,
		continueBlock: continueFigure,
		complete:      completeFigure,
	}
	blockRules[blockQuoteKind] = blockRule{
		start:         startBlockQuote,
		continueBlock: continueBlockQuote,
		complete:      completeBlockQuote,
	}

	table := blockRules[tableKind]
	table.continueBlock = continueTable
	blockRules[tableKind] = table

	atx := blockRules[atxHeadingKind]
	atx.start = withHeadingAttributes(atx.start, headingAttributesPattern)
	blockRules[atxHeadingKind] = atx

	setext := blockRules[setextHeadingKind]
	setext.start = withHeadingAttributes(setext.start, setextAttributesPattern)
	blockRules[setextHeadingKind] = setext

	markup := blockRules[htmlBlockKind]
	markup.complete = reprocessHTMLBlock(markup.complete)
	blockRules[htmlBlockKind] = markup

	appendBlockStart('*', abbreviationDefinitionKind)
	appendBlockStart(':', definitionListKind)
	appendBlockStart('=', figureKind)
	appendBlockStart('>', blockQuoteKind)
	insertBlockStart('[', footnoteDefinitionKind, linkDefinitionKind)
}

type footnoteData struct {
	label string
	text  string
}

func startFootnoteDefinition(c *renderContext, line sourceLine, prev *block) *block {
	m, ok := find(footnoteDefinitionPattern, line.Body)
	if !ok {
		return nil
	}
	return &block{
		hidden: true,
		data:   &footnoteData{label: m.group(1), text: m.group(2)},
	}
}

func continueFootnoteDefinition(c *renderContext, line sourceLine, b *block) bool {
	if line.Body[0] == '[' && matches(footnoteDefinitionPattern, line.Body) {
		return false
	}
	fn := b.data.(*footnoteData)
	if b.interrupted {
		if line.Indent < 4 {
			return false
		}
		fn.text += "\n\n" + line.Body
		b.interrupted = false
		return true
	}
	fn.text += "\n" + line.Body
	return true
}

func completeFootnoteDefinition(c *renderContext, b *block) {
	fn := b.data.(*footnoteData)
	c.registry.DefineFootnote(fn.label, fn.text)
}

func startAbbreviationDefinition(c *renderContext, line sourceLine, prev *block) *block {
	m, ok := find(abbreviationDefinitionPattern, line.Body)
	if !ok {
		return nil
	}
	c.registry.DefineAbbreviation(m.group(1), m.group(2))
	return &block{hidden: true}
}

type definitionListData struct {
	terms        []string
	descriptions []*description
}

type description struct {
	text string
	// paragraph is true if the description renders as blocks
	// rather than a single inline run.
	paragraph bool
}

func startDefinitionList(c *renderContext, line sourceLine, prev *block) *block {
	if prev == nil || prev.kind != paragraphKind {
		return nil
	}
	b := &block{
		replacesPrevious: true,
		interrupted:      prev.interrupted,
		data: &definitionListData{
			terms: strings.Split(prev.data.(*paragraphData).text, "\n"),
		},
	}
	addDescription(b, line)
	return b
}

// addDescription starts a new description from a line beginning with ':'.
// A description that follows a blank line is rendered as paragraphs.
func addDescription(b *block, line sourceLine) {
	list := b.data.(*definitionListData)
	list.descriptions = append(list.descriptions, &description{
		text:      strings.TrimSpace(line.Body[1:]),
		paragraph: b.interrupted,
	})
	b.interrupted = false
}

func continueDefinitionList(c *renderContext, line sourceLine, b *block) bool {
	if line.Body[0] == ':' {
		addDescription(b, line)
		return true
	}
	if b.interrupted && line.Indent == 0 {
		return false
	}
	list := b.data.(*definitionListData)
	last := list.descriptions[len(list.descriptions)-1]
	if b.interrupted {
		last.paragraph = true
		last.text += "\n\n"
		b.interrupted = false
	}
	last.text += "\n" + line.Raw[min(line.Indent, 4):]
	return true
}

func completeDefinitionList(c *renderContext, b *block) {
	list := b.data.(*definitionListData)
	items := make(Children, 0, len(list.terms)+len(list.descriptions))
	for _, term := range list.terms {
		items = append(items, &Element{Name: "dt", Content: Line(term)})
	}
	for _, desc := range list.descriptions {
		dd := &Element{Name: "dd", Content: Line(desc.text)}
		if desc.paragraph {
			dd.Content = Markdown(desc.text)
		}
		items = append(items, dd)
	}
	b.node = &Element{Name: "dl", Content: items}
}

// figureFences maps the characters that open figures to their fence patterns.
var figureFences = map[byte]*regexp2.Regexp{
	'=': fencePattern('='),
}

type figureData struct {
	char    byte
	body    string
	caption string
	// hasCaption distinguishes an empty caption from none at all.
	hasCaption bool
	attrs      Attributes
	closed     bool
}

// setFence applies the caption and attributes of a fence line,
// overriding earlier values only when present.
func (fig *figureData) setFence(m submatch) {
	if caption := m.group(1); caption != "" {
		fig.caption = caption[1 : len(caption)-1]
		fig.hasCaption = true
	}
	if attrs := m.group(2); attrs != "" {
		fig.attrs = ParseAttributes(attrs[1 : len(attrs)-1])
	}
}

func startFigure(c *renderContext, line sourceLine, prev *block) *block {
	char := line.Body[0]
	fence := figureFences[char]
	if fence == nil {
		return nil
	}
	m, ok := find(fence, line.Body)
	if !ok {
		return nil
	}
	fig := &figureData{char: char}
	fig.setFence(m)
	return &block{data: fig}
}

func continueFigure(c *renderContext, line sourceLine, b *block) bool {
	fig := b.data.(*figureData)
	if fig.closed {
		return false
	}
	if b.interrupted {
		fig.body += "\n"
		b.interrupted = false
	}
	if line.Body[0] == fig.char {
		if m, ok := find(figureFences[fig.char], line.Body); ok {
			fig.setFence(m)
			fig.closed = true
			return true
		}
	}
	fig.body += "\n" + line.Raw
	return true
}

func completeFigure(c *renderContext, b *block) {
	fig := b.data.(*figureData)
	node := &Element{Name: "figure", Attrs: fig.attrs, Content: Line(fig.body)}
	if fig.hasCaption {
		caption := string(c.appendLine(nil, fig.caption, nil))
		node.Content = Multiple{
			Source(fig.body),
			&Element{Name: "figcaption", Content: Raw(caption)},
		}
		node.Attrs.Set("title", stripTags(caption))
	}
	b.node = node
}

// stripTags returns the text content of an HTML fragment.
func stripTags(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

type blockQuoteData struct {
	attrs Attributes
	lines []string
}

func startBlockQuote(c *renderContext, line sourceLine, prev *block) *block {
	m, ok := find(quoteStartPattern, line.Body)
	if !ok {
		return nil
	}
	quote := &blockQuoteData{lines: []string{m.group(2)}}
	if attrs := m.group(1); attrs != "" {
		quote.attrs = ParseAttributes(attrs[1 : len(attrs)-1])
	}
	return &block{data: quote}
}

func continueBlockQuote(c *renderContext, line sourceLine, b *block) bool {
	quote := b.data.(*blockQuoteData)
	if line.Raw[0] == '>' {
		m, ok := find(quoteContinuePattern, line.Raw)
		if !ok {
			return false
		}
		text := m.group(1)
		if text != "" && (text[0] == '{' || text[0] == '(') {
			return false
		}
		if b.interrupted {
			quote.lines = append(quote.lines, "")
			b.interrupted = false
		}
		quote.lines = append(quote.lines, text)
		return true
	}
	if b.interrupted {
		return false
	}
	quote.lines = append(quote.lines, line.Raw)
	return true
}

func completeBlockQuote(c *renderContext, b *block) {
	quote := b.data.(*blockQuoteData)
	b.node = &Element{Name: "blockquote", Attrs: quote.attrs, Content: Lines(quote.lines)}
}

// continueTable adds a row to a table.
// Empty cells widen the nearest preceding cell by one column.
func continueTable(c *renderContext, line sourceLine, b *block) bool {
	if b.interrupted {
		return false
	}
	if !strings.Contains(line.Body, "|") {
		return false
	}
	table := b.data.(*tableData)
	var cells []*Element
	var spans []int
	for i, text := range splitTableRow(line.Body) {
		if text == "" {
			if len(spans) > 0 {
				spans[len(spans)-1]++
			}
			continue
		}
		td := &Element{Name: "td", Content: Line(text)}
		if align := table.alignment(i); align != "" {
			td.Attrs = Attributes{{Key: "style", Val: "text-align: " + align + ";"}}
		}
		cells = append(cells, td)
		spans = append(spans, 1)
	}
	for i, td := range cells {
		if spans[i] > 1 {
			td.Attrs.Set("colspan", strconv.Itoa(spans[i]))
		}
	}
	table.rows = append(table.rows, &Element{Name: "tr", Content: Children(cells)})
	return true
}

// withHeadingAttributes wraps a heading recognizer
// so that a trailing attribute annotation is moved from the text
// onto the heading element.
func withHeadingAttributes(start func(*renderContext, sourceLine, *block) *block, pattern *regexp2.Regexp) func(*renderContext, sourceLine, *block) *block {
	return func(c *renderContext, line sourceLine, prev *block) *block {
		b := start(c, line, prev)
		if b == nil {
			return nil
		}
		h := b.data.(*headingData)
		if m, ok := find(pattern, h.text); ok {
			h.attrs = ParseAttributes(m.group(1))
			h.text = h.text[:m.start]
		}
		return b
	}
}

// reprocessHTMLBlock wraps the HTML block finalizer
// so that non-void blocks go through the raw HTML reprocessor.
func reprocessHTMLBlock(complete func(*renderContext, *block)) func(*renderContext, *block) {
	return func(c *renderContext, b *block) {
		complete(c, b)
		if data := b.data.(*htmlBlockData); !data.void {
			b.markup = c.reprocessMarkup(b.markup, data.name)
		}
	}
}
