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
	"slices"
	"strings"
)

// inlineKind identifies an inline recognizer.
type inlineKind uint8

const (
	codeSpanKind inlineKind = 1 + iota
	emailTagKind
	emphasisKind
	escapeSequenceKind
	imageKind
	linkKind
	rawHTMLKind
	specialCharacterKind
	strikethroughKind
	bareURLKind
	urlTagKind
	footnoteMarkerKind
)

// An excerpt is the text an inline recognizer is asked to match:
// the remaining text of the line, positioned at a marker character.
type excerpt struct {
	// context is the unconsumed text of the line.
	context string
	// pos is the offset of the marker in context.
	pos int
}

// text returns the context starting at the marker.
func (ex excerpt) text() string {
	return ex.context[ex.pos:]
}

// An inline is a successful inline match.
type inline struct {
	// extent is the number of bytes consumed, counted from the start of the match.
	extent int
	// before is the number of bytes the match starts before the marker.
	before int

	element *Element
	// markup is used when element is nil.
	markup string
}

type inlineRule func(c *renderContext, ex excerpt) (inline, bool)

var (
	inlineRules  map[inlineKind]inlineRule
	inlineStarts map[byte][]inlineKind
	// inlineMarkers is the set of characters that may begin an inline.
	inlineMarkers string
)

// escapableCharacters are the characters that a backslash escapes.
const escapableCharacters = "\\`*_{}[]()>#+-.!|~"

// installBaselineInlines registers the core Markdown inline recognizers.
func installBaselineInlines() {
	inlineRules = map[inlineKind]inlineRule{
		codeSpanKind:         parseCodeSpan,
		emailTagKind:         parseEmailTag,
		emphasisKind:         parseEmphasis,
		escapeSequenceKind:   parseEscapeSequence,
		imageKind:            parseImage,
		linkKind:             parseLink,
		rawHTMLKind:          parseRawHTML,
		specialCharacterKind: parseSpecialCharacter,
		strikethroughKind:    parseStrikethrough,
		bareURLKind:          parseBareURL,
		urlTagKind:           parseURLTag,
	}
	inlineStarts = map[byte][]inlineKind{
		'"':  {specialCharacterKind},
		'!':  {imageKind},
		'&':  {specialCharacterKind},
		'*':  {emphasisKind},
		':':  {bareURLKind},
		'<':  {urlTagKind, emailTagKind, rawHTMLKind, specialCharacterKind},
		'>':  {specialCharacterKind},
		'[':  {linkKind},
		'_':  {emphasisKind},
		'`':  {codeSpanKind},
		'~':  {strikethroughKind},
		'\\': {escapeSequenceKind},
	}
	updateInlineMarkers()
}

func updateInlineMarkers() {
	var sb strings.Builder
	for c := range inlineStarts {
		sb.WriteByte(c)
	}
	inlineMarkers = sb.String()
}

// appendLine renders a run of inline Markdown.
// Recognizers listed in nonNestables are skipped.
func (c *renderContext) appendLine(dst []byte, text string, nonNestables []inlineKind) []byte {
	if !c.enter() {
		return appendEscapedText(dst, text)
	}
	defer c.leave()

scan:
	for {
		pos := strings.IndexAny(text, inlineMarkers)
		if pos < 0 {
			break
		}
		ex := excerpt{context: text, pos: pos}
		for _, kind := range inlineStarts[text[pos]] {
			if slices.Contains(nonNestables, kind) {
				continue
			}
			in, ok := inlineRules[kind](c, ex)
			if !ok || in.before < 0 || in.before > pos {
				continue
			}
			start := pos - in.before
			dst = c.appendUnmarkedText(dst, text[:start])
			if in.element != nil {
				in.element.nonNestables = append(in.element.nonNestables, nonNestables...)
				dst = c.appendElement(dst, in.element)
			} else {
				dst = append(dst, in.markup...)
			}
			text = text[start+in.extent:]
			continue scan
		}
		dst = c.appendUnmarkedText(dst, text[:pos+1])
		text = text[pos+1:]
	}
	return c.appendUnmarkedText(dst, text)
}

// appendUnmarkedText renders text that contains no inline markup,
// converting line breaks and expanding abbreviations.
func (c *renderContext) appendUnmarkedText(dst []byte, text string) []byte {
	if text == "" {
		return dst
	}
	if strings.Contains(text, "\n") {
		lines := strings.Split(text, "\n")
		for i, line := range lines[:len(lines)-1] {
			trimmed := strings.TrimRight(line, " ")
			switch {
			case c.opts.BreaksEnabled || len(line)-len(trimmed) >= 2:
				lines[i] = trimmed + "<br />"
			case len(line)-len(trimmed) == 1:
				lines[i] = trimmed
			}
		}
		text = strings.Join(lines, "\n")
	}
	return append(dst, c.registry.expandAbbreviations(text)...)
}

func parseSpecialCharacter(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	switch text[0] {
	case '&':
		if isEntity(text) {
			return inline{}, false
		}
		return inline{extent: 1, markup: "&amp;"}, true
	case '<':
		return inline{extent: 1, markup: "&lt;"}, true
	case '>':
		return inline{extent: 1, markup: "&gt;"}, true
	case '"':
		return inline{extent: 1, markup: "&quot;"}, true
	}
	return inline{}, false
}

// isEntity reports whether s starts with an HTML character reference
// like "&amp;" or "&#8617;".
func isEntity(s string) bool {
	i := 1
	if i < len(s) && s[i] == '#' {
		i++
	}
	start := i
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return i > start && i < len(s) && s[i] == ';'
}

func parseEscapeSequence(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if len(text) < 2 {
		return inline{}, false
	}
	switch {
	case text[1] == '\n':
		return inline{extent: 2, markup: "<br />\n"}, true
	case strings.IndexByte(escapableCharacters, text[1]) >= 0:
		return inline{extent: 2, markup: string(appendEscapedText(nil, text[1:2]))}, true
	}
	return inline{}, false
}

func parseCodeSpan(c *renderContext, ex excerpt) (inline, bool) {
	m, ok := find(codeSpanPattern, ex.text())
	if !ok {
		return inline{}, false
	}
	return inline{
		extent:  m.end,
		element: &Element{Name: "code", Content: Text(collapseCodeLines(m.group(2)))},
	}, true
}

// collapseCodeLines replaces each line break in a code span,
// along with any spaces before it, with a single space.
func collapseCodeLines(code string) string {
	if !strings.Contains(code, "\n") {
		return code
	}
	lines := strings.Split(code, "\n")
	for i := range lines[:len(lines)-1] {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, " ")
}

func parseEmphasis(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if len(text) < 2 {
		return inline{}, false
	}
	marker := text[0]
	name := "strong"
	m, ok := submatch{}, false
	if text[1] == marker {
		m, ok = find(strongPatterns[marker], text)
	}
	if !ok {
		name = "em"
		m, ok = find(emphasisPatterns[marker], text)
	}
	if !ok {
		return inline{}, false
	}
	return inline{
		extent:  m.end,
		element: &Element{Name: name, Content: Line(m.group(1))},
	}, true
}

func parseStrikethrough(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if len(text) < 2 || text[1] != '~' {
		return inline{}, false
	}
	m, ok := find(strikethroughPattern, text)
	if !ok {
		return inline{}, false
	}
	return inline{
		extent:  m.end,
		element: &Element{Name: "del", Content: Line(m.group(1))},
	}, true
}

// parseLink matches an inline link like [text](url "title")
// or a reference link like [text][label] or [label].
func parseLink(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	end := matchBrackets(text)
	if end < 0 {
		return inline{}, false
	}
	link := &Element{
		Name:         "a",
		Content:      Line(text[1 : end-1]),
		nonNestables: []inlineKind{bareURLKind, linkKind},
	}
	extent := end
	remainder := text[end:]
	if m, ok := find(linkDestinationPattern, remainder); ok {
		link.Attrs = Attributes{{Key: "href", Val: NormalizeURI(m.group(1))}}
		if title := m.group(2); title != "" {
			link.Attrs.Set("title", title[1:len(title)-1])
		}
		extent += m.end
	} else {
		label := string(link.Content.(Line))
		if m, ok := find(linkLabelPattern, remainder); ok {
			if m.group(1) != "" {
				label = m.group(1)
			}
			extent += m.end
		}
		def, ok := c.registry.Link(label)
		if !ok {
			return inline{}, false
		}
		link.Attrs = Attributes{{Key: "href", Val: NormalizeURI(def.Destination)}}
		if def.TitlePresent {
			link.Attrs.Set("title", def.Title)
		}
	}
	return inline{extent: extent, element: link}, true
}

// matchBrackets returns the offset just past the bracket
// that closes the '[' at the start of s, or -1.
// Nested brackets must balance.
func matchBrackets(s string) int {
	if !strings.HasPrefix(s, "[") {
		return -1
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func parseImage(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if len(text) < 2 || text[1] != '[' {
		return inline{}, false
	}
	link, ok := inlineRules[linkKind](c, excerpt{context: ex.context, pos: ex.pos + 1})
	if !ok {
		return inline{}, false
	}
	extra := link.element.Attrs
	src, _ := extra.Get("href")
	extra.Delete("href")
	img := &Element{
		Name: "img",
		Attrs: Attributes{
			{Key: "src", Val: src},
			{Key: "alt", Val: string(link.element.Content.(Line))},
		},
	}
	img.Attrs.Merge(extra)
	return inline{extent: link.extent + 1, element: img}, true
}

func parseRawHTML(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if c.opts.EscapeRaw || len(text) < 2 || !strings.Contains(text, ">") {
		return inline{}, false
	}
	switch text[1] {
	case '/':
		if tag, ok := parseHTMLClosingTag(text); ok {
			return inline{extent: tag.end, markup: text[:tag.end]}, true
		}
	case '!':
		if end := parseHTMLComment(text); end >= 0 {
			return inline{extent: end, markup: text[:end]}, true
		}
	case ' ':
	default:
		if tag, ok := parseHTMLOpenTag(text); ok {
			return inline{extent: tag.end, markup: text[:tag.end]}, true
		}
	}
	return inline{}, false
}

func parseURLTag(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if !strings.Contains(text, ">") {
		return inline{}, false
	}
	m, ok := find(urlTagPattern, text)
	if !ok {
		return inline{}, false
	}
	url := m.group(1)
	return inline{
		extent: m.end,
		element: &Element{
			Name:    "a",
			Attrs:   Attributes{{Key: "href", Val: NormalizeURI(url)}},
			Content: Text(url),
		},
	}, true
}

func parseEmailTag(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if !strings.Contains(text, ">") {
		return inline{}, false
	}
	m, ok := find(emailTagPattern, text)
	if !ok {
		return inline{}, false
	}
	address := m.group(1)
	href := address
	if m.group(2) == "" {
		href = "mailto:" + address
	}
	return inline{
		extent: m.end,
		element: &Element{
			Name:    "a",
			Attrs:   Attributes{{Key: "href", Val: href}},
			Content: Text(address),
		},
	}, true
}

// parseBareURL links a URL like https://example.com written without brackets.
// The marker is the colon after the scheme,
// so the match begins before the marker.
func parseBareURL(c *renderContext, ex excerpt) (inline, bool) {
	text := ex.text()
	if c.opts.NoURLLinks || len(text) < 3 || text[2] != '/' {
		return inline{}, false
	}
	m, ok := find(bareURLPattern, ex.context)
	if !ok || m.start > ex.pos || m.end <= ex.pos {
		return inline{}, false
	}
	url := ex.context[m.start:m.end]
	return inline{
		extent: m.end - m.start,
		before: ex.pos - m.start,
		element: &Element{
			Name:    "a",
			Attrs:   Attributes{{Key: "href", Val: NormalizeURI(url)}},
			Content: Text(url),
		},
	}, true
}
