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

import "strings"

// An htmlTag is the result of scanning a raw HTML tag.
type htmlTag struct {
	// name is the tag name as written.
	name string
	// end is the byte offset just past the closing '>'.
	end         int
	selfClosing bool
}

// parseHTMLOpenTag parses an open tag like <div class="x"> at the start of s.
// Tag names start with a word character
// and continue with word characters or hyphens.
func parseHTMLOpenTag(s string) (htmlTag, bool) {
	if !strings.HasPrefix(s, "<") {
		return htmlTag{}, false
	}
	pos := 1
	nameEnd := parseHTMLTagName(s, pos)
	if nameEnd == pos {
		return htmlTag{}, false
	}
	tag := htmlTag{name: s[pos:nameEnd]}
	pos = nameEnd
	for {
		pos = skipSpaces(s, pos)
		if pos >= len(s) {
			return htmlTag{}, false
		}
		switch s[pos] {
		case '/':
			if pos+1 >= len(s) || s[pos+1] != '>' {
				return htmlTag{}, false
			}
			tag.selfClosing = true
			tag.end = pos + 2
			return tag, true
		case '>':
			tag.end = pos + 1
			return tag, true
		}
		attrEnd := parseHTMLAttribute(s, pos)
		if attrEnd < 0 {
			return htmlTag{}, false
		}
		pos = attrEnd
	}
}

// parseHTMLClosingTag parses a closing tag like </div > at the start of s.
func parseHTMLClosingTag(s string) (htmlTag, bool) {
	if !strings.HasPrefix(s, "</") {
		return htmlTag{}, false
	}
	pos := 2
	nameEnd := parseHTMLTagName(s, pos)
	if nameEnd == pos {
		return htmlTag{}, false
	}
	tag := htmlTag{name: s[pos:nameEnd]}
	pos = skipSpaces(s, nameEnd)
	if pos >= len(s) || s[pos] != '>' {
		return htmlTag{}, false
	}
	tag.end = pos + 1
	return tag, true
}

// parseHTMLComment parses a comment at the start of s,
// returning the offset just past "-->" or -1.
func parseHTMLComment(s string) int {
	if !strings.HasPrefix(s, "<!--") {
		return -1
	}
	text := s[len("<!--"):]
	if strings.HasPrefix(text, ">") || strings.HasPrefix(text, "->") {
		return -1
	}
	i := strings.Index(text, "--")
	if i < 0 || !strings.HasPrefix(text[i:], "-->") {
		return -1
	}
	return len("<!--") + i + len("-->")
}

func parseHTMLTagName(s string, pos int) (end int) {
	if pos >= len(s) || !isWordChar(s[pos]) {
		return pos
	}
	pos++
	for pos < len(s) && (isWordChar(s[pos]) || s[pos] == '-') {
		pos++
	}
	return pos
}

// parseHTMLAttribute parses a single attribute starting at pos,
// returning the offset just past it or -1.
func parseHTMLAttribute(s string, pos int) (end int) {
	if pos >= len(s) {
		return -1
	}
	if c := s[pos]; !isASCIILetter(c) && c != '_' && c != ':' {
		return -1
	}
	pos++
	for pos < len(s) && (isWordChar(s[pos]) || strings.IndexByte(":.-", s[pos]) >= 0) {
		pos++
	}

	// Don't consume space unless it is followed by an equal sign.
	valueStart := skipWhitespace(s, pos)
	if valueStart >= len(s) || s[valueStart] != '=' {
		return pos
	}
	valueStart = skipWhitespace(s, valueStart+1)
	if valueStart >= len(s) {
		return -1
	}
	switch c := s[valueStart]; {
	case c == '"' || c == '\'':
		i := strings.IndexByte(s[valueStart+1:], c)
		if i < 0 {
			return -1
		}
		return valueStart + 1 + i + 1
	case isUnquotedAttributeValueChar(c):
		end = valueStart + 1
		for end < len(s) && isUnquotedAttributeValueChar(s[end]) {
			end++
		}
		return end
	default:
		return -1
	}
}

func isUnquotedAttributeValueChar(c byte) bool {
	return !isSpaceOrTab(c) && c != '\n' && c != '\r' && c != '\f' &&
		c != '"' && c != '\'' && c != '=' && c != '<' && c != '>' && c != '`'
}

func skipSpaces(s string, pos int) int {
	for pos < len(s) && s[pos] == ' ' {
		pos++
	}
	return pos
}

func skipWhitespace(s string, pos int) int {
	for pos < len(s) && (isSpaceOrTab(s[pos]) || s[pos] == '\n' || s[pos] == '\r' || s[pos] == '\f') {
		pos++
	}
	return pos
}

// hasClosingTagSuffix reports whether s ends with </name>
// optionally followed by spaces, comparing the name case-insensitively.
func hasClosingTagSuffix(s, name string) bool {
	s = strings.TrimRight(s, " ")
	closing := "</" + name + ">"
	return len(s) >= len(closing) && strings.EqualFold(s[len(s)-len(closing):], closing)
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordChar(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '_'
}
