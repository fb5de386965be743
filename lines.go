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
	"strings"
	"unicode/utf8"
)

// tabStop is the column width that tabs expand to.
const tabStop = 4

// A sourceLine is a single line of Markdown source
// with tabs expanded to spaces.
type sourceLine struct {
	// Raw is the whole line.
	Raw string
	// Indent is the number of leading spaces in Raw.
	Indent int
	// Body is Raw without its leading spaces.
	Body string
}

func newLine(raw string) sourceLine {
	raw = expandTabs(raw)
	indent := 0
	for indent < len(raw) && raw[indent] == ' ' {
		indent++
	}
	return sourceLine{Raw: raw, Indent: indent, Body: raw[indent:]}
}

// splitLines normalizes line endings in text
// and splits it into lines,
// ignoring leading and trailing line breaks.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Trim(text, "\n")
	return strings.Split(text, "\n")
}

// isBlankLine reports whether the line consists only of whitespace.
func isBlankLine(line string) bool {
	return strings.TrimRight(line, " \t\n\r\x00\x0b") == ""
}

// expandTabs replaces each tab with spaces up to the next tab stop.
// Columns are counted in characters.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for len(s) > 0 {
		if s[0] == '\t' {
			n := tabStop - col%tabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			s = s[1:]
			continue
		}
		_, size := utf8.DecodeRuneInString(s)
		sb.WriteString(s[:size])
		col++
		s = s[size:]
	}
	return sb.String()
}

// trimIndent removes up to n leading spaces from s.
func trimIndent(s string, n int) string {
	i := 0
	for i < n && i < len(s) && s[i] == ' ' {
		i++
	}
	return s[i:]
}

// chopChar reports whether s consists only of the byte c,
// ignoring trailing spaces.
func chopChar(s string, c byte) bool {
	return strings.TrimRight(strings.TrimRight(s, " "), string(rune(c))) == ""
}
