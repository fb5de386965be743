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
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds the time spent in a single regular expression match.
// A match that times out is treated as no match.
const matchTimeout = 2 * time.Second

// attributeFragment matches the inside of an attribute annotation,
// like "#id .class".
const attributeFragment = `(?:[#.][-\w]+[ ]*)+`

var (
	headingAttributesPattern = mustCompile(`[ #]*\{(` + attributeFragment + `)\}[ ]*$`, 0)
	setextAttributesPattern  = mustCompile(`[ ]*\{(` + attributeFragment + `)\}[ ]*$`, 0)
	linkAttributesPattern    = mustCompile(`^[ ]*\{(` + attributeFragment + `)\}`, 0)

	quoteStartPattern    = mustCompile(`^>[ ]?(\{`+attributeFragment+`\})?[ ]?(.*)`, 0)
	quoteContinuePattern = mustCompile(`^>[ ]?(.*)`, 0)

	footnoteDefinitionPattern     = mustCompile(`^\[\^(.+?)\]:[ ]?(.*)$`, 0)
	abbreviationDefinitionPattern = mustCompile(`^\*\[(.+?)\]:[ ]*(.+?)[ ]*$`, 0)
	linkDefinitionPattern         = mustCompile(`^\[(.+?)\]:[ ]*<?(\S+?)>?(?:[ ]+["'(](.+)["')])?[ ]*$`, 0)
	footnoteMarkerPattern         = mustCompile(`^\[\^(.+?)\]`, 0)

	linkDestinationPattern = mustCompile(`^[(]\s*((?>(?:[^ ()]+|[(][^ )]+[)])+))(?:[ ]+("[^"]*"|'[^']*'))?\s*[)]`, 0)
	linkLabelPattern       = mustCompile(`^\s*\[(.*?)\]`, 0)

	strongPatterns = map[byte]*regexp2.Regexp{
		'*': mustCompile(`^[*]{2}((?:\\\*|[^*]|[*][^*]*[*])+?)[*]{2}(?![*])`, regexp2.Singleline),
		'_': mustCompile(`^__((?:\\_|[^_]|_[^_]*_)+?)__(?!_)`, regexp2.Singleline),
	}
	emphasisPatterns = map[byte]*regexp2.Regexp{
		'*': mustCompile(`^[*]((?:\\\*|[^*]|[*][*][^*]+?[*][*])+?)[*](?![*])`, regexp2.Singleline),
		'_': mustCompile(`^_((?:\\_|[^_]|__[^_]*__)+?)_(?!_)\b`, regexp2.Singleline),
	}
	codeSpanPattern      = mustCompile("^(`+)[ ]*(.+?)[ ]*(?<!`)\\1(?!`)", regexp2.Singleline)
	strikethroughPattern = mustCompile(`^~~(?=\S)(.+?)(?<=\S)~~`, 0)
	bareURLPattern       = mustCompile(`\bhttps?:[/]{2}[^\s<]+\b/*`, regexp2.IgnoreCase)
	urlTagPattern        = mustCompile(`^<(\w+:/{2}[^ >]+)>`, regexp2.IgnoreCase)
	emailTagPattern      = mustCompile(`^<((mailto:)?\S+?@\S+?)>`, regexp2.IgnoreCase)
)

// fencePattern returns the pattern for a figure fence made of c.
func fencePattern(c byte) *regexp2.Regexp {
	fence := regexp2.Escape(string(rune(c)))
	return mustCompile(`^(?:`+fence+`){3,}[ ]*(\[.*\])?[ ]*(\{`+attributeFragment+`\})?[ ]*$`, 0)
}

func mustCompile(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, opts)
	re.MatchTimeout = matchTimeout
	return re
}

// A submatch is a successful match of a regular expression against a string.
// Offsets are in bytes.
type submatch struct {
	start, end int
	groups     []string
}

// group returns the i'th capture group or the empty string
// if the group did not participate in the match.
func (m submatch) group(i int) string {
	if i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// find returns the leftmost match of re in s.
func find(re *regexp2.Regexp, s string) (submatch, bool) {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return submatch{}, false
	}
	// regexp2 reports offsets in runes.
	// Ranging over a string yields one index per rune,
	// including one per invalid byte, as does the []rune conversion.
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	result := submatch{
		start: offsets[m.Index],
		end:   offsets[m.Index+m.Length],
	}
	for _, g := range m.Groups() {
		if len(g.Captures) == 0 {
			result.groups = append(result.groups, "")
			continue
		}
		result.groups = append(result.groups, s[offsets[g.Index]:offsets[g.Index+g.Length]])
	}
	return result, true
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
