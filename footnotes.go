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
)

// appendFootnotes renders the footnotes section
// listing every referenced footnote in number order.
// Nothing is written if the document defines no footnotes.
func (c *renderContext) appendFootnotes(dst []byte) []byte {
	r := c.registry
	if len(r.footnotes) == 0 {
		return dst
	}

	// Footnote text can reference other footnotes,
	// so the count may grow while rendering.
	var texts []string
	for n := 1; n <= r.footnoteCount; n++ {
		fn := r.footnoteByNumber(n)
		texts = append(texts, string(c.appendText(nil, fn.text)))
	}

	items := make(Children, 0, len(texts))
	for i, text := range texts {
		label := r.footnoteByNumber(i + 1).label
		_, refs, _ := r.FootnoteNumber(label)
		items = append(items, &Element{
			Name:    "li",
			Attrs:   Attributes{{Key: "id", Val: footnoteID(label)}},
			Content: Raw("\n" + addBackReferences(text, label, refs) + "\n"),
		})
	}
	section := &Element{
		Name:  "div",
		Attrs: Attributes{{Key: "class", Val: "footnotes"}},
		Content: Children{
			{Name: "hr"},
			{Name: "ol", Content: items},
		},
	}
	dst = append(dst, '\n')
	return c.appendElement(dst, section)
}

// addBackReferences appends one back-link per reference
// to the rendered text of the footnote with the given label.
// The links go inside a trailing paragraph if there is one.
func addBackReferences(text, label string, refs int) string {
	links := make([]string, 0, refs)
	for k := 1; k <= refs; k++ {
		var sb strings.Builder
		sb.WriteString(`<a href="#`)
		sb.Write(appendEscapedAttribute(nil, footnoteRefID(label, k)))
		sb.WriteString(`" rev="footnote" class="footnote-backref">&#8617;</a>`)
		links = append(links, sb.String())
	}
	backrefs := strings.Join(links, " ")
	if before, ok := strings.CutSuffix(text, "</p>"); ok {
		return before + "&#160;" + backrefs + "</p>"
	}
	return text + "\n<p>" + backrefs + "</p>"
}

// FootnoteNumber returns the number assigned to the footnote with the given label
// and how many times it has been referenced.
// It reports false if the footnote is undefined or unreferenced.
func (r *Registry) FootnoteNumber(label string) (number, references int, ok bool) {
	fn := r.footnotes[label]
	if fn == nil || fn.number == 0 {
		return 0, 0, false
	}
	return fn.number, fn.count, true
}

