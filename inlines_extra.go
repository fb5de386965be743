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
	"fmt"
	"slices"
	"strconv"
)

// installInlineExtensions adds the Markdown Extra inline recognizers
// on top of the baseline ones.
func installInlineExtensions() {
	inlineRules[footnoteMarkerKind] = parseFootnoteMarker
	inlineRules[linkKind] = withLinkAttributes(inlineRules[linkKind])
	insertInlineStart('[', footnoteMarkerKind, linkKind)
}

// insertInlineStart registers kind for text starting with marker,
// placing it immediately before the kind anchor.
// It panics if anchor is not registered for marker.
func insertInlineStart(marker byte, kind, anchor inlineKind) {
	kinds := inlineStarts[marker]
	i := slices.Index(kinds, anchor)
	if i < 0 {
		panic(fmt.Sprintf("markdownextra: no inline recognizer %d registered for %q", anchor, marker))
	}
	inlineStarts[marker] = slices.Insert(slices.Clip(kinds), i, kind)
	updateInlineMarkers()
}

// parseFootnoteMarker matches a reference like [^label]
// to a defined footnote.
func parseFootnoteMarker(c *renderContext, ex excerpt) (inline, bool) {
	m, ok := find(footnoteMarkerPattern, ex.text())
	if !ok {
		return inline{}, false
	}
	label := m.group(1)
	number, ordinal, ok := c.registry.ReferenceFootnote(label)
	if !ok {
		return inline{}, false
	}
	return inline{
		extent: m.end,
		element: &Element{
			Name:  "sup",
			Attrs: Attributes{{Key: "id", Val: footnoteRefID(label, ordinal)}},
			Content: Multiple{&Element{
				Name: "a",
				Attrs: Attributes{
					{Key: "href", Val: "#" + footnoteID(label)},
					{Key: "class", Val: "footnote-ref"},
				},
				Content: Text(strconv.Itoa(number)),
			}},
		},
	}, true
}

func footnoteID(label string) string {
	return "fn:" + label
}

func footnoteRefID(label string, ordinal int) string {
	return "fnref" + strconv.Itoa(ordinal) + ":" + label
}

// withLinkAttributes extends a link recognizer
// to accept an attribute annotation like {#id .class}
// immediately after the link.
func withLinkAttributes(rule inlineRule) inlineRule {
	return func(c *renderContext, ex excerpt) (inline, bool) {
		link, ok := rule(c, ex)
		if !ok {
			return link, false
		}
		m, ok := find(linkAttributesPattern, ex.text()[link.extent:])
		if ok {
			link.element.Attrs.Merge(ParseAttributes(m.group(1)))
			link.extent += m.end
		}
		return link, true
	}
}
